package server

import (
	"storyhub/internal/notifications"
	"storyhub/internal/presenter"
	"storyhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment creates a comment on a story (protected)
// @Summary Comment on a story
// @Tags comments
// @Accept json
// @Param id path int true "Story ID"
// @Param request body object{content=string} true "Comment"
// @Produce json
// @Security BearerAuth
// @Success 201 {object} presenter.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /stories/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	storyID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	created, err := s.commentService.Create(c.UserContext(), service.CreateCommentInput{
		AuthorID: currentUserID(c),
		StoryID:  storyID,
		Content:  req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	comment := presenter.NewComment(created)
	s.feed.Publish(eventContext(c), notifications.EventCommentCreated, comment)

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// ListComments returns the comments of a story, oldest first (public)
// @Summary List comments of a story
// @Tags comments
// @Param id path int true "Story ID"
// @Produce json
// @Success 200 {array} presenter.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /stories/{id}/comments [get]
func (s *Server) ListComments(c *fiber.Ctx) error {
	storyID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.List(c.UserContext(), storyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(presenter.NewCommentList(comments))
}

// DeleteComment removes a comment (only author)
// @Summary Delete a comment
// @Tags comments
// @Param id path int true "Comment ID"
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.Message
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [delete]
// @Router /stories/comments/{id} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	deleted, err := s.commentService.Delete(c.UserContext(), service.DeleteCommentInput{
		UserID:    currentUserID(c),
		CommentID: commentID,
	})
	if err != nil {
		return respondError(c, err)
	}

	s.feed.Publish(eventContext(c), notifications.EventCommentDeleted, fiber.Map{
		"id":       deleted.ID,
		"story_id": deleted.StoryID,
	})

	return c.JSON(presenter.NewMessage("Comment deleted successfully"))
}
