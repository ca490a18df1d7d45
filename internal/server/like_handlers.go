package server

import (
	"storyhub/internal/middleware"
	"storyhub/internal/notifications"
	"storyhub/internal/presenter"

	"github.com/gofiber/fiber/v2"
)

// LikeStory records the caller's like (protected)
// @Summary Like a story
// @Tags likes
// @Param id path int true "Story ID"
// @Produce json
// @Security BearerAuth
// @Success 201 {object} presenter.Like
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /stories/{id}/like [post]
func (s *Server) LikeStory(c *fiber.Ctx) error {
	storyID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	like, err := s.likeService.Like(c.UserContext(), currentUserID(c), storyID)
	if err != nil {
		return respondError(c, err)
	}

	s.feed.Publish(eventContext(c), notifications.EventStoryLiked, fiber.Map{
		"story_id": like.StoryID,
		"user_id":  like.UserID,
	})

	return c.Status(fiber.StatusCreated).JSON(presenter.NewLike(like))
}

// UnlikeStory removes the caller's like (protected)
// @Summary Unlike a story
// @Tags likes
// @Param id path int true "Story ID"
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.Message
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /stories/{id}/like [delete]
func (s *Server) UnlikeStory(c *fiber.Ctx) error {
	storyID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	userID := currentUserID(c)
	if err := s.likeService.Unlike(c.UserContext(), userID, storyID); err != nil {
		return respondError(c, err)
	}

	s.feed.Publish(eventContext(c), notifications.EventStoryUnliked, fiber.Map{
		"story_id": storyID,
		"user_id":  userID,
	})

	return c.JSON(presenter.NewMessage("Story unliked successfully"))
}

// LikeStatus reports whether the caller likes the story. Anonymous callers get false.
// @Summary Like status of a story
// @Tags likes
// @Param id path int true "Story ID"
// @Produce json
// @Success 200 {object} presenter.LikeStatus
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /stories/{id}/like [get]
func (s *Server) LikeStatus(c *fiber.Ctx) error {
	storyID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	userID, _ := middleware.UserID(c)
	liked, err := s.likeService.Status(c.UserContext(), userID, storyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(presenter.LikeStatus{Liked: liked})
}
