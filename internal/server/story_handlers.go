package server

import (
	"storyhub/internal/notifications"
	"storyhub/internal/presenter"
	"storyhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateStory creates a story owned by the caller (protected)
// @Summary Create a story
// @Tags stories
// @Accept json
// @Param request body object{title=string,content=string} true "Story"
// @Produce json
// @Security BearerAuth
// @Success 201 {object} presenter.StorySummary
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /stories [post]
func (s *Server) CreateStory(c *fiber.Ctx) error {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	story, err := s.storyService.Create(c.UserContext(), service.CreateStoryInput{
		OwnerID: currentUserID(c),
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	summary := presenter.NewStorySummary(story)
	s.feed.Publish(eventContext(c), notifications.EventStoryCreated, summary)

	return c.Status(fiber.StatusCreated).JSON(summary)
}

// ListStories returns every story, newest first (public)
// @Summary List stories
// @Tags stories
// @Produce json
// @Success 200 {array} presenter.StoryListItem
// @Router /stories [get]
func (s *Server) ListStories(c *fiber.Ctx) error {
	stories, err := s.storyService.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(presenter.NewStoryList(stories))
}

// GetStory returns a story with its comments (public)
// @Summary Get a story
// @Tags stories
// @Param id path int true "Story ID"
// @Produce json
// @Success 200 {object} presenter.StoryDetail
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /stories/{id} [get]
func (s *Server) GetStory(c *fiber.Ctx) error {
	storyID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	story, err := s.storyService.Get(c.UserContext(), storyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(presenter.NewStoryDetail(story))
}

// UpdateStory patches the supplied fields of a story (only owner)
// @Summary Update a story
// @Tags stories
// @Accept json
// @Param id path int true "Story ID"
// @Param request body object{title=string,content=string} true "Fields to change"
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.StoryDetail
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /stories/{id} [put]
func (s *Server) UpdateStory(c *fiber.Ctx) error {
	storyID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	story, err := s.storyService.Update(c.UserContext(), service.UpdateStoryInput{
		UserID:  currentUserID(c),
		StoryID: storyID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	detail := presenter.NewStoryDetail(story)
	s.feed.Publish(eventContext(c), notifications.EventStoryUpdated, detail.StorySummary)

	return c.JSON(detail)
}

// DeleteStory removes a story with its comments and likes (only owner)
// @Summary Delete a story
// @Tags stories
// @Param id path int true "Story ID"
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.Message
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /stories/{id} [delete]
func (s *Server) DeleteStory(c *fiber.Ctx) error {
	storyID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.storyService.Delete(c.UserContext(), currentUserID(c), storyID); err != nil {
		return respondError(c, err)
	}

	s.feed.Publish(eventContext(c), notifications.EventStoryDeleted, fiber.Map{"id": storyID})

	return c.JSON(presenter.NewMessage("Story deleted successfully"))
}
