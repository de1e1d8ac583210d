package handlers

import (
	"net/http"

	"github.com/anonto42/socialite/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	stories StoryService
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(stories StoryService) *StoryHandler {
	return &StoryHandler{stories: stories}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.GET("/stories", h.GetStories)
	g.POST("/stories", h.CreateStory)
	g.POST("/stories/:id/like", h.ToggleLike)
	g.GET("/stories/:id/likes", h.GetLikes)
}

// GetStories returns the stories visible to the caller
func (h *StoryHandler) GetStories(c echo.Context) error {
	stories, err := h.stories.VisibleStories(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"stories": stories})
}

// CreateStory publishes an uploaded image as a story
func (h *StoryHandler) CreateStory(c echo.Context) error {
	var req models.CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	story, err := h.stories.AddStory(c.Request().Context(), getUserIDFromContext(c), req)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusCreated, story)
}

// ToggleLike likes or unlikes a story and returns the new like count
func (h *StoryHandler) ToggleLike(c echo.Context) error {
	storyID, err := parseID(c, "story")
	if err != nil {
		return err
	}
	count, err := h.stories.ToggleLike(c.Request().Context(), getUserIDFromContext(c), storyID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"likes_count": count})
}

// GetLikes lists the ids of the users who liked a story
func (h *StoryHandler) GetLikes(c echo.Context) error {
	storyID, err := parseID(c, "story")
	if err != nil {
		return err
	}
	ids, err := h.stories.StoryLikes(c.Request().Context(), storyID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"user_ids": ids})
}
