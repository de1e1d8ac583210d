package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feed FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feed FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetHomeFeed)
	g.GET("/users/:username/feed", h.GetProfileFeed)
}

// GetHomeFeed returns the caller's posts and shares plus those of the users they follow
func (h *FeedHandler) GetHomeFeed(c echo.Context) error {
	items, err := h.feed.Feed(c.Request().Context(), "", getUserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"items": items})
}

// GetProfileFeed returns one user's posts and shares
func (h *FeedHandler) GetProfileFeed(c echo.Context) error {
	items, err := h.feed.Feed(c.Request().Context(), c.Param("username"), getUserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"items": items})
}
