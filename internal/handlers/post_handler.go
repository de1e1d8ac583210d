package handlers

import (
	"net/http"

	"github.com/anonto42/socialite/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	posts PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/share", h.SharePost)
}

// CreatePost creates a post. A rejected description yields 200 with no data.
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	post, err := h.posts.AddPost(c.Request().Context(), getUserIDFromContext(c), req)
	if err != nil {
		return httpError(err)
	}
	if post == nil {
		return ok(c, http.StatusOK, nil)
	}
	return ok(c, http.StatusCreated, post)
}

// DeletePost deletes one of the caller's posts
func (h *PostHandler) DeletePost(c echo.Context) error {
	postID, err := parseID(c, "post")
	if err != nil {
		return err
	}
	if err := h.posts.DeletePost(c.Request().Context(), getUserIDFromContext(c), postID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Post deleted"})
}

// SharePost shares a post on the caller's timeline
func (h *PostHandler) SharePost(c echo.Context) error {
	postID, err := parseID(c, "post")
	if err != nil {
		return err
	}
	share, err := h.posts.SharePost(c.Request().Context(), getUserIDFromContext(c), postID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusCreated, share)
}
