package handlers

import (
	"net/http"

	"github.com/anonto42/socialite/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	posts PostService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(posts PostService) *CommentHandler {
	return &CommentHandler{posts: posts}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment)
	g.GET("/posts/:id/comments", h.GetComments)
}

// CreateComment adds a comment to a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	postID, err := parseID(c, "post")
	if err != nil {
		return err
	}
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	comment, err := h.posts.AddComment(c.Request().Context(), getUserIDFromContext(c), postID, req)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusCreated, comment)
}

// GetComments lists the comments of a post
func (h *CommentHandler) GetComments(c echo.Context) error {
	postID, err := parseID(c, "post")
	if err != nil {
		return err
	}
	comments, err := h.posts.Comments(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"comments": comments})
}
