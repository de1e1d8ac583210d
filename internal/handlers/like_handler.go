package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// LikeHandler handles post likes
type LikeHandler struct {
	posts PostService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(posts PostService) *LikeHandler {
	return &LikeHandler{posts: posts}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.SwitchLike)
}

// SwitchLike likes or unlikes a post
func (h *LikeHandler) SwitchLike(c echo.Context) error {
	postID, err := parseID(c, "post")
	if err != nil {
		return err
	}
	liked, err := h.posts.SwitchLike(c.Request().Context(), getUserIDFromContext(c), postID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"liked": liked})
}
