package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// FollowHandler handles follows, follow requests and blocks
type FollowHandler struct {
	graph GraphService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(graph GraphService) *FollowHandler {
	return &FollowHandler{graph: graph}
}

// RegisterFollowRoutes registers social graph routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.SwitchFollow)
	g.POST("/users/:id/block", h.SwitchBlock)
	g.GET("/users/:id/relation", h.GetRelation)
	g.GET("/follow-requests", h.GetFollowRequests)
	g.POST("/follow-requests/:id/accept", h.AcceptFollowRequest)
	g.POST("/follow-requests/:id/decline", h.DeclineFollowRequest)
}

// SwitchFollow follows, unfollows or cancels a request depending on the current state
func (h *FollowHandler) SwitchFollow(c echo.Context) error {
	state, err := h.graph.SwitchFollow(c.Request().Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"state": state})
}

// SwitchBlock blocks or unblocks a user
func (h *FollowHandler) SwitchBlock(c echo.Context) error {
	blocked, err := h.graph.SwitchBlock(c.Request().Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"blocked": blocked})
}

// GetRelation returns the caller's follow and block state toward a user
func (h *FollowHandler) GetRelation(c echo.Context) error {
	rel, err := h.graph.Relation(c.Request().Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, rel)
}

// GetFollowRequests lists pending requests received by the caller
func (h *FollowHandler) GetFollowRequests(c echo.Context) error {
	reqs, err := h.graph.PendingRequests(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"requests": reqs})
}

// AcceptFollowRequest accepts the request sent by :id
func (h *FollowHandler) AcceptFollowRequest(c echo.Context) error {
	if err := h.graph.AcceptFollowRequest(c.Request().Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Follow request accepted"})
}

// DeclineFollowRequest declines the request sent by :id
func (h *FollowHandler) DeclineFollowRequest(c echo.Context) error {
	if err := h.graph.DeclineFollowRequest(c.Request().Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Follow request declined"})
}
