package handlers

import (
	"net/http"

	"github.com/anonto42/socialite/backend/internal/models"
	"github.com/anonto42/socialite/backend/internal/services"
	"github.com/anonto42/socialite/backend/pkg/apperrors"
	"github.com/labstack/echo/v4"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	users UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterUserRoutes registers search, profile and visitor routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:username", h.GetProfile)
	g.GET("/profile", h.GetMe)
	g.PUT("/profile", h.UpdateProfile)
	g.GET("/profile/visitors", h.GetVisitors)
}

// SearchUsers searches users by username, name or surname
func (h *UserHandler) SearchUsers(c echo.Context) error {
	users, err := h.users.SearchUsers(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"users": users})
}

// GetProfile returns a user's profile and records the visit
func (h *UserHandler) GetProfile(c echo.Context) error {
	profile, err := h.users.GetProfile(c.Request().Context(), getUserIDFromContext(c), c.Param("username"))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, profile)
}

// GetMe returns the caller's own profile
func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := h.users.Me(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, user)
}

// UpdateProfile updates the caller's profile fields and answers in the
// {success, error} shape of the profile form.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, services.UpdateProfileResult{Error: true, Message: "Invalid request payload"})
	}

	if err := h.users.UpdateProfile(c.Request().Context(), getUserIDFromContext(c), req); err != nil {
		return c.JSON(statusOf(err), services.UpdateProfileResult{Error: true, Message: apperrors.MessageOf(err)})
	}
	return c.JSON(http.StatusOK, services.UpdateProfileResult{Success: true})
}

// GetVisitors lists the caller's profile visitors, latest visit first
func (h *UserHandler) GetVisitors(c echo.Context) error {
	visitors, err := h.users.Visitors(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"visitors": visitors})
}
