package handlers

import (
	"net/http"

	"github.com/anonto42/socialite/backend/internal/middleware"
	"github.com/anonto42/socialite/backend/internal/models"
	"github.com/anonto42/socialite/backend/pkg/firebase"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// AuthHandler exchanges identity provider tokens for local session tokens
type AuthHandler struct {
	users    UserService
	firebase middleware.IDTokenVerifier
	jwt      *middleware.JWTManager
	log      *logrus.Entry
}

// NewAuthHandler creates a new AuthHandler. firebaseAuth may be nil.
func NewAuthHandler(users UserService, firebaseAuth middleware.IDTokenVerifier, jwt *middleware.JWTManager, log *logrus.Entry) *AuthHandler {
	return &AuthHandler{users: users, firebase: firebaseAuth, jwt: jwt, log: log}
}

// RegisterAuthRoutes registers authentication-related routes. The dev
// token route is only mounted when devTokens is set.
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, devTokens bool) {
	if h.firebase != nil {
		g.POST("/firebase-login", h.FirebaseLogin)
	}
	if devTokens {
		g.POST("/dev-token", h.DevToken)
	}
}

// FirebaseLogin handles Firebase ID token verification and issues a local JWT
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req models.FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "idToken is required")
	}

	ctx := c.Request().Context()
	token, err := h.firebase.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		h.log.WithError(err).Debug("firebase token rejected")
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}

	identity := firebase.IdentityFromToken(token)
	user, err := h.users.SyncIdentity(ctx, &models.User{
		ID:       identity.UID,
		Username: identity.Username,
		Name:     identity.Name,
		Avatar:   identity.Picture,
	})
	if err != nil {
		return httpError(err)
	}
	return h.respondWithToken(c, user)
}

// DevToken issues a local JWT for an existing user without Firebase
func (h *AuthHandler) DevToken(c echo.Context) error {
	var req models.DevTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	user, err := h.users.Me(c.Request().Context(), req.UserID)
	if err != nil {
		return httpError(err)
	}
	return h.respondWithToken(c, user)
}

func (h *AuthHandler) respondWithToken(c echo.Context, user *models.User) error {
	token, err := h.jwt.Issue(user)
	if err != nil {
		h.log.WithError(err).Error("failed to sign token")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}
	return ok(c, http.StatusOK, echo.Map{"token": token, "user": user})
}
