package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// UserIDKey is the echo context key holding the caller id.
const UserIDKey = "userID"

// Verifier resolves a bearer token to a user id.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// Identity resolves the caller from the Authorization header. Verifiers are
// tried in order. A request without a usable token continues anonymously;
// a header that is not a bearer token is rejected.
func Identity(log *logrus.Entry, verifiers ...Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			ctx := c.Request().Context()
			for _, v := range verifiers {
				userID, err := v.Verify(ctx, parts[1])
				if err == nil && userID != "" {
					c.Set(UserIDKey, userID)
					return next(c)
				}
			}
			log.WithField("path", c.Path()).Debug("bearer token rejected, continuing anonymously")
			return next(c)
		}
	}
}

// UserID returns the caller id stored by Identity, or "".
func UserID(c echo.Context) string {
	id, _ := c.Get(UserIDKey).(string)
	return id
}
