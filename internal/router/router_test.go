package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/anonto42/socialite/backend/internal/middleware"
	"github.com/anonto42/socialite/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newServer(t *testing.T, cfg *config.Config) *echo.Echo {
	t.Helper()
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	l := logrus.New()
	l.SetOutput(io.Discard)
	deps := Deps{Config: cfg, DB: &config.DB{Postgres: db}, Log: logrus.NewEntry(l)}

	e := echo.New()
	jwt := middleware.NewJWTManager("secret", time.Hour)
	SetupMiddleware(e, deps, jwt)
	SetupRoutes(e, deps, jwt)
	return e
}

func hasRoute(e *echo.Echo, method, path string) bool {
	for _, r := range e.Routes() {
		if r.Method == method && r.Path == path {
			return true
		}
	}
	return false
}

func TestDevTokenRouteAbsentByDefault(t *testing.T) {
	t.Setenv("POSTGRES_CONN_STR", "postgres://localhost/social")
	l := logrus.New()
	l.SetOutput(io.Discard)
	cfg, err := config.Load(logrus.NewEntry(l))
	require.NoError(t, err)

	e := newServer(t, cfg)
	assert.False(t, hasRoute(e, http.MethodPost, "/api/v1/auth/dev-token"))
	assert.True(t, hasRoute(e, http.MethodGet, "/api/v1/feed"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/dev-token", strings.NewReader(`{"user_id":"u1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.NotEqual(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "token")
}

func TestDevTokenRouteNeedsDevelopmentOptIn(t *testing.T) {
	prod := &config.Config{Env: "production", DevTokens: true, StoryTTL: 24 * time.Hour}
	assert.False(t, hasRoute(newServer(t, prod), http.MethodPost, "/api/v1/auth/dev-token"))

	dev := &config.Config{Env: "development", DevTokens: true, StoryTTL: 24 * time.Hour}
	assert.True(t, hasRoute(newServer(t, dev), http.MethodPost, "/api/v1/auth/dev-token"))
}
