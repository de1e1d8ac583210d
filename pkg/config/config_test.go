package config

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTGRES_CONN_STR", "postgres://localhost/social")

	cfg, err := Load(quietLog())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "9090", cfg.MetricsPort)
	assert.Equal(t, "socialmedia", cfg.MongoDatabase)
	assert.Equal(t, 24*time.Hour, cfg.StoryTTL)
	assert.Equal(t, 72*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.StrictPostValidation)
	assert.False(t, cfg.IsDevelopment())
	assert.False(t, cfg.DevTokensEnabled())
}

func TestDevTokensRequireDevelopment(t *testing.T) {
	t.Setenv("POSTGRES_CONN_STR", "postgres://localhost/social")
	t.Setenv("DEV_TOKENS", "true")

	cfg, err := Load(quietLog())
	require.NoError(t, err)
	assert.False(t, cfg.DevTokensEnabled())

	t.Setenv("ENV", "development")
	cfg, err = Load(quietLog())
	require.NoError(t, err)
	assert.True(t, cfg.DevTokensEnabled())

	t.Setenv("DEV_TOKENS", "false")
	cfg, err = Load(quietLog())
	require.NoError(t, err)
	assert.False(t, cfg.DevTokensEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("POSTGRES_CONN_STR", "postgres://localhost/social")
	t.Setenv("PORT", "3000")
	t.Setenv("ENV", "production")
	t.Setenv("STORY_TTL", "12h")
	t.Setenv("STRICT_POST_VALIDATION", "true")

	cfg, err := Load(quietLog())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 12*time.Hour, cfg.StoryTTL)
	assert.True(t, cfg.StrictPostValidation)
}

func TestLoadRejectsNonPositiveStoryTTL(t *testing.T) {
	t.Setenv("POSTGRES_CONN_STR", "postgres://localhost/social")
	t.Setenv("STORY_TTL", "0s")

	_, err := Load(quietLog())
	assert.Error(t, err)
}
