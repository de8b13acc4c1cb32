package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TEXTGEN_TIMEOUT", "")
	t.Setenv("R2_ACCOUNT_ID", "")
	t.Setenv("MAX_SESSIONS", "")

	cfg := LoadConfig()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 60*time.Second, cfg.TextGen.Timeout)
	assert.Equal(t, "09:00", cfg.DefaultPostingTime)
	assert.False(t, cfg.R2.Enabled())
	assert.Equal(t, 10000, cfg.MaxSessions)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("TEXTGEN_TIMEOUT", "not-a-duration")
	t.Setenv("MAX_SESSIONS", "50")

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 60*time.Second, cfg.TextGen.Timeout)
	assert.Equal(t, 50, cfg.MaxSessions)
}
