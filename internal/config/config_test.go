package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable LoadFromEnv reads so test runs do not
// inherit the host environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DB_PATH", "LISTEN_ADDR", "LOG_LEVEL", "ENV", "JWT_SECRET",
		"CAPABILITY_MAP_PATH", "TOKEN_TTL", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
		"CORS_ALLOWED_ORIGINS", "SCORING_GAMES_TO_WIN", "SCORING_WIN_BY",
		"SCORING_TIEBREAK_MIN_POINTS", "SCORING_TIEBREAK_WIN_BY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "courtside.sqlite", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.Equal(t, float64(100), cfg.RateLimitRPS)
	assert.Equal(t, 200, cfg.RateLimitBurst)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.IsProduction())

	assert.Equal(t, 6, cfg.Scoring.GamesToWin)
	assert.Equal(t, 2, cfg.Scoring.WinBy)
	assert.Equal(t, 7, cfg.Scoring.TiebreakMinPoints)
	assert.Equal(t, 2, cfg.Scoring.TiebreakWinBy)

	// The dev-secret fallback gets flagged for the startup log.
	require.NotEmpty(t, cfg.Warnings)
	assert.Contains(t, cfg.Warnings[0], "JWT_SECRET")
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PATH", "/tmp/court.db")
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("JWT_SECRET", "actual-secret")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "10")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SCORING_GAMES_TO_WIN", "4")
	t.Setenv("SCORING_TIEBREAK_WIN_BY", "0")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/court.db", cfg.DBPath)
	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 4, cfg.Scoring.GamesToWin)
	assert.Zero(t, cfg.Scoring.TiebreakWinBy)
	assert.Empty(t, cfg.Warnings)
}

func TestLoadFromEnv_BadTokenTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_TTL", "tomorrow")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_TTL")
}

func TestLoadFromEnv_ProductionGuards(t *testing.T) {
	t.Run("missing secret is fatal", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENV", "production")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example")

		_, err := LoadFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("cors wildcard is fatal", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENV", "production")
		t.Setenv("JWT_SECRET", "actual-secret")

		_, err := LoadFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CORS")
	})

	t.Run("fully configured", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENV", "production")
		t.Setenv("JWT_SECRET", "actual-secret")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example")

		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})
}

func TestScoringEnv_BadValueFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCORING_GAMES_TO_WIN", "six")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Scoring.GamesToWin)
}
