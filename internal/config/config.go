// Package config handles application configuration and environment loading.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// insecureDevSecret is the fallback JWT secret outside production.
const insecureDevSecret = "dev-secret-change-in-production"

// ScoringConfig holds the configurable pieces of set validation.
type ScoringConfig struct {
	GamesToWin        int // games that win a set (default 6)
	WinBy             int // required game margin outside a tiebreak (default 2)
	TiebreakMinPoints int // minimum points for the tiebreak winner (default 7)
	TiebreakWinBy     int // required tiebreak point margin; 0 disables (default 2)
}

// Config holds the configuration for the HTTP API and SQLite storage.
type Config struct {
	DBPath     string // path to the SQLite file
	ListenAddr string // HTTP listen address (default ":8080")
	LogLevel   string // log level: debug, info, warn, error (default "info")
	Env        string // environment: "development" (default) or "production"

	// Session tokens
	JWTSecret string        // HS256 signing secret
	TokenTTL  time.Duration // session token lifetime (default 12h)

	// Rate limiting
	RateLimitRPS   float64 // sustained requests per second (default 100)
	RateLimitBurst int     // burst capacity (default 200)

	// CORS
	CORSAllowedOrigins []string // allowed origins for CORS (default: ["*"])

	// CapabilityMapPath optionally points at a YAML file overriding the
	// capability→minimum-role map.
	CapabilityMapPath string

	// Scoring holds the set-validation rule configuration.
	Scoring ScoringConfig

	// Warnings collected while loading; logged once at startup.
	Warnings []string
}

// IsProduction returns true when the server is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// LoadFromEnv loads configuration from environment variables, applying
// development defaults. Insecure defaults are fatal in production.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		DBPath:            os.Getenv("DB_PATH"),
		ListenAddr:        os.Getenv("LISTEN_ADDR"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		Env:               os.Getenv("ENV"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		CapabilityMapPath: os.Getenv("CAPABILITY_MAP_PATH"),
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", v, err)
		}
		cfg.TokenTTL = d
	}

	// Rate limiting
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = f
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitBurst = n
		}
	}

	// CORS
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORSAllowedOrigins = origins
	}

	// Scoring rules
	cfg.Scoring = ScoringConfig{
		GamesToWin:        parseIntEnvDefault("SCORING_GAMES_TO_WIN", 6),
		WinBy:             parseIntEnvDefault("SCORING_WIN_BY", 2),
		TiebreakMinPoints: parseIntEnvDefault("SCORING_TIEBREAK_MIN_POINTS", 7),
		TiebreakWinBy:     parseIntEnvDefault("SCORING_TIEBREAK_WIN_BY", 2),
	}

	// Defaults
	if cfg.DBPath == "" {
		cfg.DBPath = "courtside.sqlite"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 12 * time.Hour
	}
	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS = 100
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst = 200
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = insecureDevSecret
		cfg.Warnings = append(cfg.Warnings, "JWT_SECRET not set — using insecure default. Set JWT_SECRET in production!")
	}

	// Production mode: insecure defaults are fatal errors.
	if cfg.IsProduction() {
		if cfg.JWTSecret == insecureDevSecret {
			return nil, fmt.Errorf("JWT_SECRET must be set in production (ENV=production)")
		}
		if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
			return nil, fmt.Errorf("CORS wildcard (*) is not allowed in production (ENV=production)")
		}
	}

	return cfg, nil
}

func parseIntEnvDefault(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}
