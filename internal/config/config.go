// Package config reads the API's settings from the environment.
//
// Values come from real environment variables first; .env.local and .env in
// the working directory fill in whatever is still unset, so a checked-in
// .env holds defaults and .env.local holds a developer's overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults.
const (
	DefaultPort          = 3000
	DefaultDBPath        = "data/starwars.db"
	DefaultCurrentUserID = 1
	DefaultRateLimit     = 20
	DefaultRateBurst     = 40
)

// Config holds everything cmd/server needs to start.
type Config struct {
	Port int

	// DatabaseURL selects the backend (postgres://, mysql://, sqlite://).
	// When empty the server opens the SQLite file at DBPath.
	DatabaseURL string
	DBPath      string

	CurrentUserID int64

	LogLevel  string
	LogFormat string

	// RateLimit is requests per second per client; 0 disables limiting.
	RateLimit   float64
	RateBurst   int
	CORSOrigins []string
}

// EnvFiles are loaded in order by Load. godotenv never overrides a variable
// that is already set, so earlier files win.
var EnvFiles = []string{".env.local", ".env"}

// Load reads the .env files that exist and then the environment.
func Load() (Config, error) {
	for _, f := range EnvFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, usually os.Getenv.
// Every malformed value is reported, not just the first.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		DatabaseURL: strings.TrimSpace(getenv("DATABASE_URL")),
		DBPath:      stringOr(getenv("DB_PATH"), DefaultDBPath),
		LogLevel:    strings.ToLower(stringOr(getenv("LOG_LEVEL"), "info")),
		LogFormat:   strings.ToLower(stringOr(getenv("LOG_FORMAT"), "text")),
		CORSOrigins: splitList(stringOr(getenv("CORS_ORIGINS"), "*")),
	}

	var errs []error

	port, err := intOr(getenv("PORT"), DefaultPort)
	if err == nil && (port < 1 || port > 65535) {
		err = fmt.Errorf("out of range")
	}
	if err != nil {
		errs = append(errs, fmt.Errorf("PORT: %w", err))
	}
	cfg.Port = port

	userID, err := intOr(getenv("CURRENT_USER_ID"), DefaultCurrentUserID)
	if err == nil && userID < 1 {
		err = fmt.Errorf("must be positive")
	}
	if err != nil {
		errs = append(errs, fmt.Errorf("CURRENT_USER_ID: %w", err))
	}
	cfg.CurrentUserID = int64(userID)

	cfg.RateLimit = DefaultRateLimit
	if v := strings.TrimSpace(getenv("RATE_LIMIT")); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err == nil && rps < 0 {
			err = fmt.Errorf("must not be negative")
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("RATE_LIMIT: %w", err))
		}
		cfg.RateLimit = rps
	}

	burst, err := intOr(getenv("RATE_BURST"), DefaultRateBurst)
	if err != nil {
		errs = append(errs, fmt.Errorf("RATE_BURST: %w", err))
	}
	cfg.RateBurst = burst

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL: unknown level %q", cfg.LogLevel))
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT: unknown format %q", cfg.LogFormat))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DatabaseTarget is what sqlstore.Open should receive: DATABASE_URL when
// set, otherwise the SQLite file path.
func (c Config) DatabaseTarget() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DBPath
}

// EnsureDataDir creates the directory holding the default SQLite file.
// It does nothing when DATABASE_URL points elsewhere.
func (c Config) EnsureDataDir() error {
	if c.DatabaseURL != "" || c.DBPath == ":memory:" {
		return nil
	}
	dir := filepath.Dir(c.DBPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating database directory %s: %w", dir, err)
	}
	return nil
}

func stringOr(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}

func intOr(v string, fallback int) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("not an integer: %q", v)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
