// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Directory backends selectable with DIRECTORY_BACKEND.
const (
	DirectoryHTTP      = "http"
	DirectoryTypesense = "typesense"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// RedisURL locates the session store. Defaults to redis://localhost:6379/0.
	RedisURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// DirectoryBackend is DirectoryHTTP (default) or DirectoryTypesense.
	DirectoryBackend string
	// DirectoryURL is the base URL of the directory search service.
	// Required when DirectoryBackend is DirectoryHTTP.
	DirectoryURL string

	TypesenseURL        string
	TypesenseAPIKey     string
	TypesenseCollection string

	// AccountURL is the base URL of the account subsystem. Required.
	AccountURL string

	// DefaultCountry decides when a hometown state is shown. Defaults to
	// "United States".
	DefaultCountry string

	// Timezone is the IANA zone "today" is read in. Defaults to "UTC".
	Timezone string

	SessionTTL     time.Duration
	SearchCacheTTL time.Duration

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB; 0 disables.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory is read first when one exists; it
// never overrides variables already set in the environment.
// Returns an error listing any required variables that are not set and any
// values that fail to parse.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config.Load: read .env: %w", err)
	}

	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379/0"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		CORSOrigins:         splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		DirectoryBackend:    strings.ToLower(getEnv("DIRECTORY_BACKEND", DirectoryHTTP)),
		DirectoryURL:        os.Getenv("DIRECTORY_URL"),
		TypesenseURL:        os.Getenv("TYPESENSE_URL"),
		TypesenseAPIKey:     os.Getenv("TYPESENSE_API_KEY"),
		TypesenseCollection: getEnv("TYPESENSE_COLLECTION", "profiles"),
		AccountURL:          os.Getenv("ACCOUNT_URL"),
		DefaultCountry:      getEnv("DEFAULT_COUNTRY", "United States"),
		Timezone:            getEnv("TIMEZONE", "UTC"),
	}

	var missing, invalid []string

	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.AccountURL == "" {
		missing = append(missing, "ACCOUNT_URL")
	}
	switch cfg.DirectoryBackend {
	case DirectoryHTTP:
		if cfg.DirectoryURL == "" {
			missing = append(missing, "DIRECTORY_URL")
		}
	case DirectoryTypesense:
		if cfg.TypesenseURL == "" {
			missing = append(missing, "TYPESENSE_URL")
		}
		if cfg.TypesenseAPIKey == "" {
			missing = append(missing, "TYPESENSE_API_KEY")
		}
	default:
		invalid = append(invalid, "DIRECTORY_BACKEND")
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		invalid = append(invalid, "TIMEZONE")
	}

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 2*time.Hour); err != nil || cfg.SessionTTL <= 0 {
		invalid = append(invalid, "SESSION_TTL")
	}
	if cfg.SearchCacheTTL, err = getDuration("SEARCH_CACHE_TTL", 30*time.Second); err != nil || cfg.SearchCacheTTL < 0 {
		invalid = append(invalid, "SEARCH_CACHE_TTL")
	}
	if cfg.MaxBodyBytes, err = getInt64("MAX_BODY_BYTES", 1<<20); err != nil || cfg.MaxBodyBytes < 0 {
		invalid = append(invalid, "MAX_BODY_BYTES")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// Location returns the configured time zone. Load has already validated it.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return time.ParseDuration(v)
}

func getInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
