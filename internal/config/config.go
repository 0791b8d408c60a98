package config

import (
	"log/slog"
	"os"
	"strings"
)

// Config holds all configuration values.
type Config struct {
	// Catalog file; empty uses the built-in nine pairs
	CatalogFile string

	// Discard activations of cells already at max scale
	LockAtMax bool

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		CatalogFile: getEnv("IMAGEGRID_CATALOG", ""),
		LockAtMax:   parseBool(getEnv("IMAGEGRID_LOCK_AT_MAX", "false")),

		LogFile:  getEnv("IMAGEGRID_LOG_FILE", "/tmp/imagegrid.log"),
		LogLevel: parseLogLevel(getEnv("IMAGEGRID_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
