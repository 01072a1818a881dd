/*
config.go - Process configuration and settings.json loading

PURPOSE:
  Two layers of configuration with different audiences:

    App      - deployment knobs (port, log level, database path), read from
               the environment with .env support for local development.
    Settings - the site rule set consumed by the engine, read from an
               optional settings.json that overlays the built-in defaults.

  A missing settings.json is not an error: the defaults describe a working
  site and the overlay exists for per-site tuning.
*/
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/phoenix/attendance-engine/reconcile"
)

// App holds process-level configuration.
type App struct {
	Port         int
	LogLevel     slog.Level
	DatabasePath string
	SettingsPath string
}

// LoadApp reads process configuration from the environment, loading a .env
// file first when one exists.
func LoadApp() (App, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return App{}, fmt.Errorf("loading .env: %w", err)
	}

	port, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return App{}, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	return App{
		Port:         port,
		LogLevel:     parseLevel(getEnv("LOG_LEVEL", "info")),
		DatabasePath: getEnv("DATABASE_PATH", "attendance.db"),
		SettingsPath: getEnv("SETTINGS_PATH", "settings.json"),
	}, nil
}

// LoadSettings returns the built-in defaults overlaid with the JSON file at
// path, when it exists. A missing file silently yields the defaults; a file
// that exists but fails to parse is an error, because half-applied overrides
// are worse than none.
func LoadSettings(path string, logger *slog.Logger) (reconcile.Settings, error) {
	s := Defaults()

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("no settings file, using defaults", "path", path)
		return s, nil
	}
	if err != nil {
		return reconcile.Settings{}, fmt.Errorf("reading settings: %w", err)
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return reconcile.Settings{}, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	logger.Info("settings loaded", "path", path)
	return s, nil
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
