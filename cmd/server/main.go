/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the attendance reconciliation server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment configuration (.env supported)
  2. Load settings (built-in defaults overlaid with settings.json)
  3. Initialize SQLite run-history store
  4. Create API handler with dependencies
  5. Start server with graceful shutdown

CONFIGURATION (environment):
  APP_PORT       HTTP server port (default: 8080)
  LOG_LEVEL      slog level: debug, info, warn, error (default: info)
  DATABASE_PATH  SQLite database path (default: attendance.db)
                 Use ":memory:" for in-memory database
  SETTINGS_PATH  Site rule overrides (default: settings.json)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment and settings loading
  - store/sqlite/sqlite.go: Run history store
*/
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phoenix/attendance-engine/api"
	"github.com/phoenix/attendance-engine/config"
	"github.com/phoenix/attendance-engine/store/sqlite"
)

func main() {
	app, err := config.LoadApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: app.LogLevel}))
	slog.SetDefault(logger)

	settings, err := config.LoadSettings(app.SettingsPath, logger)
	if err != nil {
		logger.Error("failed to load settings", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(app.DatabasePath)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	handler := api.NewHandler(store, settings, logger)
	router := api.NewRouter(handler, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
