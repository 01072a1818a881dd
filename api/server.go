/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. httplog:    Structured request logging through slog
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for the dashboard frontend

ROUTE GROUPS:
  /api/runs/*      Run processing, history, exports
  /api/settings    Effective rule set
  /healthz         Liveness probe

SECURITY NOTE:
  No authentication middleware. The service is deployed on an internal
  network behind the site proxy.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/runs", func(r chi.Router) {
			r.Post("/", h.ProcessRun)
			r.Get("/", h.ListRuns)
			r.Get("/{id}", h.GetRun)

			r.Route("/{id}/export", func(r chi.Router) {
				r.Get("/reconciliation.csv", h.ExportReconciliationCSV)
				r.Get("/audit.csv", h.ExportAuditCSV)
				r.Get("/no-shows.csv", h.ExportNoShowCSV)
				r.Get("/vacation.csv", h.ExportVacationCSV)
				r.Get("/banked-holiday.csv", h.ExportBankedHolidayCSV)
				r.Get("/site-split.xlsx", h.ExportSiteSplitXLSX)
			})
		})

		r.Get("/settings", h.GetSettings)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
