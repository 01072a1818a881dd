/*
handlers.go - HTTP API handlers for the attendance reconciliation service

PURPOSE:
  Exposes the reconciliation engine via REST API. Handles multipart upload
  parsing, JSON serialization, and delegates to the engine and exporters.

ENDPOINTS:
  Runs:
    POST   /api/runs                     Upload a file batch, run reconciliation
    GET    /api/runs                     Run history (summaries, newest first)
    GET    /api/runs/{id}                One run with its full result

  Exports (from a persisted run):
    GET    /api/runs/{id}/export/reconciliation.csv
    GET    /api/runs/{id}/export/audit.csv
    GET    /api/runs/{id}/export/no-shows.csv
    GET    /api/runs/{id}/export/vacation.csv
    GET    /api/runs/{id}/export/banked-holiday.csv
    GET    /api/runs/{id}/export/site-split.xlsx

  Settings:
    GET    /api/settings                 Effective rule set

UPLOAD CONTRACT:
  Multipart form fields: date (required), shift, exclude_new_hires,
  filter_by_corner. File parts: roster (required), mytime (required),
  vacation, swap_out, swap_in, vet (optional). CSV and XLSX both accepted;
  the MyTime part has its banner row skipped automatically.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Missing input, unresolvable column, invalid date
  - 404: Run not found
  - 500: Storage or render failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phoenix/attendance-engine/export"
	"github.com/phoenix/attendance-engine/ingest"
	"github.com/phoenix/attendance-engine/reconcile"
	"github.com/phoenix/attendance-engine/store/sqlite"
)

// maxUploadBytes caps one upload batch. The largest observed roster export
// is under 10 MB; 64 MB leaves room for xlsx overhead across six files.
const maxUploadBytes = 64 << 20

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Settings reconcile.Settings
	Logger   *slog.Logger
}

// NewHandler creates a new handler.
func NewHandler(store *sqlite.Store, settings reconcile.Settings, logger *slog.Logger) *Handler {
	return &Handler{Store: store, Settings: settings, Logger: logger}
}

// =============================================================================
// RUN ENDPOINTS
// =============================================================================

// uploadParts maps multipart part names to ingest sources. MyTime is the
// only part with a parsing quirk.
var uploadParts = []struct {
	part     string
	required bool
	skipRow  bool
}{
	{part: "roster", required: true},
	{part: "mytime", required: true, skipRow: true},
	{part: "vacation"},
	{part: "swap_out"},
	{part: "swap_in"},
	{part: "vet"},
}

// ProcessRun accepts the upload batch, runs the reconciliation, persists the
// result, and returns it.
func (h *Handler) ProcessRun(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", err)
		return
	}

	files := make(map[string]ingest.File)
	for _, p := range uploadParts {
		f, err := formFile(r, p.part)
		if err != nil {
			if p.required {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("missing required file %q", p.part), nil)
				return
			}
			continue
		}
		f.SkipFirstDataRow = p.skipRow
		files[p.part] = f
	}

	decoded, err := ingest.DecodeAll(files)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to decode upload", err)
		return
	}

	runCtx := reconcile.RunContext{
		Settings:        h.Settings,
		Day:             r.FormValue("date"),
		Shift:           r.FormValue("shift"),
		ExcludeNewHires: formBool(r, "exclude_new_hires"),
		FilterByCorner:  formBool(r, "filter_by_corner"),
		Sources: reconcile.Sources{
			Roster:        decoded["roster"],
			Timeclock:     decoded["mytime"],
			Leave:         decoded["vacation"],
			SwapOut:       decoded["swap_out"],
			SwapIn:        decoded["swap_in"],
			Opportunities: decoded["vet"],
		},
		Logger: h.Logger,
	}
	if runCtx.Shift == "" {
		runCtx.Shift = "Day"
	}

	result, err := reconcile.Run(runCtx)
	if err != nil {
		writeError(w, statusForRunError(err), "reconciliation failed", err)
		return
	}

	runID, err := h.Store.SaveRun(r.Context(), result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist run", err)
		return
	}

	writeJSON(w, http.StatusOK, ProcessResponse{RunID: runID, Result: result})
}

// ListRuns returns run summaries, newest first.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := h.Store.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list runs", err)
		return
	}
	if runs == nil {
		runs = []sqlite.Run{}
	}
	writeJSON(w, http.StatusOK, RunListResponse{Runs: runs})
}

// GetRun returns one run with its full result.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// =============================================================================
// EXPORT ENDPOINTS
// =============================================================================

func (h *Handler) ExportReconciliationCSV(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}
	data, err := export.ReconciliationCSV(run.Result)
	h.writeAttachment(w, data, err, "reconciliation_"+run.Day+".csv", "text/csv")
}

func (h *Handler) ExportAuditCSV(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}
	data, err := export.AuditCSV(run.Result.Audit)
	h.writeAttachment(w, data, err, "audit_"+run.Day+".csv", "text/csv")
}

func (h *Handler) ExportNoShowCSV(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}
	data, err := export.NoShowCSV(run.Result.NoShows)
	h.writeAttachment(w, data, err, "no_shows_"+run.Day+".csv", "text/csv")
}

func (h *Handler) ExportVacationCSV(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}
	data, err := export.IDListCSV(run.Result.VacationIDs)
	h.writeAttachment(w, data, err, "vacation_excluded_"+run.Day+".csv", "text/csv")
}

func (h *Handler) ExportBankedHolidayCSV(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}
	data, err := export.IDListCSV(run.Result.BankedHolidayIDs)
	h.writeAttachment(w, data, err, "banked_holiday_excluded_"+run.Day+".csv", "text/csv")
}

func (h *Handler) ExportSiteSplitXLSX(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}
	data, err := export.SiteSplitWorkbook(run.Result)
	h.writeAttachment(w, data, err, "site_split_"+run.Day+".xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

// =============================================================================
// SETTINGS ENDPOINT
// =============================================================================

// GetSettings returns the effective rule set, so the frontend can display
// alias lists and thresholds without duplicating them.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Settings)
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) loadRun(w http.ResponseWriter, r *http.Request) (*sqlite.Run, bool) {
	id := chi.URLParam(r, "id")
	run, err := h.Store.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load run", err)
		return nil, false
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "run not found", nil)
		return nil, false
	}
	return run, true
}

func (h *Handler) writeAttachment(w http.ResponseWriter, data []byte, err error, filename, contentType string) {
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render export", err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func formFile(r *http.Request, part string) (ingest.File, error) {
	file, header, err := r.FormFile(part)
	if err != nil {
		return ingest.File{}, err
	}
	defer file.Close()

	data, err := readAll(file)
	if err != nil {
		return ingest.File{}, err
	}
	return ingest.File{Name: header.Filename, Data: data}, nil
}

func readAll(f multipart.File) ([]byte, error) {
	return io.ReadAll(f)
}

func formBool(r *http.Request, field string) bool {
	v, _ := strconv.ParseBool(r.FormValue(field))
	return v
}

// statusForRunError maps engine failures to HTTP statuses: everything the
// engine reports before producing output is the caller's data problem.
func statusForRunError(err error) int {
	switch {
	case errors.Is(err, reconcile.ErrMissingInput),
		errors.Is(err, reconcile.ErrMissingColumn),
		errors.Is(err, reconcile.ErrInvalidDay):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
