/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. The reconcile package's
  result types already carry json tags and are exposed directly; the types
  here wrap them with API-level metadata (run ids, error envelopes) so the
  HTTP contract can evolve without touching the engine.

SEE ALSO:
  - handlers.go: Uses these types
  - reconcile/run.go: The Result payload
*/
package api

import (
	"github.com/phoenix/attendance-engine/reconcile"
	"github.com/phoenix/attendance-engine/store/sqlite"
)

// ProcessResponse is returned by the process endpoint: the persisted run id
// plus the full result.
type ProcessResponse struct {
	RunID  string            `json:"run_id"`
	Result *reconcile.Result `json:"result"`
}

// RunListResponse wraps the run history list.
type RunListResponse struct {
	Runs []sqlite.Run `json:"runs"`
}

// ErrorResponse is the error envelope for all non-2xx responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
