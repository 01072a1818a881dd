/*
errors.go - Centralized error types for the reconciliation engine

PURPOSE:
  All fatal error types in one place. A run fails with one of these before
  any output is produced; row-level problems never surface here, they are
  absorbed by the per-stage skip/default policies.

ERROR CATEGORIES:
  1. Missing required input - roster or time-clock file not supplied
  2. Missing required column - a concept (not a literal header) cannot be
     resolved on a supplied file

USAGE:
  if errors.Is(err, reconcile.ErrMissingColumn) {
      var mc *reconcile.MissingColumnError
      errors.As(err, &mc) // mc.Source, mc.Concept
  }
*/
package reconcile

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMissingInput is returned when a required file was not supplied.
	ErrMissingInput = errors.New("required input missing")

	// ErrMissingColumn is returned when a required concept cannot be
	// resolved to any column on a supplied file.
	ErrMissingColumn = errors.New("required column missing")

	// ErrInvalidDay is returned when the selected attendance day does not
	// parse to a calendar date.
	ErrInvalidDay = errors.New("invalid attendance day")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// MissingInputError names the input file a run cannot proceed without.
type MissingInputError struct {
	Source string // e.g. "roster", "timeclock"
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("required input missing: %s", e.Source)
}

func (e *MissingInputError) Unwrap() error { return ErrMissingInput }

// MissingColumnError names the source file and the concept that could not be
// resolved. The concept is a stable name ("worker id", "on-premises marker"),
// never a literal header string, since header aliases vary by site.
type MissingColumnError struct {
	Source  string
	Concept string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s file: no column found for %s", e.Source, e.Concept)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }
