/*
errors.go - Centralized error types for the planning engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers distinguish three failure families:

  1. Validation errors - malformed edit input, rejected before any state
     change (ErrInvalidUnits, InvalidWeekError)
  2. Store errors - the backing fact store failed to persist; the prior
     value remains authoritative (StoreError)
  3. Reference gaps - a fact names a store/SKU absent from master data;
     never fatal, the projector omits and reports (ReferenceGapError)

USAGE:
  if errors.Is(err, planning.ErrInvalidUnits) { ... }
  var se *planning.StoreError
  if errors.As(err, &se) { ... }

SEE ALSO:
  - reconcile.go: Produces validation and store errors
  - matrix.go: Produces reference gap reports
*/
package planning

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidUnits is returned when an edit carries a non-finite unit
	// value (NaN or infinity). Negative and fractional values are accepted.
	ErrInvalidUnits = errors.New("invalid units: value must be a finite number")

	// ErrInvalidWeek is returned when a week identifier is malformed.
	ErrInvalidWeek = errors.New("invalid week identifier")

	// ErrEditInFlight is returned when a cell already has an edit pending.
	// Edits to other cells proceed independently.
	ErrEditInFlight = errors.New("edit already in flight for cell")

	// ErrStorePersist is returned when the backing fact store failed to
	// persist an accepted edit. No partial write occurs.
	ErrStorePersist = errors.New("fact store failed to persist")

	// ErrStoreNotFound is returned when a referenced store master record
	// does not exist.
	ErrStoreNotFound = errors.New("store not found")

	// ErrSkuNotFound is returned when a referenced SKU master record
	// does not exist.
	ErrSkuNotFound = errors.New("sku not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidWeekError reports a malformed week identifier.
type InvalidWeekError struct {
	Input string
}

func (e *InvalidWeekError) Error() string {
	return fmt.Sprintf("invalid week identifier %q (want W01..W52 form)", e.Input)
}

func (e *InvalidWeekError) Unwrap() error { return ErrInvalidWeek }

// StoreError reports a persistence failure for a specific cell.
type StoreError struct {
	Key CellKey
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("persist %s/%s %s: %v", e.Key.StoreCode, e.Key.SkuCode, e.Key.Week, e.Err)
}

func (e *StoreError) Unwrap() error { return ErrStorePersist }

// ReferenceGapError reports a fact whose store or SKU code is absent from
// the current master data. The projector omits the pair rather than failing.
type ReferenceGapError struct {
	StoreCode string
	SkuCode   string
}

func (e *ReferenceGapError) Error() string {
	return fmt.Sprintf("fact references unknown store/sku pair %s/%s", e.StoreCode, e.SkuCode)
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidUnits) ||
		errors.Is(err, ErrInvalidWeek) ||
		errors.Is(err, ErrEditInFlight)
}

// IsNotFound returns true if the error indicates a missing master record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrStoreNotFound) ||
		errors.Is(err, ErrSkuNotFound)
}
