/*
reconcile.go - Applying cell edits back to the fact store

PURPOSE:
  The single write entry point. Accepts one cell edit at a time, validates
  it, and upserts it into the fact store so the next projection reflects
  the new value with all four derived metrics recomputed for exactly that
  cell.

STATE MACHINE:
  Each cell key is either Idle or Pending. An edit transitions its key to
  Pending before the upsert and back to Idle after, whether the upsert
  succeeded or failed. A second edit for a key that is still Pending is
  rejected with ErrEditInFlight; edits to other cells proceed
  independently.

FAILURE SEMANTICS:
  - Invalid input (malformed week, non-finite units) is rejected before
    any state change and surfaced as a validation error.
  - A store failure is surfaced as a StoreError with the prior value left
    authoritative. At-most-once: no partial writes, no automatic retry.

SEE ALSO:
  - store.go: The FactStore being written to
  - errors.go: ErrInvalidUnits, ErrEditInFlight, StoreError
*/
package planning

import (
	"context"
	"sync"
)

// Reconciler applies single-cell edits to the fact store.
type Reconciler struct {
	facts FactStore

	mu      sync.Mutex
	pending map[CellKey]bool
}

// NewReconciler creates a reconciler writing to the given fact store.
func NewReconciler(facts FactStore) *Reconciler {
	return &Reconciler{
		facts:   facts,
		pending: make(map[CellKey]bool),
	}
}

// SubmitEdit validates and persists a new unit count for one cell.
//
// Returns ErrInvalidUnits / ErrInvalidWeek for rejected input (fact store
// untouched), ErrEditInFlight when the cell already has an outstanding
// edit, or a StoreError when persistence fails. A nil return means the
// next projection will show the new value.
func (r *Reconciler) SubmitEdit(ctx context.Context, storeCode, skuCode string, week string, units float64) error {
	w, err := ParseWeekID(week)
	if err != nil {
		return err
	}
	fact := SalesFact{StoreCode: storeCode, SkuCode: skuCode, Week: w, Units: units}
	if err := fact.Validate(); err != nil {
		return err
	}

	key := fact.Key()

	// Idle -> Pending. Reject while an edit for this key is outstanding.
	r.mu.Lock()
	if r.pending[key] {
		r.mu.Unlock()
		return ErrEditInFlight
	}
	r.pending[key] = true
	r.mu.Unlock()

	upsertErr := r.facts.Upsert(ctx, fact)

	// Pending -> Idle, on success and on failure alike.
	r.mu.Lock()
	delete(r.pending, key)
	r.mu.Unlock()

	if upsertErr != nil {
		return &StoreError{Key: key, Err: upsertErr}
	}
	return nil
}
