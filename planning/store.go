/*
store.go - Persistence interface for sales facts

PURPOSE:
  Defines the interface between the planning engine and whatever backs
  the sparse fact collection. The engine only ever needs point lookup,
  keyed upsert, and bulk iteration; any persistence technology (in-memory
  map, SQLite, remote service) can implement it without touching the core.

UPSERT SEMANTICS:
  At most one fact exists per (store, sku, week) key. Upsert inserts or
  replaces; there is no Delete. Absence of a fact IS the zero value, so
  nothing ever needs removing. Implementations reject non-finite unit
  counts (SalesFact.Validate) so derivation never sees NaN or Inf.

CONCURRENCY CONTRACT:
  Implementations must serialize upserts to the same key (last accepted
  write wins) and allow concurrent reads. Reads are pure derivations with
  no mutation, so different keys never contend.

IMPLEMENTATIONS:
  - planning/store/memory.go: In-memory for testing/dev
  - store/sqlite/sqlite.go: Production SQLite

SEE ALSO:
  - reconcile.go: The only writer
  - matrix.go: The only reader
*/
package planning

import "context"

// FactStore handles persistence of weekly sales facts.
type FactStore interface {
	// Upsert inserts or replaces the fact for its (store, sku, week) key.
	// Facts failing SalesFact.Validate are rejected with ErrInvalidUnits.
	Upsert(ctx context.Context, fact SalesFact) error

	// Get returns the unit count for a cell. Absence is zero, never an error.
	Get(ctx context.Context, storeCode, skuCode string, week WeekID) (float64, error)

	// All returns every fact for bulk iteration (week discovery, projection).
	// Order is not significant.
	All(ctx context.Context) ([]SalesFact, error)
}
