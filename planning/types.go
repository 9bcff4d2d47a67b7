/*
Package planning provides the core merchandise planning matrix engine.

PURPOSE:
  This package contains the types and algorithms that turn a sparse
  collection of weekly sales facts into a dense, editable planning grid.
  One row per (store, SKU) pair, one column quadruple per known week
  (Sales Units, Sales $, GM $, GM %), weeks grouped into month bands for
  column headers.

KEY CONCEPTS IN THIS FILE (types.go):
  - SalesFact: One recorded weekly unit count for a store/SKU pair
  - WeekID: "W01".."W52" style week identifier, ordered numerically
  - MonthBand: A group of (nominally 4) consecutive weeks under one header
  - StoreRecord/SkuRecord: Read-only master reference data
  - MatrixRow/CellMetrics: The derived grid, recomputed on every read

DESIGN PRINCIPLES:
  1. Single source of truth: the fact store owns units; every dollar and
     percent figure is derived on demand and never persisted
  2. Precision: Uses decimal.Decimal for all money math
  3. Density from sparsity: a missing fact is zero units, never an error

SEE ALSO:
  - week.go: Week discovery, sorting, and month banding
  - matrix.go: Row/column projection
  - metrics.go: Sales $, GM $, GM % derivation and margin classification
  - reconcile.go: Applying cell edits back to the fact store
*/
package planning

import (
	"math"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SALES FACT - The only persisted planning entity
// =============================================================================

// SalesFact is one recorded weekly unit count for a specific store and SKU.
// Uniquely identified by (StoreCode, SkuCode, Week); the fact store holds at
// most one fact per key. Absence of a fact means zero units.
type SalesFact struct {
	StoreCode string
	SkuCode   string
	Week      WeekID
	Units     float64
}

// Key returns the cell key identifying this fact.
func (f SalesFact) Key() CellKey {
	return CellKey{StoreCode: f.StoreCode, SkuCode: f.SkuCode, Week: f.Week}
}

// Validate reports whether the fact is storable. Units must be a real
// number; negative and fractional values are legitimate corrections.
// Every FactStore implementation enforces this on Upsert so a NaN or
// infinite unit count can never reach metric derivation.
func (f SalesFact) Validate() error {
	if math.IsNaN(f.Units) || math.IsInf(f.Units, 0) {
		return ErrInvalidUnits
	}
	return nil
}

// CellKey identifies a single editable cell in the planning matrix.
type CellKey struct {
	StoreCode string
	SkuCode   string
	Week      WeekID
}

// =============================================================================
// MASTER DATA - Read-only reference records supplied by collaborators
// =============================================================================

// StoreRecord is a store master record. The engine never mutates it.
type StoreRecord struct {
	Code  string
	Name  string
	City  string
	State string
}

// SkuRecord is a SKU master record carrying the pricing used for metric
// derivation. Price and Cost are per-unit dollar amounts.
type SkuRecord struct {
	Code       string
	Name       string
	Category   string
	Department string
	Price      decimal.Decimal
	Cost       decimal.Decimal
}

// =============================================================================
// MONTH BAND - Column header grouping
// =============================================================================

// MonthBand groups consecutive weeks under a calendar-month label.
// Every known week belongs to exactly one band; bands are ordered by their
// first week's ordinal.
type MonthBand struct {
	Label string
	Weeks []WeekID
}

// =============================================================================
// MATRIX ROW - The dense, derived view of one store/SKU pair
// =============================================================================

// CellMetrics holds the derived figures for one (row, week) cell.
// Recomputed from the fact store and SKU pricing on every projection.
type CellMetrics struct {
	Units        float64
	SalesDollars decimal.Decimal
	GMDollars    decimal.Decimal
	GMPercent    decimal.Decimal
	Margin       MarginBand
}

// MatrixRow is the fully populated view of one store/SKU pair across all
// known weeks. Derived, never persisted.
type MatrixRow struct {
	StoreCode string
	SkuCode   string
	PerWeek   map[WeekID]CellMetrics
}
