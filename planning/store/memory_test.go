package store_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/warp/planning-engine/planning"
	"github.com/warp/planning-engine/planning/store"
)

func TestMemoryUpsert_InsertThenReplace(t *testing.T) {
	// GIVEN: An empty store
	ctx := context.Background()
	m := store.NewMemory()

	// WHEN: Writing the same key twice
	if err := m.Upsert(ctx, planning.SalesFact{StoreCode: "ST01", SkuCode: "SK01", Week: "W01", Units: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Upsert(ctx, planning.SalesFact{StoreCode: "ST01", SkuCode: "SK01", Week: "W01", Units: 42}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// THEN: One fact, last write wins
	if m.Len() != 1 {
		t.Errorf("expected 1 fact, got %d", m.Len())
	}
	units, err := m.Get(ctx, "ST01", "SK01", "W01")
	if err != nil || units != 42 {
		t.Errorf("expected 42 units, got %v (err %v)", units, err)
	}
}

func TestMemoryGet_AbsenceIsZeroNotError(t *testing.T) {
	units, err := store.NewMemory().Get(context.Background(), "ST99", "SK99", "W99")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if units != 0 {
		t.Errorf("expected 0 units for an absent fact, got %v", units)
	}
}

func TestMemoryUpsert_RejectsNonFiniteUnits(t *testing.T) {
	// GIVEN: An empty store
	ctx := context.Background()
	m := store.NewMemory()

	// WHEN/THEN: NaN and infinities never make it into the store
	for _, units := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := m.Upsert(ctx, planning.SalesFact{StoreCode: "ST01", SkuCode: "SK01", Week: "W01", Units: units})
		if !errors.Is(err, planning.ErrInvalidUnits) {
			t.Errorf("units %v: expected ErrInvalidUnits, got %v", units, err)
		}
	}
	if m.Len() != 0 {
		t.Errorf("store must stay empty after rejected facts, has %d", m.Len())
	}

	// AND: Projection over the store still works; no poisoned fact exists
	stores := []planning.StoreRecord{{Code: "ST01", Name: "Store ST01"}}
	skus := []planning.SkuRecord{{Code: "SK01", Name: "Sku SK01"}}
	matrix, err := planning.NewProjector().ProjectMatrix(ctx, stores, skus, m)
	if err != nil {
		t.Fatalf("projection after rejected facts: %v", err)
	}
	if len(matrix.Rows) != 1 || len(matrix.Weeks) != 0 {
		t.Errorf("expected 1 zero-week row, got %d rows / %d weeks",
			len(matrix.Rows), len(matrix.Weeks))
	}
}

func TestMemoryUpsert_AcceptsNegativeAndFractionalUnits(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	if err := m.Upsert(ctx, planning.SalesFact{StoreCode: "ST01", SkuCode: "SK01", Week: "W01", Units: -4}); err != nil {
		t.Errorf("negative units should be storable, got %v", err)
	}
	if err := m.Upsert(ctx, planning.SalesFact{StoreCode: "ST01", SkuCode: "SK01", Week: "W02", Units: 2.5}); err != nil {
		t.Errorf("fractional units should be storable, got %v", err)
	}
}
