package sqlite_test

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/planning-engine/planning"
	"github.com/warp/planning-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// =============================================================================
// FACT STORE TESTS
// =============================================================================

func TestFactUpsert_InsertThenReplace(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	fact := planning.SalesFact{StoreCode: "ST01", SkuCode: "SK01", Week: "W01", Units: 5}
	require.NoError(t, store.Upsert(ctx, fact))

	units, err := store.Get(ctx, "ST01", "SK01", "W01")
	require.NoError(t, err)
	assert.Equal(t, 5.0, units)

	// Same key again: replace, never duplicate
	fact.Units = 42
	require.NoError(t, store.Upsert(ctx, fact))

	units, err = store.Get(ctx, "ST01", "SK01", "W01")
	require.NoError(t, err)
	assert.Equal(t, 42.0, units)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFactUpsert_RejectsNonFiniteUnits(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, units := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := store.Upsert(ctx, planning.SalesFact{StoreCode: "ST01", SkuCode: "SK01", Week: "W01", Units: units})
		assert.ErrorIs(t, err, planning.ErrInvalidUnits, "units %v", units)
	}

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "rejected facts must not be persisted")
}

func TestFactGet_AbsenceIsZeroNotError(t *testing.T) {
	store := newTestStore(t)

	units, err := store.Get(context.Background(), "ST99", "SK99", "W99")
	require.NoError(t, err)
	assert.Equal(t, 0.0, units)
}

func TestFactAll_ReturnsEveryFact(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	facts := []planning.SalesFact{
		{StoreCode: "ST01", SkuCode: "SK01", Week: "W01", Units: 5},
		{StoreCode: "ST01", SkuCode: "SK01", Week: "W02", Units: -3},
		{StoreCode: "ST02", SkuCode: "SK02", Week: "W10", Units: 2.5},
	}
	for _, f := range facts {
		require.NoError(t, store.Upsert(ctx, f))
	}

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byKey := make(map[planning.CellKey]float64)
	for _, f := range all {
		byKey[f.Key()] = f.Units
	}
	assert.Equal(t, -3.0, byKey[planning.CellKey{StoreCode: "ST01", SkuCode: "SK01", Week: "W02"}])
	assert.Equal(t, 2.5, byKey[planning.CellKey{StoreCode: "ST02", SkuCode: "SK02", Week: "W10"}])
}

// =============================================================================
// MASTER DATA TESTS
// =============================================================================

func TestStoreMaster_CRUDAndOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveStore(ctx, planning.StoreRecord{Code: "ST01", Name: "First", City: "Denver", State: "CO"}))
	require.NoError(t, store.SaveStore(ctx, planning.StoreRecord{Code: "ST02", Name: "Second", City: "Dallas", State: "TX"}))

	stores, err := store.ListStores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "ST01", stores[0].Code, "insertion order preserved")

	// Update keeps position
	require.NoError(t, store.SaveStore(ctx, planning.StoreRecord{Code: "ST01", Name: "Renamed", City: "Denver", State: "CO"}))
	got, err := store.GetStore(ctx, "ST01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Renamed", got.Name)

	// Reorder
	require.NoError(t, store.ReorderStores(ctx, []string{"ST02", "ST01"}))
	stores, err = store.ListStores(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ST02", stores[0].Code)

	// Delete
	require.NoError(t, store.DeleteStore(ctx, "ST01"))
	assert.ErrorIs(t, store.DeleteStore(ctx, "ST01"), planning.ErrStoreNotFound)

	missing, err := store.GetStore(ctx, "ST01")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSkuMaster_PricingRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sku := planning.SkuRecord{
		Code:       "SK00158",
		Name:       "Crew Neck Merino Wool Sweater",
		Category:   "Tops",
		Department: "Men's Apparel",
		Price:      mustDec(t, "114.99"),
		Cost:       mustDec(t, "18.28"),
	}
	require.NoError(t, store.SaveSku(ctx, sku))

	got, err := store.GetSku(ctx, "SK00158")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Price.Equal(mustDec(t, "114.99")), "price survives exactly, got %v", got.Price)
	assert.True(t, got.Cost.Equal(mustDec(t, "18.28")), "cost survives exactly, got %v", got.Cost)

	skus, err := store.ListSkus(ctx)
	require.NoError(t, err)
	require.Len(t, skus, 1)
	assert.Equal(t, "SK00158", skus[0].Code)

	assert.ErrorIs(t, store.DeleteSku(ctx, "SK-GONE"), planning.ErrSkuNotFound)
}

func TestReset_WipesEverything(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveStore(ctx, planning.StoreRecord{Code: "ST01", Name: "First"}))
	require.NoError(t, store.SaveSku(ctx, planning.SkuRecord{Code: "SK01", Name: "Sku", Price: mustDec(t, "10"), Cost: mustDec(t, "4")}))
	require.NoError(t, store.Upsert(ctx, planning.SalesFact{StoreCode: "ST01", SkuCode: "SK01", Week: "W01", Units: 5}))

	require.NoError(t, store.Reset(ctx))

	stores, err := store.ListStores(ctx)
	require.NoError(t, err)
	assert.Empty(t, stores)
	facts, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, facts)
}
