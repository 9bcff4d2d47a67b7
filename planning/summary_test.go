package planning_test

import (
	"context"
	"testing"

	"github.com/warp/planning-engine/planning"
)

func TestSummarize_AggregatesPerWeekInOrder(t *testing.T) {
	// GIVEN: Facts across two weeks and two SKUs
	ctx := context.Background()
	stores := testStores("ST01", "ST02")
	skus := []planning.SkuRecord{testSku("SK01", "10", "4"), testSku("SK02", "20", "5")}
	facts := seedFacts(t,
		planning.SalesFact{StoreCode: "ST01", SkuCode: "SK01", Week: "W10", Units: 2},
		planning.SalesFact{StoreCode: "ST01", SkuCode: "SK02", Week: "W02", Units: 1},
		planning.SalesFact{StoreCode: "ST02", SkuCode: "SK01", Week: "W02", Units: 3},
	)

	// WHEN: Summarizing
	summaries, err := planning.Summarize(ctx, stores, skus, facts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// THEN: Two weeks in ordinal order with blended totals
	if len(summaries) != 2 {
		t.Fatalf("expected 2 weekly summaries, got %d", len(summaries))
	}
	if summaries[0].Week != "W02" || summaries[1].Week != "W10" {
		t.Fatalf("expected W02 before W10, got %s, %s", summaries[0].Week, summaries[1].Week)
	}

	// W02: 1x20 + 3x10 = $50 sales; 1x15 + 3x6 = $33 GM; 66% blended
	w02 := summaries[0]
	if planning.FormatCurrency(w02.SalesDollars) != "$ 50.00" {
		t.Errorf("W02 sales: got %s", planning.FormatCurrency(w02.SalesDollars))
	}
	if planning.FormatCurrency(w02.GMDollars) != "$ 33.00" {
		t.Errorf("W02 gm: got %s", planning.FormatCurrency(w02.GMDollars))
	}
	if planning.FormatPercent(w02.GMPercent) != "66.0%" {
		t.Errorf("W02 gm%%: got %s", planning.FormatPercent(w02.GMPercent))
	}
}

func TestSummarize_SkipsFactsWithUnknownSku(t *testing.T) {
	ctx := context.Background()
	stores := testStores("ST01")
	skus := []planning.SkuRecord{testSku("SK01", "10", "4")}
	facts := seedFacts(t,
		planning.SalesFact{StoreCode: "ST01", SkuCode: "SK01", Week: "W01", Units: 2},
		planning.SalesFact{StoreCode: "ST01", SkuCode: "SK-GONE", Week: "W05", Units: 100},
	)

	summaries, err := planning.Summarize(ctx, stores, skus, facts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Week != "W01" {
		t.Fatalf("unknown SKU must not contribute a week, got %+v", summaries)
	}
}

func TestSummarize_SkipsFactsWithUnknownStore(t *testing.T) {
	// GIVEN: A fact referencing a store absent from master data
	ctx := context.Background()
	stores := testStores("ST01")
	skus := []planning.SkuRecord{testSku("SK01", "10", "4")}
	facts := seedFacts(t,
		planning.SalesFact{StoreCode: "ST01", SkuCode: "SK01", Week: "W01", Units: 2},
		planning.SalesFact{StoreCode: "ST-GONE", SkuCode: "SK01", Week: "W01", Units: 100},
	)

	// WHEN: Summarizing
	summaries, err := planning.Summarize(ctx, stores, skus, facts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// THEN: Only the known store's fact contributes, same as in projection
	if len(summaries) != 1 {
		t.Fatalf("expected 1 weekly summary, got %d", len(summaries))
	}
	if got := planning.FormatCurrency(summaries[0].SalesDollars); got != "$ 20.00" {
		t.Errorf("orphan store fact must not contribute, got %s", got)
	}
}
