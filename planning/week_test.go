package planning_test

import (
	"errors"
	"testing"

	"github.com/warp/planning-engine/planning"
)

// =============================================================================
// WEEK ID TESTS
// =============================================================================

func TestParseWeekID_NormalizesToTwoDigits(t *testing.T) {
	w, err := planning.ParseWeekID("W1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != "W01" {
		t.Errorf("expected W01, got %s", w)
	}
}

func TestParseWeekID_RejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "W", "X01", "W00", "Wxx", "01", "w01"} {
		if _, err := planning.ParseWeekID(input); err == nil {
			t.Errorf("expected error for %q, got none", input)
		} else if !errors.Is(err, planning.ErrInvalidWeek) {
			t.Errorf("expected ErrInvalidWeek for %q, got %v", input, err)
		}
	}
}

func TestSortWeeks_NumericOrdinalNotStringOrder(t *testing.T) {
	// GIVEN: Weeks that sort wrongly as strings ("W10" < "W2" lexically)
	weeks := []planning.WeekID{"W10", "W02", "W01", "W09", "W33"}

	// WHEN: Sorting
	planning.SortWeeks(weeks)

	// THEN: Numeric ordinal order, W2 before W10
	want := []planning.WeekID{"W01", "W02", "W09", "W10", "W33"}
	for i, w := range want {
		if weeks[i] != w {
			t.Fatalf("position %d: expected %s, got %s (full: %v)", i, w, weeks[i], weeks)
		}
	}
}

func TestDistinctWeeks_Deduplicates(t *testing.T) {
	facts := []planning.SalesFact{
		{StoreCode: "ST01", SkuCode: "SK01", Week: "W01", Units: 5},
		{StoreCode: "ST01", SkuCode: "SK02", Week: "W01", Units: 7},
		{StoreCode: "ST02", SkuCode: "SK01", Week: "W03", Units: 2},
	}

	weeks := planning.DistinctWeeks(facts)
	if len(weeks) != 2 {
		t.Fatalf("expected 2 distinct weeks, got %d: %v", len(weeks), weeks)
	}
}

// =============================================================================
// MONTH BANDING TESTS
// =============================================================================

func TestGroupByMonth_EightWeeksYieldTwoBands(t *testing.T) {
	// GIVEN: W01..W08 sorted
	weeks := []planning.WeekID{"W01", "W02", "W03", "W04", "W05", "W06", "W07", "W08"}

	// WHEN: Banding with the default 2024 policy
	bands := planning.GroupByMonth(weeks, planning.DefaultBanding())

	// THEN: Exactly two bands of four weeks, labeled by the first two months
	if len(bands) != 2 {
		t.Fatalf("expected 2 bands, got %d", len(bands))
	}
	if bands[0].Label != "January 2024" {
		t.Errorf("band 0 label: expected January 2024, got %s", bands[0].Label)
	}
	if bands[1].Label != "February 2024" {
		t.Errorf("band 1 label: expected February 2024, got %s", bands[1].Label)
	}
	if len(bands[0].Weeks) != 4 || len(bands[1].Weeks) != 4 {
		t.Errorf("expected 4 weeks per band, got %d and %d", len(bands[0].Weeks), len(bands[1].Weeks))
	}
	if bands[1].Weeks[0] != "W05" {
		t.Errorf("band 1 should start at W05, got %s", bands[1].Weeks[0])
	}
}

func TestGroupByMonth_EveryWeekInExactlyOneBand(t *testing.T) {
	weeks := []planning.WeekID{"W01", "W04", "W05", "W13", "W48", "W52"}
	bands := planning.GroupByMonth(weeks, planning.DefaultBanding())

	seen := make(map[planning.WeekID]int)
	for _, b := range bands {
		for _, w := range b.Weeks {
			seen[w]++
		}
	}
	for _, w := range weeks {
		if seen[w] != 1 {
			t.Errorf("week %s appears in %d bands, expected exactly 1", w, seen[w])
		}
	}
}

func TestGroupByMonth_OrdinalsPast48RollViaModulo(t *testing.T) {
	// GIVEN: Weeks past ordinal 48 (band index >= 12)
	weeks := []planning.WeekID{"W49", "W52"}

	// WHEN: Banding
	bands := planning.GroupByMonth(weeks, planning.DefaultBanding())

	// THEN: Label resolves via modulo 12 instead of erroring
	if len(bands) != 1 {
		t.Fatalf("expected 1 band, got %d", len(bands))
	}
	if bands[0].Label != "January 2024" {
		t.Errorf("band 12 should wrap to January 2024, got %s", bands[0].Label)
	}
}

func TestGroupByMonth_EmptyInputYieldsZeroBands(t *testing.T) {
	bands := planning.GroupByMonth(nil, planning.DefaultBanding())
	if len(bands) != 0 {
		t.Fatalf("expected zero bands for empty input, got %d", len(bands))
	}
}
