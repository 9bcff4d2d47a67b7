/*
week.go - Week identifiers and month banding

PURPOSE:
  Weeks are derived-only: the set of known weeks is exactly the set that
  appears in the fact store, not a fixed calendar. This file discovers
  that set, orders it numerically, and partitions it into month bands of
  four weeks each for column headers.

BANDING CONVENTION:
  band index = floor((ordinal - 1) / 4)
  Weeks 1-4 fall in band 0 ("January"), 5-8 in band 1 ("February"), and
  so on. Ordinals past 48 roll into band index >= 12; the label resolves
  via modulo 12 rather than erroring.

ORDERING:
  Week IDs sort by numeric ordinal, never as raw strings. A plain string
  sort would place W10 before W02 once single- and double-digit ordinals
  mix ("W10" < "W2" lexically).

SEE ALSO:
  - matrix.go: Consumes sorted weeks and bands for column generation
*/
package planning

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// WEEK ID
// =============================================================================

// WeekID identifies a planning week, e.g. "W01".."W52".
// Total order is by ordinal value, not string value.
type WeekID string

// ParseWeekID validates and normalizes a week identifier.
// Accepts "W" followed by a positive integer; returns the two-digit form.
func ParseWeekID(s string) (WeekID, error) {
	if len(s) < 2 || !strings.HasPrefix(s, "W") {
		return "", &InvalidWeekError{Input: s}
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 1 {
		return "", &InvalidWeekError{Input: s}
	}
	return WeekID(fmt.Sprintf("W%02d", n)), nil
}

// Ordinal returns the numeric week ordinal, or 0 for a malformed ID.
func (w WeekID) Ordinal() int {
	if len(w) < 2 || w[0] != 'W' {
		return 0
	}
	n, err := strconv.Atoi(string(w[1:]))
	if err != nil {
		return 0
	}
	return n
}

// Before reports whether w precedes other in ordinal order.
func (w WeekID) Before(other WeekID) bool {
	return w.Ordinal() < other.Ordinal()
}

// =============================================================================
// WEEK DISCOVERY
// =============================================================================

// DistinctWeeks returns the deduplicated set of weeks present in facts.
func DistinctWeeks(facts []SalesFact) []WeekID {
	seen := make(map[WeekID]bool)
	var weeks []WeekID
	for _, f := range facts {
		if !seen[f.Week] {
			seen[f.Week] = true
			weeks = append(weeks, f.Week)
		}
	}
	return weeks
}

// SortWeeks orders weeks ascending by numeric ordinal, in place.
func SortWeeks(weeks []WeekID) []WeekID {
	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].Ordinal() < weeks[j].Ordinal()
	})
	return weeks
}

// =============================================================================
// MONTH BANDING
// =============================================================================

// WeeksPerBand is the fixed planning convention: four weeks to a month.
const WeeksPerBand = 4

// BandingPolicy controls how month bands are labeled.
type BandingPolicy struct {
	// Year appended to every band label, e.g. "January 2024".
	Year int
}

// DefaultBanding matches the planning calendar the grid was built around.
func DefaultBanding() BandingPolicy {
	return BandingPolicy{Year: 2024}
}

// GroupByMonth partitions sorted weeks into month bands.
// Weeks must already be in ordinal order; every week lands in exactly one
// band and bands come out ordered by first-week ordinal.
func GroupByMonth(sorted []WeekID, policy BandingPolicy) []MonthBand {
	var bands []MonthBand
	byIndex := make(map[int]int) // band index -> position in bands

	for _, w := range sorted {
		idx := (w.Ordinal() - 1) / WeeksPerBand
		pos, ok := byIndex[idx]
		if !ok {
			pos = len(bands)
			byIndex[idx] = pos
			bands = append(bands, MonthBand{Label: policy.bandLabel(idx)})
		}
		bands[pos].Weeks = append(bands[pos].Weeks, w)
	}
	return bands
}

// bandLabel maps a band index to "MonthName Year".
// Index wraps modulo 12 so ordinals past week 48 still resolve.
func (p BandingPolicy) bandLabel(index int) string {
	month := time.Month(index%12 + 1)
	return fmt.Sprintf("%s %d", month.String(), p.Year)
}
