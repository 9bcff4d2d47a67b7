/*
summary.go - Weekly aggregate rollup for analytics

PURPOSE:
  Aggregates Sales $ and GM $ across every store/SKU pair per week, with
  the blended GM % derived from the totals. Feeds the analytics chart
  (GM $ bars against a GM % line); rendering itself stays external.

  Facts with reference gaps (unknown store or unknown SKU) are skipped,
  mirroring the projector's omission rule.
*/
package planning

import (
	"context"

	"github.com/shopspring/decimal"
)

// WeeklySummary is the aggregate across all pairs for one week.
type WeeklySummary struct {
	Week         WeekID
	SalesDollars decimal.Decimal
	GMDollars    decimal.Decimal
	GMPercent    decimal.Decimal
}

// Summarize rolls facts up per week, ordered by week ordinal. Facts whose
// store or SKU is absent from master data are omitted, like in projection.
func Summarize(ctx context.Context, stores []StoreRecord, skus []SkuRecord, facts FactStore) ([]WeeklySummary, error) {
	all, err := facts.All(ctx)
	if err != nil {
		return nil, &StoreError{Err: err}
	}

	knownStores := make(map[string]bool, len(stores))
	for _, s := range stores {
		knownStores[s.Code] = true
	}
	skuByCode := make(map[string]SkuRecord, len(skus))
	for _, sku := range skus {
		skuByCode[sku.Code] = sku
	}

	sales := make(map[WeekID]decimal.Decimal)
	gm := make(map[WeekID]decimal.Decimal)
	for _, f := range all {
		if !knownStores[f.StoreCode] {
			continue
		}
		sku, ok := skuByCode[f.SkuCode]
		if !ok {
			continue
		}
		sales[f.Week] = sales[f.Week].Add(SalesDollars(f.Units, sku.Price))
		gm[f.Week] = gm[f.Week].Add(GMDollars(f.Units, sku.Price, sku.Cost))
	}

	weeks := make([]WeekID, 0, len(sales))
	for w := range sales {
		weeks = append(weeks, w)
	}
	SortWeeks(weeks)

	summaries := make([]WeeklySummary, 0, len(weeks))
	for _, w := range weeks {
		summaries = append(summaries, WeeklySummary{
			Week:         w,
			SalesDollars: sales[w],
			GMDollars:    gm[w],
			GMPercent:    GMPercent(sales[w], gm[w]),
		})
	}
	return summaries, nil
}
