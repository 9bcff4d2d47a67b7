/*
metrics.go - Derived metric calculation and margin classification

PURPOSE:
  Pure functions computing Sales $, GM $, and GM % from a unit count and a
  SKU's price/cost, plus the banded margin classification used for cell
  highlighting. Evaluated lazily per cell at read time; nothing here is
  ever persisted, which is what guarantees derived columns cannot drift
  from their source facts.

FORMULAS:
  Sales $ = units * price
  GM $    = units * (price - cost)
  GM %    = 0 when Sales $ == 0, else GM $ / Sales $ * 100

MARGIN BANDS:
  critical: GM % <= 5
  low:      5 < GM % < 10
  medium:   10 <= GM % < 40
  high:     GM % >= 40
  The partition is total and non-overlapping: exactly 10 is medium,
  exactly 40 is high, exactly 5 is critical.

FORMATTING:
  Currency renders as "$ 50.00" (two decimals), percent as "60.0%"
  (one decimal). Presentation only; formatted strings never feed back
  into stored values.
*/
package planning

import "github.com/shopspring/decimal"

// =============================================================================
// MARGIN BANDS
// =============================================================================

// MarginBand classifies a GM percentage for cell highlighting.
type MarginBand string

const (
	MarginCritical MarginBand = "critical" // GM % <= 5
	MarginLow      MarginBand = "low"      // 5 < GM % < 10
	MarginMedium   MarginBand = "medium"   // 10 <= GM % < 40
	MarginHigh     MarginBand = "high"     // GM % >= 40
)

var (
	marginCriticalMax = decimal.NewFromInt(5)
	marginLowMax      = decimal.NewFromInt(10)
	marginMediumMax   = decimal.NewFromInt(40)
	percentScale      = decimal.NewFromInt(100)
)

// ClassifyMargin maps a GM percentage to exactly one margin band.
func ClassifyMargin(gmPercent decimal.Decimal) MarginBand {
	switch {
	case gmPercent.LessThanOrEqual(marginCriticalMax):
		return MarginCritical
	case gmPercent.LessThan(marginLowMax):
		return MarginLow
	case gmPercent.LessThan(marginMediumMax):
		return MarginMedium
	default:
		return MarginHigh
	}
}

// =============================================================================
// DERIVATION
// =============================================================================

// SalesDollars returns units * price.
func SalesDollars(units float64, price decimal.Decimal) decimal.Decimal {
	return decimal.NewFromFloat(units).Mul(price)
}

// GMDollars returns units * (price - cost).
func GMDollars(units float64, price, cost decimal.Decimal) decimal.Decimal {
	return decimal.NewFromFloat(units).Mul(price.Sub(cost))
}

// GMPercent returns gm / sales * 100, short-circuiting to zero when sales
// is zero so empty cells never divide by zero.
func GMPercent(salesDollars, gmDollars decimal.Decimal) decimal.Decimal {
	if salesDollars.IsZero() {
		return decimal.Zero
	}
	return gmDollars.Div(salesDollars).Mul(percentScale)
}

// DeriveCell computes the full metric quadruple for one cell.
func DeriveCell(units float64, sku SkuRecord) CellMetrics {
	sales := SalesDollars(units, sku.Price)
	gm := GMDollars(units, sku.Price, sku.Cost)
	pct := GMPercent(sales, gm)
	return CellMetrics{
		Units:        units,
		SalesDollars: sales,
		GMDollars:    gm,
		GMPercent:    pct,
		Margin:       ClassifyMargin(pct),
	}
}

// =============================================================================
// FORMATTING - Presentation only
// =============================================================================

// FormatCurrency renders a dollar amount as "$ 50.00".
func FormatCurrency(d decimal.Decimal) string {
	return "$ " + d.StringFixed(2)
}

// FormatPercent renders a percentage as "60.0%".
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}
