/*
matrix.go - Matrix projection: sparse facts to dense grid

PURPOSE:
  Owns the join across the three independently-fetched collections
  (stores, SKUs, facts). Produces one row per (store, SKU) pair in
  store-major, SKU-minor order and one column group per month band,
  with the Units / Sales $ / GM $ / GM % quadruple per week.

KEY PROPERTIES:
  - Rows are the FULL cross product: |stores| x |skus| rows regardless of
    fact sparsity. A pair with no facts renders as all zero weeks.
  - Projection is recomputed on every call, never cached, so the grid
    always reflects the latest fact store state.
  - A fact referencing a store or SKU missing from master data is a
    reference gap: it is excluded from the grid and reported in
    Matrix.Gaps instead of crashing the projection.

SEE ALSO:
  - week.go: Week discovery and banding consumed here
  - metrics.go: Per-cell derivation
*/
package planning

import "context"

// =============================================================================
// COLUMN DESCRIPTORS
// =============================================================================

// ColumnKind identifies one member of the per-week column quadruple.
type ColumnKind string

const (
	ColumnUnits     ColumnKind = "units"
	ColumnSales     ColumnKind = "sales_dollars"
	ColumnGM        ColumnKind = "gm_dollars"
	ColumnGMPercent ColumnKind = "gm_percent"
)

// Column describes a single grid column. Only the Units column is editable.
type Column struct {
	Week     WeekID
	Kind     ColumnKind
	Header   string
	Editable bool
}

// ColumnGroup is one month band's worth of columns.
type ColumnGroup struct {
	Label   string
	Columns []Column
}

// =============================================================================
// MATRIX - The projection result
// =============================================================================

// Matrix is the dense planning grid produced by a single projection.
type Matrix struct {
	Rows         []MatrixRow
	ColumnGroups []ColumnGroup
	Weeks        []WeekID

	// Gaps lists facts that reference store/SKU codes absent from the
	// current master data. Those pairs cannot be displayed.
	Gaps []ReferenceGapError
}

// =============================================================================
// ROW AND COLUMN SKELETONS
// =============================================================================

// BuildRows produces the full store x SKU cross product in store-major,
// SKU-minor order. Rows with no facts are still valid and must render.
func BuildRows(stores []StoreRecord, skus []SkuRecord) []MatrixRow {
	rows := make([]MatrixRow, 0, len(stores)*len(skus))
	for _, st := range stores {
		for _, sku := range skus {
			rows = append(rows, MatrixRow{
				StoreCode: st.Code,
				SkuCode:   sku.Code,
				PerWeek:   make(map[WeekID]CellMetrics),
			})
		}
	}
	return rows
}

// BuildColumns produces one column group per month band, containing the
// Units / Sales $ / GM $ / GM % quadruple per week, in week order.
func BuildColumns(bands []MonthBand) []ColumnGroup {
	groups := make([]ColumnGroup, 0, len(bands))
	for _, band := range bands {
		group := ColumnGroup{Label: band.Label}
		for _, w := range band.Weeks {
			group.Columns = append(group.Columns,
				Column{Week: w, Kind: ColumnUnits, Header: "Sales Units", Editable: true},
				Column{Week: w, Kind: ColumnSales, Header: "Sales $"},
				Column{Week: w, Kind: ColumnGM, Header: "GM $"},
				Column{Week: w, Kind: ColumnGMPercent, Header: "GM %"},
			)
		}
		groups = append(groups, group)
	}
	return groups
}

// =============================================================================
// PROJECTOR
// =============================================================================

// Projector turns the three read-only inputs into a dense matrix.
type Projector struct {
	Banding BandingPolicy
}

// NewProjector returns a projector with the default banding policy.
func NewProjector() *Projector {
	return &Projector{Banding: DefaultBanding()}
}

// ProjectMatrix is the single read entry point. It loads all facts,
// discovers and bands the known weeks, and fills every cell of the
// store x SKU cross product with derived metrics.
func (p *Projector) ProjectMatrix(ctx context.Context, stores []StoreRecord, skus []SkuRecord, facts FactStore) (*Matrix, error) {
	all, err := facts.All(ctx)
	if err != nil {
		return nil, &StoreError{Err: err}
	}

	weeks := SortWeeks(DistinctWeeks(all))
	bands := GroupByMonth(weeks, p.Banding)

	storeCodes := make(map[string]bool, len(stores))
	for _, st := range stores {
		storeCodes[st.Code] = true
	}
	skuByCode := make(map[string]SkuRecord, len(skus))
	for _, sku := range skus {
		skuByCode[sku.Code] = sku
	}

	// Index facts by cell key; collect reference gaps without failing.
	units := make(map[CellKey]float64, len(all))
	var gaps []ReferenceGapError
	gapSeen := make(map[string]bool)
	for _, f := range all {
		if _, ok := skuByCode[f.SkuCode]; !ok || !storeCodes[f.StoreCode] {
			pair := f.StoreCode + "/" + f.SkuCode
			if !gapSeen[pair] {
				gapSeen[pair] = true
				gaps = append(gaps, ReferenceGapError{StoreCode: f.StoreCode, SkuCode: f.SkuCode})
			}
			continue
		}
		units[f.Key()] = f.Units
	}

	rows := BuildRows(stores, skus)
	for i := range rows {
		sku := skuByCode[rows[i].SkuCode]
		for _, w := range weeks {
			key := CellKey{StoreCode: rows[i].StoreCode, SkuCode: rows[i].SkuCode, Week: w}
			rows[i].PerWeek[w] = DeriveCell(units[key], sku)
		}
	}

	return &Matrix{
		Rows:         rows,
		ColumnGroups: BuildColumns(bands),
		Weeks:        weeks,
		Gaps:         gaps,
	}, nil
}
