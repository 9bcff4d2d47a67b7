/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

MONEY:
  Internal math runs on decimal.Decimal; DTOs carry float64 plus the
  pre-formatted display strings so the grid never re-derives formatting.

VALIDATION:
  Validation is done in handlers and the reconciler, not in DTOs.
  DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/warp/planning-engine/planning"
)

// =============================================================================
// PLANNING MATRIX
// =============================================================================

// CellDTO is the derived metric quadruple for one (row, week) cell.
type CellDTO struct {
	Units            float64 `json:"units"`
	SalesDollars     float64 `json:"sales_dollars"`
	GMDollars        float64 `json:"gm_dollars"`
	GMPercent        float64 `json:"gm_percent"`
	Margin           string  `json:"margin"`
	SalesDisplay     string  `json:"sales_display"`
	GMDisplay        string  `json:"gm_display"`
	GMPercentDisplay string  `json:"gm_percent_display"`
}

// RowDTO is one store/SKU row of the matrix, keyed by week.
type RowDTO struct {
	StoreCode string             `json:"store_code"`
	SkuCode   string             `json:"sku_code"`
	Cells     map[string]CellDTO `json:"cells"`
}

// ColumnDTO describes a single grid column.
type ColumnDTO struct {
	Week     string `json:"week"`
	Kind     string `json:"kind"`
	Header   string `json:"header"`
	Editable bool   `json:"editable"`
}

// ColumnGroupDTO is one month band's worth of columns.
type ColumnGroupDTO struct {
	Label   string      `json:"label"`
	Columns []ColumnDTO `json:"columns"`
}

// GapDTO reports a fact referencing unknown master data.
type GapDTO struct {
	StoreCode string `json:"store_code"`
	SkuCode   string `json:"sku_code"`
}

// MatrixResponse is the full projection returned to the grid.
type MatrixResponse struct {
	Rows         []RowDTO         `json:"rows"`
	ColumnGroups []ColumnGroupDTO `json:"column_groups"`
	Weeks        []string         `json:"weeks"`
	Gaps         []GapDTO         `json:"gaps,omitempty"`
}

// EditCellRequest is a single cell edit from the grid.
type EditCellRequest struct {
	StoreCode string   `json:"store_code"`
	SkuCode   string   `json:"sku_code"`
	Week      string   `json:"week"`
	Units     *float64 `json:"units"`
}

// =============================================================================
// MASTER DATA
// =============================================================================

// StoreDTO represents a store master record.
type StoreDTO struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

// SkuDTO represents a SKU master record.
type SkuDTO struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Department string  `json:"department"`
	Price      float64 `json:"price"`
	Cost       float64 `json:"cost"`
}

// ReorderRequest carries the new list order as a sequence of codes.
type ReorderRequest struct {
	Codes []string `json:"codes"`
}

// =============================================================================
// SUMMARY
// =============================================================================

// WeeklySummaryDTO is the aggregate Sales $/GM $/GM % for one week.
type WeeklySummaryDTO struct {
	Week         string  `json:"week"`
	SalesDollars float64 `json:"sales_dollars"`
	GMDollars    float64 `json:"gm_dollars"`
	GMPercent    float64 `json:"gm_percent"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO describes a loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ID string `json:"id"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toCellDTO(c planning.CellMetrics) CellDTO {
	return CellDTO{
		Units:            c.Units,
		SalesDollars:     c.SalesDollars.InexactFloat64(),
		GMDollars:        c.GMDollars.InexactFloat64(),
		GMPercent:        c.GMPercent.InexactFloat64(),
		Margin:           string(c.Margin),
		SalesDisplay:     planning.FormatCurrency(c.SalesDollars),
		GMDisplay:        planning.FormatCurrency(c.GMDollars),
		GMPercentDisplay: planning.FormatPercent(c.GMPercent),
	}
}

func toMatrixResponse(m *planning.Matrix) MatrixResponse {
	resp := MatrixResponse{
		Rows:         make([]RowDTO, 0, len(m.Rows)),
		ColumnGroups: make([]ColumnGroupDTO, 0, len(m.ColumnGroups)),
		Weeks:        make([]string, 0, len(m.Weeks)),
	}

	for _, row := range m.Rows {
		dto := RowDTO{
			StoreCode: row.StoreCode,
			SkuCode:   row.SkuCode,
			Cells:     make(map[string]CellDTO, len(row.PerWeek)),
		}
		for week, cell := range row.PerWeek {
			dto.Cells[string(week)] = toCellDTO(cell)
		}
		resp.Rows = append(resp.Rows, dto)
	}

	for _, group := range m.ColumnGroups {
		g := ColumnGroupDTO{Label: group.Label}
		for _, col := range group.Columns {
			g.Columns = append(g.Columns, ColumnDTO{
				Week:     string(col.Week),
				Kind:     string(col.Kind),
				Header:   col.Header,
				Editable: col.Editable,
			})
		}
		resp.ColumnGroups = append(resp.ColumnGroups, g)
	}

	for _, w := range m.Weeks {
		resp.Weeks = append(resp.Weeks, string(w))
	}
	for _, gap := range m.Gaps {
		resp.Gaps = append(resp.Gaps, GapDTO{StoreCode: gap.StoreCode, SkuCode: gap.SkuCode})
	}
	return resp
}

func toStoreDTO(st planning.StoreRecord) StoreDTO {
	return StoreDTO{Code: st.Code, Name: st.Name, City: st.City, State: st.State}
}

func toSkuDTO(sku planning.SkuRecord) SkuDTO {
	return SkuDTO{
		Code:       sku.Code,
		Name:       sku.Name,
		Category:   sku.Category,
		Department: sku.Department,
		Price:      sku.Price.InexactFloat64(),
		Cost:       sku.Cost.InexactFloat64(),
	}
}
