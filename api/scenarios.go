/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates stores, SKUs, and
	weekly sales facts that exercise the planning grid.

AVAILABLE SCENARIOS:

	retail-demo:  Seven stores, ten SKUs, a year of sparse weekly facts
	empty:        Master data only, no facts (grid with zero columns)

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Insert store and SKU master records in list order
 3. Upsert weekly sales facts

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - server.go: Scenario routes
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/warp/planning-engine/planning"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "retail-demo",
		Name:        "Retail Demo",
		Description: "Seven stores, ten SKUs, sparse weekly sales across the year",
	},
	{
		ID:          "empty",
		Name:        "Empty Plan",
		Description: "Master data only; no facts, so the grid has zero week columns",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// LoadScenario resets the database and loads the requested scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	var err error
	switch req.ID {
	case "retail-demo":
		err = h.loadRetailDemo(ctx, true)
	case "empty":
		err = h.loadRetailDemo(ctx, false)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario %q", req.ID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ID
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ID})
}

// ResetDatabase clears everything without loading a scenario.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SEED DATA
// =============================================================================

type seedSku struct {
	code, name, category, department string
	price, cost                      string
}

type seedFact struct {
	store, sku, week string
	units            float64
}

var demoStores = []planning.StoreRecord{
	{Code: "ST035", Name: "San Francisco Bay Trends", City: "San Francisco", State: "CA"},
	{Code: "ST046", Name: "Phoenix Sunwear", City: "Phoenix", State: "AZ"},
	{Code: "ST064", Name: "Dallas Ranch Supply", City: "Dallas", State: "TX"},
	{Code: "ST066", Name: "Atlanta Outfitters", City: "Atlanta", State: "GA"},
	{Code: "ST073", Name: "Nashville Melody Music Store", City: "Nashville", State: "TN"},
	{Code: "ST074", Name: "New York Empire Eats", City: "New York", State: "NY"},
	{Code: "ST091", Name: "Denver Peaks Outdoor", City: "Denver", State: "CO"},
}

var demoSkus = []seedSku{
	{"SK00158", "Crew Neck Merino Wool Sweater", "Tops", "Men's Apparel", "114.99", "18.28"},
	{"SK00269", "Faux Leather Leggings", "Jewelry", "Footwear", "9.99", "8.45"},
	{"SK00300", "Fleece-Lined Parka", "Jewelry", "Unisex Accessories", "199.99", "17.80"},
	{"SK00304", "Cotton Polo Shirt", "Tops", "Women's Apparel", "139.99", "10.78"},
	{"SK00766", "Foldable Travel Hat", "Tops", "Footwear", "44.99", "27.08"},
	{"SK00786", "Chic Quilted Wallet", "Bottoms", "Footwear", "14.99", "4.02"},
	{"SK00960", "High-Slit Maxi Dress", "Outerwear", "Sportswear", "74.99", "47.47"},
	{"SK01183", "Turtleneck Cable Knit Sweater", "Footwear", "Footwear", "49.99", "22.60"},
	{"SK01189", "Retro-Inspired Sunglasses", "Bottoms", "Women's Apparel", "194.99", "115.63"},
	{"SK01193", "Stretch Denim Overalls", "Bottoms", "Unisex Accessories", "129.99", "47.06"},
}

var demoFacts = []seedFact{
	{"ST035", "SK00158", "W01", 58},
	{"ST035", "SK00158", "W07", 107},
	{"ST035", "SK00158", "W09", 0},
	{"ST035", "SK00158", "W11", 92},
	{"ST035", "SK00158", "W13", 122},
	{"ST035", "SK00158", "W15", 38},
	{"ST035", "SK00158", "W23", 88},
	{"ST035", "SK00158", "W31", 45},
	{"ST035", "SK00158", "W35", 197},
	{"ST035", "SK00158", "W50", 133},
	{"ST035", "SK00269", "W05", 107},
	{"ST035", "SK00269", "W06", 104},
	{"ST035", "SK00269", "W09", 32},
	{"ST035", "SK00269", "W18", 174},
	{"ST035", "SK00269", "W23", 174},
	{"ST035", "SK00269", "W27", 37},
	{"ST035", "SK00269", "W28", 95},
	{"ST035", "SK00269", "W29", 161},
	{"ST035", "SK00269", "W30", 175},
	{"ST035", "SK00269", "W32", 200},
	{"ST035", "SK00269", "W33", 120},
	{"ST035", "SK00269", "W51", 167},
	{"ST046", "SK00300", "W02", 64},
	{"ST046", "SK00300", "W10", 141},
	{"ST046", "SK00304", "W04", 83},
	{"ST064", "SK00766", "W12", 56},
	{"ST064", "SK00786", "W21", 119},
	{"ST091", "SK01193", "W49", 78},
}

func (h *Handler) loadRetailDemo(ctx context.Context, withFacts bool) error {
	for _, st := range demoStores {
		if err := h.Store.SaveStore(ctx, st); err != nil {
			return err
		}
	}

	for _, s := range demoSkus {
		price, err := decimal.NewFromString(s.price)
		if err != nil {
			return err
		}
		cost, err := decimal.NewFromString(s.cost)
		if err != nil {
			return err
		}
		sku := planning.SkuRecord{
			Code:       s.code,
			Name:       s.name,
			Category:   s.category,
			Department: s.department,
			Price:      price,
			Cost:       cost,
		}
		if err := h.Store.SaveSku(ctx, sku); err != nil {
			return err
		}
	}

	if !withFacts {
		return nil
	}

	for _, f := range demoFacts {
		fact := planning.SalesFact{
			StoreCode: f.store,
			SkuCode:   f.sku,
			Week:      planning.WeekID(f.week),
			Units:     f.units,
		}
		if err := h.Store.Upsert(ctx, fact); err != nil {
			return err
		}
	}
	return nil
}
