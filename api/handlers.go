/*
handlers.go - HTTP API handlers for the planning matrix engine

PURPOSE:
  Exposes the planning engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Planning:
    GET    /api/planning/matrix    Full projected grid
    PUT    /api/planning/cells     Submit a single cell edit
    GET    /api/planning/summary   Weekly aggregate Sales $/GM $/GM %

  Master data:
    GET/POST           /api/stores, /api/skus
    PUT/DELETE         /api/stores/{code}, /api/skus/{code}
    POST               /api/stores/reorder, /api/skus/reorder

  Scenarios:
    GET    /api/scenarios          List demo scenarios
    POST   /api/scenarios/load     Load a demo scenario

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Conflict (edit already in flight for the cell)
  - 502: Backing store failed to persist
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/warp/planning-engine/planning"
	"github.com/warp/planning-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store      *sqlite.Store
	Projector  *planning.Projector
	Reconciler *planning.Reconciler

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:      store,
		Projector:  planning.NewProjector(),
		Reconciler: planning.NewReconciler(store),
	}
}

// =============================================================================
// PLANNING HANDLERS
// =============================================================================

// GetMatrix returns the full projected planning grid.
// GET /api/planning/matrix
func (h *Handler) GetMatrix(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stores, err := h.Store.ListStores(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list stores", err)
		return
	}
	skus, err := h.Store.ListSkus(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list SKUs", err)
		return
	}

	matrix, err := h.Projector.ProjectMatrix(ctx, stores, skus, h.Store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to project matrix", err)
		return
	}

	writeJSON(w, http.StatusOK, toMatrixResponse(matrix))
}

// EditCell applies a single cell edit.
// PUT /api/planning/cells
func (h *Handler) EditCell(w http.ResponseWriter, r *http.Request) {
	var req EditCellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.StoreCode == "" || req.SkuCode == "" {
		writeError(w, http.StatusBadRequest, "store_code and sku_code are required", nil)
		return
	}
	if req.Units == nil {
		writeError(w, http.StatusBadRequest, "units is required and must be numeric", planning.ErrInvalidUnits)
		return
	}

	err := h.Reconciler.SubmitEdit(r.Context(), req.StoreCode, req.SkuCode, req.Week, *req.Units)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
	case errors.Is(err, planning.ErrEditInFlight):
		writeError(w, http.StatusConflict, "Edit already in flight for this cell", err)
	case planning.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid edit", err)
	case errors.Is(err, planning.ErrStorePersist):
		writeError(w, http.StatusBadGateway, "Fact store failed to persist edit", err)
	default:
		writeError(w, http.StatusInternalServerError, "Failed to apply edit", err)
	}
}

// GetSummary returns the weekly aggregate rollup for charting.
// GET /api/planning/summary
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stores, err := h.Store.ListStores(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list stores", err)
		return
	}
	skus, err := h.Store.ListSkus(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list SKUs", err)
		return
	}

	summaries, err := planning.Summarize(ctx, stores, skus, h.Store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to summarize", err)
		return
	}

	dtos := make([]WeeklySummaryDTO, len(summaries))
	for i, s := range summaries {
		dtos[i] = WeeklySummaryDTO{
			Week:         string(s.Week),
			SalesDollars: s.SalesDollars.InexactFloat64(),
			GMDollars:    s.GMDollars.InexactFloat64(),
			GMPercent:    s.GMPercent.InexactFloat64(),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// STORE MASTER HANDLERS
// =============================================================================

// ListStores returns all store records in list order.
func (h *Handler) ListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.Store.ListStores(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list stores", err)
		return
	}

	dtos := make([]StoreDTO, len(stores))
	for i, st := range stores {
		dtos[i] = toStoreDTO(st)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateStore creates a new store record.
func (h *Handler) CreateStore(w http.ResponseWriter, r *http.Request) {
	var req StoreDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Code == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "code and name are required", nil)
		return
	}

	st := planning.StoreRecord{Code: req.Code, Name: req.Name, City: req.City, State: req.State}
	if err := h.Store.SaveStore(r.Context(), st); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save store", err)
		return
	}
	writeJSON(w, http.StatusCreated, toStoreDTO(st))
}

// UpdateStore updates an existing store record.
func (h *Handler) UpdateStore(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	existing, err := h.Store.GetStore(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get store", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Store not found", nil)
		return
	}

	var req StoreDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	st := planning.StoreRecord{Code: code, Name: req.Name, City: req.City, State: req.State}
	if err := h.Store.SaveStore(r.Context(), st); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save store", err)
		return
	}
	writeJSON(w, http.StatusOK, toStoreDTO(st))
}

// DeleteStore removes a store record.
func (h *Handler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := h.Store.DeleteStore(r.Context(), code); err != nil {
		if planning.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Store not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete store", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderStores persists a new store list order.
func (h *Handler) ReorderStores(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Store.ReorderStores(r.Context(), req.Codes); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reorder stores", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// SKU MASTER HANDLERS
// =============================================================================

// ListSkus returns all SKU records in list order.
func (h *Handler) ListSkus(w http.ResponseWriter, r *http.Request) {
	skus, err := h.Store.ListSkus(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list SKUs", err)
		return
	}

	dtos := make([]SkuDTO, len(skus))
	for i, sku := range skus {
		dtos[i] = toSkuDTO(sku)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateSku creates a new SKU record.
func (h *Handler) CreateSku(w http.ResponseWriter, r *http.Request) {
	var req SkuDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Code == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "code and name are required", nil)
		return
	}

	sku := skuFromDTO(req)
	if err := h.Store.SaveSku(r.Context(), sku); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save SKU", err)
		return
	}
	writeJSON(w, http.StatusCreated, toSkuDTO(sku))
}

// UpdateSku updates an existing SKU record.
func (h *Handler) UpdateSku(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	existing, err := h.Store.GetSku(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get SKU", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "SKU not found", nil)
		return
	}

	var req SkuDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.Code = code

	sku := skuFromDTO(req)
	if err := h.Store.SaveSku(r.Context(), sku); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save SKU", err)
		return
	}
	writeJSON(w, http.StatusOK, toSkuDTO(sku))
}

// DeleteSku removes a SKU record.
func (h *Handler) DeleteSku(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := h.Store.DeleteSku(r.Context(), code); err != nil {
		if planning.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "SKU not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete SKU", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderSkus persists a new SKU list order.
func (h *Handler) ReorderSkus(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Store.ReorderSkus(r.Context(), req.Codes); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reorder SKUs", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func skuFromDTO(dto SkuDTO) planning.SkuRecord {
	return planning.SkuRecord{
		Code:       dto.Code,
		Name:       dto.Name,
		Category:   dto.Category,
		Department: dto.Department,
		Price:      decimal.NewFromFloat(dto.Price),
		Cost:       decimal.NewFromFloat(dto.Cost),
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
