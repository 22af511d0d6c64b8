package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
	"github.com/Lixing-Zhang/nutribalance/internal/service"
)

// CatalogHandler handles food catalog HTTP requests
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger,
	}
}

// SearchRequest is the body of a catalog search
type SearchRequest struct {
	Query string `json:"query"`
}

// EditFieldRequest changes one attribute of a catalog item
type EditFieldRequest struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// AddFoodResponse reports where a new item landed
type AddFoodResponse struct {
	Index int             `json:"index"`
	Food  models.FoodItem `json:"food"`
}

// ListFoods handles GET /api/foods
func (h *CatalogHandler) ListFoods(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.service.List(r.Context()), h.logger)
}

// GetFood handles GET /api/foods/{name}
func (h *CatalogHandler) GetFood(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	item, err := h.service.Lookup(r.Context(), name)
	if err != nil {
		writeServiceError(w, err, h.logger, "food lookup failed", "name", name)
		return
	}
	WriteJSON(w, http.StatusOK, item, h.logger)
}

// SearchFoods handles POST /api/foods/search.
// A successful search replaces the whole catalog with the results.
func (h *CatalogHandler) SearchFoods(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	results, err := h.service.Search(r.Context(), req.Query)
	if err != nil {
		writeServiceError(w, err, h.logger, "food search failed", "query", req.Query)
		return
	}
	WriteJSON(w, http.StatusOK, results, h.logger)
}

// AddFood handles POST /api/admin/foods
func (h *CatalogHandler) AddFood(w http.ResponseWriter, r *http.Request) {
	var item models.FoodItem
	if err := decodeJSON(r, &item); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	index, err := h.service.Add(r.Context(), item)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to add food", "name", item.Name)
		return
	}
	WriteJSON(w, http.StatusCreated, AddFoodResponse{Index: index, Food: item}, h.logger)
}

// ReplaceFoods handles PUT /api/admin/foods
func (h *CatalogHandler) ReplaceFoods(w http.ResponseWriter, r *http.Request) {
	var items []models.FoodItem
	if err := decodeJSON(r, &items); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	if items == nil {
		items = []models.FoodItem{}
	}

	if err := h.service.ReplaceAll(r.Context(), items); err != nil {
		writeServiceError(w, err, h.logger, "failed to replace catalog", "items", len(items))
		return
	}
	WriteJSON(w, http.StatusOK, items, h.logger)
}

// EditFood handles PATCH /api/admin/foods/{index}
func (h *CatalogHandler) EditFood(w http.ResponseWriter, r *http.Request) {
	index, ok := h.parseIndex(w, r)
	if !ok {
		return
	}

	var req EditFieldRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	item, err := h.service.EditField(r.Context(), index, req.Field, req.Value)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to edit food", "index", index, "field", req.Field)
		return
	}
	WriteJSON(w, http.StatusOK, item, h.logger)
}

// RemoveFood handles DELETE /api/admin/foods/{index}
func (h *CatalogHandler) RemoveFood(w http.ResponseWriter, r *http.Request) {
	index, ok := h.parseIndex(w, r)
	if !ok {
		return
	}

	removed, err := h.service.Remove(r.Context(), index)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to remove food", "index", index)
		return
	}
	WriteJSON(w, http.StatusOK, removed, h.logger)
}

func (h *CatalogHandler) parseIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		h.logger.Warn("invalid catalog index", "index", raw, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid index supplied", h.logger)
		return 0, false
	}
	return index, true
}
