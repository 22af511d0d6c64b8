package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
	"github.com/Lixing-Zhang/nutribalance/internal/service"
)

// RecommendationHandler handles threshold table requests
type RecommendationHandler struct {
	service *service.RecommendationService
	logger  *slog.Logger
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(service *service.RecommendationService, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		service: service,
		logger:  logger,
	}
}

// EditThresholdRequest sets one group's value for a nutrient
type EditThresholdRequest struct {
	Group models.AgeGroup `json:"group"`
	Value *float64        `json:"value"`
}

// GetTable handles GET /api/recommendations
func (h *RecommendationHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.service.Table(r.Context()), h.logger)
}

// EditThreshold handles PATCH /api/admin/recommendations/{nutrient}
func (h *RecommendationHandler) EditThreshold(w http.ResponseWriter, r *http.Request) {
	nutrient := models.Nutrient(chi.URLParam(r, "nutrient"))

	var req EditThresholdRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	if req.Value == nil {
		WriteError(w, http.StatusBadRequest, "value is required", h.logger)
		return
	}

	row, err := h.service.EditThreshold(r.Context(), nutrient, req.Group, *req.Value)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to edit threshold", "nutrient", nutrient, "group", req.Group)
		return
	}
	WriteJSON(w, http.StatusOK, row, h.logger)
}
