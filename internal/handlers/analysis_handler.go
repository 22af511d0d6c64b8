package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
	"github.com/Lixing-Zhang/nutribalance/internal/service"
)

// AnalysisHandler handles meal analysis requests
type AnalysisHandler struct {
	service *service.AnalysisService
	logger  *slog.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service *service.AnalysisService, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
		logger:  logger,
	}
}

// Analyze handles POST /api/analysis. Each successful call appends one
// submission to the log.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalysisRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("invalid analysis body", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	result, err := h.service.Analyze(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, h.logger, "analysis refused")
		return
	}
	WriteJSON(w, http.StatusCreated, result, h.logger)
}
