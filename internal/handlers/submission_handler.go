package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/nutribalance/internal/export"
	"github.com/Lixing-Zhang/nutribalance/internal/service"
)

// SubmissionHandler exposes the submission log to administrators
type SubmissionHandler struct {
	service *service.AnalysisService
	logger  *slog.Logger
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(service *service.AnalysisService, logger *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		logger:  logger,
	}
}

// ListSubmissions handles GET /api/admin/submissions
func (h *SubmissionHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.service.Submissions(r.Context()), h.logger)
}

// ExportSubmissions handles GET /api/admin/submissions/export.
// An empty log downloads as an empty file.
func (h *SubmissionHandler) ExportSubmissions(w http.ResponseWriter, r *http.Request) {
	csv := h.service.ExportCSV(r.Context())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		h.logger.Error("failed to write csv export", "error", err)
	}
}
