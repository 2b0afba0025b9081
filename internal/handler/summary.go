package handler

import (
	"errors"
	"net/http"

	"github.com/templui/habits/internal/service"
)

type SummaryHandler struct {
	habitService  *service.HabitService
	exportService *service.ExportService
}

func NewSummaryHandler(habitService *service.HabitService, exportService *service.ExportService) *SummaryHandler {
	return &SummaryHandler{
		habitService:  habitService,
		exportService: exportService,
	}
}

// Summary handles GET /summary
func (h *SummaryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.habitService.Summary(r.Context())
	if err != nil {
		serviceError(w, r, err, "failed to compute summary")
		return
	}

	JSON(w, http.StatusOK, summary)
}

// Export handles POST /summary/export
func (h *SummaryHandler) Export(w http.ResponseWriter, r *http.Request) {
	result, err := h.exportService.Export(r.Context())
	if errors.Is(err, service.ErrStorageDisabled) {
		Error(w, http.StatusServiceUnavailable, "summary export is not configured")
		return
	}
	if err != nil {
		serviceError(w, r, err, "failed to export summary")
		return
	}

	JSON(w, http.StatusOK, result)
}
