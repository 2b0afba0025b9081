package handler

import (
	"net/http"

	"github.com/templui/habits/internal/calendar"
	"github.com/templui/habits/internal/service"
)

type DayHandler struct {
	habitService *service.HabitService
}

func NewDayHandler(habitService *service.HabitService) *DayHandler {
	return &DayHandler{
		habitService: habitService,
	}
}

// Day handles GET /day?date=
func (h *DayHandler) Day(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		Error(w, http.StatusBadRequest, "date is required")
		return
	}

	date, err := calendar.ParseTimestamp(raw, h.habitService.Location())
	if err != nil {
		Error(w, http.StatusBadRequest, "date must be an ISO 8601 timestamp or epoch milliseconds")
		return
	}

	view, err := h.habitService.DayView(r.Context(), date)
	if err != nil {
		serviceError(w, r, err, "failed to load day", "date", raw)
		return
	}

	JSON(w, http.StatusOK, view)
}
