package handler

import (
	"net/http"

	"github.com/templui/habits/internal/service"
)

type HabitHandler struct {
	habitService *service.HabitService
}

func NewHabitHandler(habitService *service.HabitService) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
	}
}

type createHabitRequest struct {
	Title    string `json:"title"`
	WeekDays []int  `json:"weekDays"`
}

// Create handles POST /habits
func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createHabitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	habit, err := h.habitService.Create(r.Context(), req.Title, req.WeekDays)
	if err != nil {
		serviceError(w, r, err, "failed to create habit", "title", req.Title)
		return
	}

	w.Header().Set("Location", "/habits/"+habit.ID)
	w.WriteHeader(http.StatusCreated)
}

// List handles GET /habits
func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("title_prefix")

	habits, err := h.habitService.Habits(r.Context(), prefix)
	if err != nil {
		serviceError(w, r, err, "failed to list habits", "title_prefix", prefix)
		return
	}

	JSON(w, http.StatusOK, habits)
}

// Toggle handles PATCH /habits/{id}/toggle
func (h *HabitHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	habitID := r.PathValue("id")

	_, err := h.habitService.Toggle(r.Context(), habitID)
	if err != nil {
		serviceError(w, r, err, "failed to toggle habit", "habit_id", habitID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
