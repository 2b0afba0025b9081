package model

import (
	"time"
)

type Habit struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	WeekDays  []int     `db:"-" json:"weekDays"`
}

// OccursOn reports whether weekDay (0 = Sunday) is one of the habit's
// recurrence days.
func (h *Habit) OccursOn(weekDay int) bool {
	for _, d := range h.WeekDays {
		if d == weekDay {
			return true
		}
	}
	return false
}

type HabitWeekDay struct {
	ID      string `db:"id"`
	HabitID string `db:"habit_id"`
	WeekDay int    `db:"week_day"`
}
