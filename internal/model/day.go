package model

import (
	"time"
)

// Day is created the first time any habit is toggled on that date.
type Day struct {
	ID   string    `db:"id" json:"id"`
	Date time.Time `db:"date" json:"date"`
}

// DayHabit marks a habit as completed on a day.
type DayHabit struct {
	ID      string `db:"id"`
	DayID   string `db:"day_id"`
	HabitID string `db:"habit_id"`
}

// DayView is what a client sees for a single date. CompletedHabits is nil
// when no Day row exists for the date and is then left out of the JSON.
type DayView struct {
	PossibleHabits  []*Habit `json:"possibleHabits"`
	CompletedHabits []string `json:"completedHabits,omitzero"`
}
