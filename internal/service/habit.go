package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/templui/habits/internal/calendar"
	"github.com/templui/habits/internal/model"
	"github.com/templui/habits/internal/repository"
	"github.com/templui/habits/internal/validation"
)

type HabitService struct {
	habitRepo    repository.HabitRepository
	dayRepo      repository.DayRepository
	dayHabitRepo repository.DayHabitRepository
	now          calendar.Clock
	loc          *time.Location
}

func NewHabitService(
	habitRepo repository.HabitRepository,
	dayRepo repository.DayRepository,
	dayHabitRepo repository.DayHabitRepository,
	now calendar.Clock,
	loc *time.Location,
) *HabitService {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &HabitService{
		habitRepo:    habitRepo,
		dayRepo:      dayRepo,
		dayHabitRepo: dayHabitRepo,
		now:          now,
		loc:          loc,
	}
}

// Location is the timezone days are computed in.
func (s *HabitService) Location() *time.Location {
	return s.loc
}

// Create validates the input and stores a new habit that starts today.
func (s *HabitService) Create(ctx context.Context, title string, weekDays []int) (*model.Habit, error) {
	title, err := validation.Title(title)
	if err != nil {
		return nil, err
	}

	weekDays, err = validation.WeekDays(weekDays)
	if err != nil {
		return nil, err
	}

	habit := &model.Habit{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: calendar.Today(s.now, s.loc),
		WeekDays:  weekDays,
	}

	err = s.habitRepo.Create(ctx, habit)
	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	slog.Debug("habit created", "habit_id", habit.ID, "week_days", habit.WeekDays)
	return habit, nil
}

// Habits lists habits, optionally filtered by title prefix.
func (s *HabitService) Habits(ctx context.Context, titlePrefix string) ([]*model.Habit, error) {
	habits, err := s.habitRepo.Habits(ctx, titlePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	if habits == nil {
		habits = []*model.Habit{}
	}
	return s.localize(habits), nil
}

// DayView returns the habits that apply to the calendar day of date and
// which of them were completed.
//
// Creation is compared against date as given while the weekday and the day
// lookup use its start of day. A habit created today is therefore listed for
// any time today, and a habit is never listed before it existed.
func (s *HabitService) DayView(ctx context.Context, date time.Time) (*model.DayView, error) {
	dayStart := calendar.StartOfDay(date, s.loc)
	weekDay := int(dayStart.Weekday())

	candidates, err := s.habitRepo.ByWeekDay(ctx, weekDay)
	if err != nil {
		return nil, fmt.Errorf("failed to load habits for week day %d: %w", weekDay, err)
	}

	possible := make([]*model.Habit, 0, len(candidates))
	for _, h := range candidates {
		if !h.CreatedAt.After(date) {
			possible = append(possible, h)
		}
	}

	view := &model.DayView{
		PossibleHabits: s.localize(possible),
	}

	day, err := s.dayRepo.ByDate(ctx, dayStart)
	if errors.Is(err, repository.ErrDayNotFound) {
		return view, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load day: %w", err)
	}

	view.CompletedHabits, err = s.dayHabitRepo.HabitIDs(ctx, day.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load completed habits: %w", err)
	}

	return view, nil
}

// Toggle flips the completion of a habit for today and reports whether it is
// now completed. Whether the habit applies today is not checked.
func (s *HabitService) Toggle(ctx context.Context, habitID string) (bool, error) {
	habitID, err := validation.HabitID(habitID)
	if err != nil {
		return false, err
	}

	today := calendar.Today(s.now, s.loc)
	completed, err := s.dayHabitRepo.Toggle(ctx, today, habitID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle habit %s: %w", habitID, err)
	}

	slog.Debug("habit toggled", "habit_id", habitID, "date", today.Format(calendar.DateFormat), "completed", completed)
	return completed, nil
}

// Summary reports, for every recorded day in date order, how many habits were
// completed and how many were possible.
func (s *HabitService) Summary(ctx context.Context) ([]model.SummaryDay, error) {
	days, err := s.dayRepo.Days(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load days: %w", err)
	}

	habits, err := s.habitRepo.Habits(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}

	counts, err := s.dayHabitRepo.CountByDay(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count completions: %w", err)
	}

	summary := make([]model.SummaryDay, 0, len(days))
	for _, day := range days {
		weekDay := calendar.WeekDay(day.Date, s.loc)

		amount := 0
		for _, h := range habits {
			if h.OccursOn(weekDay) && !h.CreatedAt.After(day.Date) {
				amount++
			}
		}

		summary = append(summary, model.SummaryDay{
			ID:        day.ID,
			Date:      day.Date.In(s.loc),
			Completed: float64(counts[day.ID]),
			Amount:    float64(amount),
		})
	}

	return summary, nil
}

func (s *HabitService) localize(habits []*model.Habit) []*model.Habit {
	for _, h := range habits {
		h.CreatedAt = h.CreatedAt.In(s.loc)
	}
	return habits
}
