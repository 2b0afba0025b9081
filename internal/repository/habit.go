package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/habits/internal/db"
	"github.com/templui/habits/internal/model"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
)

type HabitRepository interface {
	Create(ctx context.Context, habit *model.Habit) error
	ByID(ctx context.Context, habitID string) (*model.Habit, error)
	ByWeekDay(ctx context.Context, weekDay int) ([]*model.Habit, error)
	Habits(ctx context.Context, titlePrefix string) ([]*model.Habit, error)
}

type habitRepository struct {
	db *sqlx.DB
}

func NewHabitRepository(db *sqlx.DB) HabitRepository {
	return &habitRepository{db: db}
}

// Create inserts the habit and one row per recurrence day in a single
// transaction.
func (r *habitRepository) Create(ctx context.Context, habit *model.Habit) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO habits (id, title, created_at) VALUES ($1, $2, $3)`,
			habit.ID,
			habit.Title,
			habit.CreatedAt.UTC(),
		)
		if err != nil {
			return err
		}

		query := `INSERT INTO habit_week_days (id, habit_id, week_day) VALUES ($1, $2, $3)`
		for _, weekDay := range habit.WeekDays {
			_, err := tx.ExecContext(ctx, query, uuid.New().String(), habit.ID, weekDay)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *habitRepository) ByID(ctx context.Context, habitID string) (*model.Habit, error) {
	habit := &model.Habit{}
	query := `SELECT id, title, created_at FROM habits WHERE id = $1`

	err := r.db.GetContext(ctx, habit, query, habitID)
	if err == sql.ErrNoRows {
		return nil, ErrHabitNotFound
	}
	if err != nil {
		return nil, err
	}

	err = r.attachWeekDays(ctx, []*model.Habit{habit})
	if err != nil {
		return nil, err
	}

	return habit, nil
}

// ByWeekDay returns every habit that recurs on weekDay, regardless of when it
// was created.
func (r *habitRepository) ByWeekDay(ctx context.Context, weekDay int) ([]*model.Habit, error) {
	var habits []*model.Habit
	query := `SELECT h.id, h.title, h.created_at
	          FROM habits h
	          JOIN habit_week_days w ON w.habit_id = h.id
	          WHERE w.week_day = $1
	          ORDER BY h.created_at ASC, h.title ASC`

	err := r.db.SelectContext(ctx, &habits, query, weekDay)
	if err != nil {
		return nil, err
	}

	err = r.attachWeekDays(ctx, habits)
	if err != nil {
		return nil, err
	}

	return habits, nil
}

// Habits lists all habits, optionally only those whose title starts with
// titlePrefix.
func (r *habitRepository) Habits(ctx context.Context, titlePrefix string) ([]*model.Habit, error) {
	var habits []*model.Habit

	query := `SELECT id, title, created_at FROM habits`
	var args []any
	if titlePrefix != "" {
		query += ` WHERE title LIKE $1 ESCAPE '\'`
		args = append(args, escapeLike(titlePrefix)+"%")
	}
	query += ` ORDER BY created_at ASC, title ASC`

	err := r.db.SelectContext(ctx, &habits, query, args...)
	if err != nil {
		return nil, err
	}

	err = r.attachWeekDays(ctx, habits)
	if err != nil {
		return nil, err
	}

	return habits, nil
}

func (r *habitRepository) attachWeekDays(ctx context.Context, habits []*model.Habit) error {
	if len(habits) == 0 {
		return nil
	}

	byID := make(map[string]*model.Habit, len(habits))
	ids := make([]string, 0, len(habits))
	for _, h := range habits {
		h.WeekDays = []int{}
		byID[h.ID] = h
		ids = append(ids, h.ID)
	}

	query, args, err := sqlx.In(
		`SELECT id, habit_id, week_day FROM habit_week_days WHERE habit_id IN (?) ORDER BY week_day ASC`,
		ids,
	)
	if err != nil {
		return err
	}

	var rows []model.HabitWeekDay
	err = r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if h, ok := byID[row.HabitID]; ok {
			h.WeekDays = append(h.WeekDays, row.WeekDay)
		}
	}

	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
