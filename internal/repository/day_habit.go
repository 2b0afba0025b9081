package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/habits/internal/db"
)

type DayHabitRepository interface {
	Toggle(ctx context.Context, date time.Time, habitID string) (bool, error)
	HabitIDs(ctx context.Context, dayID string) ([]string, error)
	CountByDay(ctx context.Context) (map[string]int, error)
}

type dayHabitRepository struct {
	db *sqlx.DB
}

func NewDayHabitRepository(db *sqlx.DB) DayHabitRepository {
	return &dayHabitRepository{db: db}
}

// Toggle flips the completion of habitID on the day at date, creating the day
// row if needed. It returns true when the habit ends up completed.
//
// The three steps share one transaction; a concurrent toggle that trips the
// unique constraints on days.date or (day_id, habit_id) reruns the whole
// sequence.
func (r *dayHabitRepository) Toggle(ctx context.Context, date time.Time, habitID string) (bool, error) {
	var completed bool

	err := db.RetryTx(ctx, r.db, func(tx *sqlx.Tx) error {
		completed = false

		_, err := tx.ExecContext(ctx,
			`INSERT INTO days (id, date) VALUES ($1, $2) ON CONFLICT (date) DO NOTHING`,
			uuid.New().String(), date.UTC(),
		)
		if err != nil {
			return err
		}

		var dayID string
		err = tx.GetContext(ctx, &dayID, `SELECT id FROM days WHERE date = $1`, date.UTC())
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			`DELETE FROM day_habits WHERE day_id = $1 AND habit_id = $2`,
			dayID, habitID,
		)
		if err != nil {
			return err
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows > 0 {
			return nil
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO day_habits (id, day_id, habit_id) VALUES ($1, $2, $3)`,
			uuid.New().String(), dayID, habitID,
		)
		if err != nil {
			return err
		}

		completed = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return completed, nil
}

func (r *dayHabitRepository) HabitIDs(ctx context.Context, dayID string) ([]string, error) {
	ids := []string{}
	query := `SELECT habit_id FROM day_habits WHERE day_id = $1 ORDER BY habit_id ASC`

	err := r.db.SelectContext(ctx, &ids, query, dayID)
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// CountByDay returns the number of completions per day id. Days without
// completions are absent from the map.
func (r *dayHabitRepository) CountByDay(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		DayID string `db:"day_id"`
		Count int    `db:"completed"`
	}
	query := `SELECT day_id, COUNT(*) AS completed FROM day_habits GROUP BY day_id`

	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.DayID] = row.Count
	}

	return counts, nil
}
