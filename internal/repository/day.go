package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/habits/internal/model"
)

var (
	ErrDayNotFound = errors.New("day not found")
)

type DayRepository interface {
	ByDate(ctx context.Context, date time.Time) (*model.Day, error)
	Days(ctx context.Context) ([]*model.Day, error)
}

type dayRepository struct {
	db *sqlx.DB
}

func NewDayRepository(db *sqlx.DB) DayRepository {
	return &dayRepository{db: db}
}

// ByDate looks up the day row for an already normalized date.
func (r *dayRepository) ByDate(ctx context.Context, date time.Time) (*model.Day, error) {
	day := &model.Day{}
	query := `SELECT id, date FROM days WHERE date = $1`

	err := r.db.GetContext(ctx, day, query, date.UTC())
	if err == sql.ErrNoRows {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, err
	}

	return day, nil
}

func (r *dayRepository) Days(ctx context.Context) ([]*model.Day, error) {
	var days []*model.Day
	query := `SELECT id, date FROM days ORDER BY date ASC`

	err := r.db.SelectContext(ctx, &days, query)
	if err != nil {
		return nil, err
	}

	return days, nil
}
