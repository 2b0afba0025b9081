package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

const (
	MaxTitleLength = 100
	MinWeekDay     = 0
	MaxWeekDay     = 6
)

// Error is a client input error on a single field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newError(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

// IsValidationError reports whether err carries a validation.Error.
func IsValidationError(err error) bool {
	var vErr *Error
	return errors.As(err, &vErr)
}

// Title trims and NFC-normalizes a habit title and checks its length.
func Title(title string) (string, error) {
	normalized := norm.NFC.String(strings.TrimSpace(title))

	if normalized == "" {
		return "", newError("title", "title is required")
	}

	if utf8.RuneCountInString(normalized) > MaxTitleLength {
		return "", newError("title", fmt.Sprintf("title is too long (max %d characters)", MaxTitleLength))
	}

	return normalized, nil
}

// WeekDays checks every day is within 0..6 and returns the distinct days in
// input order. A nil slice means the field was absent or null and is
// rejected; an empty slice is a habit with no scheduled days.
func WeekDays(days []int) ([]int, error) {
	if days == nil {
		return nil, newError("weekDays", "weekDays is required")
	}

	seen := make(map[int]bool, len(days))
	distinct := make([]int, 0, len(days))

	for i, day := range days {
		if day < MinWeekDay || day > MaxWeekDay {
			return nil, newError(fmt.Sprintf("weekDays[%d]", i),
				fmt.Sprintf("week day must be between %d and %d, got %d", MinWeekDay, MaxWeekDay, day))
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		distinct = append(distinct, day)
	}

	return distinct, nil
}

// HabitID requires the canonical 8-4-4-4-12 UUID form and returns it
// lowercased.
func HabitID(id string) (string, error) {
	if len(id) != 36 {
		return "", newError("id", "id must be a UUID")
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", newError("id", "id must be a UUID")
	}

	return parsed.String(), nil
}
