// Package calendar holds the day arithmetic shared by the day view, toggling
// and the summary: where a day starts and which weekday it is.
package calendar

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the calendar date layout used in query parameters and digests.
const DateFormat = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// Clock returns the current time. Services take one so tests can pin "today".
type Clock func() time.Time

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// WeekDay returns 0 (Sunday) through 6 (Saturday) for t's calendar day in loc.
func WeekDay(t time.Time, loc *time.Location) int {
	return int(StartOfDay(t, loc).Weekday())
}

// Today is StartOfDay of the clock's current time.
func Today(now Clock, loc *time.Location) time.Time {
	return StartOfDay(now(), loc)
}

// dateTimeLayouts are accepted for timestamps without a UTC offset. They are
// read in the caller's location.
var dateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseTimestamp parses the date query parameter.
//
// Accepted forms:
//   - all digits: milliseconds since the Unix epoch
//   - RFC 3339 with offset or Z, optional fractional seconds
//   - a date-time without offset, read in loc
//   - YYYY-MM-DD, read as UTC midnight
func ParseTimestamp(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}

	if isDigits(value) {
		ms, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return time.Time{}, ErrInvalidDate
		}
		return time.UnixMilli(ms).In(loc), nil
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	// A bare date is UTC midnight, so west of UTC it lands on the previous
	// local day.
	if t, err := time.Parse(DateFormat, value); err == nil {
		return t, nil
	}

	return time.Time{}, ErrInvalidDate
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
