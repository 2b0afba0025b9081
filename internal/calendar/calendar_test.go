package calendar

import (
	"errors"
	"testing"
	"time"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %q: %v", name, err)
	}
	return loc
}

func TestStartOfDay(t *testing.T) {
	saoPaulo := mustLoad(t, "America/Sao_Paulo")

	tests := []struct {
		name string
		in   time.Time
		loc  *time.Location
		want time.Time
	}{
		{
			name: "utc afternoon",
			in:   time.Date(2024, 1, 7, 15, 30, 0, 0, time.UTC),
			loc:  time.UTC,
			want: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "already midnight",
			in:   time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
			loc:  time.UTC,
			want: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "utc instant falls on previous local day",
			in:   time.Date(2024, 1, 7, 1, 0, 0, 0, time.UTC),
			loc:  saoPaulo,
			want: time.Date(2024, 1, 6, 0, 0, 0, 0, saoPaulo),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfDay(tt.in, tt.loc)
			if !got.Equal(tt.want) {
				t.Errorf("StartOfDay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeekDay(t *testing.T) {
	saoPaulo := mustLoad(t, "America/Sao_Paulo")

	tests := []struct {
		name string
		in   time.Time
		loc  *time.Location
		want int
	}{
		{name: "sunday", in: time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC), loc: time.UTC, want: 0},
		{name: "monday", in: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), loc: time.UTC, want: 1},
		{name: "saturday", in: time.Date(2024, 1, 6, 23, 59, 0, 0, time.UTC), loc: time.UTC, want: 6},
		{name: "location decides the day", in: time.Date(2024, 1, 7, 1, 0, 0, 0, time.UTC), loc: saoPaulo, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekDay(tt.in, tt.loc); got != tt.want {
				t.Errorf("WeekDay() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToday(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 1, 7, 18, 45, 0, 0, time.UTC) }
	want := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	if got := Today(now, time.UTC); !got.Equal(want) {
		t.Errorf("Today() = %v, want %v", got, want)
	}
}

func TestParseTimestamp(t *testing.T) {
	saoPaulo := mustLoad(t, "America/Sao_Paulo")

	tests := []struct {
		name    string
		value   string
		loc     *time.Location
		want    time.Time
		wantErr bool
	}{
		{
			name:  "rfc3339 utc",
			value: "2024-01-07T03:00:00.000Z",
			loc:   time.UTC,
			want:  time.Date(2024, 1, 7, 3, 0, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 with offset",
			value: "2024-01-07T10:00:00-03:00",
			loc:   time.UTC,
			want:  time.Date(2024, 1, 7, 13, 0, 0, 0, time.UTC),
		},
		{
			name:  "date only is utc midnight",
			value: "2024-01-07",
			loc:   saoPaulo,
			want:  time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "date-time without offset uses location",
			value: "2024-01-07T08:30:00",
			loc:   saoPaulo,
			want:  time.Date(2024, 1, 7, 8, 30, 0, 0, saoPaulo),
		},
		{
			name:  "epoch milliseconds",
			value: "1704585600000",
			loc:   time.UTC,
			want:  time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		},
		{name: "empty", value: "", loc: time.UTC, wantErr: true},
		{name: "garbage", value: "next tuesday", loc: time.UTC, wantErr: true},
		{name: "negative number", value: "-5", loc: time.UTC, wantErr: true},
		{name: "impossible date", value: "2024-02-30", loc: time.UTC, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.value, tt.loc)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Fatalf("ParseTimestamp(%q) error = %v, want ErrInvalidDate", tt.value, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) unexpected error: %v", tt.value, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseTimestampDateOnlyWestOfUTC(t *testing.T) {
	saoPaulo := mustLoad(t, "America/Sao_Paulo")

	got, err := ParseTimestamp("2024-01-07", saoPaulo)
	if err != nil {
		t.Fatalf("ParseTimestamp() unexpected error: %v", err)
	}

	day := StartOfDay(got, saoPaulo)
	if want := time.Date(2024, 1, 6, 0, 0, 0, 0, saoPaulo); !day.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", day, want)
	}
	if wd := WeekDay(got, saoPaulo); wd != int(time.Saturday) {
		t.Errorf("WeekDay() = %d, want %d (Saturday)", wd, int(time.Saturday))
	}
}
