package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "Drink water", want: "Drink water"},
		{name: "trimmed", input: "  Read 10 pages \n", want: "Read 10 pages"},
		{name: "nfc normalized", input: "Beber a\u0301gua", want: "Beber \u00e1gua"},
		{name: "empty", input: "", wantErr: true},
		{name: "only spaces", input: "   ", wantErr: true},
		{name: "max length", input: strings.Repeat("a", MaxTitleLength), want: strings.Repeat("a", MaxTitleLength)},
		{name: "too long", input: strings.Repeat("a", MaxTitleLength+1), wantErr: true},
		{name: "multibyte counted as runes", input: strings.Repeat("á", MaxTitleLength), want: strings.Repeat("á", MaxTitleLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Title(tt.input)
			if tt.wantErr {
				if !IsValidationError(err) {
					t.Fatalf("Title(%q) error = %v, want validation error", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Title(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Title(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWeekDays(t *testing.T) {
	tests := []struct {
		name      string
		input     []int
		want      []int
		wantField string
	}{
		{name: "valid", input: []int{1, 3}, want: []int{1, 3}},
		{name: "full week", input: []int{0, 1, 2, 3, 4, 5, 6}, want: []int{0, 1, 2, 3, 4, 5, 6}},
		{name: "empty", input: []int{}, want: []int{}},
		{name: "missing", input: nil, wantField: "weekDays"},
		{name: "duplicates collapsed", input: []int{3, 1, 3, 1}, want: []int{3, 1}},
		{name: "seven is out of range", input: []int{7}, wantField: "weekDays[0]"},
		{name: "negative", input: []int{0, -1}, wantField: "weekDays[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WeekDays(tt.input)
			if tt.wantField != "" {
				var vErr *Error
				if !errors.As(err, &vErr) {
					t.Fatalf("WeekDays(%v) error = %v, want validation error", tt.input, err)
				}
				if vErr.Field != tt.wantField {
					t.Errorf("field = %q, want %q", vErr.Field, tt.wantField)
				}
				return
			}
			if err != nil {
				t.Fatalf("WeekDays(%v) unexpected error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WeekDays(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHabitID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "canonical", input: "3fa85f64-5717-4562-b3fc-2c963f66afa6", want: "3fa85f64-5717-4562-b3fc-2c963f66afa6"},
		{name: "uppercase", input: "3FA85F64-5717-4562-B3FC-2C963F66AFA6", want: "3fa85f64-5717-4562-b3fc-2c963f66afa6"},
		{name: "empty", input: "", wantErr: true},
		{name: "not a uuid", input: "not-a-uuid", wantErr: true},
		{name: "no hyphens", input: "3fa85f6457174562b3fc2c963f66afa6", wantErr: true},
		{name: "braced", input: "{3fa85f64-5717-4562-b3fc-2c963f66afa6}", wantErr: true},
		{name: "bad hex", input: "3fa85f64-5717-4562-b3fc-2c963f66afzz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HabitID(tt.input)
			if tt.wantErr {
				if !IsValidationError(err) {
					t.Fatalf("HabitID(%q) error = %v, want validation error", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("HabitID(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("HabitID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	_, err := WeekDays([]int{9})
	wrapped := fmt.Errorf("create habit: %w", err)
	if !IsValidationError(wrapped) {
		t.Error("IsValidationError() = false for wrapped validation error")
	}
	if IsValidationError(errors.New("disk full")) {
		t.Error("IsValidationError() = true for plain error")
	}
}
