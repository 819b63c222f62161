package utils

import (
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
)

// DateLayout is the calendar date format used for history buckets and query params.
const DateLayout = "2006-01-02"

// Window is a half-open time range [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// MonthWindow returns [first day of month, first day of next month) in UTC.
func MonthWindow(year, month int) (Window, error) {
	if month < 1 || month > 12 {
		return Window{}, domain.NewValidationError("month", fmt.Sprintf("month must be between 1 and 12, got %d", month))
	}
	if year < 1 {
		return Window{}, domain.NewValidationError("year", fmt.Sprintf("invalid year %d", year))
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return Window{From: from, To: from.AddDate(0, 1, 0)}, nil
}

// PreviousMonth returns the year and month before the one containing now.
func PreviousMonth(now time.Time) (int, int) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, -1, 0)
	return prev.Year(), int(prev.Month())
}

// DateKey returns the UTC calendar date of t as yyyy-mm-dd.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// AddDays moves t forward by n calendar days.
func AddDays(t time.Time, n int32) time.Time {
	return t.AddDate(0, 0, int(n))
}

// ParseDate parses a yyyy-mm-dd or RFC 3339 value into UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", s)
	}
	return t, nil
}
