package utils

import (
	"testing"
	"time"

	"fleetrent-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthWindow(t *testing.T) {
	t.Run("March", func(t *testing.T) {
		w, err := MonthWindow(2024, 3)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), w.From)
		assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), w.To)
	})

	t.Run("December rolls into next year", func(t *testing.T) {
		w, err := MonthWindow(2023, 12)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), w.To)
	})

	t.Run("Half open", func(t *testing.T) {
		w, err := MonthWindow(2024, 3)
		require.NoError(t, err)
		assert.True(t, w.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
		assert.True(t, w.Contains(time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)))
		assert.False(t, w.Contains(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
		assert.False(t, w.Contains(time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)))
	})

	t.Run("Invalid month", func(t *testing.T) {
		for _, m := range []int{0, 13, -1} {
			_, err := MonthWindow(2024, m)
			assert.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		}
	})
}

func TestPreviousMonth(t *testing.T) {
	y, m := PreviousMonth(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, 2023, y)
	assert.Equal(t, 12, m)

	y, m = PreviousMonth(time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, 2024, y)
	assert.Equal(t, 2, m)
}

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 01:00 at +3 is still the previous day in UTC
	assert.Equal(t, "2024-03-09", DateKey(time.Date(2024, 3, 10, 1, 0, 0, 0, loc)))
	assert.Equal(t, "2024-03-10", DateKey(time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)))
}

func TestParseDate(t *testing.T) {
	t.Run("Date only", func(t *testing.T) {
		d, err := ParseDate("2024-01-15")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("RFC3339", func(t *testing.T) {
		d, err := ParseDate("2024-01-15T10:30:00+02:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC), d)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := ParseDate("2024/01/15")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "expected yyyy-mm-dd")
	})
}

func TestAddDays(t *testing.T) {
	start := time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), AddDays(start, 3))
}
