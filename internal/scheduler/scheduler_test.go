package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/jobs"
)

func runner(monthly, daily string) *jobs.JobRunner {
	cfg := &config.Config{}
	cfg.Scheduler.MonthlyStatements = monthly
	cfg.Scheduler.DepositReminder = daily
	return jobs.NewJobRunner(nil, nil, cfg)
}

func TestNewScheduler(t *testing.T) {
	t.Run("Registers both jobs", func(t *testing.T) {
		s, err := NewScheduler(runner("0 0 6 1 * *", "0 0 8 * * *"))
		require.NoError(t, err)

		next := s.Entries()
		require.Len(t, next, 2)
		for _, n := range next {
			assert.True(t, n.After(time.Now()))
		}
	})

	t.Run("Monthly job runs on the first", func(t *testing.T) {
		s, err := NewScheduler(runner("0 0 6 1 * *", "0 0 8 * * *"))
		require.NoError(t, err)

		days := map[int]bool{}
		for _, n := range s.Entries() {
			days[n.Day()] = true
		}
		assert.True(t, days[1])
	})

	t.Run("Invalid schedule", func(t *testing.T) {
		_, err := NewScheduler(runner("every month", "0 0 8 * * *"))
		assert.Error(t, err)

		// five fields are rejected when seconds are required
		_, err = NewScheduler(runner("0 6 1 * *", "0 0 8 * * *"))
		assert.Error(t, err)
	})

	t.Run("Start and stop", func(t *testing.T) {
		s, err := NewScheduler(runner("0 0 6 1 * *", "0 0 8 * * *"))
		require.NoError(t, err)
		s.Start()
		s.Stop()
	})
}
