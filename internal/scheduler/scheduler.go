package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"fleetrent-backend/internal/jobs"
	"fleetrent-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler

	// Statement of the previous month
	if _, err := s.cron.AddFunc(cfg.MonthlyStatements, func() { _ = s.jobs.MonthlyStatements() }); err != nil {
		logger.Error("Failed to register MonthlyStatements job", "error", err, "schedule", cfg.MonthlyStatements)
		return fmt.Errorf("register %s: %w", jobs.JobMonthlyStatements, err)
	}

	// Outstanding deposits
	if _, err := s.cron.AddFunc(cfg.DepositReminder, func() { _ = s.jobs.DepositReminder() }); err != nil {
		logger.Error("Failed to register DepositReminder job", "error", err, "schedule", cfg.DepositReminder)
		return fmt.Errorf("register %s: %w", jobs.JobDepositReminder, err)
	}

	logger.Info("All cron jobs registered successfully", "count", len(s.cron.Entries()))
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// Entries returns the next run of every registered job.
func (s *Scheduler) Entries() []time.Time {
	entries := s.cron.Entries()
	next := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		next = append(next, e.Schedule.Next(time.Now().UTC()))
	}
	return next
}
