package jobs

import (
	"context"
	"fmt"
	"time"

	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/metrics"
	"fleetrent-backend/internal/service"
)

const (
	JobMonthlyStatements = "monthly-statements"
	JobDepositReminder   = "deposit-reminder"
)

const jobTimeout = 5 * time.Minute

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	statements service.StatementService
	metrics    *metrics.Metrics
	config     *config.Config
	now        func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(statements service.StatementService, m *metrics.Metrics, cfg *config.Config) *JobRunner {
	return &JobRunner{
		statements: statements,
		metrics:    m,
		config:     cfg,
		now:        time.Now,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// Run executes one job by name, as used by -run-once.
func (jr *JobRunner) Run(name string) error {
	switch name {
	case JobMonthlyStatements:
		return jr.MonthlyStatements()
	case JobDepositReminder:
		return jr.DepositReminder()
	}
	return fmt.Errorf("unknown job %q", name)
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := jr.now()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
			err = fmt.Errorf("job %s panicked: %v", jobName, r)
		}
		jr.metrics.JobRun(jobName, err)
		if err != nil {
			logger.Error("Job failed", "job", jobName, "error", err)
			return
		}
		logger.Info("Job completed", "job", jobName, "duration", time.Since(start))
	}()

	logger.Info("Starting job", "job", jobName)
	return jobFunc(ctx)
}
