package jobs

import (
	"context"

	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/utils"
)

// MonthlyStatements archives and mails the owner statement of the previous
// calendar month.
func (jr *JobRunner) MonthlyStatements() error {
	return jr.runWithRecovery(JobMonthlyStatements, func(ctx context.Context) error {
		year, month := utils.PreviousMonth(jr.now().UTC())

		st, err := jr.statements.MonthlyStatement(ctx, year, month)
		if err != nil {
			return err
		}
		logger.Info("Monthly statement archived", "period", st.Period, "key", st.Key, "url", st.DownloadURL)
		return nil
	})
}

// DepositReminder mails the outstanding pledge buckets when any is non-zero.
func (jr *JobRunner) DepositReminder() error {
	return jr.runWithRecovery(JobDepositReminder, func(ctx context.Context) error {
		sent, err := jr.statements.RemindDeposits(ctx)
		if err != nil {
			return err
		}
		if !sent {
			logger.Info("No outstanding deposits, reminder skipped")
		}
		return nil
	})
}
