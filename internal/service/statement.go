package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/notify"
	"fleetrent-backend/internal/storage"
)

var ErrStatementNotFound = errors.New("statement not found")

// Statement is the archived monthly owner statement.
type Statement struct {
	Period      string                `json:"period"`
	Summary     *domain.SummaryReport `json:"summary"`
	Owners      *domain.OwnersIncome  `json:"owners"`
	GeneratedAt time.Time             `json:"generatedAt"`
	Key         string                `json:"-"`
	DownloadURL string                `json:"-"`
}

type ArchivedStatement struct {
	Body io.ReadCloser
	Size int64
}

type statementService struct {
	monitoring MonitoringService
	ledger     GuaranteeLedger
	archive    storage.ReportArchive
	mailer     notify.Mailer
	recipients []string
	now        func() time.Time
}

func NewStatementService(
	monitoring MonitoringService,
	ledger GuaranteeLedger,
	archive storage.ReportArchive,
	mailer notify.Mailer,
	recipients []string,
) StatementService {
	return &statementService{
		monitoring: monitoring,
		ledger:     ledger,
		archive:    archive,
		mailer:     mailer,
		recipients: recipients,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// StatementKey is the archive key of a month.
func StatementKey(year, month int) string {
	return fmt.Sprintf("statements/%04d-%02d.json", year, month)
}

func (s *statementService) MonthlyStatement(ctx context.Context, year, month int) (*Statement, error) {
	logger.EnterMethod("statementService.MonthlyStatement", "year", year, "month", month)

	st := &Statement{
		Period:      fmt.Sprintf("%04d-%02d", year, month),
		GeneratedAt: s.now(),
		Key:         StatementKey(year, month),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.Summary, err = s.monitoring.FindIncomeByMonth(gctx, year, month)
		return
	})
	g.Go(func() (err error) {
		st.Owners, err = s.monitoring.FindIncomeByPersentage(gctx)
		return
	})
	if err := g.Wait(); err != nil {
		logger.ExitMethodWithError("statementService.MonthlyStatement", err, "period", st.Period)
		return nil, err
	}

	body, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		logger.ExitMethodWithError("statementService.MonthlyStatement", err, "period", st.Period)
		return nil, fmt.Errorf("marshal statement: %w", err)
	}
	if err := s.archive.Save(ctx, st.Key, bytes.NewReader(body)); err != nil {
		logger.ExitMethodWithError("statementService.MonthlyStatement", err, "period", st.Period)
		return nil, fmt.Errorf("archive statement: %w", err)
	}
	st.DownloadURL = s.archive.DownloadURL(st.Key)

	if len(s.recipients) > 0 {
		msg := notify.Message{
			To:      s.recipients,
			Subject: "Monthly statement " + st.Period,
			Body:    statementBody(st),
		}
		if err := s.mailer.Send(ctx, msg); err != nil {
			logger.ExitMethodWithError("statementService.MonthlyStatement", err, "period", st.Period)
			return nil, fmt.Errorf("send statement: %w", err)
		}
	}

	logger.ExitMethod("statementService.MonthlyStatement", "period", st.Period, "key", st.Key)
	return st, nil
}

func (s *statementService) OpenStatement(ctx context.Context, key string) (*ArchivedStatement, error) {
	exists, size, err := s.archive.Exists(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidKey) {
			return nil, domain.NewValidationError("key", "invalid statement key")
		}
		return nil, fmt.Errorf("stat statement: %w", err)
	}
	if !exists {
		return nil, ErrStatementNotFound
	}

	body, err := s.archive.Open(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrStatementNotFound
		}
		return nil, fmt.Errorf("open statement: %w", err)
	}
	return &ArchivedStatement{Body: body, Size: size}, nil
}

func (s *statementService) RemindDeposits(ctx context.Context) (bool, error) {
	b, err := s.ledger.Breakdown(ctx, nil)
	if err != nil {
		return false, err
	}
	if b.CashPledge.IsZero() && b.CardPledge.IsZero() {
		logger.InfoContext(ctx, "No outstanding deposits")
		return false, nil
	}
	if len(s.recipients) == 0 {
		logger.WarnContext(ctx, "Outstanding deposits but no report recipients configured")
		return false, nil
	}

	var sb strings.Builder
	sb.WriteString("Guarantees not yet returned to customers:\n\n")
	fmt.Fprintf(&sb, "Cash: %s\n", b.CashPledge.StringFixed(2))
	fmt.Fprintf(&sb, "Card: %s\n", b.CardPledge.StringFixed(2))
	fmt.Fprintf(&sb, "\nOf which in duty: %s (cash %s, card %s)\n",
		b.Duty.StringFixed(2), b.CashDuty.StringFixed(2), b.CardDuty.StringFixed(2))

	msg := notify.Message{To: s.recipients, Subject: "Outstanding deposits", Body: sb.String()}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return false, fmt.Errorf("send deposit reminder: %w", err)
	}
	return true, nil
}

func statementBody(st *Statement) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Statement for %s\n\n", st.Period)
	if sum := st.Summary; sum != nil {
		fmt.Fprintf(&sb, "Rent income:   %s\n", sum.RentIncome.StringFixed(2))
		if sum.RentIncomeCash != nil && sum.RentIncomeCard != nil {
			fmt.Fprintf(&sb, "  cash:        %s\n", sum.RentIncomeCash.StringFixed(2))
			fmt.Fprintf(&sb, "  card:        %s\n", sum.RentIncomeCard.StringFixed(2))
		}
		fmt.Fprintf(&sb, "Other income:  %s\n", sum.Income.StringFixed(2))
		fmt.Fprintf(&sb, "Outcome:       %s\n", sum.Outcome.StringFixed(2))
		fmt.Fprintf(&sb, "Total:         %s\n\n", sum.Total.StringFixed(2))
	}
	if o := st.Owners; o != nil {
		sb.WriteString("Owner balances to date:\n")
		fmt.Fprintf(&sb, "  admin:       %s\n", o.AdminIncome.StringFixed(2))
		fmt.Fprintf(&sb, "  investor:    %s\n", o.InvestorIncome.StringFixed(2))
		fmt.Fprintf(&sb, "  partner:     %s\n", o.PartnerIncome.StringFixed(2))
	}
	if st.DownloadURL != "" {
		fmt.Fprintf(&sb, "\nFull statement: %s\n", st.DownloadURL)
	}
	return sb.String()
}
