package service

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/metrics"
	"fleetrent-backend/internal/repository"
	"fleetrent-backend/internal/revenue"
	"fleetrent-backend/internal/utils"
)

var (
	settledStatuses = []domain.RentStatus{domain.RentStatusPaid, domain.RentStatusDuty}
	paidStatuses    = []domain.RentStatus{domain.RentStatusPaid}
)

type monitoringService struct {
	reportRepo repository.ReportRepository
	incomes    repository.EntryRepository
	outcomes   repository.EntryRepository
	ledger     GuaranteeLedger
	metrics    *metrics.Metrics
}

// NewMonitoringService builds the reporting engine. m may be nil.
func NewMonitoringService(
	reportRepo repository.ReportRepository,
	incomes repository.EntryRepository,
	outcomes repository.EntryRepository,
	ledger GuaranteeLedger,
	m *metrics.Metrics,
) MonitoringService {
	return &monitoringService{
		reportRepo: reportRepo,
		incomes:    incomes,
		outcomes:   outcomes,
		ledger:     ledger,
		metrics:    m,
	}
}

// FindRents counts the settled rents visible in the page window.
func (s *monitoringService) FindRents(ctx context.Context, page, pageSize int) (count int64, err error) {
	defer func(start time.Time) { s.metrics.ObserveReport("rents", start, err) }(time.Now())
	p := utils.NormalizePage(page, pageSize)

	count, err = s.reportRepo.CountRents(ctx, repository.RentQuery{
		Statuses: settledStatuses,
		Order:    repository.OrderByID,
		Skip:     p.Skip(),
		Take:     p.Take(),
	})
	if err != nil {
		return 0, queryError(ctx, "count rents", err)
	}
	return count, nil
}

func (s *monitoringService) FindIncome(ctx context.Context, page, pageSize int) (report *domain.SummaryReport, err error) {
	defer func(start time.Time) { s.metrics.ObserveReport("income", start, err) }(time.Now())
	p := utils.NormalizePage(page, pageSize)
	logger.DebugContext(ctx, "Building income report", "page", p.Number, "pageSize", p.Size)

	window := repository.EntryQuery{Skip: p.Skip(), Take: p.Take()}
	var (
		rents           []domain.Rent
		income, outcome repository.SumResult
		guarantees      domain.GuaranteeBreakdown
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rents, err = s.reportRepo.ListRents(gctx, repository.RentQuery{
			Statuses: paidStatuses,
			Order:    repository.OrderByID,
			Skip:     p.Skip(),
			Take:     p.Take(),
		})
		return err
	})
	g.Go(func() error {
		var err error
		income, err = s.incomes.Sum(gctx, window)
		return err
	})
	g.Go(func() error {
		var err error
		outcome, err = s.outcomes.Sum(gctx, window)
		return err
	})
	g.Go(func() error {
		var err error
		guarantees, err = s.ledger.Breakdown(gctx, &p)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, queryError(ctx, "income report", err)
	}

	rentIncome := decimal.Zero
	for _, r := range revenue.ReconstructAll(rents) {
		rentIncome = rentIncome.Add(r.Amount)
	}
	return summarize(revenue.SumOrZero(income), rentIncome, revenue.SumOrZero(outcome), guarantees), nil
}

// FindIncomeByPersentage returns each role's balance over all records.
func (s *monitoringService) FindIncomeByPersentage(ctx context.Context) (result *domain.OwnersIncome, err error) {
	defer func(start time.Time) { s.metrics.ObserveReport("owners_income", start, err) }(time.Now())

	var rents []domain.Rent
	incomes := make([]repository.SumResult, len(domain.Owners))
	outcomes := make([]repository.SumResult, len(domain.Owners))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rents, err = s.reportRepo.ListRents(gctx, repository.RentQuery{Statuses: paidStatuses})
		return err
	})
	for i, owner := range domain.Owners {
		q := repository.EntryQuery{Owner: &owner}
		g.Go(func() error {
			var err error
			incomes[i], err = s.incomes.Sum(gctx, q)
			return err
		})
		g.Go(func() error {
			var err error
			outcomes[i], err = s.outcomes.Sum(gctx, q)
			return err
		})
	}
	if err = g.Wait(); err != nil {
		return nil, queryError(ctx, "owners income report", err)
	}

	shares := revenue.RoleIncomes(revenue.ReconstructAll(rents))
	balance := func(i int, owner domain.Owner) decimal.Decimal {
		return revenue.SumOrZero(incomes[i]).Add(shares.Of(owner)).Sub(revenue.SumOrZero(outcomes[i]))
	}
	return &domain.OwnersIncome{
		AdminIncome:    balance(0, domain.OwnerAdmin),
		InvestorIncome: balance(1, domain.OwnerInvestor),
		PartnerIncome:  balance(2, domain.OwnerPartner),
	}, nil
}

func (s *monitoringService) FindHistory(ctx context.Context, page, pageSize int) (report *domain.HistoryReport, err error) {
	defer func(start time.Time) { s.metrics.ObserveReport("history", start, err) }(time.Now())
	p := utils.NormalizePage(page, pageSize)

	var (
		rentCount, incomeCount, outcomeCount int64
		rents                                []domain.Rent
		incomes, outcomes                    []domain.Entry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rentCount, err = s.reportRepo.CountRents(gctx, repository.RentQuery{Statuses: paidStatuses})
		return err
	})
	g.Go(func() error {
		var err error
		incomeCount, err = s.incomes.Count(gctx, repository.EntryQuery{})
		return err
	})
	g.Go(func() error {
		var err error
		outcomeCount, err = s.outcomes.Count(gctx, repository.EntryQuery{})
		return err
	})
	g.Go(func() error {
		var err error
		rents, err = s.reportRepo.ListRents(gctx, repository.RentQuery{
			Statuses: paidStatuses,
			Order:    repository.OrderByEndDateDesc,
			Skip:     p.Skip(),
			Take:     p.Take(),
		})
		return err
	})
	// One window per source; roles are split in memory.
	window := repository.EntryQuery{Skip: p.Skip(), Take: p.Take()}
	g.Go(func() error {
		var err error
		incomes, err = s.incomes.List(gctx, window)
		return err
	})
	g.Go(func() error {
		var err error
		outcomes, err = s.outcomes.List(gctx, window)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, queryError(ctx, "history report", err)
	}

	rents = revenue.ReconstructAll(rents)
	report = &domain.HistoryReport{
		TotalPages: p.TotalPages(utils.MaxCount(rentCount, incomeCount, outcomeCount)),
	}
	for _, owner := range domain.Owners {
		history, total := roleTimeline(owner, rents, incomes, outcomes)
		switch owner {
		case domain.OwnerAdmin:
			report.History.Admin, report.Total.Admin = history, total
		case domain.OwnerInvestor:
			report.History.Investor, report.Total.Investor = history, total
		case domain.OwnerPartner:
			report.History.Partner, report.Total.Partner = history, total
		}
	}
	return report, nil
}

// roleTimeline merges the role's entries of the page and its rent shares into
// date buckets, newest first.
func roleTimeline(owner domain.Owner, rents []domain.Rent, incomes, outcomes []domain.Entry) (domain.RoleHistory, domain.RoleTotal) {
	rows := make([]domain.HistoryEntry, 0, len(rents)+len(incomes)+len(outcomes))
	total := domain.RoleTotal{Income: decimal.Zero, Outcome: decimal.Zero}

	for _, e := range incomes {
		if e.Owner != owner {
			continue
		}
		rows = append(rows, entryRow(domain.HistoryEntryIncome, e))
		total.Income = total.Income.Add(e.Amount)
	}
	for _, e := range outcomes {
		if e.Owner != owner {
			continue
		}
		rows = append(rows, entryRow(domain.HistoryEntryOutcome, e))
		total.Outcome = total.Outcome.Add(e.Amount)
	}
	for i := range rents {
		r := rents[i]
		share := r.OwnerIncome(owner)
		rows = append(rows, domain.HistoryEntry{
			Type:      domain.HistoryEntryRent,
			ID:        r.ID,
			Owner:     owner,
			Amount:    share,
			CreatedAt: r.EndDate,
			Rent:      &r,
		})
		total.Income = total.Income.Add(share)
	}

	slices.SortStableFunc(rows, func(a, b domain.HistoryEntry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	days := []domain.DailySummary{}
	for _, row := range rows {
		key := utils.DateKey(row.CreatedAt)
		if len(days) == 0 || days[len(days)-1].Date != key {
			days = append(days, domain.DailySummary{
				Date:     key,
				Income:   decimal.Zero,
				Outcome:  decimal.Zero,
				Rent:     decimal.Zero,
				Detailed: []domain.HistoryEntry{},
			})
		}
		day := &days[len(days)-1]
		switch row.Type {
		case domain.HistoryEntryIncome:
			day.Income = day.Income.Add(row.Amount)
		case domain.HistoryEntryOutcome:
			day.Outcome = day.Outcome.Add(row.Amount)
		case domain.HistoryEntryRent:
			day.Rent = day.Rent.Add(row.Amount)
		}
		day.Detailed = append(day.Detailed, row)
	}
	return domain.RoleHistory{DailySummary: days}, total
}

func entryRow(typ domain.HistoryEntryType, e domain.Entry) domain.HistoryEntry {
	return domain.HistoryEntry{
		Type:        typ,
		ID:          e.ID,
		Owner:       e.Owner,
		Comment:     e.Comment,
		Amount:      e.Amount,
		PaymentType: e.PaymentType,
		CreatedAt:   e.CreatedAt,
	}
}

// FindRentsByMonth counts settled rents started in the month whose guarantee
// was handed back.
func (s *monitoringService) FindRentsByMonth(ctx context.Context, year, month int) (count int64, err error) {
	defer func(start time.Time) { s.metrics.ObserveReport("rents_by_month", start, err) }(time.Now())

	w, err := utils.MonthWindow(year, month)
	if err != nil {
		return 0, err
	}
	returned := true
	count, err = s.reportRepo.CountRents(ctx, repository.RentQuery{
		Statuses:          settledStatuses,
		GuaranteeReturned: &returned,
		StartFrom:         &w.From,
		StartTo:           &w.To,
	})
	if err != nil {
		return 0, queryError(ctx, "count rents by month", err)
	}
	return count, nil
}

func (s *monitoringService) FindIncomeByMonth(ctx context.Context, year, month int) (report *domain.SummaryReport, err error) {
	defer func(start time.Time) { s.metrics.ObserveReport("income_by_month", start, err) }(time.Now())

	w, err := utils.MonthWindow(year, month)
	if err != nil {
		return nil, err
	}

	cashQ := repository.InstrumentQuery{From: w.From, To: w.To, PaymentType: domain.PaymentTypeCash}
	cardQ := repository.InstrumentQuery{From: w.From, To: w.To, PaymentType: domain.PaymentTypeCard}
	entryQ := repository.EntryQuery{From: &w.From, To: &w.To}

	var (
		rentCash, rentCard, extCash, extCard repository.SumResult
		income, outcome                      repository.SumResult
		guarantees                           domain.GuaranteeBreakdown
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { rentCash, err = s.reportRepo.SumRentIncome(gctx, cashQ); return })
	g.Go(func() (err error) { rentCard, err = s.reportRepo.SumRentIncome(gctx, cardQ); return })
	g.Go(func() (err error) { extCash, err = s.reportRepo.SumExtensionIncome(gctx, cashQ); return })
	g.Go(func() (err error) { extCard, err = s.reportRepo.SumExtensionIncome(gctx, cardQ); return })
	g.Go(func() (err error) { income, err = s.incomes.Sum(gctx, entryQ); return })
	g.Go(func() (err error) { outcome, err = s.outcomes.Sum(gctx, entryQ); return })
	g.Go(func() (err error) { guarantees, err = s.ledger.Breakdown(gctx, nil); return })
	if err = g.Wait(); err != nil {
		return nil, queryError(ctx, "income by month report", err)
	}

	cash := revenue.SumOrZero(rentCash).Add(revenue.SumOrZero(extCash))
	card := revenue.SumOrZero(rentCard).Add(revenue.SumOrZero(extCard))

	report = summarize(revenue.SumOrZero(income), cash.Add(card), revenue.SumOrZero(outcome), guarantees)
	report.RentIncomeCash = &cash
	report.RentIncomeCard = &card
	return report, nil
}

func summarize(income, rentIncome, outcome decimal.Decimal, guarantees domain.GuaranteeBreakdown) *domain.SummaryReport {
	totalIncome := income.Add(rentIncome)
	return &domain.SummaryReport{
		Income:             income,
		RentIncome:         rentIncome,
		TotalIncome:        totalIncome,
		Outcome:            outcome,
		Total:              totalIncome.Sub(outcome),
		GuaranteeBreakdown: guarantees,
	}
}
