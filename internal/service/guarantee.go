package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
	"fleetrent-backend/internal/revenue"
	"fleetrent-backend/internal/utils"
)

type guaranteeLedger struct {
	reportRepo repository.ReportRepository
}

func NewGuaranteeLedger(reportRepo repository.ReportRepository) GuaranteeLedger {
	return &guaranteeLedger{reportRepo: reportRepo}
}

func (l *guaranteeLedger) Breakdown(ctx context.Context, window *utils.Page) (domain.GuaranteeBreakdown, error) {
	sums := make([]repository.SumResult, len(revenue.GuaranteeBuckets))

	g, gctx := errgroup.WithContext(ctx)
	for i, bucket := range revenue.GuaranteeBuckets {
		q := bucketQuery(bucket, window)
		g.Go(func() error {
			var err error
			sums[i], err = l.reportRepo.SumGuarantee(gctx, q)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return domain.GuaranteeBreakdown{}, queryError(ctx, "sum guarantees", err)
	}

	var out domain.GuaranteeBreakdown
	for i, bucket := range revenue.GuaranteeBuckets {
		revenue.SetBucket(&out, bucket.Name, revenue.SumOrZero(sums[i]))
	}
	return out, nil
}

// bucketQuery turns a bucket predicate into a rent selection.
func bucketQuery(b revenue.GuaranteeBucket, window *utils.Page) repository.RentQuery {
	q := repository.RentQuery{
		GuaranteeType:     b.Type,
		GuaranteeReturned: b.Returned,
		Order:             repository.OrderByID,
	}
	if b.Status != nil {
		q.Statuses = []domain.RentStatus{*b.Status}
	}
	if window != nil {
		q.Skip = window.Skip()
		q.Take = window.Take()
	}
	return q
}
