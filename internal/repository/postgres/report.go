package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
)

// Money actually received: the full amount once PAID, otherwise what was paid so far.
const receivedExpr = `CASE WHEN status = 'PAID' THEN amount ELSE amount_paid END`

// The instrument follows the same choice as receivedExpr.
const instrumentCond = `((status = 'PAID' AND payment_type = $3) OR (status <> 'PAID' AND amount_paid_payment_type = $3))`

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CountRents(ctx context.Context, q repository.RentQuery) (int64, error) {
	inner, args := rentSelection(q, "id")
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM (`+inner+`) sub`, args...).Scan(&n)
	return n, err
}

func (r *reportRepository) ListRents(ctx context.Context, q repository.RentQuery) ([]domain.Rent, error) {
	query, args := rentSelection(q, rentColumns)

	logger.DatabaseCall("list report rents", query, "skip", q.Skip, "take", q.Take)
	rents, err := queryRents(ctx, r.db, query, args...)
	if err != nil {
		return nil, err
	}
	if err := attachExtensions(ctx, r.db, rents, true); err != nil {
		return nil, err
	}
	logger.DatabaseResult("list report rents", int64(len(rents)), nil)
	return rents, nil
}

func (r *reportRepository) SumGuarantee(ctx context.Context, q repository.RentQuery) (repository.SumResult, error) {
	inner, args := rentSelection(q, "guarantee_amount")
	var sum repository.SumResult
	err := r.db.QueryRowContext(ctx, `SELECT SUM(guarantee_amount) FROM (`+inner+`) sub`, args...).Scan(&sum)
	return sum, err
}

func (r *reportRepository) SumRentIncome(ctx context.Context, q repository.InstrumentQuery) (repository.SumResult, error) {
	query := `SELECT SUM(` + receivedExpr + `) FROM rents
	          WHERE start_date >= $1 AND start_date < $2 AND ` + instrumentCond
	var sum repository.SumResult
	err := r.db.QueryRowContext(ctx, query, q.From, q.To, q.PaymentType).Scan(&sum)
	return sum, err
}

func (r *reportRepository) SumExtensionIncome(ctx context.Context, q repository.InstrumentQuery) (repository.SumResult, error) {
	query := `SELECT SUM(` + receivedExpr + `) FROM rent_extensions
	          WHERE created_at >= $1 AND created_at < $2 AND ` + instrumentCond
	var sum repository.SumResult
	err := r.db.QueryRowContext(ctx, query, q.From, q.To, q.PaymentType).Scan(&sum)
	return sum, err
}

// rentSelection builds the filtered, ordered and windowed rent SELECT that
// every report query starts from.
func rentSelection(q repository.RentQuery, columns string) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	if len(q.Statuses) > 0 {
		statuses := make([]string, len(q.Statuses))
		for i, s := range q.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, pq.Array(statuses))
		conds = append(conds, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if q.GuaranteeType != nil {
		args = append(args, *q.GuaranteeType)
		conds = append(conds, fmt.Sprintf("guarantee_type = $%d", len(args)))
	}
	if q.GuaranteeReturned != nil {
		args = append(args, *q.GuaranteeReturned)
		conds = append(conds, fmt.Sprintf("is_guarantee_returned = $%d", len(args)))
	}
	if q.StartFrom != nil {
		args = append(args, *q.StartFrom)
		conds = append(conds, fmt.Sprintf("start_date >= $%d", len(args)))
	}
	if q.StartTo != nil {
		args = append(args, *q.StartTo)
		conds = append(conds, fmt.Sprintf("start_date < $%d", len(args)))
	}

	query := `SELECT ` + columns + ` FROM rents`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	switch q.Order {
	case repository.OrderByEndDateDesc:
		query += ` ORDER BY end_date DESC, id DESC`
	default:
		query += ` ORDER BY id`
	}
	return appendWindow(query, args, q.Skip, q.Take)
}
