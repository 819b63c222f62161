package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
)

const entryColumns = `id, owner, comment, amount, payment_type, created_at`

// entryRepository serves both flat ledgers; table and kind are fixed at construction.
type entryRepository struct {
	db    *sql.DB
	table string
	kind  domain.EntryKind
}

func NewIncomeRepository(db *sql.DB) repository.EntryRepository {
	return &entryRepository{db: db, table: "incomes", kind: domain.EntryKindIncome}
}

func NewOutcomeRepository(db *sql.DB) repository.EntryRepository {
	return &entryRepository{db: db, table: "outcomes", kind: domain.EntryKindOutcome}
}

func (r *entryRepository) Create(ctx context.Context, e *domain.Entry) error {
	method := r.table + "Repository.Create"
	logger.EnterMethod(method, "owner", e.Owner)

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO ` + r.table + ` (owner, comment, amount, payment_type, created_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, e.Owner, e.Comment, e.Amount, e.PaymentType, e.CreatedAt).Scan(&e.ID)
	if err != nil {
		logger.ExitMethodWithError(method, err, "owner", e.Owner)
		return err
	}
	e.Kind = r.kind

	logger.ExitMethod(method, "id", e.ID)
	return nil
}

func (r *entryRepository) GetByID(ctx context.Context, id int32) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM ` + r.table + ` WHERE id = $1`
	e, err := r.scan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (r *entryRepository) Update(ctx context.Context, e *domain.Entry) error {
	query := `UPDATE ` + r.table + ` SET owner=$1, comment=$2, amount=$3, payment_type=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, e.Owner, e.Comment, e.Amount, e.PaymentType, e.ID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *entryRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+r.table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *entryRepository) List(ctx context.Context, q repository.EntryQuery) ([]domain.Entry, error) {
	query, args := r.selection(q, entryColumns)

	logger.DatabaseCall("list "+r.table, query, "skip", q.Skip, "take", q.Take)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		e, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count ignores the Skip/Take window.
func (r *entryRepository) Count(ctx context.Context, q repository.EntryQuery) (int64, error) {
	q.Skip, q.Take = 0, 0
	where, args := entryWhere(q)
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+r.table+where, args...).Scan(&n)
	return n, err
}

func (r *entryRepository) Sum(ctx context.Context, q repository.EntryQuery) (repository.SumResult, error) {
	inner, args := r.selection(q, "amount")
	var sum repository.SumResult
	err := r.db.QueryRowContext(ctx, `SELECT SUM(amount) FROM (`+inner+`) sub`, args...).Scan(&sum)
	return sum, err
}

// selection builds the ordered, windowed SELECT shared by List and Sum.
func (r *entryRepository) selection(q repository.EntryQuery, columns string) (string, []interface{}) {
	where, args := entryWhere(q)
	query := `SELECT ` + columns + ` FROM ` + r.table + where + ` ORDER BY created_at DESC, id DESC`
	query, args = appendWindow(query, args, q.Skip, q.Take)
	return query, args
}

func entryWhere(q repository.EntryQuery) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	if q.Owner != nil {
		args = append(args, *q.Owner)
		conds = append(conds, fmt.Sprintf("owner = $%d", len(args)))
	}
	if q.From != nil {
		args = append(args, *q.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if q.To != nil {
		args = append(args, *q.To)
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// appendWindow adds LIMIT/OFFSET placeholders; take <= 0 leaves the limit off.
func appendWindow(query string, args []interface{}, skip, take int) (string, []interface{}) {
	if take > 0 {
		args = append(args, take)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if skip > 0 {
		args = append(args, skip)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}

func (r *entryRepository) scan(s scanner) (domain.Entry, error) {
	var (
		e  domain.Entry
		pt sql.NullString
	)
	if err := s.Scan(&e.ID, &e.Owner, &e.Comment, &e.Amount, &pt, &e.CreatedAt); err != nil {
		return domain.Entry{}, err
	}
	e.Kind = r.kind
	if pt.Valid {
		p := domain.PaymentType(pt.String)
		e.PaymentType = &p
	}
	return e, nil
}
