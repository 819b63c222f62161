package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
)

const rentColumns = `id, name, phone_number, start_date, end_date, initial_end_date, status,
	guarantee_type, guarantee_amount, is_guarantee_returned, amount, amount_paid,
	payment_type, amount_paid_payment_type, income_split, admin_income, investor_income,
	partner_income, is_rent_extended, car_id, created_at, updated_at`

const extensionColumns = `id, rent_id, extended_days_quantity, start_date, end_date, status,
	amount, amount_paid, payment_type, amount_paid_payment_type, created_at`

// resyncRentQuery derives the parent's end date and extended flag from its
// remaining extensions and returns the updated parent.
const resyncRentQuery = `UPDATE rents SET
	end_date = COALESCE((SELECT MAX(e.end_date) FROM rent_extensions e WHERE e.rent_id = $1), initial_end_date),
	is_rent_extended = EXISTS (SELECT 1 FROM rent_extensions e WHERE e.rent_id = $1),
	updated_at = $2
	WHERE id = $1
	RETURNING ` + rentColumns

type rentRepository struct {
	db *sql.DB
}

func NewRentRepository(db *sql.DB) repository.RentRepository {
	return &rentRepository{db: db}
}

func (r *rentRepository) Create(ctx context.Context, rent *domain.Rent) error {
	logger.EnterMethod("rentRepository.Create", "name", rent.Name, "status", rent.Status)

	query := `INSERT INTO rents (name, phone_number, start_date, end_date, initial_end_date, status,
	              guarantee_type, guarantee_amount, is_guarantee_returned, amount, amount_paid,
	              payment_type, amount_paid_payment_type, income_split, admin_income, investor_income,
	              partner_income, is_rent_extended, car_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	          RETURNING id`
	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query,
		rent.Name, rent.PhoneNumber, rent.StartDate, rent.EndDate, rent.InitialEndDate, rent.Status,
		rent.GuaranteeType, rent.GuaranteeAmount, rent.IsGuaranteeReturned, rent.Amount, rent.AmountPaid,
		rent.PaymentType, rent.AmountPaidPaymentType, splitArray(rent.IncomeSplit), rent.AdminIncome, rent.InvestorIncome,
		rent.PartnerIncome, rent.IsRentExtended, rent.CarID, now, now,
	).Scan(&rent.ID)
	if err != nil {
		logger.ExitMethodWithError("rentRepository.Create", err, "name", rent.Name)
		return err
	}
	rent.CreatedAt = now
	rent.UpdatedAt = now

	logger.ExitMethod("rentRepository.Create", "rentID", rent.ID)
	return nil
}

func (r *rentRepository) GetByID(ctx context.Context, id int32) (*domain.Rent, error) {
	rent, err := scanRent(r.db.QueryRowContext(ctx, `SELECT `+rentColumns+` FROM rents WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}

	exts, err := loadExtensions(ctx, r.db, []int32{id}, false)
	if err != nil {
		return nil, err
	}
	rent.Extensions = exts[id]
	return &rent, nil
}

// Update writes every mutable column. The end date of an extended rent is
// owned by its extensions and is left as stored.
func (r *rentRepository) Update(ctx context.Context, rent *domain.Rent) error {
	logger.EnterMethod("rentRepository.Update", "rentID", rent.ID)

	query := `UPDATE rents SET name=$1, phone_number=$2, start_date=$3,
	              end_date = CASE WHEN is_rent_extended THEN end_date ELSE $4 END,
	              status=$5, guarantee_type=$6, guarantee_amount=$7, is_guarantee_returned=$8,
	              amount=$9, amount_paid=$10, payment_type=$11, amount_paid_payment_type=$12,
	              income_split=$13, admin_income=$14, investor_income=$15, partner_income=$16,
	              car_id=$17, updated_at=$18
	          WHERE id=$19
	          RETURNING end_date, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		rent.Name, rent.PhoneNumber, rent.StartDate, rent.EndDate,
		rent.Status, rent.GuaranteeType, rent.GuaranteeAmount, rent.IsGuaranteeReturned,
		rent.Amount, rent.AmountPaid, rent.PaymentType, rent.AmountPaidPaymentType,
		splitArray(rent.IncomeSplit), rent.AdminIncome, rent.InvestorIncome, rent.PartnerIncome,
		rent.CarID, time.Now().UTC(), rent.ID,
	).Scan(&rent.EndDate, &rent.UpdatedAt)
	if err != nil {
		err = notFound(err)
		logger.ExitMethodWithError("rentRepository.Update", err, "rentID", rent.ID)
		return err
	}

	logger.ExitMethod("rentRepository.Update", "rentID", rent.ID)
	return nil
}

func (r *rentRepository) Delete(ctx context.Context, id int32) error {
	logger.EnterMethod("rentRepository.Delete", "rentID", id)

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockRent(ctx, tx, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM rent_extensions WHERE rent_id = $1`, id)
		if err != nil {
			return err
		}
		n, _ := res.RowsAffected()
		logger.DatabaseResult("delete rent extensions", n, nil, "rentID", id)

		if _, err := tx.ExecContext(ctx, `DELETE FROM rents WHERE id = $1`, id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("rentRepository.Delete", err, "rentID", id)
		return err
	}

	logger.ExitMethod("rentRepository.Delete", "rentID", id)
	return nil
}

func (r *rentRepository) List(ctx context.Context, filter domain.RentFilter) ([]domain.Rent, error) {
	query := `SELECT ` + rentColumns + ` FROM rents`
	var args []interface{}

	var types []string
	if filter.GuaranteeCash {
		types = append(types, string(domain.PaymentTypeCash))
	}
	if filter.GuaranteeCard {
		types = append(types, string(domain.PaymentTypeCard))
	}
	if len(types) > 0 {
		query += ` WHERE guarantee_type = ANY($1) AND is_guarantee_returned = false`
		args = append(args, pq.Array(types))
	}
	query += ` ORDER BY id DESC`

	rents, err := queryRents(ctx, r.db, query, args...)
	if err != nil {
		return nil, err
	}
	if err := attachExtensions(ctx, r.db, rents, false); err != nil {
		return nil, err
	}
	return rents, nil
}

func (r *rentRepository) ListPage(ctx context.Context, take, skip int) ([]domain.Rent, error) {
	query := `SELECT ` + rentColumns + ` FROM rents ORDER BY id DESC LIMIT $1 OFFSET $2`
	return queryRents(ctx, r.db, query, take, skip)
}

// Search matches name or phone number, case-insensitively.
func (r *rentRepository) Search(ctx context.Context, q string) ([]domain.Rent, error) {
	query := `SELECT ` + rentColumns + ` FROM rents
	          WHERE name ILIKE '%' || $1 || '%' OR phone_number ILIKE '%' || $1 || '%'
	          ORDER BY id DESC`
	return queryRents(ctx, r.db, query, q)
}

func (r *rentRepository) GetExtension(ctx context.Context, id int32) (*domain.RentExtension, error) {
	ext, err := scanExtension(r.db.QueryRowContext(ctx, `SELECT `+extensionColumns+` FROM rent_extensions WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &ext, nil
}

func (r *rentRepository) CreateExtension(ctx context.Context, ext *domain.RentExtension) (*domain.Rent, error) {
	logger.EnterMethod("rentRepository.CreateExtension", "rentID", ext.RentID, "days", ext.ExtendedDaysQuantity)

	var parent domain.Rent
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockRent(ctx, tx, ext.RentID); err != nil {
			return err
		}

		query := `INSERT INTO rent_extensions (rent_id, extended_days_quantity, start_date, end_date, status,
		              amount, amount_paid, payment_type, amount_paid_payment_type, created_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
		now := time.Now().UTC()
		err := tx.QueryRowContext(ctx, query,
			ext.RentID, ext.ExtendedDaysQuantity, ext.StartDate, ext.EndDate, ext.Status,
			ext.Amount, ext.AmountPaid, ext.PaymentType, ext.AmountPaidPaymentType, now,
		).Scan(&ext.ID)
		if err != nil {
			return err
		}
		ext.CreatedAt = now

		parent, err = resyncRent(ctx, tx, ext.RentID)
		return err
	})
	if err != nil {
		logger.ExitMethodWithError("rentRepository.CreateExtension", err, "rentID", ext.RentID)
		return nil, err
	}

	logger.ExitMethod("rentRepository.CreateExtension", "extensionID", ext.ID, "endDate", parent.EndDate)
	return &parent, nil
}

func (r *rentRepository) UpdateExtension(ctx context.Context, ext *domain.RentExtension) (*domain.Rent, error) {
	logger.EnterMethod("rentRepository.UpdateExtension", "extensionID", ext.ID)

	var parent domain.Rent
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockRent(ctx, tx, ext.RentID); err != nil {
			return err
		}

		query := `UPDATE rent_extensions SET extended_days_quantity=$1, start_date=$2, end_date=$3, status=$4,
		              amount=$5, amount_paid=$6, payment_type=$7, amount_paid_payment_type=$8
		          WHERE id=$9 AND rent_id=$10`
		res, err := tx.ExecContext(ctx, query,
			ext.ExtendedDaysQuantity, ext.StartDate, ext.EndDate, ext.Status,
			ext.Amount, ext.AmountPaid, ext.PaymentType, ext.AmountPaidPaymentType,
			ext.ID, ext.RentID,
		)
		if err != nil {
			return err
		}
		if err := checkAffected(res); err != nil {
			return err
		}

		parent, err = resyncRent(ctx, tx, ext.RentID)
		return err
	})
	if err != nil {
		logger.ExitMethodWithError("rentRepository.UpdateExtension", err, "extensionID", ext.ID)
		return nil, err
	}

	logger.ExitMethod("rentRepository.UpdateExtension", "extensionID", ext.ID, "endDate", parent.EndDate)
	return &parent, nil
}

func (r *rentRepository) DeleteExtension(ctx context.Context, id int32) (*domain.RentExtension, *domain.Rent, error) {
	logger.EnterMethod("rentRepository.DeleteExtension", "extensionID", id)

	var (
		ext    domain.RentExtension
		parent domain.Rent
	)
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var rentID int32
		err := tx.QueryRowContext(ctx, `SELECT rent_id FROM rent_extensions WHERE id = $1`, id).Scan(&rentID)
		if err != nil {
			return notFound(err)
		}
		if err := lockRent(ctx, tx, rentID); err != nil {
			return err
		}

		// A concurrent delete that won the lock leaves no row to return.
		ext, err = scanExtension(tx.QueryRowContext(ctx,
			`DELETE FROM rent_extensions WHERE id = $1 AND rent_id = $2 RETURNING `+extensionColumns, id, rentID))
		if err != nil {
			return notFound(err)
		}

		parent, err = resyncRent(ctx, tx, rentID)
		return err
	})
	if err != nil {
		logger.ExitMethodWithError("rentRepository.DeleteExtension", err, "extensionID", id)
		return nil, nil, err
	}

	logger.ExitMethod("rentRepository.DeleteExtension", "extensionID", id, "rentID", parent.ID, "extended", parent.IsRentExtended)
	return &ext, &parent, nil
}

// lockRent takes a row lock on the parent rent for the rest of the transaction.
func lockRent(ctx context.Context, tx *sql.Tx, id int32) error {
	var locked int32
	err := tx.QueryRowContext(ctx, `SELECT id FROM rents WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	return notFound(err)
}

func resyncRent(ctx context.Context, tx *sql.Tx, rentID int32) (domain.Rent, error) {
	logger.DatabaseCall("resync rent", "UPDATE rents", "rentID", rentID)
	rent, err := scanRent(tx.QueryRowContext(ctx, resyncRentQuery, rentID, time.Now().UTC()))
	if err != nil {
		return domain.Rent{}, notFound(err)
	}
	return rent, nil
}

func queryRents(ctx context.Context, q querier, query string, args ...interface{}) ([]domain.Rent, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rents := []domain.Rent{}
	for rows.Next() {
		rent, err := scanRent(rows)
		if err != nil {
			return nil, err
		}
		rents = append(rents, rent)
	}
	return rents, rows.Err()
}

// attachExtensions loads the extensions of all rents with one query.
func attachExtensions(ctx context.Context, q querier, rents []domain.Rent, paidOnly bool) error {
	if len(rents) == 0 {
		return nil
	}
	ids := make([]int32, len(rents))
	for i, r := range rents {
		ids[i] = r.ID
	}
	exts, err := loadExtensions(ctx, q, ids, paidOnly)
	if err != nil {
		return err
	}
	for i := range rents {
		rents[i].Extensions = exts[rents[i].ID]
	}
	return nil
}

func loadExtensions(ctx context.Context, q querier, rentIDs []int32, paidOnly bool) (map[int32][]domain.RentExtension, error) {
	query := `SELECT ` + extensionColumns + ` FROM rent_extensions WHERE rent_id = ANY($1)`
	if paidOnly {
		query += ` AND status = 'PAID'`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	ids := make(pq.Int64Array, len(rentIDs))
	for i, id := range rentIDs {
		ids[i] = int64(id)
	}

	rows, err := q.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int32][]domain.RentExtension, len(rentIDs))
	for rows.Next() {
		ext, err := scanExtension(rows)
		if err != nil {
			return nil, err
		}
		out[ext.RentID] = append(out[ext.RentID], ext)
	}
	return out, rows.Err()
}

func scanRent(s scanner) (domain.Rent, error) {
	var (
		r     domain.Rent
		split pq.Int64Array
		carID sql.NullInt32
	)
	err := s.Scan(
		&r.ID, &r.Name, &r.PhoneNumber, &r.StartDate, &r.EndDate, &r.InitialEndDate, &r.Status,
		&r.GuaranteeType, &r.GuaranteeAmount, &r.IsGuaranteeReturned, &r.Amount, &r.AmountPaid,
		&r.PaymentType, &r.AmountPaidPaymentType, &split, &r.AdminIncome, &r.InvestorIncome,
		&r.PartnerIncome, &r.IsRentExtended, &carID, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return domain.Rent{}, err
	}
	for i := 0; i < len(split) && i < len(r.IncomeSplit); i++ {
		r.IncomeSplit[i] = int(split[i])
	}
	if carID.Valid {
		id := carID.Int32
		r.CarID = &id
	}
	return r, nil
}

func scanExtension(s scanner) (domain.RentExtension, error) {
	var e domain.RentExtension
	err := s.Scan(
		&e.ID, &e.RentID, &e.ExtendedDaysQuantity, &e.StartDate, &e.EndDate, &e.Status,
		&e.Amount, &e.AmountPaid, &e.PaymentType, &e.AmountPaidPaymentType, &e.CreatedAt,
	)
	return e, err
}

func splitArray(s domain.IncomeSplit) pq.Int64Array {
	return pq.Int64Array{int64(s[0]), int64(s[1]), int64(s[2])}
}
