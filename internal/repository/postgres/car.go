package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
)

const carColumns = `id, model, car_number, run, owner, is_active, created_at`

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) repository.CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, car *domain.Car) error {
	logger.EnterMethod("carRepository.Create", "carNumber", car.CarNumber)

	query := `INSERT INTO cars (model, car_number, run, owner, is_active, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	car.IsActive = true
	car.CreatedAt = time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, car.Model, car.CarNumber, car.Run, car.Owner, car.IsActive, car.CreatedAt).Scan(&car.ID)
	if err != nil {
		logger.ExitMethodWithError("carRepository.Create", err, "carNumber", car.CarNumber)
		return err
	}

	logger.ExitMethod("carRepository.Create", "carID", car.ID)
	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	car, err := scanCar(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &car, nil
}

func (r *carRepository) Update(ctx context.Context, car *domain.Car) error {
	query := `UPDATE cars SET model=$1, car_number=$2, run=$3, owner=$4, is_active=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, car.Model, car.CarNumber, car.Run, car.Owner, car.IsActive, car.ID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// Deactivate soft deletes a car; rents keep referencing it.
func (r *carRepository) Deactivate(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `UPDATE cars SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *carRepository) ListActive(ctx context.Context) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE is_active = true ORDER BY id`
	return r.list(ctx, query)
}

func (r *carRepository) ListFree(ctx context.Context) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars c
	          WHERE c.is_active = true
	            AND NOT EXISTS (SELECT 1 FROM rents r WHERE r.car_id = c.id AND r.status = 'PLEDGE')
	          ORDER BY c.id`
	return r.list(ctx, query)
}

func (r *carRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Car, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cars := []domain.Car{}
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

func scanCar(s scanner) (domain.Car, error) {
	var c domain.Car
	err := s.Scan(&c.ID, &c.Model, &c.CarNumber, &c.Run, &c.Owner, &c.IsActive, &c.CreatedAt)
	return c, err
}
