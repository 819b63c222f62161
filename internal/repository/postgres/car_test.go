package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
	"fleetrent-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var carCols = []string{"id", "model", "car_number", "run", "owner", "is_active", "created_at"}

func TestCarRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	repo := postgres.NewCarRepository(db)

	car := &domain.Car{Model: "Camry", CarNumber: "01A123", Run: "12000", Owner: domain.OwnerInvestor}
	mock.ExpectQuery("INSERT INTO cars").
		WithArgs("Camry", "01A123", "12000", domain.OwnerInvestor, true, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))

	err := repo.Create(context.Background(), car)
	require.NoError(t, err)
	assert.Equal(t, int32(2), car.ID)
	assert.True(t, car.IsActive)
}

func TestCarRepository_ListFree(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	repo := postgres.NewCarRepository(db)

	mock.ExpectQuery("NOT EXISTS \\(SELECT 1 FROM rents r WHERE r.car_id = c.id AND r.status = 'PLEDGE'\\)").
		WillReturnRows(sqlmock.NewRows(carCols).AddRow(1, "Malibu", "01B777", "5000", "ADMIN", true, time.Now()))

	cars, err := repo.ListFree(context.Background())
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, domain.OwnerAdmin, cars[0].Owner)
}

func TestCarRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	repo := postgres.NewCarRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM cars WHERE id = \\$1").
		WithArgs(int32(8)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 8)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCarRepository_Deactivate(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	repo := postgres.NewCarRepository(db)

	mock.ExpectExec("UPDATE cars SET is_active = false WHERE id = \\$1").
		WithArgs(int32(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Deactivate(context.Background(), 1))
}
