package postgres_test

import (
	"context"
	"testing"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
	"fleetrent-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	repo := postgres.NewOutcomeRepository(db)

	t.Run("Success", func(t *testing.T) {
		cash := domain.PaymentTypeCash
		e := &domain.Entry{Owner: domain.OwnerPartner, Comment: "fuel", Amount: decimal.NewFromInt(50), PaymentType: &cash}

		mock.ExpectQuery("INSERT INTO outcomes").
			WithArgs(domain.OwnerPartner, "fuel", e.Amount, &cash, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

		err := repo.Create(context.Background(), e)
		require.NoError(t, err)
		assert.Equal(t, int32(3), e.ID)
		assert.Equal(t, domain.EntryKindOutcome, e.Kind)
		assert.False(t, e.CreatedAt.IsZero())
	})
}

func TestEntryRepository_List(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	repo := postgres.NewIncomeRepository(db)

	t.Run("Window newest first", func(t *testing.T) {
		created := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
		mock.ExpectQuery("SELECT (.+) FROM incomes ORDER BY created_at DESC, id DESC LIMIT \\$1 OFFSET \\$2").
			WithArgs(10, 20).
			WillReturnRows(sqlmock.NewRows([]string{"id", "owner", "comment", "amount", "payment_type", "created_at"}).
				AddRow(1, "ADMIN", "bonus", "100", nil, created).
				AddRow(2, "INVESTOR", "", "25.5", "CARD", created))

		entries, err := repo.List(context.Background(), repository.EntryQuery{Skip: 20, Take: 10})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Nil(t, entries[0].PaymentType)
		require.NotNil(t, entries[1].PaymentType)
		assert.Equal(t, domain.PaymentTypeCard, *entries[1].PaymentType)
		assert.Equal(t, domain.EntryKindIncome, entries[1].Kind)
	})
}

func TestEntryRepository_Sum(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	repo := postgres.NewIncomeRepository(db)
	ctx := context.Background()

	t.Run("Owner filter", func(t *testing.T) {
		admin := domain.OwnerAdmin
		mock.ExpectQuery("SELECT SUM\\(amount\\) FROM \\(SELECT amount FROM incomes WHERE owner = \\$1 ORDER BY created_at DESC, id DESC\\) sub").
			WithArgs(domain.OwnerAdmin).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("150.25"))

		sum, err := repo.Sum(ctx, repository.EntryQuery{Owner: &admin})
		require.NoError(t, err)
		assert.True(t, sum.Valid)
		assert.True(t, sum.Decimal.Equal(decimal.RequireFromString("150.25")))
	})

	t.Run("Month window", func(t *testing.T) {
		from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0)
		mock.ExpectQuery("WHERE created_at >= \\$1 AND created_at < \\$2").
			WithArgs(from, to).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(nil))

		sum, err := repo.Sum(ctx, repository.EntryQuery{From: &from, To: &to})
		require.NoError(t, err)
		assert.False(t, sum.Valid)
	})
}

func TestEntryRepository_Count(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	repo := postgres.NewOutcomeRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM outcomes$").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))

	n, err := repo.Count(context.Background(), repository.EntryQuery{Skip: 5, Take: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
}

func TestEntryRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	repo := postgres.NewIncomeRepository(db)

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM incomes WHERE id = \\$1").
			WithArgs(int32(4)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), 4)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
