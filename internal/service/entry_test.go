package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
	"fleetrent-backend/internal/service"
)

func TestEntryService(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		repo := new(MockEntryRepo)
		svc := service.NewEntryService(repo, domain.EntryKindOutcome)
		repo.On("Create", ctx, mock.MatchedBy(func(e *domain.Entry) bool {
			return e.Kind == domain.EntryKindOutcome && e.Comment == "tyres"
		})).Return(nil)

		e, err := svc.Create(ctx, service.CreateEntryInput{Owner: domain.OwnerPartner, Comment: " tyres ", Amount: dec("80")})
		require.NoError(t, err)
		assertDecimal(t, "80", e.Amount)
	})

	t.Run("Negative Amount", func(t *testing.T) {
		svc := service.NewEntryService(new(MockEntryRepo), domain.EntryKindIncome)
		_, err := svc.Create(ctx, service.CreateEntryInput{Owner: domain.OwnerAdmin, Amount: dec("-1")})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Update Missing", func(t *testing.T) {
		repo := new(MockEntryRepo)
		svc := service.NewEntryService(repo, domain.EntryKindIncome)
		repo.On("GetByID", ctx, int32(9)).Return(nil, repository.ErrNotFound)

		_, err := svc.Update(ctx, 9, service.UpdateEntryInput{})
		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "income", nf.Entity)
	})

	t.Run("List Pages", func(t *testing.T) {
		repo := new(MockEntryRepo)
		svc := service.NewEntryService(repo, domain.EntryKindIncome)
		repo.On("List", mock.Anything, repository.EntryQuery{Skip: 5, Take: 5}).Return([]domain.Entry{{ID: 1}}, nil)
		repo.On("Count", mock.Anything, repository.EntryQuery{}).Return(int64(11), nil)

		page, err := svc.List(ctx, 2, 5)
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, int64(11), page.Total)
		assert.Equal(t, int64(3), page.TotalPages)
	})
}
