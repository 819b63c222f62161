package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/events"
	"fleetrent-backend/internal/repository"
	"fleetrent-backend/internal/service"
)

func eventOfType(typ events.Type) interface{} {
	return mock.MatchedBy(func(e events.Event) bool { return e.Type == typ })
}

func validRentInput() service.CreateRentInput {
	return service.CreateRentInput{
		Name:                  "John Doe",
		PhoneNumber:           "+100200300",
		StartDate:             day(2024, time.March, 1),
		EndDate:               day(2024, time.March, 10),
		Status:                domain.RentStatusPaid,
		GuaranteeType:         domain.PaymentTypeCash,
		GuaranteeAmount:       dec("1000"),
		Amount:                dec("1000"),
		AmountPaid:            dec("1000"),
		PaymentType:           domain.PaymentTypeCash,
		AmountPaidPaymentType: domain.PaymentTypeCash,
		IncomeSplit:           domain.IncomeSplit{40, 30, 30},
	}
}

func storedRent() *domain.Rent {
	return &domain.Rent{
		ID:                    7,
		Name:                  "John Doe",
		StartDate:             day(2024, time.March, 1),
		EndDate:               day(2024, time.March, 10),
		InitialEndDate:        day(2024, time.March, 10),
		Status:                domain.RentStatusPaid,
		GuaranteeType:         domain.PaymentTypeCash,
		GuaranteeAmount:       dec("1000"),
		Amount:                dec("1000"),
		AmountPaid:            dec("1000"),
		PaymentType:           domain.PaymentTypeCash,
		AmountPaidPaymentType: domain.PaymentTypeCash,
		IncomeSplit:           domain.IncomeSplit{40, 30, 30},
		AdminIncome:           dec("400"),
		InvestorIncome:        dec("300"),
		PartnerIncome:         dec("300"),
	}
}

func TestRentService_CreateRent(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		pub := new(MockPublisher)
		svc := service.NewRentService(rentRepo, pub)

		rentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rent")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Rent).ID = 1
		}).Return(nil)
		pub.On("Publish", ctx, eventOfType(events.RentCreated)).Return(nil)

		rent, err := svc.CreateRent(ctx, validRentInput())
		require.NoError(t, err)
		assert.Equal(t, int32(1), rent.ID)
		assert.Equal(t, rent.EndDate, rent.InitialEndDate)
		assertDecimal(t, "400", rent.AdminIncome)
		assertDecimal(t, "300", rent.InvestorIncome)
		assertDecimal(t, "300", rent.PartnerIncome)
		pub.AssertExpectations(t)
	})

	t.Run("Split Not 100", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		svc := service.NewRentService(rentRepo, nil)

		in := validRentInput()
		in.IncomeSplit = domain.IncomeSplit{40, 30, 20}

		rent, err := svc.CreateRent(ctx, in)
		assert.Nil(t, rent)
		assert.True(t, domain.IsValidation(err))
		rentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Unknown Status", func(t *testing.T) {
		svc := service.NewRentService(new(MockRentRepo), nil)
		in := validRentInput()
		in.Status = "LOST"

		_, err := svc.CreateRent(ctx, in)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Publish Failure Is Not Fatal", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		pub := new(MockPublisher)
		svc := service.NewRentService(rentRepo, pub)

		rentRepo.On("Create", ctx, mock.Anything).Return(nil)
		pub.On("Publish", ctx, mock.Anything).Return(errors.New("broker down"))

		rent, err := svc.CreateRent(ctx, validRentInput())
		assert.NoError(t, err)
		assert.NotNil(t, rent)
	})

	t.Run("Store Failure", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		svc := service.NewRentService(rentRepo, nil)
		rentRepo.On("Create", ctx, mock.Anything).Return(errors.New("connection reset"))

		_, err := svc.CreateRent(ctx, validRentInput())
		var se *domain.StoreError
		assert.ErrorAs(t, err, &se)
	})
}

func TestRentService_UpdateRent(t *testing.T) {
	ctx := context.Background()

	t.Run("Recomputes Incomes", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		svc := service.NewRentService(rentRepo, nil)

		rentRepo.On("GetByID", ctx, int32(7)).Return(storedRent(), nil)
		rentRepo.On("Update", ctx, mock.AnythingOfType("*domain.Rent")).Return(nil)

		amount := dec("2000")
		split := domain.IncomeSplit{50, 25, 25}
		rent, err := svc.UpdateRent(ctx, 7, service.UpdateRentInput{Amount: &amount, IncomeSplit: &split})
		require.NoError(t, err)
		assertDecimal(t, "1000", rent.AdminIncome)
		assertDecimal(t, "500", rent.InvestorIncome)
		assertDecimal(t, "500", rent.PartnerIncome)
		assertDecimal(t, "2000", rent.AdminIncome.Add(rent.InvestorIncome).Add(rent.PartnerIncome))
	})

	t.Run("Keeps Amount When Only Split Changes", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		svc := service.NewRentService(rentRepo, nil)

		rentRepo.On("GetByID", ctx, int32(7)).Return(storedRent(), nil)
		rentRepo.On("Update", ctx, mock.Anything).Return(nil)

		split := domain.IncomeSplit{100, 0, 0}
		rent, err := svc.UpdateRent(ctx, 7, service.UpdateRentInput{IncomeSplit: &split})
		require.NoError(t, err)
		assertDecimal(t, "1000", rent.AdminIncome)
		assertDecimal(t, "0", rent.InvestorIncome)
	})

	t.Run("Invalid Split", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		svc := service.NewRentService(rentRepo, nil)
		rentRepo.On("GetByID", ctx, int32(7)).Return(storedRent(), nil)

		split := domain.IncomeSplit{50, 50, 50}
		_, err := svc.UpdateRent(ctx, 7, service.UpdateRentInput{IncomeSplit: &split})
		assert.True(t, domain.IsValidation(err))
		rentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Not Found", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		svc := service.NewRentService(rentRepo, nil)
		rentRepo.On("GetByID", ctx, int32(99)).Return(nil, repository.ErrNotFound)

		_, err := svc.UpdateRent(ctx, 99, service.UpdateRentInput{})
		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, int32(99), nf.ID)
	})

	t.Run("End Date Of Extended Rent", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		svc := service.NewRentService(rentRepo, nil)
		rent := storedRent()
		rent.IsRentExtended = true
		rent.EndDate = day(2024, time.March, 15)
		rentRepo.On("GetByID", ctx, int32(7)).Return(rent, nil)

		end := day(2024, time.March, 20)
		_, err := svc.UpdateRent(ctx, 7, service.UpdateRentInput{EndDate: &end})
		assert.True(t, domain.IsValidation(err))
	})
}

func TestRentService_RemoveRent(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		pub := new(MockPublisher)
		svc := service.NewRentService(rentRepo, pub)
		rentRepo.On("Delete", ctx, int32(7)).Return(nil)
		pub.On("Publish", ctx, eventOfType(events.RentRemoved)).Return(nil)

		assert.NoError(t, svc.RemoveRent(ctx, 7))
		pub.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		svc := service.NewRentService(rentRepo, nil)
		rentRepo.On("Delete", ctx, int32(7)).Return(repository.ErrNotFound)

		assert.True(t, domain.IsNotFound(svc.RemoveRent(ctx, 7)))
	})
}

func TestRentService_CreateExtension(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults Dates From Parent", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		pub := new(MockPublisher)
		svc := service.NewRentService(rentRepo, pub)

		rentRepo.On("GetByID", ctx, int32(7)).Return(storedRent(), nil)
		parent := storedRent()
		parent.EndDate = day(2024, time.March, 15)
		parent.IsRentExtended = true
		rentRepo.On("CreateExtension", ctx, mock.AnythingOfType("*domain.RentExtension")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.RentExtension).ID = 3
		}).Return(parent, nil)
		pub.On("Publish", ctx, mock.MatchedBy(func(e events.Event) bool {
			return e.Type == events.ExtensionCreated && e.ExtensionID == 3 && e.IsRentExtended &&
				e.EndDate != nil && e.EndDate.Equal(day(2024, time.March, 15))
		})).Return(nil)

		ext, err := svc.CreateExtension(ctx, 7, service.CreateExtensionInput{
			ExtendedDaysQuantity:  5,
			Status:                domain.RentStatusPaid,
			Amount:                dec("200"),
			AmountPaid:            dec("200"),
			PaymentType:           domain.PaymentTypeCard,
			AmountPaidPaymentType: domain.PaymentTypeCard,
		})
		require.NoError(t, err)
		assert.Equal(t, int32(3), ext.ID)
		assert.Equal(t, day(2024, time.March, 10), ext.StartDate)
		assert.Equal(t, day(2024, time.March, 15), ext.EndDate)
		pub.AssertExpectations(t)
	})

	t.Run("Non Positive Quantity", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		svc := service.NewRentService(rentRepo, nil)

		_, err := svc.CreateExtension(ctx, 7, service.CreateExtensionInput{ExtendedDaysQuantity: 0})
		assert.True(t, domain.IsValidation(err))
		rentRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Pledge Status Rejected", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		svc := service.NewRentService(rentRepo, nil)
		rentRepo.On("GetByID", ctx, int32(7)).Return(storedRent(), nil)

		_, err := svc.CreateExtension(ctx, 7, service.CreateExtensionInput{
			ExtendedDaysQuantity:  2,
			Status:                domain.RentStatusPledge,
			PaymentType:           domain.PaymentTypeCash,
			AmountPaidPaymentType: domain.PaymentTypeCash,
		})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Rent Not Found", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		svc := service.NewRentService(rentRepo, nil)
		rentRepo.On("GetByID", ctx, int32(8)).Return(nil, repository.ErrNotFound)

		_, err := svc.CreateExtension(ctx, 8, service.CreateExtensionInput{ExtendedDaysQuantity: 1})
		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "rent", nf.Entity)
		assert.Equal(t, int32(8), nf.ID)
	})
}

func TestRentService_UpdateExtension(t *testing.T) {
	ctx := context.Background()

	stored := func() *domain.RentExtension {
		return &domain.RentExtension{
			ID:                    3,
			RentID:                7,
			ExtendedDaysQuantity:  5,
			StartDate:             day(2024, time.March, 10),
			EndDate:               day(2024, time.March, 15),
			Status:                domain.RentStatusPaid,
			Amount:                dec("200"),
			AmountPaid:            dec("200"),
			PaymentType:           domain.PaymentTypeCash,
			AmountPaidPaymentType: domain.PaymentTypeCash,
		}
	}

	t.Run("Quantity Rederives End Date", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		svc := service.NewRentService(rentRepo, nil)
		rentRepo.On("GetExtension", ctx, int32(3)).Return(stored(), nil)
		parent := storedRent()
		parent.EndDate = day(2024, time.March, 12)
		parent.IsRentExtended = true
		rentRepo.On("UpdateExtension", ctx, mock.AnythingOfType("*domain.RentExtension")).Return(parent, nil)

		days := int32(2)
		ext, err := svc.UpdateExtension(ctx, 3, service.UpdateExtensionInput{ExtendedDaysQuantity: &days})
		require.NoError(t, err)
		assert.Equal(t, day(2024, time.March, 12), ext.EndDate)
	})

	t.Run("Explicit End Date Wins", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		svc := service.NewRentService(rentRepo, nil)
		rentRepo.On("GetExtension", ctx, int32(3)).Return(stored(), nil)
		rentRepo.On("UpdateExtension", ctx, mock.Anything).Return(storedRent(), nil)

		days := int32(2)
		end := day(2024, time.March, 20)
		ext, err := svc.UpdateExtension(ctx, 3, service.UpdateExtensionInput{ExtendedDaysQuantity: &days, EndDate: &end})
		require.NoError(t, err)
		assert.Equal(t, end, ext.EndDate)
	})

	t.Run("Non Positive Quantity", func(t *testing.T) {
		svc := service.NewRentService(new(MockRentRepo), nil)
		days := int32(-1)
		_, err := svc.UpdateExtension(ctx, 3, service.UpdateExtensionInput{ExtendedDaysQuantity: &days})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Not Found", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		svc := service.NewRentService(rentRepo, nil)
		rentRepo.On("GetExtension", ctx, int32(3)).Return(nil, repository.ErrNotFound)

		_, err := svc.UpdateExtension(ctx, 3, service.UpdateExtensionInput{})
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestRentService_DeleteExtension(t *testing.T) {
	ctx := context.Background()

	t.Run("Resets Parent", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		pub := new(MockPublisher)
		svc := service.NewRentService(rentRepo, pub)

		parent := storedRent()
		rentRepo.On("DeleteExtension", ctx, int32(3)).Return(&domain.RentExtension{ID: 3, RentID: 7}, parent, nil)
		pub.On("Publish", ctx, mock.MatchedBy(func(e events.Event) bool {
			return e.Type == events.ExtensionDeleted && !e.IsRentExtended && e.EndDate.Equal(parent.InitialEndDate)
		})).Return(nil)

		ext, err := svc.DeleteExtension(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, int32(3), ext.ID)
		pub.AssertExpectations(t)
	})

	t.Run("Keeps Remaining Extension End", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		pub := new(MockPublisher)
		svc := service.NewRentService(rentRepo, pub)

		remaining := day(2024, 3, 15)
		parent := storedRent()
		parent.EndDate = remaining
		parent.IsRentExtended = true
		rentRepo.On("DeleteExtension", ctx, int32(5)).
			Return(&domain.RentExtension{ID: 5, RentID: 7, EndDate: day(2024, 3, 19)}, parent, nil)
		pub.On("Publish", ctx, mock.MatchedBy(func(e events.Event) bool {
			return e.Type == events.ExtensionDeleted && e.RentID == 7 &&
				e.IsRentExtended && e.EndDate.Equal(remaining)
		})).Return(nil)

		ext, err := svc.DeleteExtension(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, day(2024, 3, 19), ext.EndDate)
		pub.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		svc := service.NewRentService(rentRepo, nil)
		rentRepo.On("DeleteExtension", ctx, int32(3)).Return(nil, nil, repository.ErrNotFound)

		_, err := svc.DeleteExtension(ctx, 3)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestRentService_Reads(t *testing.T) {
	ctx := context.Background()

	t.Run("Search Trims And Skips Empty", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		svc := service.NewRentService(rentRepo, nil)

		rents, err := svc.SearchRents(ctx, "   ")
		require.NoError(t, err)
		assert.Empty(t, rents)

		rentRepo.On("Search", ctx, "john").Return([]domain.Rent{*storedRent()}, nil)
		rents, err = svc.SearchRents(ctx, " john ")
		require.NoError(t, err)
		assert.Len(t, rents, 1)
	})

	t.Run("Page Validation", func(t *testing.T) {
		svc := service.NewRentService(new(MockRentRepo), nil)
		_, err := svc.ListRentsPage(ctx, 0, 0)
		assert.True(t, domain.IsValidation(err))
		_, err = svc.ListRentsPage(ctx, 10, -1)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Get Extension Not Found", func(t *testing.T) {
		rentRepo := new(MockRentRepo)
		svc := service.NewRentService(rentRepo, nil)
		rentRepo.On("GetExtension", ctx, int32(4)).Return(nil, repository.ErrNotFound)

		_, err := svc.GetExtension(ctx, 4)
		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "extension", nf.Entity)
	})
}
