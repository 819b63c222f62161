package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/events"
	"fleetrent-backend/internal/notify"
	"fleetrent-backend/internal/repository"
	"fleetrent-backend/internal/utils"
)

// MockRentRepo
type MockRentRepo struct {
	mock.Mock
}

func (m *MockRentRepo) Create(ctx context.Context, rent *domain.Rent) error {
	args := m.Called(ctx, rent)
	return args.Error(0)
}
func (m *MockRentRepo) GetByID(ctx context.Context, id int32) (*domain.Rent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rent), args.Error(1)
}
func (m *MockRentRepo) Update(ctx context.Context, rent *domain.Rent) error {
	args := m.Called(ctx, rent)
	return args.Error(0)
}
func (m *MockRentRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRentRepo) List(ctx context.Context, filter domain.RentFilter) ([]domain.Rent, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Rent), args.Error(1)
}
func (m *MockRentRepo) ListPage(ctx context.Context, take, skip int) ([]domain.Rent, error) {
	args := m.Called(ctx, take, skip)
	return args.Get(0).([]domain.Rent), args.Error(1)
}
func (m *MockRentRepo) Search(ctx context.Context, query string) ([]domain.Rent, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]domain.Rent), args.Error(1)
}
func (m *MockRentRepo) GetExtension(ctx context.Context, id int32) (*domain.RentExtension, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentExtension), args.Error(1)
}
func (m *MockRentRepo) CreateExtension(ctx context.Context, ext *domain.RentExtension) (*domain.Rent, error) {
	args := m.Called(ctx, ext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rent), args.Error(1)
}
func (m *MockRentRepo) UpdateExtension(ctx context.Context, ext *domain.RentExtension) (*domain.Rent, error) {
	args := m.Called(ctx, ext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rent), args.Error(1)
}
func (m *MockRentRepo) DeleteExtension(ctx context.Context, id int32) (*domain.RentExtension, *domain.Rent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.RentExtension), args.Get(1).(*domain.Rent), args.Error(2)
}

// MockCarRepo
type MockCarRepo struct {
	mock.Mock
}

func (m *MockCarRepo) Create(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) Update(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) Deactivate(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCarRepo) ListActive(ctx context.Context) ([]domain.Car, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Car), args.Error(1)
}
func (m *MockCarRepo) ListFree(ctx context.Context) ([]domain.Car, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Car), args.Error(1)
}

// MockEntryRepo
type MockEntryRepo struct {
	mock.Mock
}

func (m *MockEntryRepo) Create(ctx context.Context, e *domain.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockEntryRepo) GetByID(ctx context.Context, id int32) (*domain.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}
func (m *MockEntryRepo) Update(ctx context.Context, e *domain.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockEntryRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEntryRepo) List(ctx context.Context, q repository.EntryQuery) ([]domain.Entry, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Entry), args.Error(1)
}
func (m *MockEntryRepo) Count(ctx context.Context, q repository.EntryQuery) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockEntryRepo) Sum(ctx context.Context, q repository.EntryQuery) (repository.SumResult, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(repository.SumResult), args.Error(1)
}

// MockReportRepo
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) CountRents(ctx context.Context, q repository.RentQuery) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockReportRepo) ListRents(ctx context.Context, q repository.RentQuery) ([]domain.Rent, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Rent), args.Error(1)
}
func (m *MockReportRepo) SumGuarantee(ctx context.Context, q repository.RentQuery) (repository.SumResult, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(repository.SumResult), args.Error(1)
}
func (m *MockReportRepo) SumRentIncome(ctx context.Context, q repository.InstrumentQuery) (repository.SumResult, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(repository.SumResult), args.Error(1)
}
func (m *MockReportRepo) SumExtensionIncome(ctx context.Context, q repository.InstrumentQuery) (repository.SumResult, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(repository.SumResult), args.Error(1)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, e events.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockPublisher) Close() error {
	return nil
}

// MockMailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg notify.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockLedger
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Breakdown(ctx context.Context, window *utils.Page) (domain.GuaranteeBreakdown, error) {
	args := m.Called(ctx, window)
	return args.Get(0).(domain.GuaranteeBreakdown), args.Error(1)
}
