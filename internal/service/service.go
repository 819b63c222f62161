package service

import (
	"context"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/utils"
)

type AuthService interface {
	// Login returns an access token and the role it carries.
	Login(ctx context.Context, name, password string) (*LoginResult, error)
}

type RentService interface {
	CreateRent(ctx context.Context, in CreateRentInput) (*domain.Rent, error)
	UpdateRent(ctx context.Context, id int32, in UpdateRentInput) (*domain.Rent, error)
	RemoveRent(ctx context.Context, id int32) error
	GetRent(ctx context.Context, id int32) (*domain.Rent, error)
	ListRents(ctx context.Context, filter domain.RentFilter) ([]domain.Rent, error)
	ListRentsPage(ctx context.Context, take, skip int) ([]domain.Rent, error)
	SearchRents(ctx context.Context, query string) ([]domain.Rent, error)

	CreateExtension(ctx context.Context, rentID int32, in CreateExtensionInput) (*domain.RentExtension, error)
	GetExtension(ctx context.Context, id int32) (*domain.RentExtension, error)
	UpdateExtension(ctx context.Context, id int32, in UpdateExtensionInput) (*domain.RentExtension, error)
	DeleteExtension(ctx context.Context, id int32) (*domain.RentExtension, error)
}

type CarService interface {
	CreateCar(ctx context.Context, in CreateCarInput) (*domain.Car, error)
	GetCar(ctx context.Context, id int32) (*domain.Car, error)
	UpdateCar(ctx context.Context, id int32, in UpdateCarInput) (*domain.Car, error)
	RemoveCar(ctx context.Context, id int32) error
	ListCars(ctx context.Context) ([]domain.Car, error)
	ListFreeCars(ctx context.Context) ([]domain.Car, error)
}

// EntryService manages one flat ledger; the server builds one for incomes
// and one for outcomes.
type EntryService interface {
	Create(ctx context.Context, in CreateEntryInput) (*domain.Entry, error)
	Get(ctx context.Context, id int32) (*domain.Entry, error)
	Update(ctx context.Context, id int32, in UpdateEntryInput) (*domain.Entry, error)
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, page, pageSize int) (*EntryPage, error)
}

type GuaranteeLedger interface {
	// Breakdown sums every deposit bucket. A nil window covers all rents.
	Breakdown(ctx context.Context, window *utils.Page) (domain.GuaranteeBreakdown, error)
}

type MonitoringService interface {
	FindRents(ctx context.Context, page, pageSize int) (int64, error)
	FindIncome(ctx context.Context, page, pageSize int) (*domain.SummaryReport, error)
	FindIncomeByPersentage(ctx context.Context) (*domain.OwnersIncome, error)
	FindHistory(ctx context.Context, page, pageSize int) (*domain.HistoryReport, error)
	FindRentsByMonth(ctx context.Context, year, month int) (int64, error)
	FindIncomeByMonth(ctx context.Context, year, month int) (*domain.SummaryReport, error)
}

type StatementService interface {
	// MonthlyStatement builds, archives and mails the statement of one month.
	MonthlyStatement(ctx context.Context, year, month int) (*Statement, error)
	// OpenStatement streams an archived statement.
	OpenStatement(ctx context.Context, key string) (*ArchivedStatement, error)
	// RemindDeposits mails the outstanding pledges; it reports whether a mail was sent.
	RemindDeposits(ctx context.Context) (bool, error)
}

type LoginResult struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Role        string    `json:"role"`
}
