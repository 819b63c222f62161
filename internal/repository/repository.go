package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"fleetrent-backend/internal/domain"
)

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = errors.New("record not found")

// SumResult is a nullable SQL SUM.
type SumResult = decimal.NullDecimal

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int32) (*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	Deactivate(ctx context.Context, id int32) error
	ListActive(ctx context.Context) ([]domain.Car, error)
	// ListFree returns active cars that have no PLEDGE rent attached.
	ListFree(ctx context.Context) ([]domain.Car, error)
}

type RentRepository interface {
	Create(ctx context.Context, rent *domain.Rent) error
	GetByID(ctx context.Context, id int32) (*domain.Rent, error)
	Update(ctx context.Context, rent *domain.Rent) error
	// Delete removes the rent and all of its extensions in one transaction.
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter domain.RentFilter) ([]domain.Rent, error)
	ListPage(ctx context.Context, take, skip int) ([]domain.Rent, error)
	Search(ctx context.Context, query string) ([]domain.Rent, error)

	// Extension writes run in one transaction together with the parent resync
	// and return the parent as it is after the commit.
	GetExtension(ctx context.Context, id int32) (*domain.RentExtension, error)
	CreateExtension(ctx context.Context, ext *domain.RentExtension) (*domain.Rent, error)
	UpdateExtension(ctx context.Context, ext *domain.RentExtension) (*domain.Rent, error)
	DeleteExtension(ctx context.Context, id int32) (*domain.RentExtension, *domain.Rent, error)
}

// EntryQuery selects income or outcome rows. Zero values mean no filter;
// Take 0 means no limit. Rows are ordered newest first.
type EntryQuery struct {
	Owner *domain.Owner
	From  *time.Time
	To    *time.Time
	Skip  int
	Take  int
}

// EntryRepository is implemented once per ledger table (incomes, outcomes).
type EntryRepository interface {
	Create(ctx context.Context, e *domain.Entry) error
	GetByID(ctx context.Context, id int32) (*domain.Entry, error)
	Update(ctx context.Context, e *domain.Entry) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, q EntryQuery) ([]domain.Entry, error)
	Count(ctx context.Context, q EntryQuery) (int64, error)
	// Sum returns NULL (Valid=false) for an empty selection.
	Sum(ctx context.Context, q EntryQuery) (SumResult, error)
}

type RentOrder int

const (
	// OrderByID is the stable default order for windowed aggregates.
	OrderByID RentOrder = iota
	// OrderByEndDateDesc is the timeline order.
	OrderByEndDateDesc
)

// RentQuery selects rents for reporting. Nil and zero fields do not filter;
// Take 0 means no limit.
type RentQuery struct {
	Statuses          []domain.RentStatus
	GuaranteeType     *domain.PaymentType
	GuaranteeReturned *bool
	StartFrom         *time.Time
	StartTo           *time.Time
	Order             RentOrder
	Skip              int
	Take              int
}

// InstrumentQuery selects the money actually received in a window for one
// payment instrument.
type InstrumentQuery struct {
	From        time.Time
	To          time.Time
	PaymentType domain.PaymentType
}

type ReportRepository interface {
	CountRents(ctx context.Context, q RentQuery) (int64, error)
	// ListRents eager loads each rent's PAID extensions.
	ListRents(ctx context.Context, q RentQuery) ([]domain.Rent, error)
	SumGuarantee(ctx context.Context, q RentQuery) (SumResult, error)
	// SumRentIncome sums amount for PAID rents and amount_paid otherwise,
	// keyed by start_date.
	SumRentIncome(ctx context.Context, q InstrumentQuery) (SumResult, error)
	// SumExtensionIncome applies the same rule to extensions keyed by created_at.
	SumExtensionIncome(ctx context.Context, q InstrumentQuery) (SumResult, error)
}
