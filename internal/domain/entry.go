package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind distinguishes the two flat money ledgers kept next to rentals.
type EntryKind string

const (
	EntryKindIncome  EntryKind = "income"
	EntryKindOutcome EntryKind = "outcome"
)

// Entry is one miscellaneous income or outcome record attributed to a role.
type Entry struct {
	ID          int32           `json:"id"`
	Kind        EntryKind       `json:"-"`
	Owner       Owner           `json:"owner"`
	Comment     string          `json:"comment"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType *PaymentType    `json:"paymentType,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
