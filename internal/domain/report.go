package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SummaryReport is the money overview returned by the monitoring sum endpoints.
// RentIncomeCash and RentIncomeCard are only filled by month reports.
type SummaryReport struct {
	Income         decimal.Decimal  `json:"income"`
	RentIncome     decimal.Decimal  `json:"rentIncome"`
	RentIncomeCash *decimal.Decimal `json:"rentIncomeCash,omitempty"`
	RentIncomeCard *decimal.Decimal `json:"rentIncomeCard,omitempty"`
	TotalIncome    decimal.Decimal  `json:"totalIncome"`
	Outcome        decimal.Decimal  `json:"outcome"`
	Total          decimal.Decimal  `json:"total"`
	GuaranteeBreakdown
}

// GuaranteeBreakdown is the point-in-time deposit liability.
type GuaranteeBreakdown struct {
	Duty       decimal.Decimal `json:"duty"`
	CashDuty   decimal.Decimal `json:"cash_duty"`
	CardDuty   decimal.Decimal `json:"card_duty"`
	CashPledge decimal.Decimal `json:"cash_pledge"`
	CardPledge decimal.Decimal `json:"card_pledge"`
}

// OwnersIncome is the real balance of each role.
type OwnersIncome struct {
	AdminIncome    decimal.Decimal `json:"adminIncome"`
	InvestorIncome decimal.Decimal `json:"investorIncome"`
	PartnerIncome  decimal.Decimal `json:"partnerIncome"`
}

type HistoryEntryType string

const (
	HistoryEntryIncome  HistoryEntryType = "income"
	HistoryEntryOutcome HistoryEntryType = "outcome"
	HistoryEntryRent    HistoryEntryType = "rent"
)

// HistoryEntry is one tagged row of a role timeline. Rent rows carry the
// role's share as Amount and the rent's end date as CreatedAt.
type HistoryEntry struct {
	Type        HistoryEntryType `json:"type"`
	ID          int32            `json:"id"`
	Owner       Owner            `json:"owner"`
	Comment     string           `json:"comment,omitempty"`
	Amount      decimal.Decimal  `json:"amount"`
	PaymentType *PaymentType     `json:"paymentType,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	Rent        *Rent            `json:"rent,omitempty"`
}

type DailySummary struct {
	Date     string          `json:"date"`
	Income   decimal.Decimal `json:"income"`
	Outcome  decimal.Decimal `json:"outcome"`
	Rent     decimal.Decimal `json:"rent"`
	Detailed []HistoryEntry  `json:"detailed"`
}

type RoleHistory struct {
	DailySummary []DailySummary `json:"dailySummary"`
}

type RoleTotal struct {
	Income  decimal.Decimal `json:"income"`
	Outcome decimal.Decimal `json:"outcome"`
}

type RoleTotals struct {
	Admin    RoleTotal `json:"admin"`
	Investor RoleTotal `json:"investor"`
	Partner  RoleTotal `json:"partner"`
}

type RoleHistories struct {
	Admin    RoleHistory `json:"admin"`
	Investor RoleHistory `json:"investor"`
	Partner  RoleHistory `json:"partner"`
}

type HistoryReport struct {
	Total      RoleTotals    `json:"total"`
	History    RoleHistories `json:"history"`
	TotalPages int64         `json:"totalPages"`
}
