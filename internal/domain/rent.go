package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentStatus string

const (
	RentStatusPaid      RentStatus = "PAID"
	RentStatusInProcess RentStatus = "IN_PROCESS"
	RentStatusDuty      RentStatus = "DUTY"
	RentStatusPledge    RentStatus = "PLEDGE"
)

func (s RentStatus) Valid() bool {
	switch s {
	case RentStatusPaid, RentStatusInProcess, RentStatusDuty, RentStatusPledge:
		return true
	}
	return false
}

// ValidForExtension reports whether an extension may carry this status.
// Extensions are never pledges.
func (s RentStatus) ValidForExtension() bool {
	return s == RentStatusPaid || s == RentStatusInProcess || s == RentStatusDuty
}

// IncomeSplit holds the admin, investor and partner percentages, in that order.
type IncomeSplit [3]int

type Rent struct {
	ID                    int32           `json:"id"`
	Name                  string          `json:"name"`
	PhoneNumber           string          `json:"phoneNumber"`
	StartDate             time.Time       `json:"startDate"`
	EndDate               time.Time       `json:"endDate"`
	InitialEndDate        time.Time       `json:"initialEndDate"`
	Status                RentStatus      `json:"status"`
	GuaranteeType         PaymentType     `json:"guaranteeType"`
	GuaranteeAmount       decimal.Decimal `json:"guaranteeAmount"`
	IsGuaranteeReturned   bool            `json:"isGuaranteeReturned"`
	Amount                decimal.Decimal `json:"amount"`
	AmountPaid            decimal.Decimal `json:"amountPaid"`
	PaymentType           PaymentType     `json:"paymentType"`
	AmountPaidPaymentType PaymentType     `json:"amountPaidPaymentType"`
	IncomeSplit           IncomeSplit     `json:"incomePersentage"`
	AdminIncome           decimal.Decimal `json:"adminIncome"`
	InvestorIncome        decimal.Decimal `json:"investorIncome"`
	PartnerIncome         decimal.Decimal `json:"partnerIncome"`
	IsRentExtended        bool            `json:"isRentExtended"`
	CarID                 *int32          `json:"carId,omitempty"`
	Extensions            []RentExtension `json:"rentExtensions,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

// OwnerIncome returns the stored income attributed to the given role.
func (r *Rent) OwnerIncome(o Owner) decimal.Decimal {
	switch o {
	case OwnerAdmin:
		return r.AdminIncome
	case OwnerInvestor:
		return r.InvestorIncome
	case OwnerPartner:
		return r.PartnerIncome
	}
	return decimal.Zero
}

type RentExtension struct {
	ID                    int32           `json:"id"`
	RentID                int32           `json:"rentId"`
	ExtendedDaysQuantity  int32           `json:"extendedDaysQuantity"`
	StartDate             time.Time       `json:"startDate"`
	EndDate               time.Time       `json:"endDate"`
	Status                RentStatus      `json:"status"`
	Amount                decimal.Decimal `json:"amount"`
	AmountPaid            decimal.Decimal `json:"amountPaid"`
	PaymentType           PaymentType     `json:"paymentType"`
	AmountPaidPaymentType PaymentType     `json:"amountPaidPaymentType"`
	CreatedAt             time.Time       `json:"createdAt"`
}

// RentFilter narrows rent listings. GuaranteeCash and GuaranteeCard keep only
// rents whose guarantee of that instrument has not been returned yet.
type RentFilter struct {
	GuaranteeCash bool
	GuaranteeCard bool
}
