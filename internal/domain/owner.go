package domain

// Owner is a revenue-sharing stakeholder. It labels cars and ledger entries and
// indexes the three parts of a rent's income split.
type Owner string

const (
	OwnerAdmin    Owner = "ADMIN"
	OwnerInvestor Owner = "INVESTOR"
	OwnerPartner  Owner = "PARTNER"
)

// Owners lists the roles in income split order.
var Owners = []Owner{OwnerAdmin, OwnerInvestor, OwnerPartner}

func (o Owner) Valid() bool {
	switch o {
	case OwnerAdmin, OwnerInvestor, OwnerPartner:
		return true
	}
	return false
}

type PaymentType string

const (
	PaymentTypeCash PaymentType = "CASH"
	PaymentTypeCard PaymentType = "CARD"
)

func (p PaymentType) Valid() bool {
	return p == PaymentTypeCash || p == PaymentTypeCard
}
