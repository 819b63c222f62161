// Package revenue holds the pure money rules of the fleet: how a rent's amount
// is shared between roles, how extensions are folded back into a rent for
// reporting, and how guarantees are classified.
package revenue

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fleetrent-backend/internal/domain"
)

// Shares is the per-role part of an amount.
type Shares struct {
	Admin    decimal.Decimal
	Investor decimal.Decimal
	Partner  decimal.Decimal
}

// Total returns the sum of the three shares.
func (s Shares) Total() decimal.Decimal {
	return s.Admin.Add(s.Investor).Add(s.Partner)
}

// Add returns the role-wise sum of two share sets.
func (s Shares) Add(o Shares) Shares {
	return Shares{
		Admin:    s.Admin.Add(o.Admin),
		Investor: s.Investor.Add(o.Investor),
		Partner:  s.Partner.Add(o.Partner),
	}
}

// Of returns the share of the given role.
func (s Shares) Of(o domain.Owner) decimal.Decimal {
	switch o {
	case domain.OwnerAdmin:
		return s.Admin
	case domain.OwnerInvestor:
		return s.Investor
	case domain.OwnerPartner:
		return s.Partner
	}
	return decimal.Zero
}

// SplitSum returns the sum of the three percentages.
func SplitSum(split domain.IncomeSplit) int {
	return split[0] + split[1] + split[2]
}

// ValidateSplit checks that no part is negative and that the parts add up to 100.
func ValidateSplit(split domain.IncomeSplit) error {
	for i, p := range split {
		if p < 0 {
			return domain.NewValidationError("incomePersentage", fmt.Sprintf("part %d must not be negative", i))
		}
	}
	if sum := SplitSum(split); sum != 100 {
		return domain.NewValidationError("incomePersentage", fmt.Sprintf("income persentage must be 100, got %d", sum))
	}
	return nil
}

// Allocate splits amount by percentage: amount*p/100 for each role.
// Shifting by two decimal places keeps the division exact.
func Allocate(amount decimal.Decimal, split domain.IncomeSplit) Shares {
	part := func(p int) decimal.Decimal {
		return amount.Mul(decimal.NewFromInt(int64(p))).Shift(-2)
	}
	return Shares{
		Admin:    part(split[0]),
		Investor: part(split[1]),
		Partner:  part(split[2]),
	}
}

// ApplySplit stores the allocation of rent.Amount on the rent's income fields.
func ApplySplit(rent *domain.Rent) {
	shares := Allocate(rent.Amount, rent.IncomeSplit)
	rent.AdminIncome = shares.Admin
	rent.InvestorIncome = shares.Investor
	rent.PartnerIncome = shares.Partner
}

// PaidExtensionTotal sums the amounts of the rent's PAID extensions.
func PaidExtensionTotal(rent domain.Rent) decimal.Decimal {
	total := decimal.Zero
	for _, ext := range rent.Extensions {
		if ext.Status == domain.RentStatusPaid {
			total = total.Add(ext.Amount)
		}
	}
	return total
}

// Reconstruct returns a copy of rent with its PAID extensions folded in: the
// extension total is added to Amount and each role income grows by its share
// of that total under the rent's own split. The argument is left untouched.
func Reconstruct(rent domain.Rent) domain.Rent {
	out := rent
	if len(rent.Extensions) > 0 {
		out.Extensions = append([]domain.RentExtension(nil), rent.Extensions...)
	}

	extra := PaidExtensionTotal(rent)
	if extra.IsZero() {
		return out
	}

	inc := Allocate(extra, rent.IncomeSplit)
	out.Amount = rent.Amount.Add(extra)
	out.AdminIncome = rent.AdminIncome.Add(inc.Admin)
	out.InvestorIncome = rent.InvestorIncome.Add(inc.Investor)
	out.PartnerIncome = rent.PartnerIncome.Add(inc.Partner)
	return out
}

// ReconstructAll applies Reconstruct to every rent.
func ReconstructAll(rents []domain.Rent) []domain.Rent {
	out := make([]domain.Rent, len(rents))
	for i, r := range rents {
		out[i] = Reconstruct(r)
	}
	return out
}

// RoleIncomes sums the stored role incomes of the given rents.
func RoleIncomes(rents []domain.Rent) Shares {
	var s Shares
	for _, r := range rents {
		s = s.Add(Shares{Admin: r.AdminIncome, Investor: r.InvestorIncome, Partner: r.PartnerIncome})
	}
	return s
}
