package revenue

import "github.com/shopspring/decimal"

// SumOrZero turns the result of a SQL SUM over an empty set into zero. Every
// aggregate read goes through here before it takes part in arithmetic.
func SumOrZero(n decimal.NullDecimal) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return n.Decimal
}
