package domain

import "github.com/shopspring/decimal"

// MoneyPlaces matches the DECIMAL(15,2) money columns.
const MoneyPlaces = 2

func LineAmount(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(MoneyPlaces)
}

// Shortfall is the unpaid part of total, never negative.
func Shortfall(total, paid decimal.Decimal) decimal.Decimal {
	diff := total.Sub(paid)
	if diff.IsNegative() {
		return decimal.Zero
	}
	return diff
}

// WithinTolerance reports whether a and b differ by at most tol.
func WithinTolerance(a, b, tol decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tol)
}
