// Package money centralizes the decimal arithmetic policy of the engine:
// monetary amounts are rounded to 2 decimal places, percentage and ratio
// intermediates are computed at 4 decimal places, and every division carries
// an explicit scale with half-up rounding. Binary floating point is never
// used for money.
package money

import (
	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const (
	// CurrencyScale is the number of decimal places of a final monetary amount.
	CurrencyScale = 2
	// RateScale is the number of decimal places of ratio/percentage intermediates.
	RateScale = 4
	// FactorScale is the scale used for intermediate compounding factors,
	// where 4 places would lose too much precision before the final rounding.
	FactorScale = 10
)

var hundred = decimal.NewFromInt(100)

// RoundCurrency rounds d to 2 decimal places, half-up.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyScale)
}

// RoundRate rounds d to 4 decimal places, half-up.
func RoundRate(d decimal.Decimal) decimal.Decimal {
	return d.Round(RateScale)
}

// Ratio divides num by den at 4 decimal places, half-up. A zero divisor
// yields exactly zero: a ratio over an empty base is defined, not an error.
func Ratio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.DivRound(den, RateScale)
}

// PercentOf returns num/den as a percentage: the 4-decimal ratio times 100.
// Zero divisor yields zero, per the same policy as Ratio.
func PercentOf(num, den decimal.Decimal) decimal.Decimal {
	return Ratio(num, den).Mul(hundred)
}

// FormatBRL renders d as a Brazilian real amount, e.g. "R$1.234,56".
func FormatBRL(d decimal.Decimal) string {
	cents := RoundCurrency(d).Shift(CurrencyScale).IntPart()
	return gomoney.New(cents, gomoney.BRL).Display()
}
