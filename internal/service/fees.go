package service

import (
	"github.com/shopspring/decimal"

	"github.com/guttosm/investpulse/config"
	"github.com/guttosm/investpulse/internal/money"
)

// FeeEstimator computes the trading cost of a transaction from its notional
// value, using a fixed percentage schedule plus a flat commission, floored
// at a minimum charge.
type FeeEstimator interface {
	// Estimate returns the estimated fee for a notional value. It always
	// returns a defined, non-negative amount: a negative notional is
	// treated as zero, and the result never falls below the schedule's
	// minimum.
	Estimate(notional decimal.Decimal) decimal.Decimal
}

type feeEstimator struct {
	rate       decimal.Decimal
	commission decimal.Decimal
	minimum    decimal.Decimal
}

// NewFeeEstimator builds a FeeEstimator from the configured schedule.
func NewFeeEstimator(cfg config.FeeConfig) FeeEstimator {
	return &feeEstimator{
		rate:       cfg.ExchangeRate,
		commission: cfg.Commission,
		minimum:    cfg.Minimum,
	}
}

func (e *feeEstimator) Estimate(notional decimal.Decimal) decimal.Decimal {
	if notional.IsNegative() {
		notional = decimal.Zero
	}

	fee := notional.Mul(e.rate).Add(e.commission)
	if fee.LessThan(e.minimum) {
		fee = e.minimum
	}
	return money.RoundCurrency(fee)
}
