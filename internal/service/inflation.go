package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/guttosm/investpulse/config"
	"github.com/guttosm/investpulse/internal/dateutil"
	"github.com/guttosm/investpulse/internal/domain/dto"
	"github.com/guttosm/investpulse/internal/domain/models"
	"github.com/guttosm/investpulse/internal/logger"
	"github.com/guttosm/investpulse/internal/money"
)

// InflationService compounds the monthly rate table between two dates and
// converts monetary amounts between the purchasing powers of those dates.
// Time-of-day is ignored everywhere: only calendar days matter.
type InflationService interface {
	// AccumulatedInflation returns the compounded inflation between start and
	// end as a decimal fraction (0.0325 means 3.25%), with day-level
	// proration at partial boundary months. Equal dates yield exactly zero;
	// end before start yields models.ErrInvalidDateRange.
	AccumulatedInflation(start, end time.Time) (decimal.Decimal, error)

	// Deflate expresses value (dated valueDate) in the purchasing power of
	// the earlier pastDate.
	Deflate(value decimal.Decimal, pastDate, valueDate time.Time) (decimal.Decimal, error)

	// Inflate expresses value (dated pastDate) in the purchasing power of
	// the later targetDate.
	Inflate(value decimal.Decimal, pastDate, targetDate time.Time) (decimal.Decimal, error)

	// AdjustForInflation bundles the accumulated rate with both conversions
	// of value over the range.
	AdjustForInflation(value decimal.Decimal, start, end time.Time) (*dto.InflationAdjustment, error)

	// RealGain decomposes the nominal gain from initial to final over the
	// range into inflation and real return (Fisher decomposition).
	RealGain(initial, final decimal.Decimal, start, end time.Time) (*dto.RealGainResult, error)

	// PurchasingPower returns the fraction of value's purchasing power left
	// after inflation over the range, e.g. 0.9917 after 0.84% of inflation.
	PurchasingPower(value decimal.Decimal, start, end time.Time) (decimal.Decimal, error)

	// AnnualizedRate scales the accumulated inflation linearly to a twelve
	// month rate. Ranges under one complete month return the accumulated
	// rate unscaled.
	AnnualizedRate(start, end time.Time) (decimal.Decimal, error)
}

type inflationService struct {
	rates config.MonthlyRates
	log   zerolog.Logger
}

// NewInflationService builds the inflation calculators over an immutable
// monthly rate table.
func NewInflationService(rates config.MonthlyRates) InflationService {
	return &inflationService{
		rates: rates,
		log:   logger.Component("inflation_service"),
	}
}

func (s *inflationService) AccumulatedInflation(start, end time.Time) (decimal.Decimal, error) {
	start, end = dateutil.Truncate(start), dateutil.Truncate(end)
	if end.Before(start) {
		return decimal.Zero, fmt.Errorf("%w: start %s after end %s",
			models.ErrInvalidDateRange, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	if start.Equal(end) {
		return decimal.Zero, nil
	}

	if start.Year() == end.Year() && start.Month() == end.Month() {
		elapsed := end.Day() - start.Day()
		if elapsed <= 0 {
			return decimal.Zero, nil
		}
		fraction := decimal.NewFromInt(int64(elapsed)).
			DivRound(decimal.NewFromInt(int64(dateutil.DaysInMonth(start))), money.RateScale)
		return money.RoundRate(s.monthRate(start).Mul(fraction)), nil
	}

	// Compound whole months first, then prorate the two boundary months by
	// dividing out their full factor and multiplying in a day-scaled one.
	// The order of operations is load-bearing: existing reports round at the
	// fourth decimal and a rearranged formula drifts there.
	factor := one
	for m := dateutil.FirstOfMonth(start); !m.After(end); m = m.AddDate(0, 1, 0) {
		factor = factor.Mul(one.Add(s.monthRate(m)))
	}

	if start.Day() > 1 {
		rate := s.monthRate(start)
		days := dateutil.DaysInMonth(start)
		fraction := decimal.NewFromInt(int64(days - start.Day() + 1)).
			DivRound(decimal.NewFromInt(int64(days)), money.RateScale)
		factor = factor.DivRound(one.Add(rate), money.FactorScale)
		factor = factor.Mul(one.Add(rate.Mul(fraction)))
	}
	if !dateutil.IsLastDayOfMonth(end) {
		rate := s.monthRate(end)
		fraction := decimal.NewFromInt(int64(end.Day())).
			DivRound(decimal.NewFromInt(int64(dateutil.DaysInMonth(end))), money.RateScale)
		factor = factor.DivRound(one.Add(rate), money.FactorScale)
		factor = factor.Mul(one.Add(rate.Mul(fraction)))
	}

	return money.RoundRate(factor.Sub(one)), nil
}

func (s *inflationService) Deflate(value decimal.Decimal, pastDate, valueDate time.Time) (decimal.Decimal, error) {
	rate, err := s.AccumulatedInflation(pastDate, valueDate)
	if err != nil {
		return decimal.Zero, err
	}
	return money.RoundCurrency(value.DivRound(one.Add(rate), money.FactorScale)), nil
}

func (s *inflationService) Inflate(value decimal.Decimal, pastDate, targetDate time.Time) (decimal.Decimal, error) {
	rate, err := s.AccumulatedInflation(pastDate, targetDate)
	if err != nil {
		return decimal.Zero, err
	}
	return money.RoundCurrency(value.Mul(one.Add(rate))), nil
}

func (s *inflationService) AdjustForInflation(value decimal.Decimal, start, end time.Time) (*dto.InflationAdjustment, error) {
	rate, err := s.AccumulatedInflation(start, end)
	if err != nil {
		return nil, err
	}
	return &dto.InflationAdjustment{
		Value:           money.RoundCurrency(value),
		StartDate:       dateutil.Truncate(start),
		EndDate:         dateutil.Truncate(end),
		AccumulatedRate: rate,
		DeflatedValue:   money.RoundCurrency(value.DivRound(one.Add(rate), money.FactorScale)),
		InflatedValue:   money.RoundCurrency(value.Mul(one.Add(rate))),
	}, nil
}

func (s *inflationService) RealGain(initial, final decimal.Decimal, start, end time.Time) (*dto.RealGainResult, error) {
	rate, err := s.AccumulatedInflation(start, end)
	if err != nil {
		return nil, err
	}

	nominal := money.Ratio(final.Sub(initial), initial)
	// Fisher decomposition: division, not subtraction.
	real := one.Add(nominal).DivRound(one.Add(rate), money.RateScale).Sub(one)

	return &dto.RealGainResult{
		InitialValue:    money.RoundCurrency(initial),
		FinalValue:      money.RoundCurrency(final),
		StartDate:       dateutil.Truncate(start),
		EndDate:         dateutil.Truncate(end),
		NominalGainRate: nominal,
		AccumulatedRate: rate,
		RealGainRate:    real,
	}, nil
}

func (s *inflationService) PurchasingPower(value decimal.Decimal, start, end time.Time) (decimal.Decimal, error) {
	deflated, err := s.Deflate(value, start, end)
	if err != nil {
		return decimal.Zero, err
	}
	return money.Ratio(deflated, value), nil
}

func (s *inflationService) AnnualizedRate(start, end time.Time) (decimal.Decimal, error) {
	rate, err := s.AccumulatedInflation(start, end)
	if err != nil {
		return decimal.Zero, err
	}
	months := dateutil.MonthsBetween(start, end)
	if months <= 0 {
		return rate, nil
	}
	return rate.Mul(monthsPerYear).DivRound(decimal.NewFromInt(int64(months)), money.RateScale), nil
}

// monthRate resolves the table rate for t's month, warning when the fallback
// substitutes for an absent month.
func (s *inflationService) monthRate(t time.Time) decimal.Decimal {
	key := dateutil.MonthKey(t)
	rate, ok := s.rates.Lookup(key)
	if !ok {
		s.log.Warn().
			Str("month", key).
			Str("fallback", rate.String()).
			Msg("no inflation rate for month, using fallback")
	}
	return rate
}
