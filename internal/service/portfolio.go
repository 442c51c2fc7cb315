package service

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/investpulse/internal/domain/dto"
	"github.com/guttosm/investpulse/internal/domain/models"
	"github.com/guttosm/investpulse/internal/logger"
	"github.com/guttosm/investpulse/internal/money"
)

var (
	monthsPerYear   = decimal.NewFromInt(12)
	quartersPerYear = decimal.NewFromInt(4)
	halvesPerYear   = decimal.NewFromInt(2)
)

// PortfolioCalculator aggregates per-asset profitability into a portfolio
// view: consolidated totals, composition by class, dispersion, and the
// per-period breakdown.
type PortfolioCalculator interface {
	// Compute runs the asset calculator over every position, concurrently,
	// and folds the results. history maps asset codes to their transaction
	// lists; positions without history get empty sums. The first per-asset
	// error aborts the whole computation.
	Compute(ctx context.Context, p models.Portfolio, history map[string][]models.Transaction) (*dto.PortfolioProfitability, error)
}

type portfolioCalculator struct {
	assets AssetCalculator
	now    func() time.Time
	log    zerolog.Logger
}

// NewPortfolioCalculator builds the portfolio aggregator on top of the
// per-asset calculator.
func NewPortfolioCalculator(assets AssetCalculator) PortfolioCalculator {
	return &portfolioCalculator{
		assets: assets,
		now:    time.Now,
		log:    logger.Component("portfolio_calculator"),
	}
}

func (c *portfolioCalculator) Compute(ctx context.Context, p models.Portfolio, history map[string][]models.Transaction) (*dto.PortfolioProfitability, error) {
	results := make([]dto.AssetProfitability, len(p.Positions))

	g, ctx := errgroup.WithContext(ctx)
	for i, pos := range p.Positions {
		i, pos := i, pos
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := c.assets.Compute(pos, history[pos.AssetCode])
			if err != nil {
				return err
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.log.Debug().
		Str("portfolio", p.Name).
		Int("positions", len(p.Positions)).
		Msg("aggregating portfolio profitability")

	out := &dto.PortfolioProfitability{
		PortfolioID: p.ID,
		Name:        p.Name,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		ComputedAt:  c.now(),
		Assets:      results,
		TotalAssets: len(results),
	}

	invested := decimal.Zero
	marketValue := decimal.Zero
	valueWithDist := decimal.Zero
	grossProfit := decimal.Zero
	netProfit := decimal.Zero

	for i := range results {
		a := &results[i]

		invested = invested.Add(a.TotalInvested)
		out.TotalBuys = out.TotalBuys.Add(a.TotalBuys)
		out.TotalSells = out.TotalSells.Add(a.TotalSells)
		out.TotalDistributions = out.TotalDistributions.Add(a.TotalDistributions)
		out.TotalFees = out.TotalFees.Add(a.TotalFees)
		out.TotalTaxes = out.TotalTaxes.Add(a.TotalTaxes)
		out.TotalCosts = out.TotalCosts.Add(a.TotalCosts)

		// Unpriced positions contribute invested capital but nothing to the
		// market-dependent sums.
		marketValue = marketValue.Add(orZero(a.MarketValue))
		valueWithDist = valueWithDist.Add(orZero(a.ValueWithDistributions))
		grossProfit = grossProfit.Add(orZero(a.GrossProfit))
		netProfit = netProfit.Add(orZero(a.NetProfit))

		if a.NetProfit != nil {
			switch {
			case a.NetProfit.IsPositive():
				out.PositiveAssets++
			case a.NetProfit.IsNegative():
				out.NegativeAssets++
			}
		}
	}

	out.TotalInvested = money.RoundCurrency(invested)
	out.MarketValue = money.RoundCurrency(marketValue)
	out.ValueWithDistributions = money.RoundCurrency(valueWithDist)
	out.GrossProfit = money.RoundCurrency(grossProfit)
	out.NetProfit = money.RoundCurrency(netProfit)

	if !invested.IsNegative() {
		gross := money.PercentOf(grossProfit, invested)
		net := money.PercentOf(netProfit, invested)
		out.GrossProfitPct = &gross
		out.NetProfitPct = &net
		out.Performance = periodPerformance(net)
	}

	out.Allocation = allocation(p.Positions)
	out.Volatility = volatility(results)

	return out, nil
}

// allocation breaks the portfolio down by asset class, valuing each position
// at its reference price so unquoted assets still show up in the mix.
func allocation(positions []models.Position) dto.Allocation {
	byClass := map[models.AssetClass]decimal.Decimal{}
	total := decimal.Zero
	for _, pos := range positions {
		value := pos.Quantity.Mul(pos.ReferencePrice())
		byClass[pos.Class] = byClass[pos.Class].Add(value)
		total = total.Add(value)
	}
	return dto.Allocation{
		StocksPct:      money.PercentOf(byClass[models.ClassStock], total),
		REITsPct:       money.PercentOf(byClass[models.ClassREIT], total),
		ETFsPct:        money.PercentOf(byClass[models.ClassETF], total),
		FixedIncomePct: money.PercentOf(byClass[models.ClassFixedIncome], total),
		CryptoPct:      money.PercentOf(byClass[models.ClassCrypto], total),
	}
}

// volatility is the Bessel-corrected standard deviation of the assets'
// price variation percentages. Assets without a variation still count in
// the mean's denominator, dampening portfolios that are mostly unquoted.
func volatility(assets []dto.AssetProfitability) *decimal.Decimal {
	n := len(assets)
	if n < 2 {
		return nil
	}

	total := decimal.NewFromInt(int64(n))
	sum := decimal.Zero
	for i := range assets {
		if v := assets[i].PriceVariationPct; v != nil {
			sum = sum.Add(*v)
		}
	}
	mean := sum.DivRound(total, money.RateScale)

	squares := decimal.Zero
	for i := range assets {
		if v := assets[i].PriceVariationPct; v != nil {
			diff := v.Sub(mean)
			squares = squares.Add(diff.Mul(diff))
		}
	}
	variance := squares.DivRound(total.Sub(one), money.RateScale)

	sd := decimal.NewFromFloat(math.Sqrt(variance.InexactFloat64())).Round(money.RateScale)
	return &sd
}

// periodPerformance is the display-style breakdown: fixed fractions of the
// net return, not an attribution over price history.
func periodPerformance(netPct decimal.Decimal) *dto.PeriodPerformance {
	return &dto.PeriodPerformance{
		MonthPct:    netPct.DivRound(monthsPerYear, money.RateScale),
		QuarterPct:  netPct.DivRound(quartersPerYear, money.RateScale),
		SemesterPct: netPct.DivRound(halvesPerYear, money.RateScale),
		YearPct:     netPct,
		YTDPct:      netPct,
	}
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
