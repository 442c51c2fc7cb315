package service

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/guttosm/investpulse/internal/domain/dto"
	"github.com/guttosm/investpulse/internal/domain/models"
	"github.com/guttosm/investpulse/internal/logger"
	"github.com/guttosm/investpulse/internal/money"
)

var (
	one           = decimal.NewFromInt(1)
	daysPerYear   = decimal.NewFromInt(365)
	ceilingFactor = decimal.RequireFromString("1.1")
	supportFactor = decimal.RequireFromString("0.9")
)

// AssetCalculator turns one position snapshot plus its transaction history
// into a profitability result. Pure computation: every call only reads its
// inputs, so it is safe for concurrent use.
type AssetCalculator interface {
	// Compute returns the profitability of one asset. When the position has
	// no current price, market-dependent fields are left nil ("no data"),
	// which is not an error. Negative quantities or prices abort with
	// models.ErrInvalidInput.
	Compute(pos models.Position, txs []models.Transaction) (*dto.AssetProfitability, error)
}

type assetCalculator struct {
	agg  TransactionAggregator
	fees FeeEstimator
	now  func() time.Time
	log  zerolog.Logger
}

// NewAssetCalculator builds the per-asset calculator on top of the
// transaction aggregator and the fee estimator.
func NewAssetCalculator(agg TransactionAggregator, fees FeeEstimator) AssetCalculator {
	return &assetCalculator{
		agg:  agg,
		fees: fees,
		now:  time.Now,
		log:  logger.Component("asset_calculator"),
	}
}

func (c *assetCalculator) Compute(pos models.Position, txs []models.Transaction) (*dto.AssetProfitability, error) {
	if err := pos.Validate(); err != nil {
		return nil, err
	}

	sum, err := c.agg.Summarize(txs)
	if err != nil {
		return nil, err
	}

	c.log.Debug().
		Str("asset", pos.AssetCode).
		Int("transactions", len(txs)).
		Msg("computing asset profitability")

	invested := sum.TotalInvested()
	taxes := c.effectiveTaxes(sum)
	costs := sum.TotalFees.Add(taxes)

	res := &dto.AssetProfitability{
		AssetID:            pos.ID,
		AssetCode:          pos.AssetCode,
		AssetName:          pos.Name,
		Quantity:           pos.Quantity,
		AverageCost:        pos.AverageCost,
		CurrentPrice:       pos.CurrentPrice,
		TotalBuys:          money.RoundCurrency(sum.TotalBuys),
		TotalSells:         money.RoundCurrency(sum.TotalSells),
		TotalDistributions: money.RoundCurrency(sum.TotalDistributions),
		TotalFees:          money.RoundCurrency(sum.TotalFees),
		TotalTaxes:         money.RoundCurrency(taxes),
		TotalCosts:         money.RoundCurrency(costs),
		TotalInvested:      money.RoundCurrency(invested),
		FirstBuyAt:         sum.FirstBuyAt,
		LastTransactionAt:  sum.LastTransactionAt,
		ComputedAt:         c.now(),
	}

	var netPct *decimal.Decimal

	if pos.Quantity.IsPositive() && pos.CurrentPrice != nil {
		price := *pos.CurrentPrice

		marketValue := pos.Quantity.Mul(price)
		valueWithDist := marketValue.Add(sum.TotalDistributions)
		grossProfit := marketValue.Sub(invested)
		netProfit := valueWithDist.Sub(invested).Sub(costs)

		res.MarketValue = roundedPtr(marketValue)
		res.ValueWithDistributions = roundedPtr(valueWithDist)
		res.GrossProfit = roundedPtr(grossProfit)
		res.NetProfit = roundedPtr(netProfit)

		// Percentages over a zero base are defined as zero; a negative base
		// (net seller) leaves them undefined.
		if !invested.IsNegative() {
			gross := money.PercentOf(grossProfit, invested)
			net := money.PercentOf(netProfit, invested)
			res.GrossProfitPct = &gross
			res.NetProfitPct = &net
			netPct = &net
		}

		variation := money.PercentOf(price.Sub(pos.AverageCost), pos.AverageCost)
		res.PriceVariationPct = &variation

		res.ValueVariation = roundedPtr(price.Sub(pos.AverageCost).Mul(pos.Quantity))

		if marketValue.IsPositive() && sum.TotalDistributions.IsPositive() {
			yield := money.PercentOf(sum.TotalDistributions, marketValue)
			res.DividendYieldPct = &yield
		}
	}

	if pos.CurrentPrice != nil {
		res.CeilingPrice = roundedPtr(pos.CurrentPrice.Mul(ceilingFactor))
		res.SupportPrice = roundedPtr(pos.CurrentPrice.Mul(supportFactor))
	}

	if sum.FirstBuyAt != nil && netPct != nil {
		days := int64(c.now().Sub(*sum.FirstBuyAt).Hours() / 24)
		if days > 0 {
			annualized := netPct.Mul(daysPerYear).DivRound(decimal.NewFromInt(days), money.RateScale)
			res.AnnualizedReturnPct = &annualized
		}
	}

	return res, nil
}

// effectiveTaxes raises the recorded tax total to the estimated trading
// costs on realized sells when the records fall short, mirroring how the
// reports fill in taxes investors rarely type in by hand.
func (c *assetCalculator) effectiveTaxes(sum TransactionSummary) decimal.Decimal {
	if !sum.SellNotional.IsPositive() {
		return sum.TotalTaxes
	}
	estimated := c.fees.Estimate(sum.SellNotional)
	if estimated.GreaterThan(sum.TotalTaxes) {
		return estimated
	}
	return sum.TotalTaxes
}

func roundedPtr(d decimal.Decimal) *decimal.Decimal {
	r := money.RoundCurrency(d)
	return &r
}
