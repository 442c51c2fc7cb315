package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Allocation is the portfolio composition by asset class, each value a
// percentage of total market value. The percentages sum to at most 100.
type Allocation struct {
	StocksPct      decimal.Decimal `json:"stocks_pct"`
	REITsPct       decimal.Decimal `json:"reits_pct"`
	ETFsPct        decimal.Decimal `json:"etfs_pct"`
	FixedIncomePct decimal.Decimal `json:"fixed_income_pct"`
	CryptoPct      decimal.Decimal `json:"crypto_pct"`
}

// PeriodPerformance is the naive per-period breakdown carried over from the
// display layer: fixed fractions of the net percentage return, not a
// price-history-based attribution.
type PeriodPerformance struct {
	MonthPct    decimal.Decimal `json:"month_pct"`
	QuarterPct  decimal.Decimal `json:"quarter_pct"`
	SemesterPct decimal.Decimal `json:"semester_pct"`
	YearPct     decimal.Decimal `json:"year_pct"`
	YTDPct      decimal.Decimal `json:"ytd_pct"`
}

// PortfolioProfitability aggregates the per-asset results of one portfolio.
//
// Totals are element-wise sums over the assets, with nil market-dependent
// values contributing zero: an unpriced position still contributes its
// invested capital, but nothing to market value.
type PortfolioProfitability struct {
	PortfolioID uuid.UUID `json:"portfolio_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ComputedAt  time.Time `json:"computed_at"`

	TotalInvested          decimal.Decimal `json:"total_invested"`
	MarketValue            decimal.Decimal `json:"market_value"`
	ValueWithDistributions decimal.Decimal `json:"value_with_distributions"`
	TotalBuys              decimal.Decimal `json:"total_buys"`
	TotalSells             decimal.Decimal `json:"total_sells"`
	TotalDistributions     decimal.Decimal `json:"total_distributions"`
	TotalFees              decimal.Decimal `json:"total_fees"`
	TotalTaxes             decimal.Decimal `json:"total_taxes"`
	TotalCosts             decimal.Decimal `json:"total_costs"`

	GrossProfit    decimal.Decimal  `json:"gross_profit"`
	NetProfit      decimal.Decimal  `json:"net_profit"`
	GrossProfitPct *decimal.Decimal `json:"gross_profit_pct,omitempty"`
	NetProfitPct   *decimal.Decimal `json:"net_profit_pct,omitempty"`

	Allocation Allocation `json:"allocation"`

	// Volatility is the Bessel-corrected sample standard deviation of the
	// assets' price variation percentages. nil with fewer than two assets.
	Volatility *decimal.Decimal `json:"volatility,omitempty"`

	Performance *PeriodPerformance `json:"performance,omitempty"`

	Assets         []AssetProfitability `json:"assets"`
	TotalAssets    int                  `json:"total_assets"`
	PositiveAssets int                  `json:"positive_assets"`
	NegativeAssets int                  `json:"negative_assets"`
}
