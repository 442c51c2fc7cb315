package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetProfitability is the per-asset calculation result. It has no
// lifecycle: it is recomputed on every request and discarded.
//
// Pointer fields are market-dependent: they stay nil when the position has
// no current price (or, for AnnualizedReturnPct, no first buy date). nil
// means "no data", which is different from zero.
type AssetProfitability struct {
	AssetID   uuid.UUID `json:"asset_id"`
	AssetCode string    `json:"asset_code"`
	AssetName string    `json:"asset_name,omitempty"`

	Quantity     decimal.Decimal  `json:"quantity"`
	AverageCost  decimal.Decimal  `json:"average_cost"`
	CurrentPrice *decimal.Decimal `json:"current_price,omitempty"`

	TotalBuys          decimal.Decimal `json:"total_buys"`
	TotalSells         decimal.Decimal `json:"total_sells"`
	TotalDistributions decimal.Decimal `json:"total_distributions"`
	TotalFees          decimal.Decimal `json:"total_fees"`
	TotalTaxes         decimal.Decimal `json:"total_taxes"`
	TotalCosts         decimal.Decimal `json:"total_costs"`
	TotalInvested      decimal.Decimal `json:"total_invested"`

	MarketValue            *decimal.Decimal `json:"market_value,omitempty"`
	ValueWithDistributions *decimal.Decimal `json:"value_with_distributions,omitempty"`
	GrossProfit            *decimal.Decimal `json:"gross_profit,omitempty"`
	NetProfit              *decimal.Decimal `json:"net_profit,omitempty"`
	GrossProfitPct         *decimal.Decimal `json:"gross_profit_pct,omitempty"`
	NetProfitPct           *decimal.Decimal `json:"net_profit_pct,omitempty"`
	PriceVariationPct      *decimal.Decimal `json:"price_variation_pct,omitempty"`
	ValueVariation         *decimal.Decimal `json:"value_variation,omitempty"`
	DividendYieldPct       *decimal.Decimal `json:"dividend_yield_pct,omitempty"`
	CeilingPrice           *decimal.Decimal `json:"ceiling_price,omitempty"`
	SupportPrice           *decimal.Decimal `json:"support_price,omitempty"`

	// AnnualizedReturnPct is a linear scaling of the net return by
	// 365/daysSinceFirstBuy. It is not a compounded CAGR.
	AnnualizedReturnPct *decimal.Decimal `json:"annualized_return_pct,omitempty"`

	FirstBuyAt        *time.Time `json:"first_buy_at,omitempty"`
	LastTransactionAt *time.Time `json:"last_transaction_at,omitempty"`
	ComputedAt        time.Time  `json:"computed_at"`
}
