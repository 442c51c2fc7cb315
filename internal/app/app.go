// Package app wires configuration into the calculation services and exposes
// them as one engine value for callers to hold.
package app

import (
	"github.com/guttosm/investpulse/config"
	"github.com/guttosm/investpulse/internal/service"
)

// Engine bundles every calculator the reporting layer consumes. All of them
// are stateless and safe for concurrent use, so one Engine can serve any
// number of goroutines.
type Engine struct {
	Fees       service.FeeEstimator
	Aggregator service.TransactionAggregator
	Assets     service.AssetCalculator
	Portfolios service.PortfolioCalculator
	Inflation  service.InflationService
}

// NewEngine builds the full service graph from the loaded configuration.
//
// Responsibilities:
//   - Builds the fee estimator from the configured schedule.
//   - Builds the transaction aggregator and the asset calculator on top
//     of it.
//   - Builds the portfolio aggregator over the asset calculator.
//   - Builds the inflation service over the immutable monthly rate table.
func NewEngine(cfg config.Config) *Engine {
	fees := service.NewFeeEstimator(cfg.Fees)
	agg := service.NewTransactionAggregator()
	assets := service.NewAssetCalculator(agg, fees)

	return &Engine{
		Fees:       fees,
		Aggregator: agg,
		Assets:     assets,
		Portfolios: service.NewPortfolioCalculator(assets),
		Inflation:  service.NewInflationService(cfg.Inflation.Rates),
	}
}
