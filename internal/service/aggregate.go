package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/investpulse/internal/domain/models"
)

// TransactionSummary holds the per-asset sums over a transaction history.
// The sums are order-independent; only the date fields depend on timestamps,
// as min/max with arbitrary tie-breaking.
type TransactionSummary struct {
	TotalBuys          decimal.Decimal
	TotalSells         decimal.Decimal
	TotalDistributions decimal.Decimal
	TotalFees          decimal.Decimal
	TotalTaxes         decimal.Decimal

	// SellNotional is the summed notional of sell transactions, kept for
	// downstream cost estimation.
	SellNotional decimal.Decimal

	FirstBuyAt        *time.Time
	LastTransactionAt *time.Time
}

// TotalInvested is the capital currently at risk: buys net of realized
// sells, not cumulative spend.
func (s TransactionSummary) TotalInvested() decimal.Decimal {
	return s.TotalBuys.Sub(s.TotalSells)
}

// TotalCosts is the sum of brokerage fees and taxes.
func (s TransactionSummary) TotalCosts() decimal.Decimal {
	return s.TotalFees.Add(s.TotalTaxes)
}

// TransactionAggregator partitions a position's transaction history by kind
// and sums notional values, fees, and taxes.
type TransactionAggregator interface {
	// Summarize folds a transaction list, ordered or not, into its sums.
	// Missing fee/tax fields count as zero. Any invalid transaction aborts
	// the whole aggregation with models.ErrInvalidInput.
	Summarize(txs []models.Transaction) (TransactionSummary, error)
}

type transactionAggregator struct{}

// NewTransactionAggregator builds the stateless aggregator.
func NewTransactionAggregator() TransactionAggregator {
	return &transactionAggregator{}
}

func (a *transactionAggregator) Summarize(txs []models.Transaction) (TransactionSummary, error) {
	var sum TransactionSummary
	sum.TotalBuys = decimal.Zero
	sum.TotalSells = decimal.Zero
	sum.TotalDistributions = decimal.Zero
	sum.TotalFees = decimal.Zero
	sum.TotalTaxes = decimal.Zero
	sum.SellNotional = decimal.Zero

	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return TransactionSummary{}, err
		}

		switch {
		case tx.Type == models.TypeBuy:
			sum.TotalBuys = sum.TotalBuys.Add(tx.Notional())
		case tx.Type == models.TypeSell:
			sum.TotalSells = sum.TotalSells.Add(tx.Notional())
			sum.SellNotional = sum.SellNotional.Add(tx.Notional())
		case tx.Type.IsDistribution():
			sum.TotalDistributions = sum.TotalDistributions.Add(tx.Notional())
		}

		if tx.BrokerageFee != nil {
			sum.TotalFees = sum.TotalFees.Add(*tx.BrokerageFee)
		}
		if tx.Taxes != nil {
			sum.TotalTaxes = sum.TotalTaxes.Add(*tx.Taxes)
		}

		when := tx.Timestamp
		if tx.Type == models.TypeBuy {
			if sum.FirstBuyAt == nil || when.Before(*sum.FirstBuyAt) {
				first := when
				sum.FirstBuyAt = &first
			}
		}
		if sum.LastTransactionAt == nil || when.After(*sum.LastTransactionAt) {
			last := when
			sum.LastTransactionAt = &last
		}
	}

	return sum, nil
}
