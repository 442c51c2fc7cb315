package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetClass is the closed set of asset classes used for portfolio
// composition breakdowns.
type AssetClass string

const (
	ClassStock       AssetClass = "STOCK"
	ClassREIT        AssetClass = "REIT" // Brazilian FIIs
	ClassETF         AssetClass = "ETF"
	ClassFixedIncome AssetClass = "FIXED_INCOME" // CDB, LCI, LCA, Tesouro
	ClassCrypto      AssetClass = "CRYPTO"
)

// ParseAssetClass normalizes a free-form class label, accepting the
// Portuguese instrument names common in brokerage exports.
func ParseAssetClass(s string) (AssetClass, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "STOCK", "ACAO", "ACOES":
		return ClassStock, nil
	case "REIT", "FII":
		return ClassREIT, nil
	case "ETF":
		return ClassETF, nil
	case "FIXED_INCOME", "CDB", "LCI", "LCA", "TESOURO":
		return ClassFixedIncome, nil
	case "CRYPTO", "CRIPTOMOEDA":
		return ClassCrypto, nil
	}
	return "", fmt.Errorf("%w: unknown asset class %q", ErrInvalidInput, s)
}

// Position is the current snapshot of one asset inside one portfolio.
// It is owned and mutated by the transaction-recording collaborator; the
// engine only reads it.
//
// CurrentPrice is nil when no market quote is available. That is a defined
// "no data" state: market-dependent outputs stay nil instead of becoming
// zero.
type Position struct {
	ID           uuid.UUID        `json:"id"`
	AssetCode    string           `json:"asset_code"`
	Name         string           `json:"name,omitempty"`
	Class        AssetClass       `json:"class"`
	Quantity     decimal.Decimal  `json:"quantity"`
	AverageCost  decimal.Decimal  `json:"average_cost"`
	CurrentPrice *decimal.Decimal `json:"current_price,omitempty"`
}

// ReferencePrice returns the price used for composition breakdowns: the
// market price when quoted, otherwise the average cost.
func (p Position) ReferencePrice() decimal.Decimal {
	if p.CurrentPrice != nil {
		return *p.CurrentPrice
	}
	return p.AverageCost
}

// Validate rejects snapshots the calculators cannot work with.
func (p Position) Validate() error {
	if p.Quantity.IsNegative() {
		return fmt.Errorf("%w: position %s has negative quantity %s", ErrInvalidInput, p.AssetCode, p.Quantity)
	}
	if p.AverageCost.IsNegative() {
		return fmt.Errorf("%w: position %s has negative average cost %s", ErrInvalidInput, p.AssetCode, p.AverageCost)
	}
	if p.CurrentPrice != nil && p.CurrentPrice.IsNegative() {
		return fmt.Errorf("%w: position %s has negative current price %s", ErrInvalidInput, p.AssetCode, p.CurrentPrice)
	}
	return nil
}
