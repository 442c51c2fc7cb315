package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of transaction kinds the engine knows.
// Every branch on transaction kind goes through the predicates below, so a
// new kind is a compile-time-visible change, never a stringly-typed one.
type TransactionType string

const (
	TypeBuy  TransactionType = "BUY"
	TypeSell TransactionType = "SELL"
	// Distribution kinds: cash received without reducing the held quantity.
	TypeDividend         TransactionType = "DIVIDEND"
	TypeInterestOnEquity TransactionType = "INTEREST_ON_EQUITY" // Brazilian JCP
	TypeIncome           TransactionType = "INCOME"             // REIT monthly income
)

// transactionTypes lists every valid kind. Keep in sync with the constants.
var transactionTypes = []TransactionType{
	TypeBuy, TypeSell, TypeDividend, TypeInterestOnEquity, TypeIncome,
}

// IsDistribution reports whether the kind is dividend-like: cash paid out to
// the holder (dividends, JCP, REIT income) rather than a trade.
func (t TransactionType) IsDistribution() bool {
	switch t {
	case TypeDividend, TypeInterestOnEquity, TypeIncome:
		return true
	case TypeBuy, TypeSell:
		return false
	}
	return false
}

// Valid reports whether t is one of the known kinds.
func (t TransactionType) Valid() bool {
	for _, k := range transactionTypes {
		if t == k {
			return true
		}
	}
	return false
}

// ParseTransactionType normalizes a free-form kind label (English or the
// Portuguese labels used by brokerage statements) into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY", "COMPRA", "PURCHASE":
		return TypeBuy, nil
	case "SELL", "VENDA":
		return TypeSell, nil
	case "DIVIDEND", "DIVIDENDO":
		return TypeDividend, nil
	case "INTEREST_ON_EQUITY", "JCP", "JUROS_SOBRE_CAPITAL":
		return TypeInterestOnEquity, nil
	case "INCOME", "RENDIMENTO":
		return TypeIncome, nil
	}
	return "", fmt.Errorf("%w: unknown transaction type %q", ErrInvalidInput, s)
}

// Transaction is one recorded buy, sell, or distribution for an asset.
// Instances are immutable once constructed; the engine only reads them.
//
// BrokerageFee and Taxes are optional: nil means "not informed", which the
// aggregation treats as zero.
type Transaction struct {
	ID           uuid.UUID        `json:"id"`
	AssetCode    string           `json:"asset_code"`
	Type         TransactionType  `json:"type"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitPrice    decimal.Decimal  `json:"unit_price"`
	BrokerageFee *decimal.Decimal `json:"brokerage_fee,omitempty"`
	Taxes        *decimal.Decimal `json:"taxes,omitempty"`
	Timestamp    time.Time        `json:"timestamp"`
	Notes        string           `json:"notes,omitempty"`
}

// Notional returns quantity × unit price. Non-negative for any valid
// transaction.
func (t Transaction) Notional() decimal.Decimal {
	return t.Quantity.Mul(t.UnitPrice)
}

// Validate rejects transactions that can never be computed over: unknown
// kind, or negative quantity, price, fee, or tax amounts.
func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return fmt.Errorf("%w: transaction %s has unknown type %q", ErrInvalidInput, t.ID, t.Type)
	}
	if t.Quantity.IsNegative() {
		return fmt.Errorf("%w: transaction %s has negative quantity %s", ErrInvalidInput, t.ID, t.Quantity)
	}
	if t.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: transaction %s has negative unit price %s", ErrInvalidInput, t.ID, t.UnitPrice)
	}
	if t.BrokerageFee != nil && t.BrokerageFee.IsNegative() {
		return fmt.Errorf("%w: transaction %s has negative brokerage fee %s", ErrInvalidInput, t.ID, t.BrokerageFee)
	}
	if t.Taxes != nil && t.Taxes.IsNegative() {
		return fmt.Errorf("%w: transaction %s has negative taxes %s", ErrInvalidInput, t.ID, t.Taxes)
	}
	return nil
}
