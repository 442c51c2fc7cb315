package models

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestParseTransactionType(t *testing.T) {
	cases := []struct {
		in      string
		want    TransactionType
		wantErr bool
	}{
		{"buy", TypeBuy, false},
		{"COMPRA", TypeBuy, false},
		{" purchase ", TypeBuy, false},
		{"venda", TypeSell, false},
		{"dividendo", TypeDividend, false},
		{"jcp", TypeInterestOnEquity, false},
		{"rendimento", TypeIncome, false},
		{"swap", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTransactionType(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("want ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("ParseTransactionType(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
			}
		})
	}
}

func TestTransactionType_IsDistribution(t *testing.T) {
	dist := []TransactionType{TypeDividend, TypeInterestOnEquity, TypeIncome}
	for _, k := range dist {
		if !k.IsDistribution() {
			t.Fatalf("%s should be a distribution", k)
		}
	}
	for _, k := range []TransactionType{TypeBuy, TypeSell} {
		if k.IsDistribution() {
			t.Fatalf("%s should not be a distribution", k)
		}
	}
}

func TestTransaction_Notional(t *testing.T) {
	tx := Transaction{Quantity: dec("100"), UnitPrice: dec("25.00")}
	if got := tx.Notional(); !got.Equal(dec("2500")) {
		t.Fatalf("Notional = %s, want 2500", got)
	}
}

func TestTransaction_Validate(t *testing.T) {
	base := Transaction{
		ID:        uuid.New(),
		AssetCode: "PETR4",
		Type:      TypeBuy,
		Quantity:  dec("10"),
		UnitPrice: dec("38.10"),
		Timestamp: time.Now(),
	}

	cases := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr bool
	}{
		{"valid", func(tx *Transaction) {}, false},
		{"valid with optional amounts", func(tx *Transaction) {
			tx.BrokerageFee = decp("4.90")
			tx.Taxes = decp("0.12")
		}, false},
		{"unknown type", func(tx *Transaction) { tx.Type = "SWAP" }, true},
		{"negative quantity", func(tx *Transaction) { tx.Quantity = dec("-1") }, true},
		{"negative price", func(tx *Transaction) { tx.UnitPrice = dec("-0.01") }, true},
		{"negative fee", func(tx *Transaction) { tx.BrokerageFee = decp("-1") }, true},
		{"negative taxes", func(tx *Transaction) { tx.Taxes = decp("-1") }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := base
			tc.mutate(&tx)
			err := tx.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("want ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseAssetClass(t *testing.T) {
	cases := []struct {
		in      string
		want    AssetClass
		wantErr bool
	}{
		{"acao", ClassStock, false},
		{"FII", ClassREIT, false},
		{"etf", ClassETF, false},
		{"tesouro", ClassFixedIncome, false},
		{"CRIPTOMOEDA", ClassCrypto, false},
		{"bond", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseAssetClass(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("want ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("ParseAssetClass(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
			}
		})
	}
}

func TestPosition_ReferencePrice(t *testing.T) {
	p := Position{AverageCost: dec("25.00")}
	if got := p.ReferencePrice(); !got.Equal(dec("25.00")) {
		t.Fatalf("ReferencePrice without quote = %s, want average cost", got)
	}
	p.CurrentPrice = decp("26.00")
	if got := p.ReferencePrice(); !got.Equal(dec("26.00")) {
		t.Fatalf("ReferencePrice with quote = %s, want 26.00", got)
	}
}

func TestPosition_Validate(t *testing.T) {
	p := Position{AssetCode: "HGLG11", Class: ClassREIT, Quantity: dec("10"), AverageCost: dec("160.00")}
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.Quantity = dec("-1")
	if err := p.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}
