// Package loader reads transaction history files, the concrete shape of the
// persistence collaborator feeding the calculation engine.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/guttosm/investpulse/internal/domain/models"
	"github.com/guttosm/investpulse/internal/money"
)

// expectedHeaders enforces strict column ordering for history files.
// If the header doesn't match EXACTLY (order + count), loading must fail.
var expectedHeaders = []string{
	"Date",
	"AssetCode",
	"AssetClass",
	"Type",
	"Quantity",
	"UnitPrice",
	"BrokerageFee",
	"Taxes",
	"Notes",
}

// History is one parsed file: per-asset transaction lists plus the asset
// class declared for each code.
type History struct {
	Transactions map[string][]models.Transaction
	Classes      map[string]models.AssetClass
}

// LoadFile opens and parses one semicolon-separated history file.
func LoadFile(path string) (*History, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	h, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}

// Parse reads a semicolon-separated transaction history.
//
// It fails on:
//   - header not matching expected order/length
//   - rows with the wrong column count
//   - unparseable dates, types, or numbers
//
// It tolerates:
//   - empty BrokerageFee/Taxes/Notes cells
//   - comma decimal separators in numeric cells
func Parse(r io.Reader) (*History, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1 // checked explicitly per row

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(expectedHeaders) {
		return nil, fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
	}
	for i, col := range header {
		if strings.TrimSpace(col) != expectedHeaders[i] {
			return nil, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expectedHeaders[i], col)
		}
	}

	h := &History{
		Transactions: map[string][]models.Transaction{},
		Classes:      map[string]models.AssetClass{},
	}

	line := 1 // header already read
	for {
		rec, err := cr.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read line after %d: %w", line, err)
		}
		line++

		if len(rec) != len(expectedHeaders) {
			return nil, fmt.Errorf("invalid column count on line %d: expected %d got %d", line, len(expectedHeaders), len(rec))
		}

		tx, class, err := recordToTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		h.Transactions[tx.AssetCode] = append(h.Transactions[tx.AssetCode], tx)
		h.Classes[tx.AssetCode] = class
	}

	return h, nil
}

// recordToTransaction converts one CSV record (length already validated)
// into a transaction plus its declared asset class. It is STRICT about
// formats but TOLERATES empty optional cells.
func recordToTransaction(rec []string) (models.Transaction, models.AssetClass, error) {
	var tx models.Transaction

	when, err := time.Parse(time.DateOnly, strings.TrimSpace(rec[0]))
	if err != nil {
		return tx, "", fmt.Errorf("invalid Date: %v", err)
	}

	code := strings.TrimSpace(rec[1])
	if code == "" {
		return tx, "", fmt.Errorf("empty AssetCode")
	}

	class, err := models.ParseAssetClass(rec[2])
	if err != nil {
		return tx, "", err
	}

	kind, err := models.ParseTransactionType(rec[3])
	if err != nil {
		return tx, "", err
	}

	qty, err := parseDecimalCell(rec[4])
	if err != nil {
		return tx, "", fmt.Errorf("invalid Quantity: %v", err)
	}
	price, err := parseDecimalCell(rec[5])
	if err != nil {
		return tx, "", fmt.Errorf("invalid UnitPrice: %v", err)
	}

	tx = models.Transaction{
		ID:        uuid.New(),
		AssetCode: code,
		Type:      kind,
		Quantity:  qty,
		UnitPrice: price,
		Timestamp: when,
		Notes:     strings.TrimSpace(rec[8]),
	}

	if s := strings.TrimSpace(rec[6]); s != "" {
		fee, err := parseDecimalCell(s)
		if err != nil {
			return tx, "", fmt.Errorf("invalid BrokerageFee: %v", err)
		}
		tx.BrokerageFee = &fee
	}
	if s := strings.TrimSpace(rec[7]); s != "" {
		taxes, err := parseDecimalCell(s)
		if err != nil {
			return tx, "", fmt.Errorf("invalid Taxes: %v", err)
		}
		tx.Taxes = &taxes
	}

	if err := tx.Validate(); err != nil {
		return tx, "", err
	}
	return tx, class, nil
}

// parseDecimalCell parses a numeric cell, accepting the comma decimal
// separator of Brazilian brokerage exports.
func parseDecimalCell(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return decimal.NewFromString(s)
}

// BuildPositions derives current position snapshots from the history:
// held quantity is buys minus sells, average cost is the buy-weighted mean
// price, and the current price comes from the quotes map when present.
func BuildPositions(h *History, quotes map[string]decimal.Decimal) []models.Position {
	codes := make([]string, 0, len(h.Transactions))
	for code := range h.Transactions {
		codes = append(codes, code)
	}
	// Map iteration order is random; reports should not be.
	sort.Strings(codes)

	positions := make([]models.Position, 0, len(codes))
	for _, code := range codes {
		qty := decimal.Zero
		buyQty := decimal.Zero
		buyNotional := decimal.Zero

		for _, tx := range h.Transactions[code] {
			switch tx.Type {
			case models.TypeBuy:
				qty = qty.Add(tx.Quantity)
				buyQty = buyQty.Add(tx.Quantity)
				buyNotional = buyNotional.Add(tx.Notional())
			case models.TypeSell:
				qty = qty.Sub(tx.Quantity)
			}
		}
		if qty.IsNegative() {
			qty = decimal.Zero
		}

		avgCost := decimal.Zero
		if buyQty.IsPositive() {
			avgCost = buyNotional.DivRound(buyQty, money.RateScale)
		}

		pos := models.Position{
			ID:          uuid.New(),
			AssetCode:   code,
			Class:       h.Classes[code],
			Quantity:    qty,
			AverageCost: avgCost,
		}
		if price, ok := quotes[code]; ok {
			p := price
			pos.CurrentPrice = &p
		}
		positions = append(positions, pos)
	}
	return positions
}
