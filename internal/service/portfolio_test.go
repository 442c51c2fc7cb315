package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/guttosm/investpulse/internal/domain/models"
)

func testPortfolioCalculator(now time.Time) *portfolioCalculator {
	return &portfolioCalculator{
		assets: testAssetCalculator(now),
		now:    func() time.Time { return now },
		log:    zerolog.Nop(),
	}
}

func classedPosition(code string, class models.AssetClass, qty, avgCost string, price *string) models.Position {
	p := position(code, qty, avgCost, price)
	p.Class = class
	return p
}

func txFor(code string, kind models.TransactionType, qty, price string, ts time.Time) models.Transaction {
	t := tx(kind, qty, price, ts)
	t.AssetCode = code
	return t
}

func TestPortfolioCompute_Totals(t *testing.T) {
	t0 := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	calc := testPortfolioCalculator(t0.AddDate(0, 6, 0))

	p := models.Portfolio{
		ID:   uuid.New(),
		Name: "main",
		Positions: []models.Position{
			classedPosition("PETR4", models.ClassStock, "100", "25.00", strp("26.00")),
			classedPosition("HGLG11", models.ClassREIT, "10", "150.00", strp("165.00")),
			classedPosition("SANB11", models.ClassStock, "100", "12.00", nil),
		},
	}
	history := map[string][]models.Transaction{
		"PETR4":  {txFor("PETR4", models.TypeBuy, "100", "25.00", t0)},
		"HGLG11": {txFor("HGLG11", models.TypeBuy, "10", "150.00", t0)},
		"SANB11": {txFor("SANB11", models.TypeBuy, "100", "12.00", t0)},
	}

	res, err := calc.Compute(context.Background(), p, history)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if !res.TotalInvested.Equal(dec("5200")) {
		t.Fatalf("TotalInvested = %s, want 5200", res.TotalInvested)
	}
	// The unpriced SANB11 position contributes nothing to market value.
	if !res.MarketValue.Equal(dec("4250")) {
		t.Fatalf("MarketValue = %s, want 4250", res.MarketValue)
	}
	if !res.GrossProfit.Equal(dec("250")) {
		t.Fatalf("GrossProfit = %s, want 250", res.GrossProfit)
	}
	if !res.NetProfit.Equal(dec("250")) {
		t.Fatalf("NetProfit = %s, want 250", res.NetProfit)
	}
	if res.GrossProfitPct == nil || !res.GrossProfitPct.Equal(dec("4.81")) {
		t.Fatalf("GrossProfitPct = %v, want 4.81", res.GrossProfitPct)
	}
	if res.NetProfitPct == nil || !res.NetProfitPct.Equal(dec("4.81")) {
		t.Fatalf("NetProfitPct = %v, want 4.81", res.NetProfitPct)
	}

	if res.TotalAssets != 3 || res.PositiveAssets != 2 || res.NegativeAssets != 0 {
		t.Fatalf("asset counters = %d/%d/%d, want 3/2/0",
			res.TotalAssets, res.PositiveAssets, res.NegativeAssets)
	}
	if len(res.Assets) != 3 {
		t.Fatalf("len(Assets) = %d, want 3", len(res.Assets))
	}
}

func TestPortfolioCompute_Allocation(t *testing.T) {
	t0 := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	calc := testPortfolioCalculator(t0.AddDate(0, 6, 0))

	p := models.Portfolio{
		ID:   uuid.New(),
		Name: "main",
		Positions: []models.Position{
			classedPosition("PETR4", models.ClassStock, "100", "25.00", strp("26.00")),
			classedPosition("HGLG11", models.ClassREIT, "10", "150.00", strp("165.00")),
			// No quote: valued at average cost for the composition.
			classedPosition("SANB11", models.ClassStock, "100", "12.00", nil),
		},
	}

	res, err := calc.Compute(context.Background(), p, nil)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	// 2600 + 1200 of 5450 in stocks, 1650 of 5450 in REITs.
	if !res.Allocation.StocksPct.Equal(dec("69.72")) {
		t.Fatalf("StocksPct = %s, want 69.72", res.Allocation.StocksPct)
	}
	if !res.Allocation.REITsPct.Equal(dec("30.28")) {
		t.Fatalf("REITsPct = %s, want 30.28", res.Allocation.REITsPct)
	}
	if !res.Allocation.ETFsPct.IsZero() || !res.Allocation.CryptoPct.IsZero() {
		t.Fatalf("empty classes should be zero: %+v", res.Allocation)
	}
}

func TestPortfolioCompute_Volatility(t *testing.T) {
	t0 := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	calc := testPortfolioCalculator(t0.AddDate(0, 6, 0))

	p := models.Portfolio{
		ID: uuid.New(),
		Positions: []models.Position{
			classedPosition("AAAA3", models.ClassStock, "10", "10.00", strp("11.00")), // +10%
			classedPosition("BBBB3", models.ClassStock, "10", "10.00", strp("12.00")), // +20%
		},
	}

	res, err := calc.Compute(context.Background(), p, nil)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.Volatility == nil || !res.Volatility.Equal(dec("7.0711")) {
		t.Fatalf("Volatility = %v, want 7.0711", res.Volatility)
	}
}

func TestPortfolioCompute_VolatilityUnquotedDampens(t *testing.T) {
	t0 := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	calc := testPortfolioCalculator(t0.AddDate(0, 6, 0))

	p := models.Portfolio{
		ID: uuid.New(),
		Positions: []models.Position{
			classedPosition("AAAA3", models.ClassStock, "10", "25.00", strp("26.00")),   // +4%
			classedPosition("BBBB11", models.ClassREIT, "10", "150.00", strp("165.00")), // +10%
			classedPosition("CCCC3", models.ClassStock, "10", "12.00", nil),             // no variation
		},
	}

	res, err := calc.Compute(context.Background(), p, nil)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	// mean = 14/3 = 4.6667 over all three assets; deviations of the two
	// quoted ones give variance 14.4443.
	if res.Volatility == nil || !res.Volatility.Equal(dec("3.8006")) {
		t.Fatalf("Volatility = %v, want 3.8006", res.Volatility)
	}
}

func TestPortfolioCompute_SingleAssetNoVolatility(t *testing.T) {
	calc := testPortfolioCalculator(time.Now())

	p := models.Portfolio{
		ID: uuid.New(),
		Positions: []models.Position{
			classedPosition("PETR4", models.ClassStock, "100", "25.00", strp("26.00")),
		},
	}
	res, err := calc.Compute(context.Background(), p, nil)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.Volatility != nil {
		t.Fatalf("Volatility = %s, want nil for a single asset", res.Volatility)
	}
}

func TestPortfolioCompute_Performance(t *testing.T) {
	t0 := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	calc := testPortfolioCalculator(t0.AddDate(0, 6, 0))

	p := models.Portfolio{
		ID: uuid.New(),
		Positions: []models.Position{
			classedPosition("PETR4", models.ClassStock, "100", "25.00", strp("26.00")),
		},
	}
	history := map[string][]models.Transaction{
		"PETR4": {txFor("PETR4", models.TypeBuy, "100", "25.00", t0)},
	}

	res, err := calc.Compute(context.Background(), p, history)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	perf := res.Performance
	if perf == nil {
		t.Fatalf("Performance should be set")
	}
	if !perf.YearPct.Equal(dec("4")) || !perf.YTDPct.Equal(dec("4")) {
		t.Fatalf("YearPct/YTDPct = %s/%s, want 4/4", perf.YearPct, perf.YTDPct)
	}
	if !perf.MonthPct.Equal(dec("0.3333")) {
		t.Fatalf("MonthPct = %s, want 0.3333", perf.MonthPct)
	}
	if !perf.QuarterPct.Equal(dec("1")) {
		t.Fatalf("QuarterPct = %s, want 1", perf.QuarterPct)
	}
	if !perf.SemesterPct.Equal(dec("2")) {
		t.Fatalf("SemesterPct = %s, want 2", perf.SemesterPct)
	}
}

func TestPortfolioCompute_NetSellerHasNoPercentages(t *testing.T) {
	t0 := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	calc := testPortfolioCalculator(t0.AddDate(0, 6, 0))

	p := models.Portfolio{
		ID: uuid.New(),
		Positions: []models.Position{
			classedPosition("PETR4", models.ClassStock, "0", "25.00", nil),
		},
	}
	history := map[string][]models.Transaction{
		"PETR4": {txFor("PETR4", models.TypeSell, "10", "30.00", t0)},
	}

	res, err := calc.Compute(context.Background(), p, history)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !res.TotalInvested.Equal(dec("-300")) {
		t.Fatalf("TotalInvested = %s, want -300", res.TotalInvested)
	}
	if res.GrossProfitPct != nil || res.NetProfitPct != nil || res.Performance != nil {
		t.Fatalf("percentages over a negative base should be nil")
	}
}

func TestPortfolioCompute_Empty(t *testing.T) {
	calc := testPortfolioCalculator(time.Now())

	res, err := calc.Compute(context.Background(), models.Portfolio{ID: uuid.New()}, nil)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.TotalAssets != 0 || !res.TotalInvested.IsZero() || !res.MarketValue.IsZero() {
		t.Fatalf("empty portfolio should be all zeros: %+v", res)
	}
	if res.GrossProfitPct == nil || !res.GrossProfitPct.IsZero() {
		t.Fatalf("GrossProfitPct = %v, want 0 for an empty portfolio", res.GrossProfitPct)
	}
	if res.Volatility != nil {
		t.Fatalf("Volatility should be nil for an empty portfolio")
	}
}

func TestPortfolioCompute_InvalidPositionAborts(t *testing.T) {
	calc := testPortfolioCalculator(time.Now())

	p := models.Portfolio{
		ID: uuid.New(),
		Positions: []models.Position{
			classedPosition("PETR4", models.ClassStock, "100", "25.00", nil),
			classedPosition("BAD", models.ClassStock, "-1", "25.00", nil),
		},
	}
	if _, err := calc.Compute(context.Background(), p, nil); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}
