package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/guttosm/investpulse/config"
	"github.com/guttosm/investpulse/internal/app"
	"github.com/guttosm/investpulse/internal/domain/dto"
	"github.com/guttosm/investpulse/internal/domain/models"
	"github.com/guttosm/investpulse/internal/loader"
	"github.com/guttosm/investpulse/internal/logger"
	"github.com/guttosm/investpulse/internal/money"
)

// parsePrices parses the --prices flag: comma-separated CODE=VALUE pairs,
// e.g. "PETR4=26.00,HGLG11=160.50". Values use dot decimal separators.
func parsePrices(s string) (map[string]decimal.Decimal, error) {
	prices := map[string]decimal.Decimal{}
	if strings.TrimSpace(s) == "" {
		return prices, nil
	}
	for _, pair := range strings.Split(s, ",") {
		code, raw, ok := strings.Cut(pair, "=")
		code = strings.TrimSpace(code)
		if !ok || code == "" {
			return nil, fmt.Errorf("invalid price entry %q, want CODE=VALUE", pair)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid price for %s: %w", code, err)
		}
		prices[code] = price
	}
	return prices, nil
}

// parseDate parses a YYYY-MM-DD flag value.
func parseDate(name, s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q, want YYYY-MM-DD", name, s)
	}
	return d, nil
}

// fail prints a JSON error envelope to stderr and terminates.
func fail(message string, err error) {
	res := dto.NewErrorResponse(message, err)
	enc := json.NewEncoder(os.Stderr)
	enc.SetIndent("", "  ")
	_ = enc.Encode(res)
	os.Exit(1)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fail("failed to encode output", err)
	}
}

// runReport loads a transaction history file, derives position snapshots,
// and prints the portfolio profitability report.
func runReport(ctx context.Context, eng *app.Engine, input, prices, name string) {
	quotes, err := parsePrices(prices)
	if err != nil {
		fail("invalid --prices", err)
	}

	history, err := loader.LoadFile(input)
	if err != nil {
		fail("failed to load transaction history", err)
	}

	now := time.Now()
	portfolio := models.Portfolio{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Positions: loader.BuildPositions(history, quotes),
	}

	res, err := eng.Portfolios.Compute(ctx, portfolio, history.Transactions)
	if err != nil {
		fail("profitability computation failed", err)
	}

	logger.L().Info().
		Str("portfolio", name).
		Int("assets", res.TotalAssets).
		Str("invested", money.FormatBRL(res.TotalInvested)).
		Str("market_value", money.FormatBRL(res.MarketValue)).
		Msg("report computed")
	printJSON(res)
}

// runInflation adjusts a value between two dates; with --final it reports
// the real gain of growing from --value to --final instead.
func runInflation(eng *app.Engine, value, final, start, end string) {
	v, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		fail("invalid --value", err)
	}
	from, err := parseDate("start", start)
	if err != nil {
		fail("invalid date", err)
	}
	to, err := parseDate("end", end)
	if err != nil {
		fail("invalid date", err)
	}

	if strings.TrimSpace(final) != "" {
		f, err := decimal.NewFromString(strings.TrimSpace(final))
		if err != nil {
			fail("invalid --final", err)
		}
		res, err := eng.Inflation.RealGain(v, f, from, to)
		if err != nil {
			fail("real gain computation failed", err)
		}
		printJSON(res)
		return
	}

	res, err := eng.Inflation.AdjustForInflation(v, from, to)
	if err != nil {
		fail("inflation adjustment failed", err)
	}
	printJSON(res)
}

// main is the entry point of the investpulse reporting CLI.
//
// Modes (selected via --mode flag):
//   - report:    Computes portfolio profitability from a transaction
//     history file and prints it as JSON.
//   - inflation: Adjusts a monetary value for inflation between two dates,
//     or computes real gain when --final is given.
//
// Flags:
//   - --mode:      Execution mode ("report" or "inflation"). Default: "report".
//   - --input:     Semicolon-separated transaction history file.
//   - --prices:    Current quotes as CODE=VALUE pairs, comma separated.
//   - --portfolio: Portfolio name used in the report header.
//   - --value:     Monetary amount for inflation mode.
//   - --final:     Final amount; switches inflation mode to real gain.
//   - --start:     Range start (YYYY-MM-DD).
//   - --end:       Range end (YYYY-MM-DD).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	mode := flag.String("mode", "report", "Mode: report or inflation")
	input := flag.String("input", "./data/transactions.csv", "Transaction history file")
	prices := flag.String("prices", "", "Current quotes, e.g. PETR4=26.00,HGLG11=160.50")
	name := flag.String("portfolio", "default", "Portfolio name")
	value := flag.String("value", "", "Value to adjust in inflation mode")
	final := flag.String("final", "", "Final value for real gain")
	start := flag.String("start", "", "Start date (YYYY-MM-DD)")
	end := flag.String("end", "", "End date (YYYY-MM-DD)")
	flag.Parse()

	eng := app.NewEngine(config.AppConfig)

	switch *mode {
	case "report":
		logger.L().Info().Str("input", *input).Msg("running profitability report")
		runReport(ctx, eng, *input, *prices, *name)

	case "inflation":
		logger.L().Info().Str("start", *start).Str("end", *end).Msg("running inflation adjustment")
		runInflation(eng, *value, *final, *start, *end)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
