package config

import (
	"log"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds the full engine configuration loaded from environment
// variables or a .env file.
//
// Example ENV equivalent:
//
//	FEE_EXCHANGE_RATE=0.000325
//	FEE_COMMISSION=0.00
//	FEE_MINIMUM=0.01
//	INFLATION_FALLBACK_RATE=0.003
//	INFLATION_RATES_FILE=./rates.yaml
type Config struct {
	Fees      FeeConfig       // brokerage/exchange fee schedule
	Inflation InflationConfig // monthly inflation rate table
}

// FeeConfig is the fee schedule applied to a transaction's notional value.
//
// Fields:
//   - ExchangeRate: percentage rate covering emolument + settlement charges
//     (B3 charges 0.0325% on spot trades).
//   - Commission: flat brokerage commission per order. Most retail brokers
//     charge zero today, but the value is configurable.
//   - Minimum: floor below which an estimated fee never falls.
type FeeConfig struct {
	ExchangeRate decimal.Decimal
	Commission   decimal.Decimal
	Minimum      decimal.Decimal
}

// InflationConfig carries the immutable monthly rate table consumed by the
// inflation calculators.
type InflationConfig struct {
	Rates MonthlyRates
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and read-only afterwards. Services
// receive the pieces they need at construction time instead of reading
// environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for the fee schedule and the inflation fallback rate.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Loads the built-in monthly IPCA table, then merges overrides from
//     INFLATION_RATES_FILE when set.
//   - Calls validateConfig() to ensure the schedule is sane.
//
// Fatal exit:
//   - On an unparseable decimal, an unreadable rates file, or a negative
//     schedule value, the process terminates with a descriptive message.
func LoadConfig() {
	// Default values
	viper.SetDefault("FEE_EXCHANGE_RATE", "0.000325")
	viper.SetDefault("FEE_COMMISSION", "0.00")
	viper.SetDefault("FEE_MINIMUM", "0.01")

	viper.SetDefault("INFLATION_FALLBACK_RATE", defaultFallbackRate)
	viper.SetDefault("INFLATION_RATES_FILE", "")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	fallback := mustDecimal("INFLATION_FALLBACK_RATE")
	rates := defaultMonthlyTable()
	if path := viper.GetString("INFLATION_RATES_FILE"); path != "" {
		if err := mergeRatesFile(rates, path); err != nil {
			log.Fatalf("failed to load inflation rates file %q: %v", path, err)
		}
	}

	AppConfig = Config{
		Fees: FeeConfig{
			ExchangeRate: mustDecimal("FEE_EXCHANGE_RATE"),
			Commission:   mustDecimal("FEE_COMMISSION"),
			Minimum:      mustDecimal("FEE_MINIMUM"),
		},
		Inflation: InflationConfig{
			Rates: NewMonthlyRates(rates, fallback),
		},
	}

	validateConfig()
}

// mustDecimal reads a viper key as an exact decimal, terminating on garbage.
// Values are parsed from strings so the schedule never round-trips through
// binary floating point.
func mustDecimal(key string) decimal.Decimal {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Fatalf("invalid decimal for %s: %q", key, raw)
	}
	return d
}

// validateConfig ensures the loaded schedule is usable and terminates the
// process if it is not.
func validateConfig() {
	var bad []string

	if AppConfig.Fees.ExchangeRate.IsNegative() {
		bad = append(bad, "FEE_EXCHANGE_RATE")
	}
	if AppConfig.Fees.Commission.IsNegative() {
		bad = append(bad, "FEE_COMMISSION")
	}
	if AppConfig.Fees.Minimum.IsNegative() {
		bad = append(bad, "FEE_MINIMUM")
	}
	if AppConfig.Inflation.Rates.Fallback().IsNegative() {
		bad = append(bad, "INFLATION_FALLBACK_RATE")
	}

	if len(bad) > 0 {
		log.Fatalf("negative values not allowed for: %v", bad)
	}
}
