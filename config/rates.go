package config

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// defaultFallbackRate is the approximate historical IPCA monthly average,
// used for any month absent from the table.
const defaultFallbackRate = "0.003"

// MonthlyRates is an immutable table of monthly inflation rates keyed by
// "YYYY-MM", with a fallback rate for months not present. The underlying map
// is copied on construction and never exposed, so a MonthlyRates value is
// safe for unlimited concurrent readers.
type MonthlyRates struct {
	rates    map[string]decimal.Decimal
	fallback decimal.Decimal
}

// NewMonthlyRates builds an immutable table from the given rates and
// fallback. The input map is copied.
func NewMonthlyRates(rates map[string]decimal.Decimal, fallback decimal.Decimal) MonthlyRates {
	cp := make(map[string]decimal.Decimal, len(rates))
	for k, v := range rates {
		cp[k] = v
	}
	return MonthlyRates{rates: cp, fallback: fallback}
}

// Lookup returns the rate for a "YYYY-MM" key and whether the month was
// present in the table. Absent months return the fallback rate with ok
// false, so callers can tell an observed rate from the substitute.
func (r MonthlyRates) Lookup(key string) (rate decimal.Decimal, ok bool) {
	if v, found := r.rates[key]; found {
		return v, true
	}
	return r.fallback, false
}

// Fallback returns the rate substituted for absent months.
func (r MonthlyRates) Fallback() decimal.Decimal { return r.fallback }

// Len returns the number of months with an observed rate.
func (r MonthlyRates) Len() int { return len(r.rates) }

// defaultMonthlyTable returns the built-in monthly IPCA rates. Values are
// decimal fractions: 0.0042 means 0.42% for that month.
func defaultMonthlyTable() map[string]decimal.Decimal {
	raw := map[string]string{
		"2024-01": "0.0042",
		"2024-02": "0.0041",
		"2024-03": "0.0016",
		"2024-04": "0.0038",
		"2024-05": "0.0044",
		"2024-06": "0.0021",
		"2024-07": "0.0017",
		"2024-08": "0.0024",
		"2024-09": "0.0026",
		"2024-10": "0.0021",
		"2024-11": "0.0025",
		"2024-12": "0.0030",

		"2025-01": "0.0045",
		"2025-02": "0.0040",
		"2025-03": "0.0018",
		"2025-04": "0.0035",
		"2025-05": "0.0042",
		"2025-06": "0.0020",
		"2025-07": "0.0019",
		"2025-08": "0.0025",
		"2025-09": "0.0027",
		"2025-10": "0.0022",
		"2025-11": "0.0026",
		"2025-12": "0.0031",
	}
	table := make(map[string]decimal.Decimal, len(raw))
	for k, v := range raw {
		table[k] = decimal.RequireFromString(v)
	}
	return table
}

// mergeRatesFile overlays rates from a YAML file onto the table. The file
// maps "YYYY-MM" keys to monthly rates, either as quoted decimal strings or
// plain numbers:
//
//	"2026-01": "0.0038"
//	"2026-02": 0.0035
func mergeRatesFile(table map[string]decimal.Decimal, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read rates file: %w", err)
	}

	for key, raw := range v.AllSettings() {
		rate, err := toDecimal(raw)
		if err != nil {
			return fmt.Errorf("rate for %q: %w", key, err)
		}
		if rate.IsNegative() {
			return fmt.Errorf("rate for %q is negative: %s", key, rate)
		}
		table[key] = rate
	}
	return nil
}

func toDecimal(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case string:
		return decimal.NewFromString(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported value type %T", raw)
	}
}
