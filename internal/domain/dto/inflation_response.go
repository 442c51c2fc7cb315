package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InflationAdjustment is the result of adjusting one monetary amount between
// two dates: the compounded rate over the range and the amount expressed in
// both ends' purchasing power.
type InflationAdjustment struct {
	Value     decimal.Decimal `json:"value"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`

	// AccumulatedRate is a decimal fraction: 0.0325 means 3.25%.
	AccumulatedRate decimal.Decimal `json:"accumulated_rate"`
	DeflatedValue   decimal.Decimal `json:"deflated_value"`
	InflatedValue   decimal.Decimal `json:"inflated_value"`
}

// RealGainResult decomposes a nominal gain into inflation and real return
// (Fisher decomposition).
type RealGainResult struct {
	InitialValue decimal.Decimal `json:"initial_value"`
	FinalValue   decimal.Decimal `json:"final_value"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`

	NominalGainRate decimal.Decimal `json:"nominal_gain_rate"`
	AccumulatedRate decimal.Decimal `json:"accumulated_rate"`
	RealGainRate    decimal.Decimal `json:"real_gain_rate"`
}
