package model

import (
	"fmt"
	"time"
)

// OHLCV represents a single daily bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds raw price data for one symbol, ordered by trading date.
// Non-trading days are simply absent; there are no null-valued rows.
type PriceSeries struct {
	Symbol    string
	Bars      []OHLCV
	FetchedAt time.Time
}

// Empty reports whether the series contains no bars.
func (s PriceSeries) Empty() bool { return len(s.Bars) == 0 }

// Closes returns the closing prices in date order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Period is a named lookback window understood by the price provider.
type Period string

const (
	Period1Mo Period = "1mo"
	Period3Mo Period = "3mo"
	Period6Mo Period = "6mo"
	PeriodYTD Period = "ytd"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
	Period3Y  Period = "3y"
	Period4Y  Period = "4y"
	Period5Y  Period = "5y"
	Period10Y Period = "10y"
	PeriodMax Period = "max"
)

var knownPeriods = map[Period]bool{
	Period1Mo: true, Period3Mo: true, Period6Mo: true, PeriodYTD: true,
	Period1Y: true, Period2Y: true, Period3Y: true, Period4Y: true,
	Period5Y: true, Period10Y: true, PeriodMax: true,
}

// ParsePeriod validates a user-supplied period code.
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if !knownPeriods[p] {
		return "", fmt.Errorf("unknown period %q (valid: 1mo 3mo 6mo ytd 1y 2y 3y 4y 5y 10y max)", s)
	}
	return p, nil
}

// YahooRange returns the native Yahoo chart range code for this period.
// Periods Yahoo does not accept directly (3y, 4y) report ok=false and are
// fetched via an explicit start/end window instead.
func (p Period) YahooRange() (string, bool) {
	switch p {
	case Period3Y, Period4Y:
		return "", false
	default:
		return string(p), true
	}
}

// Lookback returns the approximate calendar window for periods without a
// native Yahoo range code.
func (p Period) Lookback() (time.Duration, bool) {
	switch p {
	case Period3Y:
		return 3 * 365 * 24 * time.Hour, true
	case Period4Y:
		return 4 * 365 * 24 * time.Hour, true
	default:
		return 0, false
	}
}
