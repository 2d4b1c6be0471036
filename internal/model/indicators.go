package model

import (
	"math"
	"time"
)

// IndicatorFrame is a price series augmented with derived columns, each
// aligned 1:1 with Dates. Rows where a window does not yet have enough
// trailing history hold NaN; Defined distinguishes them.
type IndicatorFrame struct {
	Symbol string
	Dates  []time.Time
	Close  []float64

	MA200      []float64
	Peak       []float64
	Drawdown   []float64
	Bias       []float64
	RSI        []float64
	MACD       []float64
	SignalLine []float64
	UpperBand  []float64
	LowerBand  []float64
}

// Len returns the number of rows in the frame.
func (f *IndicatorFrame) Len() int { return len(f.Dates) }

// Defined reports whether a derived value is present (not NaN).
func Defined(v float64) bool { return !math.IsNaN(v) }

// Summary is the compact record handed to formatters and notifiers after an
// analysis run: the latest row of the frame plus qualitative labels.
type Summary struct {
	Symbol string
	Name   string
	Period Period

	Price    float64
	MA200    float64
	Bias     float64
	Drawdown float64
	RSI      float64

	// MA200Valid is false when the observed window has fewer than 200 rows;
	// MA200 and Bias are then reported as zero and must not be trusted.
	MA200Valid bool
	RSIValid   bool

	TrendLabel       string
	RiskLabel        string
	OpportunityLabel string

	GeneratedAt time.Time
}
