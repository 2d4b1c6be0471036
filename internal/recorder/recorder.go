package recorder

import (
	"time"

	"MarketCompass/internal/model"
)

// AnalysisSnapshot holds the latest indicator readings for one symbol at
// the time of a run. Undefined indicators carry NaN and are stored as NULL.
type AnalysisSnapshot struct {
	Symbol   string
	Period   string
	Price    float64
	MA200    float64
	Bias     float64
	Drawdown float64
	RSI      float64
	MACD     float64
	Signal   float64
	Trend    string
	Risk     string
	TakenAt  time.Time
}

// ValuationRecord holds the portfolio totals for one valuation run, plus
// the per-symbol breakdown so unpriced positions stay visible in history.
type ValuationRecord struct {
	TotalInvestedCNY float64
	TotalValueCNY    float64
	TotalProfitCNY   float64
	ProfitRatePct    float64
	XIRRPct          float64
	XIRRConverged    bool
	FXRate           float64
	FXFallback       bool
	Symbols          []model.SymbolValuation
	TakenAt          time.Time
}

// Recorder persists historical run data for later analysis.
type Recorder interface {
	RecordAnalysis(snap *AnalysisSnapshot) error
	RecordValuation(rec *ValuationRecord) error
	Close() error
}
