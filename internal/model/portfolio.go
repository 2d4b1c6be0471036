package model

import "time"

// Position is a single recorded buy: immutable once loaded from the ledger.
type Position struct {
	Ticker  string
	Shares  float64
	CostCNY float64
	Date    time.Time
}

// FXQuote carries the conversion rate applied to a valuation and whether it
// came from the provider or from the configured fallback constant.
type FXQuote struct {
	Pair     string
	Rate     float64
	Fallback bool
}

// SymbolValuation is the per-symbol slice of a portfolio valuation.
type SymbolValuation struct {
	Ticker      string
	Shares      float64
	InvestedCNY float64

	// Priced is false when no current price could be resolved for the
	// ticker; Price is then 0 and the market value reflects that.
	Price  float64
	Priced bool

	MarketValueCNY float64
	ProfitCNY      float64

	// ProfitRatePct is only meaningful when RateApplicable is true
	// (invested amount was positive).
	ProfitRatePct  float64
	RateApplicable bool
}

// ValuationResult is a portfolio snapshot: computed once per run, never
// persisted by the engine itself.
type ValuationResult struct {
	Symbols []SymbolValuation

	TotalInvestedCNY    float64
	TotalValueCNY       float64
	TotalProfitCNY      float64
	TotalProfitRatePct  float64
	TotalRateApplicable bool

	// XIRRPct is the money-weighted annualized return in percent, or the
	// 0 sentinel when the solver could not produce a rate.
	XIRRPct       float64
	XIRRConverged bool

	FX   FXQuote
	AsOf time.Time
}
