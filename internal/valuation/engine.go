// Package valuation computes portfolio snapshots from the trade ledger,
// current prices and an FX rate. Stateless; one call per run.
package valuation

import (
	"time"

	"MarketCompass/internal/model"
)

// ValuePortfolio values a set of positions against current prices.
//
// A symbol absent from prices is valued at price 0 and flagged Priced=false
// rather than aborting the run or silently blending into the totals. The FX
// rate is a single scalar multiply applied uniformly, including against
// historical cost bases; there is deliberately no per-transaction historical
// FX lookup.
func ValuePortfolio(positions []model.Position, prices map[string]float64, fx model.FXQuote, asOf time.Time) *model.ValuationResult {
	result := &model.ValuationResult{FX: fx, AsOf: asOf}

	// Aggregate per symbol in first-seen order.
	index := make(map[string]int)
	var flows []CashFlow
	for _, pos := range positions {
		i, seen := index[pos.Ticker]
		if !seen {
			i = len(result.Symbols)
			index[pos.Ticker] = i
			result.Symbols = append(result.Symbols, model.SymbolValuation{Ticker: pos.Ticker})
		}
		sv := &result.Symbols[i]
		sv.Shares += pos.Shares
		sv.InvestedCNY += pos.CostCNY

		flows = append(flows, CashFlow{Date: pos.Date, Amount: -pos.CostCNY})
	}

	for i := range result.Symbols {
		sv := &result.Symbols[i]
		if price, ok := prices[sv.Ticker]; ok {
			sv.Price = price
			sv.Priced = true
		}
		sv.MarketValueCNY = sv.Shares * sv.Price * fx.Rate
		sv.ProfitCNY = sv.MarketValueCNY - sv.InvestedCNY
		if sv.InvestedCNY > 0 {
			sv.ProfitRatePct = sv.ProfitCNY / sv.InvestedCNY * 100
			sv.RateApplicable = true
		}

		result.TotalInvestedCNY += sv.InvestedCNY
		result.TotalValueCNY += sv.MarketValueCNY
	}

	result.TotalProfitCNY = result.TotalValueCNY - result.TotalInvestedCNY
	if result.TotalInvestedCNY > 0 {
		result.TotalProfitRatePct = result.TotalProfitCNY / result.TotalInvestedCNY * 100
		result.TotalRateApplicable = true
	}

	// One positive flow for the whole portfolio's current value; solver
	// failure degrades to the zero sentinel, never an error.
	flows = append(flows, CashFlow{Date: asOf, Amount: result.TotalValueCNY})
	if rate, ok := XIRR(flows); ok {
		result.XIRRPct = rate * 100
		result.XIRRConverged = true
	}

	return result
}
