package valuation

import (
	"math"
	"testing"
	"time"

	"MarketCompass/internal/model"
)

func TestValuePortfolio_BreakEven(t *testing.T) {
	// 10 shares at $100 with FX 7.25 is exactly the 7250 CNY invested.
	positions := []model.Position{
		{Ticker: "VOO", Shares: 10, CostCNY: 7250, Date: date(2023, 1, 1)},
	}
	prices := map[string]float64{"VOO": 100}
	fx := model.FXQuote{Pair: "CNY=X", Rate: 7.25}

	res := ValuePortfolio(positions, prices, fx, date(2024, 1, 1))

	if len(res.Symbols) != 1 {
		t.Fatalf("expected 1 symbol, got %d", len(res.Symbols))
	}
	sv := res.Symbols[0]
	if !sv.Priced {
		t.Error("expected Priced=true")
	}
	if math.Abs(sv.ProfitCNY) > 1e-9 {
		t.Errorf("profit = %.4f, want 0", sv.ProfitCNY)
	}
	if math.Abs(res.TotalProfitRatePct) > 1e-9 {
		t.Errorf("profit rate = %.4f%%, want 0", res.TotalProfitRatePct)
	}
}

func TestValuePortfolio_AggregatesLots(t *testing.T) {
	positions := []model.Position{
		{Ticker: "QQQ", Shares: 2, CostCNY: 5000, Date: date(2023, 1, 1)},
		{Ticker: "VOO", Shares: 1, CostCNY: 3000, Date: date(2023, 2, 1)},
		{Ticker: "QQQ", Shares: 3, CostCNY: 8000, Date: date(2023, 3, 1)},
	}
	prices := map[string]float64{"QQQ": 400, "VOO": 450}
	fx := model.FXQuote{Rate: 7.0}

	res := ValuePortfolio(positions, prices, fx, date(2024, 1, 1))

	if len(res.Symbols) != 2 {
		t.Fatalf("expected 2 symbols, got %d", len(res.Symbols))
	}
	// First-seen order is preserved.
	if res.Symbols[0].Ticker != "QQQ" || res.Symbols[1].Ticker != "VOO" {
		t.Errorf("order = [%s, %s], want [QQQ, VOO]", res.Symbols[0].Ticker, res.Symbols[1].Ticker)
	}
	qqq := res.Symbols[0]
	if qqq.Shares != 5 || qqq.InvestedCNY != 13000 {
		t.Errorf("QQQ aggregate = (%.1f shares, %.0f CNY), want (5, 13000)", qqq.Shares, qqq.InvestedCNY)
	}
	wantQQQ := 5 * 400 * 7.0
	if math.Abs(qqq.MarketValueCNY-wantQQQ) > 1e-9 {
		t.Errorf("QQQ value = %.2f, want %.2f", qqq.MarketValueCNY, wantQQQ)
	}
	if res.TotalInvestedCNY != 16000 {
		t.Errorf("total invested = %.0f, want 16000", res.TotalInvestedCNY)
	}
}

func TestValuePortfolio_MissingPrice(t *testing.T) {
	positions := []model.Position{
		{Ticker: "VOO", Shares: 10, CostCNY: 7000, Date: date(2023, 1, 1)},
		{Ticker: "GONE", Shares: 5, CostCNY: 1000, Date: date(2023, 6, 1)},
	}
	prices := map[string]float64{"VOO": 110}
	fx := model.FXQuote{Rate: 7.0}

	res := ValuePortfolio(positions, prices, fx, date(2024, 1, 1))

	gone := res.Symbols[1]
	if gone.Priced {
		t.Error("expected Priced=false for symbol without a quote")
	}
	if gone.MarketValueCNY != 0 {
		t.Errorf("unpriced value = %.2f, want 0", gone.MarketValueCNY)
	}
	if gone.ProfitCNY != -1000 {
		t.Errorf("unpriced profit = %.2f, want -1000", gone.ProfitCNY)
	}
	// Totals still include the written-down position.
	if res.TotalInvestedCNY != 8000 {
		t.Errorf("total invested = %.0f, want 8000", res.TotalInvestedCNY)
	}
}

func TestValuePortfolio_XIRRSentinelOnDegenerate(t *testing.T) {
	// Zero market value means every flow is negative: the solver cannot
	// converge and the result carries the zero sentinel.
	positions := []model.Position{
		{Ticker: "GONE", Shares: 5, CostCNY: 1000, Date: date(2023, 1, 1)},
	}
	res := ValuePortfolio(positions, map[string]float64{}, model.FXQuote{Rate: 7.0}, date(2024, 1, 1))

	if res.XIRRConverged {
		t.Error("expected XIRRConverged=false")
	}
	if res.XIRRPct != 0 {
		t.Errorf("XIRR = %.4f, want 0 sentinel", res.XIRRPct)
	}
}

func TestValuePortfolio_XIRRMatchesSimpleCase(t *testing.T) {
	positions := []model.Position{
		{Ticker: "VOO", Shares: 1, CostCNY: 1000, Date: date(2023, 1, 1)},
	}
	// Value at 1100 CNY exactly one 365-day year later.
	prices := map[string]float64{"VOO": 1100}
	fx := model.FXQuote{Rate: 1.0}

	res := ValuePortfolio(positions, prices, fx, date(2024, 1, 1))

	if !res.XIRRConverged {
		t.Fatal("expected XIRR convergence")
	}
	if math.Abs(res.XIRRPct-10.0) > 0.5 {
		t.Errorf("XIRR = %.2f%%, want ~10%%", res.XIRRPct)
	}
}

func TestValuePortfolio_FXQuotePassedThrough(t *testing.T) {
	fx := model.FXQuote{Pair: "CNY=X", Rate: 7.25, Fallback: true}
	res := ValuePortfolio([]model.Position{
		{Ticker: "VOO", Shares: 1, CostCNY: 700, Date: date(2023, 1, 1)},
	}, map[string]float64{"VOO": 100}, fx, time.Now())

	if res.FX != fx {
		t.Errorf("FX = %+v, want %+v", res.FX, fx)
	}
}
