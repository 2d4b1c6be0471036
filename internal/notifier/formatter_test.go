package notifier

import (
	"errors"
	"strings"
	"testing"
	"time"

	"MarketCompass/internal/model"
)

func TestFormatAnalysisReport(t *testing.T) {
	sum := &model.Summary{
		Symbol: "^GSPC", Name: "标普500", Period: model.Period5Y,
		Price: 5800, MA200: 5500, Bias: 0.0545, Drawdown: -0.02, RSI: 55,
		MA200Valid: true, RSIValid: true,
		TrendLabel:       "牛市（价格位于200日均线上方）",
		RiskLabel:        "乖离率处于正常范围",
		OpportunityLabel: "正常波动区间，保持定投节奏",
		GeneratedAt:      time.Date(2025, 8, 29, 8, 0, 0, 0, time.UTC),
	}
	report := FormatAnalysisReport(sum)

	for _, want := range []string{"标普500", "2025-08-29", "5,800", "RSI(14): 55", "+5.45%", "牛市"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestFormatAnalysisReport_InvalidMA200(t *testing.T) {
	sum := &model.Summary{
		Symbol: "NEW", Period: model.Period1Mo,
		Price: 10, Drawdown: -0.01,
		TrendLabel: "数据不足200天，无法判断长期趋势",
	}
	report := FormatAnalysisReport(sum)

	if !strings.Contains(report, "无效") {
		t.Errorf("report should flag the invalid MA200:\n%s", report)
	}
	if strings.Contains(report, "乖离率: +") {
		t.Error("report must not print a bias when the MA200 is invalid")
	}
}

func TestFormatPortfolioReport(t *testing.T) {
	res := &model.ValuationResult{
		Symbols: []model.SymbolValuation{
			{Ticker: "VOO", Shares: 10, InvestedCNY: 70000, Price: 110, Priced: true,
				MarketValueCNY: 79750, ProfitCNY: 9750, ProfitRatePct: 13.93, RateApplicable: true},
			{Ticker: "GONE", Shares: 5, InvestedCNY: 1000,
				MarketValueCNY: 0, ProfitCNY: -1000, ProfitRatePct: -100, RateApplicable: true},
		},
		TotalInvestedCNY: 71000, TotalValueCNY: 79750, TotalProfitCNY: 8750,
		TotalProfitRatePct: 12.32, TotalRateApplicable: true,
		XIRRPct: 11.5, XIRRConverged: true,
		FX:   model.FXQuote{Pair: "CNY=X", Rate: 7.25},
		AsOf: time.Now(),
	}
	report := FormatPortfolioReport(res)

	for _, want := range []string{"[VOO]", "[GONE]", "未取到价格", "总投入: ¥71,000", "XIRR): 11.50%", "1 USD = 7.2500"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
	if strings.Contains(report, "兜底汇率") {
		t.Error("live rate must not carry the fallback note")
	}
}

func TestFormatPortfolioReport_FallbacksAreFlagged(t *testing.T) {
	res := &model.ValuationResult{
		Symbols: []model.SymbolValuation{
			{Ticker: "VOO", Shares: 1, InvestedCNY: 700, MarketValueCNY: 725, ProfitCNY: 25,
				Priced: true, ProfitRatePct: 3.57, RateApplicable: true},
		},
		TotalInvestedCNY: 700, TotalValueCNY: 725, TotalProfitCNY: 25,
		FX:   model.FXQuote{Pair: "CNY=X", Rate: 7.25, Fallback: true},
		AsOf: time.Now(),
	}
	report := FormatPortfolioReport(res)

	if !strings.Contains(report, "兜底汇率") {
		t.Errorf("fallback rate should be flagged:\n%s", report)
	}
	if !strings.Contains(report, "无法求解") {
		t.Errorf("non-converged XIRR should be flagged:\n%s", report)
	}
}

func TestFormatRunFailure(t *testing.T) {
	msg := FormatRunFailure("持仓估值", errors.New("no data"))
	if !strings.Contains(msg, "持仓估值失败") || !strings.Contains(msg, "no data") {
		t.Errorf("unexpected failure message: %s", msg)
	}
}
