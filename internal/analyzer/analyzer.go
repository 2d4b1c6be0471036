// Package analyzer orchestrates a single analysis run: fetch a price
// series, derive the indicator columns, and reduce the latest row to a
// summary with qualitative labels.
package analyzer

import (
	"fmt"
	"time"

	"MarketCompass/internal/calculator"
	"MarketCompass/internal/collector"
	"MarketCompass/internal/model"
)

// Analyzer wires a fetcher to the indicator engine.
type Analyzer struct {
	Fetcher collector.Fetcher
}

// New creates an Analyzer.
func New(fetcher collector.Fetcher) *Analyzer {
	return &Analyzer{Fetcher: fetcher}
}

// Analyze fetches one symbol's history and computes its indicator frame and
// summary. A failed or empty fetch aborts the run with an error; a short
// history does not.
func (a *Analyzer) Analyze(symbol, name string, period model.Period, prof Profile) (*model.IndicatorFrame, *model.Summary, error) {
	series, err := a.Fetcher.FetchHistory(symbol, period)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}

	frame, err := calculator.ComputeIndicators(series)
	if err != nil {
		return nil, nil, fmt.Errorf("compute indicators for %s: %w", symbol, err)
	}

	summary := Summarize(frame, name, period, prof)
	return frame, summary, nil
}

// Summarize reduces the latest frame row to a Summary. MA200-derived fields
// are zeroed and flagged invalid when the window has fewer than 200 rows;
// the trend label then says so instead of guessing.
func Summarize(frame *model.IndicatorFrame, name string, period model.Period, prof Profile) *model.Summary {
	last := frame.Len() - 1
	sum := &model.Summary{
		Symbol:      frame.Symbol,
		Name:        name,
		Period:      period,
		Price:       frame.Close[last],
		Drawdown:    frame.Drawdown[last],
		GeneratedAt: time.Now(),
	}

	if model.Defined(frame.MA200[last]) {
		sum.MA200 = frame.MA200[last]
		sum.Bias = frame.Bias[last]
		sum.MA200Valid = true
		if sum.Price > sum.MA200 {
			sum.TrendLabel = "牛市（价格位于200日均线上方）"
		} else {
			sum.TrendLabel = "弱势区间（价格位于200日均线下方）"
		}
		if sum.Bias > prof.BiasAlert {
			sum.RiskLabel = fmt.Sprintf("乖离率 %.2f%% 超过警戒线 %.0f%%，市场短期过热", sum.Bias*100, prof.BiasAlert*100)
		} else {
			sum.RiskLabel = "乖离率处于正常范围"
		}
	} else {
		sum.TrendLabel = "数据不足200天，无法判断长期趋势"
		sum.RiskLabel = "数据不足，暂无风险评估"
	}

	if model.Defined(frame.RSI[last]) {
		sum.RSI = frame.RSI[last]
		sum.RSIValid = true
	}

	switch {
	case sum.Drawdown < prof.DeepDrawdown:
		sum.OpportunityLabel = fmt.Sprintf("史诗级大底（跌破 %.0f%%），适合加大定投", prof.DeepDrawdown*100)
	case sum.Drawdown < prof.ModerateDrawdown:
		sum.OpportunityLabel = "深度回调，适合分批买入"
	default:
		sum.OpportunityLabel = "正常波动区间，保持定投节奏"
	}

	return sum
}
