package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"MarketCompass/internal/analyzer"
	"MarketCompass/internal/model"
)

func money(v float64) string {
	return humanize.CommafWithDigits(v, 0)
}

func price(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

// FormatAnalysisReport renders the narrative summary for one asset.
func FormatAnalysisReport(sum *model.Summary) string {
	var b strings.Builder

	name := sum.Name
	if name == "" {
		name = sum.Symbol
	}
	b.WriteString(fmt.Sprintf("📊 <b>%s 市场简报</b> | %s\n", name, sum.GeneratedAt.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("观察周期: %s\n\n", sum.Period))

	b.WriteString(fmt.Sprintf("当前价格: %s\n", price(sum.Price)))

	if sum.MA200Valid {
		b.WriteString(fmt.Sprintf("200日均线: %s\n", price(sum.MA200)))
		b.WriteString(fmt.Sprintf("当前乖离率: %+.2f%%\n", sum.Bias*100))
	} else {
		b.WriteString("200日均线: 无效（数据不足200天）\n")
	}
	if sum.RSIValid {
		b.WriteString(fmt.Sprintf("RSI(14): %.0f\n", sum.RSI))
	}
	b.WriteString(fmt.Sprintf("当前回撤幅度: %.2f%%\n\n", sum.Drawdown*100))

	b.WriteString(fmt.Sprintf("📈 趋势判断: %s\n", sum.TrendLabel))
	b.WriteString(fmt.Sprintf("⚠️ 风险提示: %s\n", sum.RiskLabel))
	b.WriteString(fmt.Sprintf("💡 操作建议: %s\n", sum.OpportunityLabel))

	return b.String()
}

// FormatComparisonReport renders the cumulative-return shootout.
func FormatComparisonReport(cmp *analyzer.Comparison) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("⚔️ <b>资产对比战绩</b> (%s)\n\n", cmp.Period))
	for _, sym := range cmp.Order {
		b.WriteString(fmt.Sprintf("%s 累计收益: %+.2f%%\n", sym, cmp.Returns[sym]*100))
	}
	b.WriteString(fmt.Sprintf("\n🏆 胜者: %s (领先 %.2f 个百分点)\n", cmp.Winner, cmp.LeadPcts))

	return b.String()
}

// FormatPortfolioReport renders the multi-line valuation message pushed to
// the phone. Unpriced symbols are marked instead of blending silently into
// the totals.
func FormatPortfolioReport(res *model.ValuationResult) string {
	var b strings.Builder

	b.WriteString("--- 持仓详情 ---\n")
	for _, sv := range res.Symbols {
		line := fmt.Sprintf("[%s] 持仓: %.4f | 现值: ¥%s", sv.Ticker, sv.Shares, price(sv.MarketValueCNY))
		if sv.RateApplicable {
			line += fmt.Sprintf(" | 收益率: %.2f%%", sv.ProfitRatePct)
		} else {
			line += " | 收益率: 不适用"
		}
		if !sv.Priced {
			line += " ⚠️ 未取到价格，按0计"
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("总投入: ¥%s\n", money(res.TotalInvestedCNY)))
	b.WriteString(fmt.Sprintf("总市值: ¥%s\n", money(res.TotalValueCNY)))
	b.WriteString(fmt.Sprintf("总浮盈: ¥%s (%.2f%%)\n", money(res.TotalProfitCNY), res.TotalProfitRatePct))
	if res.XIRRConverged {
		b.WriteString(fmt.Sprintf("年化效率 (XIRR): %.2f%%\n", res.XIRRPct))
	} else {
		b.WriteString("年化效率 (XIRR): 0.00% (无法求解)\n")
	}
	fxNote := ""
	if res.FX.Fallback {
		fxNote = " (兜底汇率)"
	}
	b.WriteString(fmt.Sprintf("汇率: 1 USD = %.4f CNY%s\n", res.FX.Rate, fxNote))

	return b.String()
}

// FormatRunFailure renders the single human-readable message produced when
// a run aborts.
func FormatRunFailure(task string, err error) string {
	return fmt.Sprintf("❌ %s失败 (%s): %v", task, time.Now().Format("01-02 15:04"), err)
}
