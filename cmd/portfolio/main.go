// Command portfolio values the buy ledger at current prices and prints the
// daily report, optionally pushing it to Bark.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"MarketCompass/internal/collector"
	"MarketCompass/internal/ledger"
	"MarketCompass/internal/model"
	"MarketCompass/internal/notifier"
	"MarketCompass/internal/valuation"
)

func main() {
	ledgerPath := flag.String("ledger", "data/my_ledger.csv", "path to the buy ledger CSV")
	fxPair := flag.String("fx-pair", "CNY=X", "Yahoo FX pair for USD/CNY")
	fxFallback := flag.Float64("fx-fallback", 7.25, "rate used when the FX fetch fails")
	barkKey := flag.String("bark-key", "", "if set, push the report to this Bark device")
	proxy := flag.String("proxy", "", "HTTP proxy URL")
	flag.Parse()

	positions, err := ledger.Load(*ledgerPath)
	if err != nil {
		log.Fatalf("[FATAL] load ledger: %v", err)
	}

	tickers := make([]string, 0, len(positions))
	seen := make(map[string]bool)
	for _, p := range positions {
		if !seen[p.Ticker] {
			seen[p.Ticker] = true
			tickers = append(tickers, p.Ticker)
		}
	}

	fetcher := collector.NewYahooFetcher(*proxy)
	prices := fetcher.FetchLatestPrices(tickers)

	fx := model.FXQuote{Pair: *fxPair}
	if rate, err := fetcher.FetchFXRate(*fxPair); err != nil {
		log.Printf("[WARN] fetch FX rate: %v, using fallback %.4f", err, *fxFallback)
		fx.Rate = *fxFallback
		fx.Fallback = true
	} else {
		fx.Rate = rate
	}

	result := valuation.ValuePortfolio(positions, prices, fx, time.Now())
	report := notifier.FormatPortfolioReport(result)
	fmt.Println(report)

	if *barkKey != "" {
		bark := notifier.NewBarkNotifier(*barkKey, *proxy)
		if err := bark.PushDailyReport(report, result.TotalProfitCNY); err != nil {
			log.Fatalf("[FATAL] bark push: %v", err)
		}
		fmt.Println("pushed to Bark")
	}
}
