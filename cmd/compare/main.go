// Command compare pits several assets against each other over a shared
// window and prints their cumulative returns.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"MarketCompass/internal/analyzer"
	"MarketCompass/internal/chart"
	"MarketCompass/internal/collector"
	"MarketCompass/internal/model"
	"MarketCompass/internal/notifier"
)

func main() {
	symbolsFlag := flag.String("symbols", "^GSPC,BTC-USD", "comma-separated Yahoo symbols (at least 2)")
	periodStr := flag.String("period", "1y", "history window (1mo,3mo,6mo,ytd,1y,2y,3y,4y,5y,10y,max)")
	chartDir := flag.String("chart-dir", "", "if set, save a PNG chart under this directory")
	proxy := flag.String("proxy", "", "HTTP proxy URL")
	flag.Parse()

	var symbols []string
	for _, s := range strings.Split(*symbolsFlag, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	period, err := model.ParsePeriod(*periodStr)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	an := analyzer.New(collector.NewYahooFetcher(*proxy))
	cmp, err := an.Compare(symbols, period)
	if err != nil {
		log.Fatalf("[FATAL] compare: %v", err)
	}

	fmt.Println(notifier.FormatComparisonReport(cmp))

	if *chartDir != "" {
		png, err := chart.RenderComparison(cmp)
		if err != nil {
			log.Fatalf("[FATAL] render chart: %v", err)
		}
		path, err := chart.WriteFile(*chartDir, "comparison.png", png)
		if err != nil {
			log.Fatalf("[FATAL] save chart: %v", err)
		}
		fmt.Printf("chart saved: %s\n", path)
	}
}
