// Command analyze runs a one-shot indicator analysis for a single symbol
// and prints the report, optionally saving a price chart.
package main

import (
	"flag"
	"fmt"
	"log"

	"MarketCompass/internal/analyzer"
	"MarketCompass/internal/chart"
	"MarketCompass/internal/collector"
	"MarketCompass/internal/model"
	"MarketCompass/internal/notifier"
)

func main() {
	symbol := flag.String("symbol", "^GSPC", "Yahoo symbol to analyze")
	name := flag.String("name", "", "display name (defaults to symbol)")
	periodStr := flag.String("period", "5y", "history window (1mo,3mo,6mo,ytd,1y,2y,3y,4y,5y,10y,max)")
	profileKey := flag.String("profile", "sp500", "threshold profile (sp500,nasdaq,btc,eth)")
	chartDir := flag.String("chart-dir", "", "if set, save a PNG chart under this directory")
	proxy := flag.String("proxy", "", "HTTP proxy URL")
	flag.Parse()

	period, err := model.ParsePeriod(*periodStr)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	an := analyzer.New(collector.NewYahooFetcher(*proxy))
	frame, sum, err := an.Analyze(*symbol, *name, period, analyzer.ProfileFor(*profileKey))
	if err != nil {
		log.Fatalf("[FATAL] analyze %s: %v", *symbol, err)
	}

	fmt.Println(notifier.FormatAnalysisReport(sum))

	if *chartDir != "" {
		png, err := chart.RenderAnalysis(frame)
		if err != nil {
			log.Fatalf("[FATAL] render chart: %v", err)
		}
		path, err := chart.WriteFile(*chartDir, *symbol+".png", png)
		if err != nil {
			log.Fatalf("[FATAL] save chart: %v", err)
		}
		fmt.Printf("chart saved: %s\n", path)
	}
}
