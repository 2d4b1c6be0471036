package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"MarketCompass/internal/model"
)

// YahooFetcher implements Fetcher using the Yahoo Finance v8 chart API.
type YahooFetcher struct {
	Client *http.Client
	Hosts  []string
}

// NewYahooFetcher creates a Yahoo Finance fetcher. The proxy URL is applied
// to this fetcher's transport only.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Hosts: []string{"query1.finance.yahoo.com", "query2.finance.yahoo.com"},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

var fetchBackoffs = []time.Duration{200 * time.Millisecond, 500 * time.Millisecond, time.Second}

// fetchChart runs one chart query against the host list with backoff between
// full passes. query holds everything after the symbol, e.g.
// "interval=1d&range=1y".
func (f *YahooFetcher) fetchChart(symbol, query string) (model.PriceSeries, error) {
	var lastErr error
	for attempt := 0; attempt <= len(fetchBackoffs); attempt++ {
		for _, host := range f.Hosts {
			u := fmt.Sprintf("https://%s/v8/finance/chart/%s?%s", host, url.PathEscape(symbol), query)
			series, err := f.fetchChartOnce(symbol, u)
			if err != nil {
				lastErr = err
				continue
			}
			return series, nil
		}
		if attempt < len(fetchBackoffs) {
			time.Sleep(fetchBackoffs[attempt])
		}
	}
	return model.PriceSeries{}, lastErr
}

func (f *YahooFetcher) fetchChartOnce(symbol, u string) (model.PriceSeries, error) {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return model.PriceSeries{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		preview := string(body)
		if len(preview) > 120 {
			preview = preview[:120]
		}
		return model.PriceSeries{}, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, preview)
	}
	if strings.HasPrefix(string(body), "<") || strings.HasPrefix(string(body), "Edge:") {
		return model.PriceSeries{}, fmt.Errorf("yahoo: non-json body for %s", symbol)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return model.PriceSeries{}, fmt.Errorf("yahoo: no data returned for %s", symbol)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // null bar (holiday etc.)
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}
	if len(bars) == 0 {
		return model.PriceSeries{}, fmt.Errorf("yahoo: only null bars for %s", symbol)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	bars = dedupeByDay(bars)

	return model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: time.Now()}, nil
}

// dedupeByDay keeps the last bar of each trading day so the series is
// strictly increasing by date.
func dedupeByDay(bars []model.OHLCV) []model.OHLCV {
	out := bars[:0]
	for _, b := range bars {
		day := b.Time.Format("2006-01-02")
		if len(out) > 0 && out[len(out)-1].Time.Format("2006-01-02") == day {
			out[len(out)-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

func (f *YahooFetcher) FetchHistory(symbol string, period model.Period) (model.PriceSeries, error) {
	if rng, ok := period.YahooRange(); ok {
		return f.fetchChart(symbol, "interval=1d&range="+rng)
	}
	lookback, _ := period.Lookback()
	end := time.Now()
	return f.FetchHistoryRange(symbol, end.Add(-lookback), end)
}

func (f *YahooFetcher) FetchHistoryRange(symbol string, start, end time.Time) (model.PriceSeries, error) {
	query := fmt.Sprintf("interval=1d&period1=%d&period2=%d", start.Unix(), end.Unix())
	return f.fetchChart(symbol, query)
}

func (f *YahooFetcher) FetchBatch(symbols []string, period model.Period) (map[string]model.PriceSeries, error) {
	out := make(map[string]model.PriceSeries, len(symbols))
	var lastErr error
	for _, sym := range symbols {
		series, err := f.FetchHistory(sym, period)
		if err != nil {
			log.Printf("[WARN] batch fetch %s: %v", sym, err)
			lastErr = err
			continue
		}
		out[sym] = series
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no data for any of %d symbols: %w", len(symbols), lastErr)
	}
	return out, nil
}

// FetchLatestPrices resolves current prices from a 5-day window, taking the
// last available close for each symbol (forward-fill over weekends).
func (f *YahooFetcher) FetchLatestPrices(symbols []string) map[string]float64 {
	prices := make(map[string]float64, len(symbols))
	for _, sym := range symbols {
		series, err := f.fetchChart(sym, "interval=1d&range=5d")
		if err != nil {
			log.Printf("[WARN] latest price %s: %v", sym, err)
			continue
		}
		prices[sym] = series.Bars[len(series.Bars)-1].Close
	}
	return prices
}

func (f *YahooFetcher) FetchFXRate(pair string) (float64, error) {
	series, err := f.fetchChart(pair, "interval=1d&range=5d")
	if err != nil {
		return 0, fmt.Errorf("fx rate %s: %w", pair, err)
	}
	return series.Bars[len(series.Bars)-1].Close, nil
}
