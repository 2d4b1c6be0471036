package collector

import (
	"errors"
	"time"

	"MarketCompass/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series map[string]model.PriceSeries
	Prices map[string]float64
	FXRate float64
	Err    error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(symbol string, _ model.Period) (model.PriceSeries, error) {
	if m.Err != nil {
		return model.PriceSeries{}, m.Err
	}
	series, ok := m.Series[symbol]
	if !ok || series.Empty() {
		return model.PriceSeries{}, errors.New("mock: no data for " + symbol)
	}
	return series, nil
}

func (m *MockFetcher) FetchHistoryRange(symbol string, _, _ time.Time) (model.PriceSeries, error) {
	return m.FetchHistory(symbol, model.Period1Y)
}

func (m *MockFetcher) FetchBatch(symbols []string, period model.Period) (map[string]model.PriceSeries, error) {
	out := make(map[string]model.PriceSeries, len(symbols))
	var lastErr error
	for _, sym := range symbols {
		series, err := m.FetchHistory(sym, period)
		if err != nil {
			lastErr = err
			continue
		}
		out[sym] = series
	}
	if len(out) == 0 {
		return nil, lastErr
	}
	return out, nil
}

func (m *MockFetcher) FetchLatestPrices(symbols []string) map[string]float64 {
	out := make(map[string]float64, len(symbols))
	for _, sym := range symbols {
		if p, ok := m.Prices[sym]; ok {
			out[sym] = p
		}
	}
	return out
}

func (m *MockFetcher) FetchFXRate(string) (float64, error) {
	if m.FXRate == 0 {
		return 0, errors.New("mock: no fx rate")
	}
	return m.FXRate, nil
}

// GenerateBars builds count daily bars drifting around basePrice, oldest
// first, for tests and local runs without network access.
func GenerateBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
