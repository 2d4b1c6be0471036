package collector

import (
	"time"

	"MarketCompass/internal/model"
)

// Fetcher defines the interface for fetching market data. Proxy and any
// other transport settings are passed into the concrete constructor; no
// implementation mutates process-wide state.
type Fetcher interface {
	// FetchHistory returns the daily series for one symbol over a named
	// period. An empty result is an error, never an empty series.
	FetchHistory(symbol string, period model.Period) (model.PriceSeries, error)

	// FetchHistoryRange returns the daily series between two dates.
	FetchHistoryRange(symbol string, start, end time.Time) (model.PriceSeries, error)

	// FetchBatch fetches several symbols in one logical call. Symbols that
	// fail individually are omitted from the map; the error is non-nil only
	// when no symbol produced data.
	FetchBatch(symbols []string, period model.Period) (map[string]model.PriceSeries, error)

	// FetchLatestPrices resolves the most recent close for each symbol,
	// falling back to the last available close of the past few days when
	// today has no bar yet. Unresolvable symbols are absent from the map.
	FetchLatestPrices(symbols []string) map[string]float64

	// FetchFXRate returns the latest rate for a currency pair like "CNY=X".
	FetchFXRate(pair string) (float64, error)

	Name() string
}
