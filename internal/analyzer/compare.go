package analyzer

import (
	"fmt"
	"sort"
	"time"

	"MarketCompass/internal/model"
)

// Comparison holds cumulative-return curves for several assets on a shared
// calendar, normalized to zero at the first shared date.
type Comparison struct {
	Period model.Period
	Dates  []time.Time
	Order  []string
	Series map[string][]float64

	// Final cumulative return per symbol, the winner, and its lead over
	// the runner-up in percentage points.
	Returns  map[string]float64
	Winner   string
	LeadPcts float64
}

// Compare fetches the symbols in one batched call, aligns them on the union
// trading calendar (forward-filling gaps, backfilling leading ones — crypto
// trades on weekends, indices do not) and normalizes each curve to
// (p/p0)-1.
func (a *Analyzer) Compare(symbols []string, period model.Period) (*Comparison, error) {
	if len(symbols) < 2 {
		return nil, fmt.Errorf("comparison needs at least 2 symbols, got %d", len(symbols))
	}

	batch, err := a.Fetcher.FetchBatch(symbols, period)
	if err != nil {
		return nil, fmt.Errorf("fetch comparison set: %w", err)
	}
	for _, sym := range symbols {
		if _, ok := batch[sym]; !ok {
			return nil, fmt.Errorf("no data for %s", sym)
		}
	}

	dates := unionCalendar(batch)
	cmp := &Comparison{
		Period:  period,
		Dates:   dates,
		Order:   append([]string(nil), symbols...),
		Series:  make(map[string][]float64, len(symbols)),
		Returns: make(map[string]float64, len(symbols)),
	}

	for _, sym := range symbols {
		aligned := alignSeries(batch[sym], dates)
		base := aligned[0]
		normalized := make([]float64, len(aligned))
		for i, p := range aligned {
			normalized[i] = p/base - 1
		}
		cmp.Series[sym] = normalized
		cmp.Returns[sym] = normalized[len(normalized)-1]
	}

	ranked := append([]string(nil), symbols...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return cmp.Returns[ranked[i]] > cmp.Returns[ranked[j]]
	})
	cmp.Winner = ranked[0]
	if len(ranked) > 1 {
		cmp.LeadPcts = (cmp.Returns[ranked[0]] - cmp.Returns[ranked[1]]) * 100
	}

	return cmp, nil
}

// unionCalendar collects the sorted union of trading days across all series.
func unionCalendar(batch map[string]model.PriceSeries) []time.Time {
	seen := make(map[string]time.Time)
	for _, series := range batch {
		for _, bar := range series.Bars {
			day := bar.Time.Format("2006-01-02")
			if _, ok := seen[day]; !ok {
				seen[day] = bar.Time
			}
		}
	}
	dates := make([]time.Time, 0, len(seen))
	for _, t := range seen {
		dates = append(dates, t)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// alignSeries projects one series onto the shared calendar, carrying the
// last known close forward and filling leading gaps with the first close.
func alignSeries(series model.PriceSeries, dates []time.Time) []float64 {
	byDay := make(map[string]float64, len(series.Bars))
	for _, bar := range series.Bars {
		byDay[bar.Time.Format("2006-01-02")] = bar.Close
	}

	out := make([]float64, len(dates))
	last := series.Bars[0].Close
	for i, d := range dates {
		if c, ok := byDay[d.Format("2006-01-02")]; ok {
			last = c
		}
		out[i] = last
	}
	return out
}
