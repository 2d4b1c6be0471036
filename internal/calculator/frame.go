package calculator

import (
	"errors"
	"fmt"
	"time"

	"MarketCompass/internal/model"
)

// Window parameters for the derived columns.
const (
	MA200Window     = 200
	RSIWindow       = 14
	MACDFast        = 12
	MACDSlow        = 26
	MACDSignal      = 9
	BollingerWindow = 20
	BollingerWidth  = 2.0
)

// ComputeIndicators derives all indicator columns from a price series.
// Pure transform: no I/O, deterministic for a given input.
//
// The series must be non-empty and strictly ordered by date. A series too
// short for a window is not an error; the affected rows simply stay NaN and
// callers are expected to check model.Defined before trusting a column.
func ComputeIndicators(series model.PriceSeries) (*model.IndicatorFrame, error) {
	if series.Empty() {
		return nil, errors.New("empty price series")
	}
	for i := 1; i < len(series.Bars); i++ {
		if !series.Bars[i].Time.After(series.Bars[i-1].Time) {
			return nil, fmt.Errorf("price series not strictly ordered at row %d (%s)",
				i, series.Bars[i].Time.Format("2006-01-02"))
		}
	}

	closes := series.Closes()
	dates := make([]time.Time, len(series.Bars))
	for i, b := range series.Bars {
		dates[i] = b.Time
	}

	frame := &model.IndicatorFrame{
		Symbol: series.Symbol,
		Dates:  dates,
		Close:  closes,
	}

	frame.MA200 = rollingMean(closes, MA200Window)
	frame.Peak, frame.Drawdown = peakDrawdown(closes)
	frame.Bias = biasSeries(closes, frame.MA200)
	frame.RSI = rsiSeries(closes, RSIWindow)
	frame.MACD, frame.SignalLine = macdSeries(closes, MACDFast, MACDSlow, MACDSignal)

	ma20 := rollingMean(closes, BollingerWindow)
	std20 := rollingStdPop(closes, BollingerWindow)
	frame.UpperBand = nanSlice(len(closes))
	frame.LowerBand = nanSlice(len(closes))
	for i := range closes {
		if model.Defined(ma20[i]) && model.Defined(std20[i]) {
			frame.UpperBand[i] = ma20[i] + BollingerWidth*std20[i]
			frame.LowerBand[i] = ma20[i] - BollingerWidth*std20[i]
		}
	}

	return frame, nil
}
