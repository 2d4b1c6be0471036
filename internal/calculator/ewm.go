package calculator

// emaSeries computes an exponential moving average with alpha = 2/(span+1),
// seeded with the first value. Every row is defined.
func emaSeries(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// macdSeries computes the MACD line (fast EMA minus slow EMA) and its
// signal line (EMA of the MACD line).
func macdSeries(closes []float64, fast, slow, signal int) (macd, signalLine []float64) {
	emaFast := emaSeries(closes, fast)
	emaSlow := emaSeries(closes, slow)
	macd = make([]float64, len(closes))
	for i := range closes {
		macd[i] = emaFast[i] - emaSlow[i]
	}
	return macd, emaSeries(macd, signal)
}
