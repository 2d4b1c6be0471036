package calculator

// peakDrawdown computes the running maximum of close and the percentage
// decline from it. Peak is monotonically non-decreasing; Drawdown is <= 0
// and exactly 0 wherever close equals the peak. A zero peak (only possible
// with a zero close) propagates Inf/NaN through the division rather than
// being special-cased.
func peakDrawdown(closes []float64) (peak, drawdown []float64) {
	peak = make([]float64, len(closes))
	drawdown = make([]float64, len(closes))
	running := 0.0
	for i, c := range closes {
		if i == 0 || c > running {
			running = c
		}
		peak[i] = running
		drawdown[i] = (c - running) / running
	}
	return peak, drawdown
}
