package calculator

// rsiSeries computes the RSI over trailing rolling means of gains and
// losses (not Wilder smoothing). The first `window` rows are NaN: one row
// is consumed by the delta, window-1 more by the rolling mean.
//
// When the loss mean is zero (flat or strictly rising window) the RSI is
// defined as 100 so a 0/0 never surfaces as NaN once the window is full.
func rsiSeries(closes []float64, window int) []float64 {
	n := len(closes)
	out := nanSlice(n)
	if window <= 0 || n < window+1 {
		return out
	}
	var gainSum, lossSum float64
	for i := 1; i < n; i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gainSum += d
		} else {
			lossSum -= d
		}
		if i > window {
			od := closes[i-window] - closes[i-window-1]
			if od > 0 {
				gainSum -= od
			} else {
				lossSum += od
			}
		}
		if i < window {
			continue
		}
		lossMean := lossSum / float64(window)
		if lossMean <= 0 {
			out[i] = 100
			continue
		}
		gainMean := gainSum / float64(window)
		rs := gainMean / lossMean
		out[i] = 100 - 100/(1+rs)
	}
	return out
}
