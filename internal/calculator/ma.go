package calculator

import "math"

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// rollingMean computes the trailing simple moving average over the given
// window. The first window-1 rows are NaN.
func rollingMean(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// rollingStdPop computes the trailing population standard deviation over the
// given window. The first window-1 rows are NaN.
func rollingStdPop(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		mean := 0.0
		for j := i - window + 1; j <= i; j++ {
			mean += values[j]
		}
		mean /= float64(window)
		variance := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := values[j] - mean
			variance += d * d
		}
		out[i] = math.Sqrt(variance / float64(window))
	}
	return out
}

// biasSeries computes (close-ma)/ma for each row; NaN wherever ma is NaN.
func biasSeries(closes, ma []float64) []float64 {
	out := nanSlice(len(closes))
	for i := range closes {
		if !math.IsNaN(ma[i]) {
			out[i] = (closes[i] - ma[i]) / ma[i]
		}
	}
	return out
}
