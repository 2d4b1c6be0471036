package valuation

import (
	"math"
	"time"
)

// CashFlow is a dated amount: negative for money in, positive for money out.
type CashFlow struct {
	Date   time.Time
	Amount float64
}

const (
	xirrMaxIterations = 100
	xirrTolerance     = 1e-7
)

// XIRR solves for the annualized internal rate of return of irregularly
// dated cash flows using an actual/365 day count. Returns ok=false for
// degenerate schedules (fewer than two flows, all flows the same sign) and
// when neither Newton iteration nor bisection converges; callers are
// expected to substitute a zero sentinel in that case.
func XIRR(flows []CashFlow) (float64, bool) {
	if len(flows) < 2 {
		return 0, false
	}
	hasPositive, hasNegative := false, false
	for _, f := range flows {
		if f.Amount > 0 {
			hasPositive = true
		}
		if f.Amount < 0 {
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return 0, false
	}

	t0 := flows[0].Date
	years := make([]float64, len(flows))
	for i, f := range flows {
		years[i] = f.Date.Sub(t0).Hours() / 24 / 365
	}

	npv := func(rate float64) float64 {
		sum := 0.0
		for i, f := range flows {
			sum += f.Amount / math.Pow(1+rate, years[i])
		}
		return sum
	}
	dnpv := func(rate float64) float64 {
		sum := 0.0
		for i, f := range flows {
			sum -= years[i] * f.Amount / math.Pow(1+rate, years[i]+1)
		}
		return sum
	}

	// Newton from a conventional initial guess.
	rate := 0.1
	for i := 0; i < xirrMaxIterations; i++ {
		f := npv(rate)
		if math.Abs(f) < xirrTolerance {
			return rate, true
		}
		d := dnpv(rate)
		if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			break
		}
		next := rate - f/d
		if next <= -1 {
			next = (rate - 1) / 2 // keep 1+rate positive
		}
		if math.Abs(next-rate) < xirrTolerance {
			rate = next
			if math.Abs(npv(rate)) < 1e-4 {
				return rate, true
			}
			break
		}
		rate = next
	}

	// Bisection fallback over a wide bracket.
	lo, hi := -0.9999, 10.0
	flo, fhi := npv(lo), npv(hi)
	if math.IsNaN(flo) || math.IsNaN(fhi) || flo*fhi > 0 {
		return 0, false
	}
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		fmid := npv(mid)
		if math.Abs(fmid) < xirrTolerance || (hi-lo)/2 < xirrTolerance {
			return mid, true
		}
		if flo*fmid < 0 {
			hi = mid
		} else {
			lo, flo = mid, fmid
		}
	}
	return 0, false
}
