package model

import (
	"math"
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	for _, s := range []string{"1mo", "3mo", "6mo", "ytd", "1y", "2y", "3y", "4y", "5y", "10y", "max"} {
		if _, err := ParsePeriod(s); err != nil {
			t.Errorf("ParsePeriod(%q): %v", s, err)
		}
	}
	for _, s := range []string{"", "7y", "1d", "week", "5Y"} {
		if _, err := ParsePeriod(s); err == nil {
			t.Errorf("ParsePeriod(%q): expected error", s)
		}
	}
}

func TestYahooRange(t *testing.T) {
	if rng, ok := Period5Y.YahooRange(); !ok || rng != "5y" {
		t.Errorf("5y: got (%q, %v)", rng, ok)
	}
	if _, ok := Period3Y.YahooRange(); ok {
		t.Error("3y has no native range code")
	}
	if _, ok := Period4Y.YahooRange(); ok {
		t.Error("4y has no native range code")
	}
}

func TestLookback(t *testing.T) {
	d, ok := Period3Y.Lookback()
	if !ok || d != 3*365*24*time.Hour {
		t.Errorf("3y lookback = (%v, %v)", d, ok)
	}
	if _, ok := Period5Y.Lookback(); ok {
		t.Error("5y should use the native range, not a lookback")
	}
}

func TestDefined(t *testing.T) {
	if Defined(math.NaN()) {
		t.Error("NaN should not be defined")
	}
	if !Defined(0) || !Defined(-1.5) {
		t.Error("real values should be defined")
	}
}
