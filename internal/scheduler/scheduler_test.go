package scheduler

import (
	"context"
	"strings"
	"sync"
	"testing"

	"MarketCompass/internal/analyzer"
	"MarketCompass/internal/collector"
	"MarketCompass/internal/config"
	"MarketCompass/internal/model"
	"MarketCompass/internal/recorder"
)

type captureNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (c *captureNotifier) Send(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, text)
	return nil
}

// retryNotifier tracks whether delivery went through the retry path.
type retryNotifier struct {
	captureNotifier
	retried []string
}

func (r *retryNotifier) SendWithRetry(_ context.Context, text string, _ int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retried = append(r.retried, text)
	return nil
}

func newTestScheduler(t *testing.T, mock *collector.MockFetcher) (*Scheduler, *captureNotifier) {
	t.Helper()
	cfg, err := config.Load("nonexistent.yaml")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Charts.OutputDir = "" // no chart files from tests
	cn := &captureNotifier{}
	s := NewScheduler(context.Background(), analyzer.New(mock), cfg, cn, nil, recorder.NewNoopRecorder())
	return s, cn
}

func TestHandleCommand_Help(t *testing.T) {
	s, _ := newTestScheduler(t, &collector.MockFetcher{})
	reply := s.HandleCommand("/help")
	if !strings.Contains(reply, "/analyze") || !strings.Contains(reply, "/portfolio") {
		t.Errorf("help should list commands, got: %s", reply)
	}
}

func TestHandleCommand_Unknown(t *testing.T) {
	s, _ := newTestScheduler(t, &collector.MockFetcher{})
	reply := s.HandleCommand("/frobnicate")
	if !strings.Contains(reply, "/help") {
		t.Errorf("unknown command should point at /help, got: %s", reply)
	}
}

func TestHandleCommand_AnalyzeNeedsSymbol(t *testing.T) {
	s, _ := newTestScheduler(t, &collector.MockFetcher{})
	reply := s.HandleCommand("/analyze")
	if !strings.Contains(reply, "用法") {
		t.Errorf("expected usage hint, got: %s", reply)
	}
}

func TestHandleCommand_Analyze(t *testing.T) {
	mock := &collector.MockFetcher{
		Series: map[string]model.PriceSeries{
			"^GSPC": {Symbol: "^GSPC", Bars: collector.GenerateBars(5000, 250)},
		},
	}
	s, _ := newTestScheduler(t, mock)
	reply := s.HandleCommand("/analyze ^GSPC 1y")
	if !strings.Contains(reply, "市场简报") {
		t.Errorf("expected an analysis report, got: %s", reply)
	}
	// Watchlist name is resolved for known symbols.
	if !strings.Contains(reply, "标普500") {
		t.Errorf("expected the watchlist display name, got: %s", reply)
	}
}

func TestHandleCommand_AnalyzeBadPeriod(t *testing.T) {
	s, _ := newTestScheduler(t, &collector.MockFetcher{})
	reply := s.HandleCommand("/analyze ^GSPC 7y")
	if !strings.Contains(reply, "无效周期") {
		t.Errorf("expected invalid-period reply, got: %s", reply)
	}
}

func TestAnalysisTask_ContinuesPastFailures(t *testing.T) {
	// Only one of the four default watchlist symbols has data; the other
	// three fail individually without stopping the pass.
	mock := &collector.MockFetcher{
		Series: map[string]model.PriceSeries{
			"^GSPC": {Symbol: "^GSPC", Bars: collector.GenerateBars(5000, 250)},
		},
	}
	s, cn := newTestScheduler(t, mock)
	s.analysisTask()

	var reports, failures int
	for _, msg := range cn.sent {
		if strings.Contains(msg, "市场简报") {
			reports++
		}
		if strings.Contains(msg, "失败") {
			failures++
		}
	}
	if reports != 1 {
		t.Errorf("expected 1 report, got %d", reports)
	}
	if failures != 3 {
		t.Errorf("expected 3 failure notices, got %d", failures)
	}
}

func TestFetchFX_FallbackOnError(t *testing.T) {
	s, _ := newTestScheduler(t, &collector.MockFetcher{})
	fx := s.fetchFX()
	if !fx.Fallback {
		t.Error("expected fallback flag when FX fetch fails")
	}
	if fx.Rate != 7.25 {
		t.Errorf("rate = %.4f, want configured fallback 7.25", fx.Rate)
	}
}

func TestFetchFX_LiveRate(t *testing.T) {
	s, _ := newTestScheduler(t, &collector.MockFetcher{FXRate: 7.18})
	fx := s.fetchFX()
	if fx.Fallback {
		t.Error("live rate must not be flagged as fallback")
	}
	if fx.Rate != 7.18 {
		t.Errorf("rate = %.4f, want 7.18", fx.Rate)
	}
}

func TestTrySend_PrefersRetryPath(t *testing.T) {
	s, _ := newTestScheduler(t, &collector.MockFetcher{})
	rn := &retryNotifier{}
	s.Telegram = rn

	s.trySend("hello")

	if len(rn.retried) != 1 || rn.retried[0] != "hello" {
		t.Fatalf("expected delivery through SendWithRetry, got retried=%v", rn.retried)
	}
	if len(rn.sent) != 0 {
		t.Errorf("plain Send should not be used when retry is available, got %v", rn.sent)
	}
}

func TestTrySend_PlainNotifierStillWorks(t *testing.T) {
	s, cn := newTestScheduler(t, &collector.MockFetcher{})
	s.trySend("hello")
	if len(cn.sent) != 1 || cn.sent[0] != "hello" {
		t.Fatalf("expected plain Send fallback, got %v", cn.sent)
	}
}

func TestRegisterAll(t *testing.T) {
	s, _ := newTestScheduler(t, &collector.MockFetcher{})
	if err := s.RegisterAll(); err != nil {
		t.Fatalf("default crons should register: %v", err)
	}
}
