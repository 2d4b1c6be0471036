package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"MarketCompass/internal/analyzer"
	"MarketCompass/internal/chart"
	"MarketCompass/internal/config"
	"MarketCompass/internal/ledger"
	"MarketCompass/internal/model"
	"MarketCompass/internal/notifier"
	"MarketCompass/internal/recorder"
	"MarketCompass/internal/valuation"
)

// photoSender is satisfied by channels that can carry chart images.
type photoSender interface {
	SendPhoto(caption string, png []byte) error
}

// retrySender is satisfied by channels with built-in backoff retry.
type retrySender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Analyzer *analyzer.Analyzer
	Config   *config.Config
	Telegram notifier.Notifier
	Bark     *notifier.BarkNotifier
	Recorder recorder.Recorder
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler. bark may be nil when no device key
// is configured.
func NewScheduler(ctx context.Context, an *analyzer.Analyzer, cfg *config.Config, tn notifier.Notifier, bark *notifier.BarkNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Analyzer: an,
		Config:   cfg,
		Telegram: tn,
		Bark:     bark,
		Recorder: rec,
		Ctx:      ctx,
	}
}

// RegisterAll registers the daily analysis and portfolio valuation tasks.
func (s *Scheduler) RegisterAll() error {
	if _, err := s.Cron.AddFunc(s.Config.Schedule.AnalysisCron, s.analysisTask); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	if _, err := s.Cron.AddFunc(s.Config.Schedule.PortfolioCron, s.portfolioTask); err != nil {
		return fmt.Errorf("register portfolio task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunAnalysisNow executes the analysis task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunAnalysisNow() { s.analysisTask() }

// RunPortfolioNow executes the portfolio task immediately.
func (s *Scheduler) RunPortfolioNow() { s.portfolioTask() }

// analysisTask walks the watchlist. One symbol failing does not stop the
// rest of the list.
func (s *Scheduler) analysisTask() {
	log.Println("[INFO] running watchlist analysis")
	period, err := model.ParsePeriod(s.Config.DefaultPeriod)
	if err != nil {
		log.Printf("[ERROR] bad default period: %v", err)
		return
	}

	for _, item := range s.Config.Watchlist {
		frame, sum, err := s.Analyzer.Analyze(item.Symbol, item.Name, period, analyzer.ProfileFor(item.Profile))
		if err != nil {
			log.Printf("[ERROR] analyze %s: %v", item.Symbol, err)
			s.trySend(notifier.FormatRunFailure("分析"+item.Symbol, err))
			continue
		}

		s.trySend(notifier.FormatAnalysisReport(sum))

		if s.Config.Charts.OutputDir != "" {
			if png, err := chart.RenderAnalysis(frame); err != nil {
				log.Printf("[WARN] render chart %s: %v", item.Symbol, err)
			} else {
				if path, err := chart.WriteFile(s.Config.Charts.OutputDir, item.Symbol+".png", png); err != nil {
					log.Printf("[WARN] save chart %s: %v", item.Symbol, err)
				} else {
					log.Printf("[INFO] chart saved: %s", path)
				}
				if ps, ok := s.Telegram.(photoSender); ok {
					if err := ps.SendPhoto(item.Symbol, png); err != nil {
						log.Printf("[WARN] send chart %s: %v", item.Symbol, err)
					}
				}
			}
		}

		last := frame.Len() - 1
		if err := s.Recorder.RecordAnalysis(&recorder.AnalysisSnapshot{
			Symbol:   sum.Symbol,
			Period:   string(period),
			Price:    sum.Price,
			MA200:    frame.MA200[last],
			Bias:     frame.Bias[last],
			Drawdown: frame.Drawdown[last],
			RSI:      frame.RSI[last],
			MACD:     frame.MACD[last],
			Signal:   frame.SignalLine[last],
			Trend:    sum.TrendLabel,
			Risk:     sum.RiskLabel,
			TakenAt:  time.Now(),
		}); err != nil {
			log.Printf("[ERROR] record analysis %s: %v", item.Symbol, err)
		}
	}
}

// portfolioTask values the ledger and pushes the daily report. A broken
// ledger or an unpriced book aborts with a failure notification; a failed
// FX fetch only degrades to the configured fallback rate.
func (s *Scheduler) portfolioTask() {
	log.Println("[INFO] running portfolio valuation")

	positions, err := ledger.Load(s.Config.Ledger.Path)
	if err != nil {
		log.Printf("[ERROR] load ledger: %v", err)
		s.trySend(notifier.FormatRunFailure("持仓估值", err))
		return
	}

	tickers := make([]string, 0, len(positions))
	seen := make(map[string]bool)
	for _, p := range positions {
		if !seen[p.Ticker] {
			seen[p.Ticker] = true
			tickers = append(tickers, p.Ticker)
		}
	}

	prices := s.Analyzer.Fetcher.FetchLatestPrices(tickers)
	fx := s.fetchFX()
	result := valuation.ValuePortfolio(positions, prices, fx, time.Now())
	report := notifier.FormatPortfolioReport(result)

	if s.Bark != nil {
		if err := s.Bark.PushWithRetry(s.Ctx, report, result.TotalProfitCNY, 3); err != nil {
			log.Printf("[ERROR] bark push: %v", err)
		}
	}
	s.trySend(report)

	if err := s.Recorder.RecordValuation(&recorder.ValuationRecord{
		TotalInvestedCNY: result.TotalInvestedCNY,
		TotalValueCNY:    result.TotalValueCNY,
		TotalProfitCNY:   result.TotalProfitCNY,
		ProfitRatePct:    result.TotalProfitRatePct,
		XIRRPct:          result.XIRRPct,
		XIRRConverged:    result.XIRRConverged,
		FXRate:           fx.Rate,
		FXFallback:       fx.Fallback,
		Symbols:          result.Symbols,
		TakenAt:          time.Now(),
	}); err != nil {
		log.Printf("[ERROR] record valuation: %v", err)
	}
}

// fetchFX returns the live USD/CNY rate, or the configured fallback when
// the quote cannot be fetched.
func (s *Scheduler) fetchFX() model.FXQuote {
	rate, err := s.Analyzer.Fetcher.FetchFXRate(s.Config.FX.Pair)
	if err != nil {
		log.Printf("[WARN] fetch FX rate: %v, using fallback %.4f", err, s.Config.FX.FallbackRate)
		return model.FXQuote{Pair: s.Config.FX.Pair, Rate: s.Config.FX.FallbackRate, Fallback: true}
	}
	return model.FXQuote{Pair: s.Config.FX.Pair, Rate: rate}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}

	switch fields[0] {
	case "/analyze", "分析":
		if len(fields) < 2 {
			return "用法: /analyze <代码> [周期]"
		}
		period, err := model.ParsePeriod(s.Config.DefaultPeriod)
		if err == nil && len(fields) >= 3 {
			period, err = model.ParsePeriod(fields[2])
		}
		if err != nil {
			return fmt.Sprintf("无效周期: %v", err)
		}
		symbol := fields[1]
		_, sum, err := s.Analyzer.Analyze(symbol, s.watchName(symbol), period, s.watchProfile(symbol))
		if err != nil {
			return notifier.FormatRunFailure("分析"+symbol, err)
		}
		return notifier.FormatAnalysisReport(sum)
	case "/portfolio", "查看持仓":
		s.portfolioTask()
		return ""
	case "/help", "帮助":
		return "可用命令:\n• /analyze <代码> [周期]\n• /portfolio 查看持仓估值\n• /help 查看帮助"
	default:
		return "未知命令，发送 /help 查看可用命令"
	}
}

// watchName returns the configured display name for a symbol, or the
// symbol itself when it is not on the watchlist.
func (s *Scheduler) watchName(symbol string) string {
	for _, item := range s.Config.Watchlist {
		if item.Symbol == symbol {
			return item.Name
		}
	}
	return symbol
}

func (s *Scheduler) watchProfile(symbol string) analyzer.Profile {
	for _, item := range s.Config.Watchlist {
		if item.Symbol == symbol {
			return analyzer.ProfileFor(item.Profile)
		}
	}
	return analyzer.DefaultProfile
}

func (s *Scheduler) trySend(text string) {
	if rs, ok := s.Telegram.(retrySender); ok {
		if err := rs.SendWithRetry(s.Ctx, text, 3); err != nil {
			log.Printf("[ERROR] send notification: %v", err)
		}
		return
	}
	if err := s.Telegram.Send(text); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
