package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"MarketCompass/internal/analyzer"
	"MarketCompass/internal/model"
)

// WatchItem is one asset on the daily analysis watchlist.
type WatchItem struct {
	Symbol  string `yaml:"symbol"`
	Name    string `yaml:"name"`
	Profile string `yaml:"profile"`
}

// Config holds all application configuration.
type Config struct {
	Watchlist     []WatchItem `yaml:"watchlist"`
	DefaultPeriod string      `yaml:"default_period"`
	Ledger        struct {
		Path string `yaml:"path"`
	} `yaml:"ledger"`
	FX struct {
		Pair         string  `yaml:"pair"`
		FallbackRate float64 `yaml:"fallback_rate"`
	} `yaml:"fx"`
	Bark struct {
		DeviceKey string `yaml:"device_key"`
	} `yaml:"bark"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		AnalysisCron  string `yaml:"analysis_cron"`
		PortfolioCron string `yaml:"portfolio_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Charts struct {
		OutputDir string `yaml:"output_dir"`
	} `yaml:"charts"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("BARK_DEVICE_KEY"); v != "" {
		cfg.Bark.DeviceKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LEDGER_PATH"); v != "" {
		cfg.Ledger.Path = v
	}
	if v := os.Getenv("CRON_ANALYSIS"); v != "" {
		cfg.Schedule.AnalysisCron = v
	}
	if v := os.Getenv("CRON_PORTFOLIO"); v != "" {
		cfg.Schedule.PortfolioCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("FX_FALLBACK_RATE"); v != "" {
		var rate float64
		if _, err := fmt.Sscanf(v, "%f", &rate); err == nil {
			cfg.FX.FallbackRate = rate
		}
	}

	// Defaults
	if len(cfg.Watchlist) == 0 {
		cfg.Watchlist = []WatchItem{
			{Symbol: "^GSPC", Name: "标普500", Profile: "sp500"},
			{Symbol: "^NDX", Name: "纳斯达克100", Profile: "nasdaq"},
			{Symbol: "BTC-USD", Name: "比特币", Profile: "btc"},
			{Symbol: "ETH-USD", Name: "以太坊", Profile: "eth"},
		}
	}
	if cfg.DefaultPeriod == "" {
		cfg.DefaultPeriod = "5y"
	}
	if cfg.Ledger.Path == "" {
		cfg.Ledger.Path = "data/my_ledger.csv"
	}
	if cfg.FX.Pair == "" {
		cfg.FX.Pair = "CNY=X"
	}
	if cfg.FX.FallbackRate == 0 {
		cfg.FX.FallbackRate = 7.25
	}
	if cfg.Schedule.AnalysisCron == "" {
		cfg.Schedule.AnalysisCron = "0 0 8 * * *"
	}
	if cfg.Schedule.PortfolioCron == "" {
		cfg.Schedule.PortfolioCron = "0 30 8 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/market_compass.db"
	}
	if cfg.Charts.OutputDir == "" {
		cfg.Charts.OutputDir = "data/charts"
	}

	return cfg, nil
}

// Validate checks the watchlist, period and profile keys. Notification
// channels are optional; missing ones degrade to local logging.
func (c *Config) Validate() error {
	if len(c.Watchlist) == 0 {
		return fmt.Errorf("watchlist must not be empty")
	}
	for _, item := range c.Watchlist {
		if item.Symbol == "" {
			return fmt.Errorf("watchlist entries need a symbol")
		}
		if item.Profile != "" && !analyzer.KnownProfile(item.Profile) {
			return fmt.Errorf("unknown profile %q for %s", item.Profile, item.Symbol)
		}
	}
	if _, err := model.ParsePeriod(c.DefaultPeriod); err != nil {
		return fmt.Errorf("default_period: %w", err)
	}
	if c.FX.FallbackRate <= 0 {
		return fmt.Errorf("fx.fallback_rate must be positive")
	}
	return nil
}
