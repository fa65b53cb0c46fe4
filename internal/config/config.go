package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// StockEntry is one watchlist instrument.
type StockEntry struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// WindowSpec is one analysis window: cumulative deviation over Days sessions
// measured against ThresholdPct.
type WindowSpec struct {
	Days         int     `yaml:"days"`
	ThresholdPct float64 `yaml:"threshold_pct"`
}

// MarketRule overrides the built-in code-prefix classification.
type MarketRule struct {
	Prefix     string  `yaml:"prefix"`
	IndexCode  string  `yaml:"index_code"`
	IndexName  string  `yaml:"index_name"`
	LimitRatio float64 `yaml:"limit_ratio"`
}

// Config holds all application configuration.
type Config struct {
	Watchlist   []StockEntry `yaml:"watchlist"`
	PredictDays int          `yaml:"predict_days"`
	HistoryDays int          `yaml:"history_days"`
	Windows     []WindowSpec `yaml:"windows"`
	Realtime    bool         `yaml:"realtime"`
	MarketRules []MarketRule `yaml:"market_rules"`
	Calendar    struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"calendar"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{Realtime: true}

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
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("CALENDAR_BASE_URL"); v != "" {
		cfg.Calendar.BaseURL = v
	}
	if v := os.Getenv("PREDICT_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PredictDays = n
		}
	}

	// Defaults
	if cfg.PredictDays == 0 {
		cfg.PredictDays = 3
	}
	if cfg.HistoryDays == 0 {
		cfg.HistoryDays = 120
	}
	if len(cfg.Windows) == 0 {
		cfg.Windows = []WindowSpec{
			{Days: 10, ThresholdPct: 100.0},
			{Days: 30, ThresholdPct: 200.0},
		}
	}
	if cfg.Schedule.DailyCron == "" {
		// After the mainland close, weekdays
		cfg.Schedule.DailyCron = "0 10 15 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/deviation_sentinel.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.Watchlist) == 0 {
		return fmt.Errorf("watchlist must not be empty")
	}
	for _, s := range c.Watchlist {
		if s.Code == "" {
			return fmt.Errorf("watchlist entry missing code")
		}
	}
	if c.PredictDays <= 0 {
		return fmt.Errorf("predict_days must be positive")
	}
	for _, w := range c.Windows {
		if w.Days <= 0 {
			return fmt.Errorf("window days must be positive")
		}
		if w.ThresholdPct <= 0 {
			return fmt.Errorf("window threshold_pct must be positive")
		}
	}
	for _, r := range c.MarketRules {
		if r.Prefix == "" || r.IndexCode == "" {
			return fmt.Errorf("market rule needs prefix and index_code")
		}
		if r.LimitRatio <= 1 {
			return fmt.Errorf("market rule limit_ratio must exceed 1")
		}
	}
	return nil
}
