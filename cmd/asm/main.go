package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"DeviationSentinel/internal/analyzer"
	"DeviationSentinel/internal/calendar"
	"DeviationSentinel/internal/collector"
	"DeviationSentinel/internal/config"
	"DeviationSentinel/internal/market"
	"DeviationSentinel/internal/recorder"
	"DeviationSentinel/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] DeviationSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher = collector.NewEastmoneyFetcher(cfg.Proxy)
	if os.Getenv("MOCK_DATA") == "true" {
		fetcher = &collector.MockFetcher{}
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init trading calendar (nil provider means weekday fallback)
	var cal calendar.Provider
	if cfg.Calendar.BaseURL != "" {
		cal = calendar.NewHTTPProvider(cfg.Calendar.BaseURL, cfg.Proxy)
		log.Printf("[INFO] trading calendar: %s", cal.Name())
	} else {
		log.Println("[INFO] trading calendar: weekday fallback")
	}

	// Market rules from config, built-in defaults otherwise
	var rules []market.Rule
	for _, r := range cfg.MarketRules {
		rules = append(rules, market.Rule{
			Prefix:     r.Prefix,
			IndexCode:  r.IndexCode,
			IndexName:  r.IndexName,
			LimitRatio: r.LimitRatio,
		})
	}
	ruleSet := market.NewRuleSet(rules)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init analyzer and scheduler
	ana := analyzer.New(fetcher, cal, ruleSet, cfg)
	sched := scheduler.NewScheduler(ctx, ana, rec)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing batch now")
		go sched.RunNow()
	}

	log.Println("[INFO] DeviationSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] DeviationSentinel stopped")
}
