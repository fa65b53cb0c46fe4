package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsAndValidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
watchlist:
  - code: "600372"
    name: "中航机载"
  - code: "002519"
    name: "银河电子"
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	if cfg.PredictDays != 3 {
		t.Errorf("predict_days default = %d", cfg.PredictDays)
	}
	if cfg.HistoryDays != 120 {
		t.Errorf("history_days default = %d", cfg.HistoryDays)
	}
	if len(cfg.Windows) != 2 || cfg.Windows[0].Days != 10 || cfg.Windows[1].ThresholdPct != 200.0 {
		t.Errorf("window defaults = %+v", cfg.Windows)
	}
	if !cfg.Realtime {
		t.Error("realtime should default to true")
	}
}

func TestValidate_Rejections(t *testing.T) {
	bad := []*Config{
		{},
		{Watchlist: []StockEntry{{Name: "missing code"}}, PredictDays: 3},
		{Watchlist: []StockEntry{{Code: "600372"}}, PredictDays: 0},
		{Watchlist: []StockEntry{{Code: "600372"}}, PredictDays: 3,
			Windows: []WindowSpec{{Days: 0, ThresholdPct: 100}}},
		{Watchlist: []StockEntry{{Code: "600372"}}, PredictDays: 3,
			MarketRules: []MarketRule{{Prefix: "6", IndexCode: "sh000002", LimitRatio: 1.0}}},
	}
	for i, cfg := range bad {
		if err := cfg.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PREDICT_DAYS", "5")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PredictDays != 5 {
		t.Errorf("predict_days override = %d", cfg.PredictDays)
	}
	if cfg.Database.SQLitePath != "/tmp/x.db" {
		t.Errorf("sqlite path override = %s", cfg.Database.SQLitePath)
	}
}
