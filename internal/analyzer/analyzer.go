// Package analyzer runs the full per-stock pipeline: market-rule lookup,
// history fetch, realtime extension, alignment, future dates, one engine run
// per configured window, and the summary projections. It owns the batch loop
// over the watchlist; the engine stays pure underneath it.
package analyzer

import (
	"fmt"
	"log"
	"time"

	"DeviationSentinel/internal/calendar"
	"DeviationSentinel/internal/collector"
	"DeviationSentinel/internal/config"
	"DeviationSentinel/internal/engine"
	"DeviationSentinel/internal/market"
	"DeviationSentinel/internal/model"
	"DeviationSentinel/internal/precise"
	"DeviationSentinel/internal/series"
)

// WindowResult is one window's rows plus their summary projection.
type WindowResult struct {
	WindowDays   int
	ThresholdPct float64
	Rows         []model.AnalysisRow
	Summary      *model.Summary
}

// StockResult is the complete analysis of one watchlist entry.
type StockResult struct {
	Code     string
	Name     string
	Rule     market.Rule
	LastDate string
	Price    string
	Windows  []WindowResult
}

// Analyzer wires the collaborators around the engine.
type Analyzer struct {
	Fetcher  collector.Fetcher
	Calendar calendar.Provider // nil means weekday fallback only
	Rules    *market.RuleSet
	Cfg      *config.Config

	// Pause between watchlist entries so the data source isn't hammered.
	BatchDelay time.Duration
}

// New creates an Analyzer from configuration.
func New(fetcher collector.Fetcher, cal calendar.Provider, rules *market.RuleSet, cfg *config.Config) *Analyzer {
	return &Analyzer{
		Fetcher:    fetcher,
		Calendar:   cal,
		Rules:      rules,
		Cfg:        cfg,
		BatchDelay: time.Second,
	}
}

// AnalyzeStock runs every configured window for one instrument.
func (a *Analyzer) AnalyzeStock(code, name string) (*StockResult, error) {
	rule := a.Rules.Resolve(code)
	end := time.Now().Format("20060102")
	start := time.Now().AddDate(0, 0, -a.Cfg.HistoryDays).Format("20060102")

	stock, err := a.Fetcher.FetchDailyHistory(code, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch history %s: %w", code, err)
	}

	if a.Cfg.Realtime {
		quote, err := a.Fetcher.FetchRealtimeQuote(code)
		if err != nil {
			log.Printf("[WARN] realtime quote %s unavailable: %v", code, err)
		} else {
			stock = series.ExtendRealtime(stock, quote)
		}
	}

	index, err := a.Fetcher.FetchIndexDaily(rule.IndexCode)
	if err != nil {
		return nil, fmt.Errorf("fetch index %s: %w", rule.IndexCode, err)
	}

	aligned, err := series.Align(stock, index)
	if err != nil {
		return nil, fmt.Errorf("align %s vs %s: %w", code, rule.IndexCode, err)
	}

	last := aligned[len(aligned)-1]
	futureDates := calendar.FutureDates(a.Calendar, last.Date, a.Cfg.PredictDays)

	priceF, _ := last.Close.Float64()
	result := &StockResult{
		Code:     code,
		Name:     name,
		Rule:     rule,
		LastDate: last.Date,
		Price:    fmt.Sprintf("%.2f", precise.RoundHalfUp(priceF, 2)),
	}

	for _, w := range a.Cfg.Windows {
		rows := engine.Analyze(aligned, futureDates, w.Days, w.ThresholdPct, rule.LimitRatio)
		for _, row := range rows {
			if row.Degraded {
				log.Printf("[WARN] %s %dd offset %+d computed with degraded precision", code, w.Days, row.Offset)
			}
		}
		sum := engine.ExtractSummary(rows, w.Days, w.ThresholdPct, a.Cfg.PredictDays)
		sum.Code = code
		sum.Name = name
		sum.Price = result.Price
		result.Windows = append(result.Windows, WindowResult{
			WindowDays:   w.Days,
			ThresholdPct: w.ThresholdPct,
			Rows:         rows,
			Summary:      sum,
		})
	}
	return result, nil
}

// RunBatch analyzes the whole watchlist, tolerating per-stock failures.
func (a *Analyzer) RunBatch() []*StockResult {
	results := make([]*StockResult, 0, len(a.Cfg.Watchlist))
	for i, entry := range a.Cfg.Watchlist {
		log.Printf("[INFO] analyzing %s %s (%d/%d)", entry.Code, entry.Name, i+1, len(a.Cfg.Watchlist))
		res, err := a.AnalyzeStock(entry.Code, entry.Name)
		if err != nil {
			log.Printf("[ERROR] %s %s: %v", entry.Code, entry.Name, err)
			continue
		}
		results = append(results, res)
		if a.BatchDelay > 0 && i < len(a.Cfg.Watchlist)-1 {
			time.Sleep(a.BatchDelay)
		}
	}
	return results
}

// CombineStrictest picks, per stock, the window whose next-day room is
// smaller — an already-triggered window counts as the smallest possible.
// This is the combined overview of the interactive variant.
func CombineStrictest(results []*StockResult) []*model.Summary {
	combined := make([]*model.Summary, 0, len(results))
	for _, res := range results {
		var best *model.Summary
		bestRoom := 0.0
		for i := range res.Windows {
			w := &res.Windows[i]
			room := nextDayRoom(w.Rows)
			if best == nil || room < bestRoom {
				best = w.Summary
				bestRoom = room
			}
		}
		if best != nil {
			combined = append(combined, best)
		}
	}
	return combined
}

// nextDayRoom ranks a window by its T+1 row: triggered sorts below any
// numeric room, a missing row above.
func nextDayRoom(rows []model.AnalysisRow) float64 {
	for _, row := range rows {
		if row.Offset == 1 {
			if row.Triggered {
				return -9999
			}
			return row.RoomPct
		}
	}
	return 9999
}
