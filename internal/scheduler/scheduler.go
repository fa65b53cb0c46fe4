package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"DeviationSentinel/internal/analyzer"
	"DeviationSentinel/internal/model"
	"DeviationSentinel/internal/recorder"
	"DeviationSentinel/internal/report"
)

// Scheduler runs the watchlist analysis on a cron schedule.
type Scheduler struct {
	Cron     *cron.Cron
	Analyzer *analyzer.Analyzer
	Recorder recorder.Recorder
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, a *analyzer.Analyzer, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Analyzer: a,
		Recorder: rec,
		Ctx:      ctx,
	}
}

// Register adds the daily batch task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyBatch); err != nil {
		return fmt.Errorf("register daily task: %w", err)
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

// RunNow executes the batch immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyBatch()
}

func (s *Scheduler) dailyBatch() {
	if s.Ctx != nil && s.Ctx.Err() != nil {
		return // shutting down
	}
	log.Println("[INFO] running watchlist analysis")
	results := s.Analyzer.RunBatch()
	if len(results) == 0 {
		log.Println("[WARN] batch produced no results")
		return
	}

	for _, res := range results {
		for _, w := range res.Windows {
			fmt.Println(report.FormatAnalysisTable(res.Name, res.Code, res.LastDate, w.WindowDays, w.ThresholdPct, w.Rows))

			if err := s.Recorder.RecordWindow(&recorder.WindowRecord{
				Code:         res.Code,
				Name:         res.Name,
				WindowDays:   w.WindowDays,
				ThresholdPct: w.ThresholdPct,
				Rows:         w.Rows,
			}); err != nil {
				log.Printf("[ERROR] record window %s %dd: %v", res.Code, w.WindowDays, err)
			}
			if err := s.Recorder.RecordSummary(w.Summary); err != nil {
				log.Printf("[ERROR] record summary %s %dd: %v", res.Code, w.WindowDays, err)
			}
		}
	}

	// One overview per configured window, then the combined strictest view.
	var windowOrder []int
	sumsByWindow := make(map[int][]*model.Summary)
	for _, res := range results {
		for _, w := range res.Windows {
			if _, seen := sumsByWindow[w.WindowDays]; !seen {
				windowOrder = append(windowOrder, w.WindowDays)
			}
			sumsByWindow[w.WindowDays] = append(sumsByWindow[w.WindowDays], w.Summary)
		}
	}
	for _, days := range windowOrder {
		sums := sumsByWindow[days]
		title := fmt.Sprintf("%d日(%.0f%%)", days, sums[0].ThresholdPct)
		fmt.Println(report.FormatOverview(title, sums))
	}

	if combined := analyzer.CombineStrictest(results); len(combined) > 0 {
		fmt.Println(report.FormatOverview("取T+1空间极小值", combined))
	}
	log.Println("[INFO] watchlist analysis complete")
}
