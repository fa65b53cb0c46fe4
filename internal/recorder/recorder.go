package recorder

import "DeviationSentinel/internal/model"

// WindowRecord holds one window's engine output for a single stock run.
type WindowRecord struct {
	Code         string
	Name         string
	WindowDays   int
	ThresholdPct float64
	Rows         []model.AnalysisRow
}

// Recorder persists analysis output for later inspection.
type Recorder interface {
	RecordWindow(rec *WindowRecord) error
	RecordSummary(sum *model.Summary) error
	Close() error
}
