package engine

import (
	"fmt"
	"strings"

	"DeviationSentinel/internal/model"
	"DeviationSentinel/internal/precise"
)

// Absent is the sentinel shown for labels with no matching analysis row.
const Absent = "-"

// Triggered is the sentinel rendered instead of numeric room once the
// deviation threshold has been reached.
const Triggered = "已触发"

// ExtractSummary reindexes one window's rows by label (T, T+1..T+predictDays)
// for the overview table. Pure projection: every field is formatted from an
// existing row or left as the Absent sentinel.
func ExtractSummary(rows []model.AnalysisRow, windowDays int, thresholdPct float64, predictDays int) *model.Summary {
	sum := &model.Summary{
		WindowDays:   windowDays,
		ThresholdPct: thresholdPct,
		TodayActual:  Absent,
		TodayDev:     Absent,
		Days:         make([]model.SummaryDay, predictDays),
	}
	for i := range sum.Days {
		sum.Days[i] = model.SummaryDay{
			Label:        fmt.Sprintf("T+%d", i+1),
			Date:         fmt.Sprintf("T+%d", i+1),
			TriggerPrice: Absent,
			RoomPct:      Absent,
			Boards:       Absent,
		}
	}

	for _, row := range rows {
		switch {
		case row.Offset == 0:
			sum.TodayActual = fmt.Sprintf("%.2f%%", precise.RoundHalfUp(row.ActualPct, 2))
			sum.TodayDev = fmt.Sprintf("%.2f%%", precise.RoundHalfUp(row.DeviationPct, 2))
		case row.Offset >= 1 && row.Offset <= predictDays:
			d := &sum.Days[row.Offset-1]
			d.Date = shortDate(row.TargetDate)
			d.TriggerPrice = fmt.Sprintf("%.2f", precise.RoundHalfUp(row.TriggerPrice, 2))
			if row.Triggered {
				d.RoomPct = Triggered
				d.Boards = "0"
			} else {
				d.RoomPct = fmt.Sprintf("%.2f%%", precise.RoundHalfUp(row.RoomPct, 2))
				d.Boards = fmt.Sprintf("%d", row.MaxBoards)
			}
		}
	}
	return sum
}

// shortDate strips the "(T+k)" suffix off a forecast label and compacts a
// raw YYYYMMDD date to MM-DD.
func shortDate(label string) string {
	if i := strings.Index(label, "("); i > 0 {
		return label[:i]
	}
	if len(label) == 8 && isDigits(label) {
		return label[4:6] + "-" + label[6:8]
	}
	return label
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
