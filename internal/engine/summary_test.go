package engine

import (
	"testing"

	"DeviationSentinel/internal/model"
)

func TestExtractSummary_ProjectsByLabel(t *testing.T) {
	rows := []model.AnalysisRow{
		{Offset: -1, Kind: model.KindHistorical, ActualPct: 1.0, DeviationPct: 3.0},
		{Offset: 0, Kind: model.KindToday, ActualPct: 2.345, DeviationPct: 12.5},
		{Offset: 1, Kind: model.KindForecast, TargetDate: "05-22(T+1)", TriggerPrice: 20.004, RoomPct: 21.0, MaxBoards: 2},
		{Offset: 2, Kind: model.KindForecast, TargetDate: "05-23(T+2)", TriggerPrice: 20.1, Triggered: true},
	}
	sum := ExtractSummary(rows, 10, 100.0, 3)

	if sum.TodayActual != "2.35%" {
		t.Errorf("today actual = %q, want 2.35%%", sum.TodayActual)
	}
	if sum.TodayDev != "12.50%" {
		t.Errorf("today deviation = %q, want 12.50%%", sum.TodayDev)
	}

	d1 := sum.Days[0]
	if d1.Date != "05-22" || d1.TriggerPrice != "20.00" || d1.RoomPct != "21.00%" || d1.Boards != "2" {
		t.Errorf("T+1 projection = %+v", d1)
	}

	d2 := sum.Days[1]
	if d2.RoomPct != Triggered {
		t.Errorf("triggered day room = %q, want sentinel", d2.RoomPct)
	}
	if d2.Boards != "0" {
		t.Errorf("triggered day boards = %q, want 0", d2.Boards)
	}

	// No T+3 row was produced: every field keeps the sentinel.
	d3 := sum.Days[2]
	if d3.TriggerPrice != Absent || d3.RoomPct != Absent || d3.Boards != Absent {
		t.Errorf("absent day should keep sentinels, got %+v", d3)
	}
	if d3.Label != "T+3" {
		t.Errorf("absent day label = %q", d3.Label)
	}
}

func TestExtractSummary_MissingTodayKeepsSentinels(t *testing.T) {
	rows := []model.AnalysisRow{
		{Offset: 1, Kind: model.KindForecast, TargetDate: "T+1", TriggerPrice: 15.0, RoomPct: 10.0, MaxBoards: 1},
	}
	sum := ExtractSummary(rows, 30, 200.0, 2)
	if sum.TodayActual != Absent || sum.TodayDev != Absent {
		t.Errorf("missing today row should keep sentinels, got %q / %q", sum.TodayActual, sum.TodayDev)
	}
	if sum.Days[0].Date != "T+1" {
		t.Errorf("synthetic label should pass through, got %q", sum.Days[0].Date)
	}
}
