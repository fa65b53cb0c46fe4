package report

import (
	"strings"
	"testing"

	"DeviationSentinel/internal/engine"
	"DeviationSentinel/internal/model"
)

func TestFormatAnalysisTable(t *testing.T) {
	rows := []model.AnalysisRow{
		{Offset: 0, Kind: model.KindToday, TargetDate: "20240521", BaseDate: "20240507",
			ActualPct: 1.234, DeviationPct: 12.345, LeftSpace: 87.655, TriggerPrice: 20.004, RoomPct: 95.5, MaxBoards: 7},
		{Offset: 1, Kind: model.KindForecast, TargetDate: "05-22(T+1)", BaseDate: "20240508",
			DeviationPct: 150.0, Triggered: true, TriggerPrice: 21.0},
	}
	out := FormatAnalysisTable("中航机载", "600372", "20240521", 10, 100.0, rows)

	for _, want := range []string{
		"中航机载(600372)异动分析(20240521) - 10日(100%)",
		"日期", "允许连板",
		"20240521", "今日", "1.23%", "12.35%", "87.66%", "20.00",
		"05-22(T+1)", "预测", engine.Triggered,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}

	// Triggered rows render zeroed room and boards, never numbers.
	lines := strings.Split(out, "\n")
	var forecastLine string
	for _, l := range lines {
		if strings.Contains(l, "05-22(T+1)") {
			forecastLine = l
		}
	}
	if !strings.Contains(forecastLine, "0.00%") {
		t.Errorf("triggered row should render 0.00%% room: %q", forecastLine)
	}
}

func TestFormatOverview(t *testing.T) {
	sums := []*model.Summary{
		{
			Name: "中航机载", Price: "10.00", TodayDev: "12.35%",
			WindowDays: 10, ThresholdPct: 100.0,
			Days: []model.SummaryDay{
				{Label: "T+1", Date: "05-22", TriggerPrice: "20.00", RoomPct: "95.50%", Boards: "7"},
				{Label: "T+2", Date: "05-23", TriggerPrice: "-", RoomPct: "-", Boards: "-"},
			},
		},
	}
	out := FormatOverview("10日(100%)", sums)

	for _, want := range []string{
		"10日(100%) - 异动分析总览",
		"05-22触线价", "05-23允许涨幅",
		"中航机载", "95.50%", "7",
		Footnote,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("overview missing %q:\n%s", want, out)
		}
	}

	if FormatOverview("空", nil) != "" {
		t.Error("empty summary list should render nothing")
	}
}
