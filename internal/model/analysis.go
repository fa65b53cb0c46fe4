package model

// RowKind classifies an analysis row relative to the latest session.
type RowKind string

const (
	KindHistorical RowKind = "历史"
	KindToday      RowKind = "今日"
	KindForecast   RowKind = "预测"
)

// AnalysisRow is one offset of the deviation analysis.
// Offset < 0 is history, 0 is the latest session, > 0 is a forecast day.
type AnalysisRow struct {
	Offset       int
	Kind         RowKind
	TargetDate   string // YYYYMMDD, or "MM-DD(T+k)" / "T+k" for forecast rows
	BaseDate     string
	ActualPct    float64 // realized single-day change, 0 for forecast rows
	DeviationPct float64 // stock cumulative return minus index cumulative return
	Triggered    bool
	TriggerPrice float64 // close that puts the deviation exactly on the threshold
	LeftSpace    float64 // threshold minus deviation; display shows 已触发 when triggered
	RoomPct      float64 // move from previous close to the trigger price, 0 when triggered
	MaxBoards    int     // consecutive limit-up sessions that fit in RoomPct, 0 when triggered
	Degraded     bool    // a decimal conversion failed somewhere on the way here
}

// SummaryDay projects one forecast day for the overview table.
type SummaryDay struct {
	Label        string // "T+1" ...
	Date         string // "MM-DD" or the synthetic label
	TriggerPrice string
	RoomPct      string
	Boards       string
}

// Summary reindexes one window's analysis rows by label for display.
// Absent rows keep the "-" sentinel in every field.
type Summary struct {
	Code         string
	Name         string
	Price        string
	WindowDays   int
	ThresholdPct float64
	TodayActual  string
	TodayDev     string
	Days         []SummaryDay
}
