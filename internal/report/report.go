// Package report renders analysis output as aligned console tables, the
// counterpart of the image tables the interactive tooling draws.
package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"DeviationSentinel/internal/engine"
	"DeviationSentinel/internal/model"
	"DeviationSentinel/internal/precise"
)

// Footnote states the flat-price assumption behind the forecast rows.
const Footnote = "备注: 未来允许最大涨幅基于 [假设当日股价不变(0%)且指数不变(0%)] 推算得出，仅供参考。"

// FormatAnalysisTable renders one window's rows as the per-stock table.
func FormatAnalysisTable(name, code, lastDate string, windowDays int, thresholdPct float64, rows []model.AnalysisRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(%s)异动分析(%s) - %d日(%.0f%%)\n", name, code, lastDate, windowDays, thresholdPct)

	w := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "日期\t类型\t基准日期\t实际涨幅\t区间偏离\t剩余空间\t触线价格\t允许涨幅\t允许连板")
	for _, row := range rows {
		leftSpace := engine.Triggered
		roomPct := "0.00%"
		boards := "0"
		if !row.Triggered {
			leftSpace = fmt.Sprintf("%.2f%%", precise.RoundHalfUp(row.LeftSpace, 2))
			roomPct = fmt.Sprintf("%.2f%%", precise.RoundHalfUp(row.RoomPct, 2))
			boards = fmt.Sprintf("%d", row.MaxBoards)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f%%\t%.2f%%\t%s\t%.2f\t%s\t%s\n",
			row.TargetDate, row.Kind, row.BaseDate,
			precise.RoundHalfUp(row.ActualPct, 2),
			precise.RoundHalfUp(row.DeviationPct, 2),
			leftSpace,
			precise.RoundHalfUp(row.TriggerPrice, 2),
			roomPct, boards)
	}
	w.Flush()
	return b.String()
}

// FormatOverview renders the multi-stock summary table. Day headers come
// from the first summary's resolved dates.
func FormatOverview(title string, sums []*model.Summary) string {
	if len(sums) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s - 异动分析总览\n", title)

	w := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)
	header := "名称\t现价\t当前偏离"
	for _, d := range sums[0].Days {
		header += fmt.Sprintf("\t%s触线价\t%s允许涨幅\t%s连板", d.Date, d.Date, d.Date)
	}
	fmt.Fprintln(w, header)

	for _, s := range sums {
		line := fmt.Sprintf("%s\t%s\t%s", s.Name, s.Price, s.TodayDev)
		for _, d := range s.Days {
			line += fmt.Sprintf("\t%s\t%s\t%s", d.TriggerPrice, d.RoomPct, d.Boards)
		}
		fmt.Fprintln(w, line)
	}
	w.Flush()

	b.WriteString(Footnote)
	b.WriteString("\n")
	return b.String()
}
