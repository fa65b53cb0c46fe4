// Package engine computes severe-deviation analysis rows: cumulative excess
// return of a stock over its benchmark across a rolling window, the trigger
// decision against a threshold, the closing price that would exactly reach
// the threshold, and how many consecutive limit-up sessions fit in the
// remaining room. It is a pure function over an aligned in-memory series and
// is safe to call concurrently for different series.
package engine

import (
	"fmt"
	"time"

	"DeviationSentinel/internal/model"
	"DeviationSentinel/internal/precise"
)

// Analyze evaluates offsets -2..len(futureDates) over the aligned series:
// two trailing historical sessions, the latest session, and one row per
// forecast date. Offsets whose target or window base falls before the start
// of the series are skipped, not zero-filled. Forecast rows freeze both the
// stock and the benchmark at their latest closes: they answer how much room
// remains, not what will happen.
func Analyze(series model.AlignedSeries, futureDates []string, windowDays int, thresholdPct, limitRatio float64) []model.AnalysisRow {
	if len(series) == 0 || windowDays <= 0 {
		return nil
	}

	curIdx := len(series) - 1
	cur := series[curIdx]
	rows := make([]model.AnalysisRow, 0, len(futureDates)+3)

	for offset := -2; offset <= len(futureDates); offset++ {
		var (
			kind       model.RowKind
			targetDate string
			pEnd, iEnd = cur.Close, cur.IndexClose
			pPrev      = cur.Close
			actualPct  float64
			baseIdx    int
			degraded   bool
		)

		if offset <= 0 {
			kind = model.KindToday
			if offset < 0 {
				kind = model.KindHistorical
			}
			targetIdx := curIdx + offset
			if targetIdx < 0 {
				continue // history does not extend that far back
			}
			target := series[targetIdx]
			targetDate = target.Date
			pEnd, iEnd = target.Close, target.IndexClose
			actualPct = target.PctChg
			if targetIdx > 0 {
				pPrev = series[targetIdx-1].Close
			} else {
				pPrev = target.Close
			}
			baseIdx = targetIdx - windowDays
			degraded = target.Degraded
		} else {
			kind = model.KindForecast
			targetDate = forecastLabel(futureDates[offset-1], offset)
			actualPct = 0
			baseIdx = curIdx + offset - windowDays
			degraded = cur.Degraded
		}

		if baseIdx < 0 || baseIdx > curIdx {
			// Window does not reach back far enough, or the base session for
			// a far forecast offset has not traded yet. Skip the one offset.
			continue
		}
		base := series[baseIdx]
		degraded = degraded || base.Degraded

		stockCum, okS := precise.CumReturn(pEnd, base.Close)
		indexCum, okI := precise.CumReturn(iEnd, base.IndexClose)
		if !okS || !okI {
			// Zero base close or index close: the observation is unusable,
			// skip this one offset rather than aborting the whole analysis.
			continue
		}
		deviation := stockCum - indexCum

		triggered := abs(deviation) >= thresholdPct

		// Inverse solve: the stock cumulative return that lands the deviation
		// exactly on the threshold, given what the index has done. The result
		// is intentionally not rounded to a price tick here; only the value
		// fed into RoomPct is rounded, so the displayed room matches what a
		// user hand-computes from the rounded trigger price.
		targetStockCum := thresholdPct + indexCum
		baseF, _ := base.Close.Float64()
		triggerPrice := baseF * (1 + targetStockCum/100)

		leftSpace := thresholdPct - deviation

		var roomPct float64
		if prevF, _ := pPrev.Float64(); prevF > 0 {
			roomPct = (precise.RoundHalfUp(triggerPrice, 2)/prevF - 1) * 100
		}

		maxBoards := precise.MaxBoards(roomPct, limitRatio)
		if triggered {
			roomPct = 0
			maxBoards = 0
		}

		rows = append(rows, model.AnalysisRow{
			Offset:       offset,
			Kind:         kind,
			TargetDate:   targetDate,
			BaseDate:     base.Date,
			ActualPct:    actualPct,
			DeviationPct: deviation,
			Triggered:    triggered,
			TriggerPrice: triggerPrice,
			LeftSpace:    leftSpace,
			RoomPct:      roomPct,
			MaxBoards:    maxBoards,
			Degraded:     degraded,
		})
	}
	return rows
}

// forecastLabel renders "MM-DD(T+k)" when the calendar resolved a real date
// and keeps the synthetic "T+k" label otherwise.
func forecastLabel(date string, offset int) string {
	if t, err := time.Parse("20060102", date); err == nil {
		return fmt.Sprintf("%s(T+%d)", t.Format("01-02"), offset)
	}
	if date == fmt.Sprintf("T+%d", offset) {
		return date
	}
	return fmt.Sprintf("%s(T+%d)", date, offset)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
