// Package series builds the aligned stock/benchmark series the engine runs on.
package series

import (
	"errors"
	"log"
	"sort"

	"DeviationSentinel/internal/model"
	"DeviationSentinel/internal/precise"
)

// MinHistory is the minimum number of aligned sessions required for analysis.
const MinHistory = 30

// ErrInsufficientHistory means fewer than MinHistory aligned sessions were
// available. Analysis is refused rather than attempted on a thin series.
var ErrInsufficientHistory = errors.New("insufficient history: fewer than 30 aligned sessions")

// Align performs a stock-preserving join of the two series on date.
// A stock date with no benchmark quote gets the most recent earlier index
// close forward-filled (the index is modeled as flat on such dates, not as
// zero). Stock dates before the first index quote are dropped.
func Align(stock []model.PricePoint, index []model.IndexPoint) (model.AlignedSeries, error) {
	st := make([]model.PricePoint, len(stock))
	copy(st, stock)
	sort.SliceStable(st, func(i, j int) bool { return st[i].Date < st[j].Date })

	ix := make([]model.IndexPoint, len(index))
	copy(ix, index)
	sort.SliceStable(ix, func(i, j int) bool { return ix[i].Date < ix[j].Date })

	out := make(model.AlignedSeries, 0, len(st))
	j := 0
	var lastIndex *model.IndexPoint
	for _, p := range st {
		if len(out) > 0 && out[len(out)-1].Date == p.Date {
			continue // duplicate session, keep the first occurrence
		}
		for j < len(ix) && ix[j].Date <= p.Date {
			lastIndex = &ix[j]
			j++
		}
		if lastIndex == nil {
			log.Printf("[WARN] no benchmark quote on or before %s, dropping session", p.Date)
			continue
		}
		filled := lastIndex.Date != p.Date
		if filled {
			log.Printf("[WARN] benchmark missing on %s, forward-filling close from %s", p.Date, lastIndex.Date)
		}
		out = append(out, model.AlignedPoint{
			Date:       p.Date,
			Close:      p.Close,
			PctChg:     p.PctChg,
			IndexClose: lastIndex.Close,
			Realtime:   p.Realtime,
			Degraded:   p.Degraded || lastIndex.Degraded,
		})
	}

	if len(out) < MinHistory {
		return nil, ErrInsufficientHistory
	}
	return out, nil
}

// ExtendRealtime appends one synthetic not-yet-settled session when the quote
// is dated after the last settled session. The extension participates in
// alignment and analysis like a normal session; callers wanting pure
// end-of-day analysis simply skip this step.
func ExtendRealtime(stock []model.PricePoint, quote *model.RealtimeQuote) []model.PricePoint {
	if quote == nil || quote.Date == "" {
		return stock
	}
	if len(stock) > 0 && quote.Date <= stock[len(stock)-1].Date {
		return stock
	}
	var pct float64
	if len(stock) > 0 {
		if v, ok := precise.PctChange(quote.Price, stock[len(stock)-1].Close); ok {
			pct = v
		}
	}
	log.Printf("[INFO] realtime extension %s %s price=%s chg=%.2f%%", quote.Date, quote.Time, quote.Price, pct)
	return append(stock, model.PricePoint{
		Date:     quote.Date,
		Close:    quote.Price,
		PctChg:   pct,
		Realtime: true,
	})
}
