// Package precise holds the decimal arithmetic used for every user-visible
// price and percentage. Binary floats round 2.345 down to 2.34; the trigger
// prices published by this tool must match hand calculation, so anything that
// reaches a display or a stored row goes through here first.
package precise

import "github.com/shopspring/decimal"

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// RoundHalfUp rounds v to places decimals with ties away from zero.
// The conversion goes through the shortest decimal representation of v,
// so RoundHalfUp(2.345, 2) is 2.35 even though float64(2.345) < 2.345.
func RoundHalfUp(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// CumReturn computes (end/base - 1) * 100 in decimal.
// ok is false when base is zero; the caller decides whether to skip the
// observation or fall back to float arithmetic.
func CumReturn(end, base decimal.Decimal) (float64, bool) {
	if base.IsZero() {
		return 0, false
	}
	f, _ := end.Div(base).Sub(one).Mul(hundred).Float64()
	return f, true
}

// PctChange is CumReturn for callers holding the two closes the other way
// around conceptually: the change from prev to cur, in percent.
func PctChange(cur, prev decimal.Decimal) (float64, bool) {
	return CumReturn(cur, prev)
}

// MaxBoards returns how many consecutive daily limit-up sessions, each
// multiplying price by limitRatio, fit inside roomPct without exceeding it.
// A step that lands exactly on the room still counts. Computed by exact
// decimal compounding rather than ln(ratio)/ln(limit), which loses the
// boundary case 1.10^2 == 1.21 to float noise.
func MaxBoards(roomPct, limitRatio float64) int {
	if roomPct <= 0 || limitRatio <= 1 {
		return 0
	}
	target := one.Add(decimal.NewFromFloat(roomPct).Div(hundred))
	step := decimal.NewFromFloat(limitRatio)
	n := 0
	for acc := step; acc.LessThanOrEqual(target); acc = acc.Mul(step) {
		n++
		if n >= 64 { // a 10% limit compounds past any real room long before this
			break
		}
	}
	return n
}
