package model

import "github.com/shopspring/decimal"

// PricePoint is one settled (or realtime-extended) trading session of a stock.
// Dates are YYYYMMDD strings throughout, matching the data sources.
type PricePoint struct {
	Date     string
	Close    decimal.Decimal
	PctChg   float64
	Realtime bool // true for the synthetic intraday extension row
	Degraded bool // close could not be parsed as an exact decimal
}

// IndexPoint is one trading session of a benchmark index.
type IndexPoint struct {
	Date     string
	Close    decimal.Decimal
	Degraded bool
}

// RealtimeQuote is the latest intraday price of a stock.
type RealtimeQuote struct {
	Date  string // YYYYMMDD
	Time  string // HH:MM
	Price decimal.Decimal
}

// AlignedPoint is one stock session joined with its benchmark close.
// IndexClose is forward-filled when the benchmark has no quote for that date.
type AlignedPoint struct {
	Date       string
	Close      decimal.Decimal
	PctChg     float64
	IndexClose decimal.Decimal
	Realtime   bool
	Degraded   bool
}

// AlignedSeries is sorted ascending by date with no duplicate dates.
type AlignedSeries []AlignedPoint
