package collector

import "DeviationSentinel/internal/model"

// Fetcher defines the interface for fetching market data.
// Dates are YYYYMMDD strings; histories come back sorted ascending.
type Fetcher interface {
	FetchDailyHistory(code, start, end string) ([]model.PricePoint, error)
	FetchIndexDaily(indexCode string) ([]model.IndexPoint, error)
	FetchRealtimeQuote(code string) (*model.RealtimeQuote, error)
	Name() string
}
