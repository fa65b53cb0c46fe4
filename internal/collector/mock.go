package collector

import (
	"time"

	"github.com/shopspring/decimal"

	"DeviationSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Stock    []model.PricePoint
	Index    []model.IndexPoint
	Quote    *model.RealtimeQuote
	QuoteErr error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyHistory(code, start, end string) ([]model.PricePoint, error) {
	if m.Stock != nil {
		return m.Stock, nil
	}
	return GenerateFlatHistory("20240101", 40, 10.0), nil
}

func (m *MockFetcher) FetchIndexDaily(indexCode string) ([]model.IndexPoint, error) {
	if m.Index != nil {
		return m.Index, nil
	}
	points := GenerateFlatHistory("20240101", 40, 2000.0)
	index := make([]model.IndexPoint, len(points))
	for i, p := range points {
		index[i] = model.IndexPoint{Date: p.Date, Close: p.Close}
	}
	return index, nil
}

func (m *MockFetcher) FetchRealtimeQuote(code string) (*model.RealtimeQuote, error) {
	if m.QuoteErr != nil {
		return nil, m.QuoteErr
	}
	return m.Quote, nil
}

// GenerateFlatHistory builds count consecutive weekday sessions at a
// constant close, starting at the given YYYYMMDD date.
func GenerateFlatHistory(start string, count int, price float64) []model.PricePoint {
	cur, err := time.Parse("20060102", start)
	if err != nil {
		cur = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	points := make([]model.PricePoint, 0, count)
	for len(points) < count {
		if wd := cur.Weekday(); wd != time.Saturday && wd != time.Sunday {
			points = append(points, model.PricePoint{
				Date:  cur.Format("20060102"),
				Close: decimal.NewFromFloat(price),
			})
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return points
}
