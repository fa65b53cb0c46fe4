package collector

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func klineServer(t *testing.T, klines string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"data":{"code":"600372","name":"中航机载","klines":[%s]}}`, klines)
	}))
}

func TestFetchDailyHistory_ParsesKlines(t *testing.T) {
	srv := klineServer(t, `"2024-05-20,9.90,10.00,10.10,9.80,1000,1e6,3.0,1.01,0.10,0.5","2024-05-21,10.00,10.15,10.30,9.95,1200,1.2e6,3.4,1.50,0.15,0.6"`)
	defer srv.Close()

	f := NewEastmoneyFetcher("")
	f.BaseURL = srv.URL

	points, err := f.FetchDailyHistory("600372", "20240101", "20240521")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Date != "20240520" || points[0].Close.String() != "10" {
		t.Errorf("first point = %+v", points[0])
	}
	if points[1].PctChg != 1.50 {
		t.Errorf("pct chg = %v, want 1.50", points[1].PctChg)
	}
	if points[0].Degraded || points[1].Degraded {
		t.Error("clean decimal strings must not be flagged degraded")
	}
}

func TestFetchDailyHistory_SkipsMalformedBars(t *testing.T) {
	srv := klineServer(t, `"2024-05-20,9.90,not-a-number,10.10,9.80,1000,1e6,3.0,1.01,0.10,0.5","2024-05-21,10.00,10.15,10.30,9.95,1200,1.2e6,3.4,1.50,0.15,0.6"`)
	defer srv.Close()

	f := NewEastmoneyFetcher("")
	f.BaseURL = srv.URL

	points, err := f.FetchDailyHistory("600372", "20240101", "20240521")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected the malformed bar to be skipped, got %d points", len(points))
	}
	if points[0].Date != "20240521" {
		t.Errorf("surviving point date = %s", points[0].Date)
	}
}

func TestFetchRealtimeQuote(t *testing.T) {
	srv := klineServer(t, `"2024-05-21 10:34,10.00,10.10,10.12,9.99,100,1e5,0.5,0.2,0.02,0.1","2024-05-21 10:35,10.10,10.20,10.22,10.05,110,1.1e5,0.5,0.3,0.03,0.1"`)
	defer srv.Close()

	f := NewEastmoneyFetcher("")
	f.BaseURL = srv.URL

	quote, err := f.FetchRealtimeQuote("600372")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Date != "20240521" || quote.Time != "10:35" {
		t.Errorf("quote timestamp = %s %s", quote.Date, quote.Time)
	}
	if quote.Price.String() != "10.2" {
		t.Errorf("quote price = %s, want 10.2", quote.Price)
	}
}

func TestSecIDMapping(t *testing.T) {
	tests := []struct{ code, want string }{
		{"600372", "1.600372"},
		{"002519", "0.002519"},
		{"300750", "0.300750"},
		{"830799", "0.830799"},
	}
	for _, tt := range tests {
		if got := secID(tt.code); got != tt.want {
			t.Errorf("secID(%s) = %s, want %s", tt.code, got, tt.want)
		}
	}
	if got := indexSecID("sh000002"); got != "1.000002" {
		t.Errorf("indexSecID(sh000002) = %s", got)
	}
	if got := indexSecID("sz399107"); got != "0.399107" {
		t.Errorf("indexSecID(sz399107) = %s", got)
	}
}
