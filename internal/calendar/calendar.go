// Package calendar supplies future trading-session dates. A pluggable
// provider delivers real exchange dates; when it is absent or fails, the
// next weekdays stand in so analysis is never blocked on the calendar.
package calendar

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// Provider returns up to n trading dates strictly after start (YYYYMMDD).
type Provider interface {
	FutureTradingDates(start string, n int) ([]string, error)
	Name() string
}

// FutureDates asks the provider first and fills the remainder with weekdays.
// With a nil provider it is the pure weekday fallback. When start cannot be
// parsed at all it degrades to synthetic "T+k" labels, which the engine
// passes through untouched.
func FutureDates(p Provider, start string, n int) []string {
	var dates []string
	if p != nil {
		got, err := p.FutureTradingDates(start, n)
		if err != nil {
			log.Printf("[WARN] calendar provider %s failed, falling back to weekdays: %v", p.Name(), err)
		} else {
			dates = got
		}
	}
	if len(dates) >= n {
		return dates[:n]
	}

	cur, err := time.Parse("20060102", start)
	if err != nil {
		for i := len(dates); i < n; i++ {
			dates = append(dates, fmt.Sprintf("T+%d", i+1))
		}
		return dates
	}

	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		seen[d] = true
	}
	for len(dates) < n {
		cur = cur.AddDate(0, 0, 1)
		if wd := cur.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		d := cur.Format("20060102")
		if !seen[d] {
			dates = append(dates, d)
			seen[d] = true
		}
	}
	return dates
}

// HTTPProvider fetches trading dates from a REST endpoint shaped like
// GET {base}/api/v1/trade-dates?after=YYYYMMDD&limit=n -> {"dates": [...]}.
type HTTPProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPProvider creates a provider with optional proxy support.
func NewHTTPProvider(baseURL, proxyURL string) *HTTPProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &HTTPProvider{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (p *HTTPProvider) Name() string { return "http-calendar" }

func (p *HTTPProvider) FutureTradingDates(start string, n int) ([]string, error) {
	endpoint := fmt.Sprintf("%s/api/v1/trade-dates?after=%s&limit=%d", p.BaseURL, url.QueryEscape(start), n)
	resp, err := p.Client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("calendar fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("calendar read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar: status %d, body: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Dates []string `json:"dates"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("calendar decode: %w", err)
	}

	out := make([]string, 0, n)
	for _, d := range payload.Dates {
		if d > start {
			out = append(out, d)
		}
		if len(out) == n {
			break
		}
	}
	return out, nil
}
