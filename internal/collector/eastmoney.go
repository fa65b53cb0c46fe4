package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"DeviationSentinel/internal/model"
)

// EastmoneyFetcher implements Fetcher using the Eastmoney push2his kline API,
// which serves both stock and index candles. Quotes arrive as decimal
// strings, so closes convert exactly.
type EastmoneyFetcher struct {
	Client  *http.Client
	BaseURL string // overridable for tests
}

// NewEastmoneyFetcher creates a fetcher with optional proxy support.
func NewEastmoneyFetcher(proxyURL string) *EastmoneyFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &EastmoneyFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: "https://push2his.eastmoney.com",
	}
}

func (f *EastmoneyFetcher) Name() string { return "eastmoney" }

// secID maps a bare stock code to Eastmoney's market-prefixed id.
func secID(code string) string {
	if strings.HasPrefix(code, "6") {
		return "1." + code
	}
	return "0." + code
}

// indexSecID maps an exchange-prefixed index code (sh000002, sz399107,
// bj899050) to Eastmoney's id.
func indexSecID(indexCode string) string {
	if len(indexCode) <= 2 {
		return indexCode
	}
	prefix, num := indexCode[:2], indexCode[2:]
	if prefix == "sh" {
		return "1." + num
	}
	return "0." + num
}

// emKline is the response structure of the push2his kline endpoint.
// Each kline is a comma-joined record: date, open, close, high, low,
// volume, amount, amplitude, pct_chg, chg, turnover.
type emKline struct {
	Data *struct {
		Code   string   `json:"code"`
		Name   string   `json:"name"`
		Klines []string `json:"klines"`
	} `json:"data"`
}

func (f *EastmoneyFetcher) fetchKlines(secid, klt, beg, end string) ([]string, error) {
	u := fmt.Sprintf("%s/api/qt/stock/kline/get?secid=%s&fields1=f1,f2,f3,f4,f5,f6&fields2=f51,f52,f53,f54,f55,f56,f57,f58,f59,f60,f61&klt=%s&fqt=0&beg=%s&end=%s",
		f.BaseURL, url.QueryEscape(secid), klt, beg, end)

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("eastmoney fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("eastmoney read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("eastmoney: status %d, body: %s", resp.StatusCode, string(body))
	}

	var payload emKline
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("eastmoney decode: %w", err)
	}
	if payload.Data == nil || len(payload.Data.Klines) == 0 {
		return nil, fmt.Errorf("eastmoney: no data for %s", secid)
	}
	return payload.Data.Klines, nil
}

// parseClose converts a quote string to an exact decimal. When the exact
// conversion fails it falls back to float parsing and marks the value
// degraded; silent fallback would defeat the whole precision discipline.
func parseClose(s string) (decimal.Decimal, bool, error) {
	d, err := decimal.NewFromString(s)
	if err == nil {
		return d, false, nil
	}
	fv, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil {
		return decimal.Decimal{}, false, fmt.Errorf("unparseable quote %q", s)
	}
	log.Printf("[WARN] degraded precision: close %q not an exact decimal", s)
	return decimal.NewFromFloat(fv), true, nil
}

func (f *EastmoneyFetcher) FetchDailyHistory(code, start, end string) ([]model.PricePoint, error) {
	klines, err := f.fetchKlines(secID(code), "101", start, end)
	if err != nil {
		return nil, err
	}
	points := make([]model.PricePoint, 0, len(klines))
	for _, k := range klines {
		parts := strings.Split(k, ",")
		if len(parts) < 9 {
			log.Printf("[WARN] eastmoney: malformed kline %q, skipping", k)
			continue
		}
		close, degraded, err := parseClose(parts[2])
		if err != nil {
			log.Printf("[WARN] eastmoney: %v, skipping %s", err, parts[0])
			continue
		}
		pct, _ := strconv.ParseFloat(parts[8], 64)
		points = append(points, model.PricePoint{
			Date:     strings.ReplaceAll(parts[0], "-", ""),
			Close:    close,
			PctChg:   pct,
			Degraded: degraded,
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("eastmoney: no usable bars for %s", code)
	}
	return points, nil
}

func (f *EastmoneyFetcher) FetchIndexDaily(indexCode string) ([]model.IndexPoint, error) {
	klines, err := f.fetchKlines(indexSecID(indexCode), "101", "19900101", "20500101")
	if err != nil {
		return nil, err
	}
	points := make([]model.IndexPoint, 0, len(klines))
	for _, k := range klines {
		parts := strings.Split(k, ",")
		if len(parts) < 3 {
			continue
		}
		close, degraded, err := parseClose(parts[2])
		if err != nil {
			log.Printf("[WARN] eastmoney: %v, skipping index bar %s", err, parts[0])
			continue
		}
		points = append(points, model.IndexPoint{
			Date:     strings.ReplaceAll(parts[0], "-", ""),
			Close:    close,
			Degraded: degraded,
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("eastmoney: no usable index bars for %s", indexCode)
	}
	return points, nil
}

// FetchRealtimeQuote returns the latest 1-minute bar of the current session.
func (f *EastmoneyFetcher) FetchRealtimeQuote(code string) (*model.RealtimeQuote, error) {
	klines, err := f.fetchKlines(secID(code), "1", "0", "20500101")
	if err != nil {
		return nil, err
	}
	last := klines[len(klines)-1]
	parts := strings.Split(last, ",")
	if len(parts) < 3 {
		return nil, fmt.Errorf("eastmoney: malformed minute bar %q", last)
	}
	ts, err := time.Parse("2006-01-02 15:04", parts[0])
	if err != nil {
		return nil, fmt.Errorf("eastmoney: minute timestamp %q: %w", parts[0], err)
	}
	price, _, err := parseClose(parts[2])
	if err != nil {
		return nil, fmt.Errorf("eastmoney realtime: %w", err)
	}
	return &model.RealtimeQuote{
		Date:  ts.Format("20060102"),
		Time:  ts.Format("15:04"),
		Price: price,
	}, nil
}
