// Package forex looks up the market KWD to PKR rate from Yahoo Finance.
// The quote is informational; it never changes the ledger's stored rate.
package forex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"khata/internal/metrics"
)

const (
	// DefaultBaseURL is the Yahoo Finance v8 chart endpoint.
	DefaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	yahooUA        = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
	sourceName     = "Yahoo Finance"
)

// yahooChartResponse is the subset of the v8 chart payload we read.
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Quote is one market rate observation: 1 From = Rate To.
type Quote struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Rate      decimal.Decimal `json:"rate"`
	AsOf      time.Time       `json:"as_of"`
	Source    string          `json:"source"`
	FetchedAt time.Time       `json:"fetched_at"`
}

type cachedQuote struct {
	quote   Quote
	expires time.Time
}

// Converter fetches and caches the KWD to PKR quote. Safe for concurrent use.
type Converter struct {
	httpClient *http.Client
	baseURL    string
	ttl        time.Duration
	now        func() time.Time

	mu     sync.RWMutex
	cached *cachedQuote
}

// NewConverter creates a Converter. An empty baseURL uses DefaultBaseURL;
// quotes are reused for ttl.
func NewConverter(httpClient *http.Client, baseURL string, ttl time.Duration) *Converter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Converter{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		ttl:        ttl,
		now:        time.Now,
	}
}

// KWDToPKR returns the cached KWD to PKR quote or fetches a fresh one.
func (c *Converter) KWDToPKR(ctx context.Context) (*Quote, error) {
	c.mu.RLock()
	cached := c.cached
	c.mu.RUnlock()
	if cached != nil && c.now().Before(cached.expires) {
		metrics.ForexFetches.WithLabelValues("cached").Inc()
		q := cached.quote
		return &q, nil
	}

	quote, err := c.fetchQuote(ctx, "KWD", "PKR")
	if err != nil {
		metrics.ForexFetches.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ForexFetches.WithLabelValues("fetched").Inc()

	c.mu.Lock()
	c.cached = &cachedQuote{quote: *quote, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()

	return quote, nil
}

// fetchQuote reads the chart meta for a ticker like "KWDPKR=X".
func (c *Converter) fetchQuote(ctx context.Context, from, to string) (*Quote, error) {
	ticker := from + to + "=X"
	url := c.baseURL + "/" + ticker + "?interval=1d&range=1d"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building forex request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forex http request for %s: %w", ticker, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forex request for %s: unexpected status %d", ticker, resp.StatusCode)
	}

	var chartResp yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chartResp); err != nil {
		return nil, fmt.Errorf("decoding forex response for %s: %w", ticker, err)
	}

	if chartResp.Chart.Error != nil {
		return nil, fmt.Errorf("forex chart error for %s: %s: %s", ticker, chartResp.Chart.Error.Code, chartResp.Chart.Error.Description)
	}
	if len(chartResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no forex results for %s", ticker)
	}

	meta := chartResp.Chart.Result[0].Meta
	if meta.RegularMarketPrice <= 0 {
		return nil, fmt.Errorf("invalid forex rate for %s: %f", ticker, meta.RegularMarketPrice)
	}

	now := c.now().UTC()
	asOf := now
	if meta.RegularMarketTime > 0 {
		asOf = time.Unix(meta.RegularMarketTime, 0).UTC()
	}
	return &Quote{
		From:      from,
		To:        to,
		Rate:      decimal.NewFromFloat(meta.RegularMarketPrice),
		AsOf:      asOf,
		Source:    sourceName,
		FetchedAt: now,
	}, nil
}
