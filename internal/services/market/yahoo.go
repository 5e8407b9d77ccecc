package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
)

const (
	// yahooBaseURL is the base URL for the Yahoo Finance chart API.
	yahooBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

	// defaultTimeout is the default HTTP timeout for provider calls.
	defaultTimeout = 30 * time.Second

	// defaultRateLimit is the default rate limit (requests per second).
	defaultRateLimit = 5
)

// YahooClient fetches quote data from the Yahoo Finance chart API.
type YahooClient struct {
	baseURL    string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// YahooOption configures the YahooClient.
type YahooOption func(*YahooClient)

// WithYahooBaseURL sets a custom base URL.
func WithYahooBaseURL(baseURL string) YahooOption {
	return func(c *YahooClient) {
		c.baseURL = baseURL
	}
}

// WithYahooHTTPClient sets a custom HTTP client.
func WithYahooHTTPClient(httpClient *http.Client) YahooOption {
	return func(c *YahooClient) {
		c.httpClient = httpClient
	}
}

// WithYahooRateLimit sets a custom rate limit.
func WithYahooRateLimit(requestsPerSecond int) YahooOption {
	return func(c *YahooClient) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewYahooClient creates a new Yahoo Finance client.
func NewYahooClient(logger arbor.ILogger, opts ...YahooOption) *YahooClient {
	c := &YahooClient{
		baseURL: yahooBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(defaultRateLimit), defaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// yahooChartResponse is the subset of the chart payload we consume.
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				ExchangeName       string  `json:"exchangeName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetStockInfo fetches the current quote for a ticker.
func (c *YahooClient) GetStockInfo(ctx context.Context, ticker string) (map[string]interface{}, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("range", "1d")
	params.Set("interval", "1d")

	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, url.PathEscape(strings.ToUpper(ticker)), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", "calldigest/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var chart yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo error %s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("no result for ticker %s", ticker)
	}

	meta := chart.Chart.Result[0].Meta

	return map[string]interface{}{
		"symbol":         meta.Symbol,
		"currency":       meta.Currency,
		"exchange":       meta.ExchangeName,
		"price":          meta.RegularMarketPrice,
		"previous_close": meta.PreviousClose,
		"market_time":    meta.RegularMarketTime,
	}, nil
}
