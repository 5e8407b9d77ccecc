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

// alphaVantageBaseURL is the base URL for the Alpha Vantage API.
const alphaVantageBaseURL = "https://www.alphavantage.co/query"

// AlphaVantageClient fetches quote data from the Alpha Vantage API.
type AlphaVantageClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// AlphaVantageOption configures the AlphaVantageClient.
type AlphaVantageOption func(*AlphaVantageClient)

// WithAlphaVantageBaseURL sets a custom base URL.
func WithAlphaVantageBaseURL(baseURL string) AlphaVantageOption {
	return func(c *AlphaVantageClient) {
		c.baseURL = baseURL
	}
}

// WithAlphaVantageHTTPClient sets a custom HTTP client.
func WithAlphaVantageHTTPClient(httpClient *http.Client) AlphaVantageOption {
	return func(c *AlphaVantageClient) {
		c.httpClient = httpClient
	}
}

// NewAlphaVantageClient creates a new Alpha Vantage client.
// The free tier allows 5 requests per minute; the limiter reflects that.
func NewAlphaVantageClient(apiKey string, logger arbor.ILogger, opts ...AlphaVantageOption) *AlphaVantageClient {
	c := &AlphaVantageClient{
		baseURL: alphaVantageBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:  logger,
		limiter: rate.NewLimiter(rate.Every(12*time.Second), 1),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetStockData fetches the global quote for a ticker.
func (c *AlphaVantageClient) GetStockData(ctx context.Context, ticker string) (map[string]interface{}, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", strings.ToUpper(ticker))
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	quote, ok := payload["Global Quote"].(map[string]interface{})
	if !ok || len(quote) == 0 {
		return nil, fmt.Errorf("no quote data for ticker %s", ticker)
	}

	return quote, nil
}
