package market

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

const yahooChartFixture = `{
	"chart": {
		"result": [{
			"meta": {
				"currency": "USD",
				"symbol": "AAPL",
				"exchangeName": "NMS",
				"regularMarketPrice": 189.5,
				"previousClose": 187.2,
				"regularMarketTime": 1714500000
			}
		}],
		"error": null
	}
}`

func TestYahooGetStockInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/AAPL", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		fmt.Fprint(w, yahooChartFixture)
	}))
	defer server.Close()

	client := NewYahooClient(arbor.NewLogger(), WithYahooBaseURL(server.URL))

	// Ticker is upper-cased before the request.
	info, err := client.GetStockInfo(context.Background(), "aapl")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", info["symbol"])
	assert.Equal(t, "USD", info["currency"])
	assert.Equal(t, "NMS", info["exchange"])
	assert.Equal(t, 189.5, info["price"])
	assert.Equal(t, 187.2, info["previous_close"])
}

func TestYahooGetStockInfoAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	}))
	defer server.Close()

	client := NewYahooClient(arbor.NewLogger(), WithYahooBaseURL(server.URL))

	_, err := client.GetStockInfo(context.Background(), "NOPE")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Not Found")
}

func TestYahooGetStockInfoBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewYahooClient(arbor.NewLogger(), WithYahooBaseURL(server.URL))

	_, err := client.GetStockInfo(context.Background(), "AAPL")
	assert.Error(t, err)
}
