package interfaces

import "context"

// MarketDataService aggregates market data providers. The returned mapping is
// treated as opaque by the context builder: scalar values render as
// "key: value", nested mappings render under their key.
type MarketDataService interface {
	// GetComprehensiveMarketData fetches data for a ticker from all enabled
	// providers. Provider failures are logged and skipped, never fatal.
	GetComprehensiveMarketData(ctx context.Context, ticker string) (map[string]interface{}, error)
}
