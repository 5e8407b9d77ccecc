package market

import (
	"context"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/calldigest/internal/common"
	"github.com/ternarybob/calldigest/internal/interfaces"
)

// Service aggregates the enabled market data providers. A provider failure
// is logged and its source omitted; the aggregate never fails because one
// provider did.
type Service struct {
	yahoo        *YahooClient
	alphaVantage *AlphaVantageClient
	logger       arbor.ILogger
}

// Compile-time assertion
var _ interfaces.MarketDataService = (*Service)(nil)

// NewService creates the market data aggregator from configuration.
func NewService(config *common.MarketConfig, logger arbor.ILogger) *Service {
	s := &Service{logger: logger}

	if config.YahooEnabled {
		opts := []YahooOption{}
		if config.RequestsPerSecond > 0 {
			opts = append(opts, WithYahooRateLimit(config.RequestsPerSecond))
		}
		s.yahoo = NewYahooClient(logger, opts...)
	}

	if config.AlphaVantageEnabled && config.AlphaVantageAPIKey != "" {
		s.alphaVantage = NewAlphaVantageClient(config.AlphaVantageAPIKey, logger)
	}

	return s
}

// GetComprehensiveMarketData fetches data for a ticker from all enabled
// providers. The result mapping carries the ticker, the list of sources
// that responded, and a nested data map keyed by source.
func (s *Service) GetComprehensiveMarketData(ctx context.Context, ticker string) (map[string]interface{}, error) {
	sources := []string{}
	data := map[string]interface{}{}

	if s.yahoo != nil {
		yahooData, err := s.yahoo.GetStockInfo(ctx, ticker)
		if err != nil {
			s.logger.Error().Err(err).Str("ticker", ticker).Msg("Yahoo Finance fetch failed")
		} else {
			data["yahoo_finance"] = yahooData
			sources = append(sources, "yahoo_finance")
		}
	}

	if s.alphaVantage != nil {
		alphaData, err := s.alphaVantage.GetStockData(ctx, ticker)
		if err != nil {
			s.logger.Error().Err(err).Str("ticker", ticker).Msg("Alpha Vantage fetch failed")
		} else {
			data["alpha_vantage"] = alphaData
			sources = append(sources, "alpha_vantage")
		}
	}

	return map[string]interface{}{
		"ticker":  strings.ToUpper(ticker),
		"sources": sources,
		"data":    data,
	}, nil
}
