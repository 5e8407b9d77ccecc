package analysis

import (
	"context"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/calldigest/internal/common"
	"github.com/ternarybob/calldigest/internal/interfaces"
	"github.com/ternarybob/calldigest/internal/models"
	"github.com/ternarybob/calldigest/internal/services/rag"
	"github.com/ternarybob/calldigest/internal/services/transcript"
)

// Service orchestrates the full pipeline for one earnings call: transcript
// processing, market data enrichment, tier analysis and persistence.
type Service struct {
	processor *transcript.Processor
	engine    *rag.Engine
	retriever *rag.Retriever
	market    interfaces.MarketDataService
	storage   interfaces.AnalysisStorage
	topK      int
	logger    arbor.ILogger
}

// NewService creates the analysis orchestrator.
func NewService(
	processor *transcript.Processor,
	engine *rag.Engine,
	retriever *rag.Retriever,
	market interfaces.MarketDataService,
	storage interfaces.AnalysisStorage,
	topK int,
	logger arbor.ILogger,
) *Service {
	return &Service{
		processor: processor,
		engine:    engine,
		retriever: retriever,
		market:    market,
		storage:   storage,
		topK:      topK,
		logger:    logger,
	}
}

// Ingest processes a raw transcript, runs the three analysis tiers and
// persists the result. Re-ingesting the same ticker and period overwrites
// the previous record. Market data failures are logged and the analysis
// proceeds without market context.
func (s *Service) Ingest(ctx context.Context, ticker, period, text string) (*models.EarningsCall, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	s.logger.Info().
		Str("ticker", ticker).
		Str("period", period).
		Int("text_len", len(text)).
		Msg("Ingesting transcript")

	processed := s.processor.Process(text)

	var marketData map[string]interface{}
	if s.market != nil && ticker != "" {
		data, err := s.market.GetComprehensiveMarketData(ctx, ticker)
		if err != nil {
			s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Market data unavailable, continuing without it")
		} else {
			marketData = data
		}
	}

	result := s.engine.Analyze(ctx, processed.Chunks, marketData)

	call := &models.EarningsCall{
		ID:         common.AnalysisKey(ticker, period),
		Ticker:     ticker,
		Period:     period,
		Transcript: processed.CleanedText,
		Digest:     processed.Metadata,
		Analysis:   *result,
		MarketData: marketData,
	}

	if err := s.storage.SaveAnalysis(call); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("id", call.ID).
		Int("chunks", processed.Metadata.NumChunks).
		Int("bullets", len(result.TierABullets)).
		Msg("Transcript analyzed and stored")

	return call, nil
}

// Retrieve ranks the stored transcript's chunks against an ad-hoc query.
// Chunking is deterministic, so the chunks are rebuilt from the stored
// cleaned text rather than persisted alongside it.
func (s *Service) Retrieve(ctx context.Context, id, query string, topK int) ([]models.Chunk, error) {
	call, err := s.storage.GetAnalysis(id)
	if err != nil {
		return nil, err
	}

	if topK <= 0 {
		topK = s.topK
	}

	processed := s.processor.Process(call.Transcript)
	return s.retriever.Retrieve(ctx, query, processed.Chunks, topK)
}

// Get returns a stored call by ID.
func (s *Service) Get(id string) (*models.EarningsCall, error) {
	return s.storage.GetAnalysis(id)
}

// List returns stored calls, optionally filtered by ticker.
func (s *Service) List(ticker string) ([]*models.EarningsCall, error) {
	return s.storage.ListAnalyses(ticker)
}

// Delete removes a stored call by ID.
func (s *Service) Delete(id string) error {
	return s.storage.DeleteAnalysis(id)
}
