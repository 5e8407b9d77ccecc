package badger

import (
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/calldigest/internal/interfaces"
	"github.com/ternarybob/calldigest/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// AnalysisStorage implements the AnalysisStorage interface for Badger
type AnalysisStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewAnalysisStorage creates a new AnalysisStorage instance
func NewAnalysisStorage(db *BadgerDB, logger arbor.ILogger) interfaces.AnalysisStorage {
	return &AnalysisStorage{
		db:     db,
		logger: logger,
	}
}

func (s *AnalysisStorage) SaveAnalysis(call *models.EarningsCall) error {
	if call.ID == "" {
		return fmt.Errorf("analysis ID is required")
	}

	now := time.Now()
	if call.CreatedAt.IsZero() {
		call.CreatedAt = now
	}
	call.UpdatedAt = now

	if err := s.db.Store().Upsert(call.ID, call); err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

func (s *AnalysisStorage) GetAnalysis(id string) (*models.EarningsCall, error) {
	var call models.EarningsCall
	if err := s.db.Store().Get(id, &call); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return &call, nil
}

// ListAnalyses returns stored calls, optionally filtered by ticker.
// Results are ordered newest first.
func (s *AnalysisStorage) ListAnalyses(ticker string) ([]*models.EarningsCall, error) {
	var query *badgerhold.Query
	if ticker != "" {
		query = badgerhold.Where("Ticker").Eq(strings.ToUpper(ticker)).Index("Ticker")
	} else {
		query = badgerhold.Where("ID").Ne("")
	}

	var calls []models.EarningsCall
	if err := s.db.Store().Find(&calls, query.SortBy("CreatedAt").Reverse()); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	result := make([]*models.EarningsCall, len(calls))
	for i := range calls {
		result[i] = &calls[i]
	}
	return result, nil
}

func (s *AnalysisStorage) DeleteAnalysis(id string) error {
	if err := s.db.Store().Delete(id, &models.EarningsCall{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return interfaces.ErrAnalysisNotFound
		}
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	return nil
}
