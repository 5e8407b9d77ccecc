package interfaces

import (
	"errors"

	"github.com/ternarybob/calldigest/internal/models"
)

// ErrAnalysisNotFound is returned when no stored analysis matches the key.
var ErrAnalysisNotFound = errors.New("analysis not found")

// AnalysisStorage persists analyzed earnings calls keyed by an identifier
// derived from ticker and period.
type AnalysisStorage interface {
	// SaveAnalysis inserts or updates an earnings call record.
	SaveAnalysis(call *models.EarningsCall) error

	// GetAnalysis retrieves a record by id. Returns ErrAnalysisNotFound if
	// the id is unknown.
	GetAnalysis(id string) (*models.EarningsCall, error)

	// ListAnalyses returns stored records for a ticker, newest first.
	// An empty ticker returns all records.
	ListAnalyses(ticker string) ([]*models.EarningsCall, error)

	// DeleteAnalysis removes a record by id.
	DeleteAnalysis(id string) error
}

// StorageManager provides access to storage backends
type StorageManager interface {
	AnalysisStorage() AnalysisStorage
	Close() error
}
