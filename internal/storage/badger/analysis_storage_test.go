package badger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/calldigest/internal/common"
	"github.com/ternarybob/calldigest/internal/interfaces"
	"github.com/ternarybob/calldigest/internal/models"
)

func newTestStorage(t *testing.T) interfaces.AnalysisStorage {
	t.Helper()

	db, err := NewBadgerDB(arbor.NewLogger(), &common.BadgerConfig{Path: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewAnalysisStorage(db, arbor.NewLogger())
}

func testCall(id, ticker, period string) *models.EarningsCall {
	return &models.EarningsCall{
		ID:         id,
		Ticker:     ticker,
		Period:     period,
		Transcript: "JOHN DOE: Revenue grew this quarter.",
		Digest: models.TranscriptMetadata{
			TotalTokens: 7,
			NumChunks:   1,
			NumSpeakers: 1,
		},
		Analysis: models.AnalysisResult{
			TierBSummary: "A solid quarter.",
			TierCExpert:  models.ExpertBlock{Raw: "expert text"},
		},
	}
}

func TestSaveAndGetAnalysis(t *testing.T) {
	storage := newTestStorage(t)

	call := testCall("AAPL_Q2_FY2025", "AAPL", "Q2 FY2025")
	require.NoError(t, storage.SaveAnalysis(call))

	got, err := storage.GetAnalysis("AAPL_Q2_FY2025")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", got.Ticker)
	assert.Equal(t, "Q2 FY2025", got.Period)
	assert.Equal(t, "A solid quarter.", got.Analysis.TierBSummary)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestSaveAnalysisRequiresID(t *testing.T) {
	storage := newTestStorage(t)

	err := storage.SaveAnalysis(testCall("", "AAPL", "Q2"))
	assert.Error(t, err)
}

func TestSaveAnalysisOverwrites(t *testing.T) {
	storage := newTestStorage(t)

	call := testCall("AAPL_Q2_FY2025", "AAPL", "Q2 FY2025")
	require.NoError(t, storage.SaveAnalysis(call))

	call.Analysis.TierBSummary = "Revised summary."
	require.NoError(t, storage.SaveAnalysis(call))

	got, err := storage.GetAnalysis("AAPL_Q2_FY2025")
	require.NoError(t, err)
	assert.Equal(t, "Revised summary.", got.Analysis.TierBSummary)

	calls, err := storage.ListAnalyses("AAPL")
	require.NoError(t, err)
	assert.Len(t, calls, 1, "re-ingesting the same call should not create a second record")
}

func TestGetAnalysisNotFound(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.GetAnalysis("missing")
	assert.ErrorIs(t, err, interfaces.ErrAnalysisNotFound)
}

func TestListAnalysesByTicker(t *testing.T) {
	storage := newTestStorage(t)

	require.NoError(t, storage.SaveAnalysis(testCall("AAPL_Q1", "AAPL", "Q1")))
	require.NoError(t, storage.SaveAnalysis(testCall("AAPL_Q2", "AAPL", "Q2")))
	require.NoError(t, storage.SaveAnalysis(testCall("MSFT_Q1", "MSFT", "Q1")))

	apple, err := storage.ListAnalyses("AAPL")
	require.NoError(t, err)
	assert.Len(t, apple, 2)
	for _, call := range apple {
		assert.Equal(t, "AAPL", call.Ticker)
	}

	// Ticker filter is case-insensitive on input.
	lower, err := storage.ListAnalyses("aapl")
	require.NoError(t, err)
	assert.Len(t, lower, 2)

	all, err := storage.ListAnalyses("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeleteAnalysis(t *testing.T) {
	storage := newTestStorage(t)

	require.NoError(t, storage.SaveAnalysis(testCall("AAPL_Q2", "AAPL", "Q2")))
	require.NoError(t, storage.DeleteAnalysis("AAPL_Q2"))

	_, err := storage.GetAnalysis("AAPL_Q2")
	assert.ErrorIs(t, err, interfaces.ErrAnalysisNotFound)

	assert.ErrorIs(t, storage.DeleteAnalysis("AAPL_Q2"), interfaces.ErrAnalysisNotFound)
}
