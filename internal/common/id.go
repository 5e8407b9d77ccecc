package common

import (
	"strings"

	"github.com/google/uuid"
)

// NewAnalysisID generates a unique analysis ID with the "analysis_" prefix.
// Format: analysis_<uuid>
func NewAnalysisID() string {
	return "analysis_" + uuid.New().String()
}

// AnalysisKey derives the deterministic storage key for a ticker and period,
// e.g. ("aapl", "Q2 FY2025") -> "AAPL_Q2_FY2025". Falls back to a fresh
// analysis ID when either part is missing.
func AnalysisKey(ticker, period string) string {
	if ticker == "" || period == "" {
		return NewAnalysisID()
	}
	return strings.ToUpper(ticker) + "_" + strings.ReplaceAll(period, " ", "_")
}
