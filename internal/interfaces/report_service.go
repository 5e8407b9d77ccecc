package interfaces

import "github.com/ternarybob/calldigest/internal/models"

// ReportService renders an analyzed earnings call to a PDF document.
type ReportService interface {
	// RenderAnalysisReport produces a PDF byte slice for the given record.
	RenderAnalysisReport(call *models.EarningsCall) ([]byte, error)
}
