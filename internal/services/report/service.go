package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/calldigest/internal/interfaces"
	"github.com/ternarybob/calldigest/internal/models"
)

// Service renders an analysed earnings call as a PDF document. When an
// output directory is configured, each rendered report is also written
// there under <id>.pdf.
type Service struct {
	outputDir string
	logger    arbor.ILogger
}

// Compile-time assertion
var _ interfaces.ReportService = (*Service)(nil)

// NewService creates a new report service
func NewService(outputDir string, logger arbor.ILogger) *Service {
	return &Service{
		outputDir: outputDir,
		logger:    logger,
	}
}

// RenderAnalysisReport renders the three analysis tiers for a call into a
// PDF byte slice.
func (s *Service) RenderAnalysisReport(call *models.EarningsCall) ([]byte, error) {
	if call == nil {
		return nil, fmt.Errorf("call has no analysis to render")
	}

	s.logger.Debug().
		Str("id", call.ID).
		Str("ticker", call.Ticker).
		Msg("Rendering analysis report")

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	r := &reportRenderer{pdf: pdf}

	r.title(fmt.Sprintf("%s Earnings Call Analysis", strings.ToUpper(call.Ticker)))
	r.subtitle(fmt.Sprintf("Period: %s    Generated: %s", call.Period, time.Now().Format("2006-01-02 15:04")))

	r.heading("Key Factors")
	if len(call.Analysis.TierABullets) == 0 {
		r.paragraph("No key factors were extracted.")
	}
	for _, bullet := range call.Analysis.TierABullets {
		r.bullet(fmt.Sprintf("%s [%s, confidence %d]", bullet.Text, bullet.Sentiment, bullet.Confidence))
	}

	r.heading("Plain-Language Summary")
	r.paragraph(call.Analysis.TierBSummary)

	r.heading("Expert Analysis")
	if call.Analysis.TierCExpert.Extracted {
		r.subheading("Metrics")
		for _, name := range sortedKeys(call.Analysis.TierCExpert.Metrics) {
			r.bullet(fmt.Sprintf("%s: %s", name, call.Analysis.TierCExpert.Metrics[name]))
		}
		r.subheading("Insights")
		for _, i := range call.Analysis.TierCExpert.Insights {
			r.bullet(i)
		}
		r.subheading("Risks")
		for _, risk := range call.Analysis.TierCExpert.Risks {
			r.bullet(risk)
		}
	} else {
		r.paragraph(call.Analysis.TierCExpert.Raw)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate PDF output")
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}

	if s.outputDir != "" {
		if err := s.saveReport(call.ID, buf.Bytes()); err != nil {
			// The caller still gets the rendered bytes.
			s.logger.Warn().Err(err).Str("id", call.ID).Msg("Failed to save report copy")
		}
	}

	s.logger.Debug().Int("pdf_size", buf.Len()).Msg("Report generated successfully")
	return buf.Bytes(), nil
}

func (s *Service) saveReport(id string, pdf []byte) error {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	path := filepath.Join(s.outputDir, id+".pdf")
	if err := os.WriteFile(path, pdf, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	s.logger.Debug().Str("path", path).Msg("Report copy saved")
	return nil
}

type reportRenderer struct {
	pdf *fpdf.Fpdf
}

func (r *reportRenderer) title(text string) {
	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.MultiCell(0, 8, text, "", "L", false)
	r.pdf.Ln(1)
}

func (r *reportRenderer) subtitle(text string) {
	r.pdf.SetFont("Arial", "I", 9)
	r.pdf.SetTextColor(90, 90, 90)
	r.pdf.MultiCell(0, 5, text, "", "L", false)
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.Ln(3)
}

func (r *reportRenderer) heading(text string) {
	r.pdf.Ln(3)
	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.MultiCell(0, 7, text, "", "L", false)
	r.pdf.Ln(1)
}

func (r *reportRenderer) subheading(text string) {
	r.pdf.Ln(1)
	r.pdf.SetFont("Arial", "B", 10)
	r.pdf.MultiCell(0, 6, text, "", "L", false)
}

func (r *reportRenderer) paragraph(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.MultiCell(0, 5, text, "", "L", false)
	r.pdf.Ln(2)
}

func (r *reportRenderer) bullet(text string) {
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetX(15)
	r.pdf.MultiCell(180, 5, "- "+text, "", "L", false)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
