package transcript

import (
	"testing"

	"github.com/ternarybob/calldigest/internal/models"
)

func TestMatchSectionRule(t *testing.T) {
	tests := []struct {
		line     string
		expected string
	}{
		{"Prepared Remarks from management", models.SectionPreparedRemarks},
		{"Opening remarks by the CEO", models.SectionPreparedRemarks},
		{"Q&A Session", models.SectionQA},
		{"We will now take questions", models.SectionQA},
		{"Guidance for the next quarter", models.SectionGuidance},
		{"Our outlook remains strong", models.SectionGuidance},
		{"Revenue grew 5 percent", models.SectionFinancialMetrics},
		{"EPS came in at $1.53", models.SectionFinancialMetrics},
		{"Business update on operations", models.SectionBusinessUpdate},
		{"Welcome everyone", ""},
	}

	for _, tt := range tests {
		if got := matchSectionRule(tt.line); got != tt.expected {
			t.Errorf("matchSectionRule(%q) = %q, want %q", tt.line, got, tt.expected)
		}
	}
}

func TestExtractSections(t *testing.T) {
	text := "Welcome everyone.\nPrepared remarks from management.\nWe delivered solid execution.\nQ&A session.\nFirst answer here."

	sections := ExtractSections(text)

	if got := sections[models.SectionGeneral]; got != "Welcome everyone." {
		t.Errorf("general = %q, want %q", got, "Welcome everyone.")
	}
	if got := sections[models.SectionPreparedRemarks]; got != "Prepared remarks from management. We delivered solid execution." {
		t.Errorf("prepared_remarks = %q", got)
	}
	if got := sections[models.SectionQA]; got != "Q&A session. First answer here." {
		t.Errorf("qa_section = %q", got)
	}
}

func TestExtractSectionsLastWriteWins(t *testing.T) {
	text := "Guidance for Q3.\nDetail one.\nQ&A time.\nMore detail.\nGuidance for Q4.\nDetail two."

	sections := ExtractSections(text)

	if got := sections[models.SectionGuidance]; got != "Guidance for Q4. Detail two." {
		t.Errorf("guidance = %q, want later run to overwrite earlier", got)
	}
}

func TestExtractSectionsDefaultGeneral(t *testing.T) {
	text := "Welcome everyone.\nNothing topical here."

	sections := ExtractSections(text)

	if len(sections) != 1 {
		t.Fatalf("expected only the general section, got %d sections", len(sections))
	}
	if got := sections[models.SectionGeneral]; got != "Welcome everyone. Nothing topical here." {
		t.Errorf("general = %q", got)
	}
}
