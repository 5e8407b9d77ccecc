package rag

import (
	"regexp"
	"strings"

	"github.com/ternarybob/calldigest/internal/models"
)

// defaultConfidence is assigned to every parsed bullet. No confidence is
// extracted from the response text; this is a known simplification.
const defaultConfidence = 75

var (
	bulletLineRe   = regexp.MustCompile(`^([•\-*]|[1-4]\.)\s*`)
	bulletMarkerRe = regexp.MustCompile(`^[•\-*]\s*|^\d+\.\s*`)
)

// ParseBulletResponse parses a Tier A response into bullet facts. Only lines
// beginning with a bullet marker or a numbered-list prefix survive; the
// marker is stripped and each line is classified by the sentiment strategy.
func ParseBulletResponse(response string, classifier SentimentClassifier) []models.BulletFact {
	var bullets []models.BulletFact

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !bulletLineRe.MatchString(line) {
			continue
		}

		text := bulletMarkerRe.ReplaceAllString(line, "")

		bullets = append(bullets, models.BulletFact{
			Text:       text,
			Sentiment:  classifier.Classify(text),
			Confidence: defaultConfidence,
		})
	}

	return bullets
}

// ExpertParser turns a Tier C response into an ExpertBlock. Swappable so a
// real structured extractor can replace the placeholder without touching the
// engine.
type ExpertParser interface {
	Parse(response string) models.ExpertBlock
}

// RawExpertParser carries the raw response through unparsed and marks the
// block as not extracted. Structured extraction of metrics, insights and
// risks is not implemented.
type RawExpertParser struct{}

// Parse returns the response wrapped in an unextracted ExpertBlock.
func (RawExpertParser) Parse(response string) models.ExpertBlock {
	return models.ExpertBlock{
		Extracted: false,
		Raw:       response,
	}
}
