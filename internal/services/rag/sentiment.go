package rag

import (
	"strings"

	"github.com/ternarybob/calldigest/internal/models"
)

// SentimentClassifier assigns a sentiment to a bullet fact. The keyword
// implementation below is the only one today; the interface exists so a
// structured-extraction implementation can replace it without touching
// callers.
type SentimentClassifier interface {
	Classify(text string) models.Sentiment
}

// KeywordSentimentClassifier classifies by keyword membership: any positive
// keyword wins over any negative keyword, anything else is neutral.
type KeywordSentimentClassifier struct {
	positive []string
	negative []string
}

// NewKeywordSentimentClassifier creates the default keyword classifier.
func NewKeywordSentimentClassifier() *KeywordSentimentClassifier {
	return &KeywordSentimentClassifier{
		positive: []string{"beat", "exceed", "strong", "positive", "growth"},
		negative: []string{"miss", "decline", "weak", "negative", "fall"},
	}
}

// Classify returns the sentiment for a bullet line.
func (c *KeywordSentimentClassifier) Classify(text string) models.Sentiment {
	lower := strings.ToLower(text)

	for _, keyword := range c.positive {
		if strings.Contains(lower, keyword) {
			return models.SentimentPositive
		}
	}
	for _, keyword := range c.negative {
		if strings.Contains(lower, keyword) {
			return models.SentimentNegative
		}
	}

	return models.SentimentNeutral
}
