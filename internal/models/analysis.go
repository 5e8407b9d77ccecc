package models

import "time"

// Sentiment classification for a bullet fact.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Tier identifies one of the three fixed analytical outputs.
type Tier string

const (
	TierA Tier = "tier_a" // bullet factors
	TierB Tier = "tier_b" // plain-language summary
	TierC Tier = "tier_c" // expert analysis
)

// TierStatus reports how a single tier completed.
type TierStatus string

const (
	// TierStatusOK means the language model call succeeded.
	TierStatusOK TierStatus = "ok"
	// TierStatusDegraded means the call failed and the offline substitute
	// response was used instead.
	TierStatusDegraded TierStatus = "degraded"
)

// BulletFact is one parsed Tier A factor.
type BulletFact struct {
	Text       string    `json:"text"`
	Sentiment  Sentiment `json:"sentiment"`
	Confidence int       `json:"confidence"`
}

// ExpertBlock holds the Tier C output. Structured extraction is not
// implemented: Extracted is false and Raw carries the full model response.
// The parser behind it is a swappable strategy so a real extractor can
// replace it without touching callers.
type ExpertBlock struct {
	Extracted bool              `json:"extracted"`
	Raw       string            `json:"raw"`
	Metrics   map[string]string `json:"metrics,omitempty"`
	Insights  []string          `json:"insights,omitempty"`
	Risks     []string          `json:"risks,omitempty"`
}

// RawResponses keeps the unparsed model output for each tier.
type RawResponses struct {
	TierA string `json:"tier_a"`
	TierB string `json:"tier_b"`
	TierC string `json:"tier_c"`
}

// AnalysisResult aggregates the three tier outputs for one transcript.
// Tiers are independent; a degraded tier never invalidates its siblings.
type AnalysisResult struct {
	TierABullets []BulletFact        `json:"tier_a_bullets"`
	TierBSummary string              `json:"tier_b_summary"`
	TierCExpert  ExpertBlock         `json:"tier_c_expert"`
	RawResponses RawResponses        `json:"raw_responses"`
	TierStatuses map[Tier]TierStatus `json:"tier_statuses"`
}

// EarningsCall is the persisted record of one analyzed earnings call,
// keyed by ticker and period.
type EarningsCall struct {
	ID         string                 `json:"id" badgerhold:"key"`
	Ticker     string                 `json:"ticker" badgerhold:"index"`
	Period     string                 `json:"period"`
	Transcript string                 `json:"transcript"`
	Digest     TranscriptMetadata     `json:"digest"`
	Analysis   AnalysisResult         `json:"analysis"`
	MarketData map[string]interface{} `json:"market_data,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}
