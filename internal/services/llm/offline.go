package llm

import (
	"context"
	"strings"

	"github.com/ternarybob/calldigest/internal/interfaces"
)

// Canned tier responses for offline operation. Deterministic stand-ins used
// when no credential is configured and as the degraded fallback when a cloud
// call exhausts its retry budget.
const (
	cannedBullets = `• Revenue beat expectations by 3% (positive, confidence: 85)
• iPhone sales grew 7% year-over-year (positive, confidence: 92)
• Services revenue reached all-time high (positive, confidence: 88)
• Supply chain constraints in China (negative, confidence: 75)
• Regulatory scrutiny of App Store practices (negative, confidence: 70)`

	cannedSummary = `Apple reported strong Q2 results with revenue of $97.3 billion, up 5% year-over-year. The company exceeded expectations across all major product categories, with iPhone revenue growing 7% and Services reaching a new record. Gross margins improved to 45.2%, reflecting favorable product mix and operational efficiencies.`

	cannedExpert = `Expert Analysis:
- Revenue: $97.3B (+5% YoY)
- EPS: $1.53 (+9% YoY)
- Gross Margin: 45.2%
- Services Growth: 12% YoY

Key Insights:
- Strong iPhone performance despite supply constraints
- Services ecosystem continues to expand
- China market shows resilience`
)

// CannedCompletion returns the deterministic offline response for a prompt,
// selected by the analytical intent the prompt expresses.
func CannedCompletion(prompt string) string {
	lower := strings.ToLower(prompt)

	// "expert" is checked first: the expert query also mentions factors,
	// which would otherwise shadow it.
	switch {
	case strings.Contains(lower, "expert"):
		return cannedExpert
	case strings.Contains(lower, "summary") || strings.Contains(lower, "jargon-free"):
		return cannedSummary
	case strings.Contains(lower, "bullet") || strings.Contains(lower, "factor"):
		return cannedBullets
	default:
		return "Offline response for: " + firstLine(prompt)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// OfflineLanguageModel is the deterministic offline substitute for the
// completion capability. It never touches the network.
type OfflineLanguageModel struct{}

// NewOfflineLanguageModel creates the offline completion substitute.
func NewOfflineLanguageModel() *OfflineLanguageModel {
	return &OfflineLanguageModel{}
}

// Complete returns the canned response for the last user message.
func (m *OfflineLanguageModel) Complete(ctx context.Context, messages []interfaces.Message, temperature float32, maxTokens int) (string, error) {
	prompt := ""
	for _, msg := range messages {
		if msg.Role == "user" {
			prompt = msg.Content
		}
	}
	return CannedCompletion(prompt), nil
}

// Mode returns LLMModeOffline.
func (m *OfflineLanguageModel) Mode() interfaces.LLMMode {
	return interfaces.LLMModeOffline
}

// Close is a no-op.
func (m *OfflineLanguageModel) Close() error {
	return nil
}

// offlineEmbeddingDimension matches the ada-002 vector length so offline and
// cloud embeddings are interchangeable downstream.
const offlineEmbeddingDimension = 1536

// OfflineEmbeddingClient returns a constant vector for every input. All
// texts embed identically, so retrieval degrades to the pure index
// tie-break ordering.
type OfflineEmbeddingClient struct {
	dimension int
}

// NewOfflineEmbeddingClient creates the offline embedding substitute.
func NewOfflineEmbeddingClient() *OfflineEmbeddingClient {
	return &OfflineEmbeddingClient{dimension: offlineEmbeddingDimension}
}

// Embed returns one constant vector per input text.
func (c *OfflineEmbeddingClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vec := make([]float32, c.dimension)
		for j := range vec {
			vec[j] = 0.1
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// Dimension returns the embedding vector length.
func (c *OfflineEmbeddingClient) Dimension() int {
	return c.dimension
}

// Mode returns LLMModeOffline.
func (c *OfflineEmbeddingClient) Mode() interfaces.LLMMode {
	return interfaces.LLMModeOffline
}
