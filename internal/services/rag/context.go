package rag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ternarybob/calldigest/internal/models"
)

// Context focus tags. Each tier selects one; the focus picks the
// chunk-selection strategy used when building the prompt context.
const (
	FocusFinancialMetrics = "financial_metrics"
	FocusGeneral          = "general"
	// FocusDetailedAnalysis has no distinct filter; the builder treats it
	// as general.
	FocusDetailedAnalysis = "detailed_analysis"
)

// financialKeywords selects chunks for the financial_metrics focus
// (case-insensitive substring match).
var financialKeywords = []string{"revenue", "earnings", "eps", "margin", "guidance", "growth"}

const (
	maxFinancialChunks = 3
	maxGeneralChunks   = 5
)

// BuildContext assembles the bounded textual context for a prompt. Selection
// is positional, not similarity-ranked: the financial_metrics focus keeps the
// first 3 keyword-matching chunks in original order, every other focus keeps
// the first 5 chunks in original order. Market data, when supplied, is
// appended as a second block. Blocks are joined with a blank line.
func BuildContext(chunks []models.Chunk, marketData map[string]interface{}, focus string) string {
	var parts []string

	selected := selectChunks(chunks, focus)
	if len(selected) > 0 {
		texts := make([]string, len(selected))
		for i, c := range selected {
			texts[i] = c.Text
		}
		parts = append(parts, "TRANSCRIPT EXCERPTS:\n"+strings.Join(texts, "\n\n"))
	}

	if len(marketData) > 0 {
		parts = append(parts, "MARKET DATA:\n"+formatMarketData(marketData))
	}

	return strings.Join(parts, "\n\n")
}

// selectChunks applies the focus-specific selection strategy.
func selectChunks(chunks []models.Chunk, focus string) []models.Chunk {
	if focus == FocusFinancialMetrics {
		var matched []models.Chunk
		for _, chunk := range chunks {
			lower := strings.ToLower(chunk.Text)
			for _, keyword := range financialKeywords {
				if strings.Contains(lower, keyword) {
					matched = append(matched, chunk)
					break
				}
			}
			if len(matched) == maxFinancialChunks {
				break
			}
		}
		return matched
	}

	if len(chunks) > maxGeneralChunks {
		return chunks[:maxGeneralChunks]
	}
	return chunks
}

// formatMarketData renders each top-level key: scalars as "key: value",
// nested mappings under their key. Keys are sorted so the rendering is
// deterministic. List values are skipped.
func formatMarketData(marketData map[string]interface{}) string {
	keys := make([]string, 0, len(marketData))
	for k := range marketData {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		switch v := marketData[k].(type) {
		case int, int64, float32, float64, string, bool:
			lines = append(lines, fmt.Sprintf("%s: %v", k, v))
		case map[string]interface{}:
			lines = append(lines, fmt.Sprintf("%s: %v", k, v))
		}
	}

	return strings.Join(lines, "\n")
}
