package rag

import (
	"context"
	"fmt"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/calldigest/internal/interfaces"
	"github.com/ternarybob/calldigest/internal/models"
	"github.com/ternarybob/calldigest/internal/services/llm"
)

// Engine issues the three fixed analytical queries for a transcript and
// parses the responses into an AnalysisResult. The tiers are mutually
// independent: they run concurrently, and a failed language model call
// degrades that tier to the deterministic offline response without touching
// its siblings.
type Engine struct {
	model        interfaces.LanguageModel
	classifier   SentimentClassifier
	expertParser ExpertParser
	temperature  float32
	maxTokens    int
	logger       arbor.ILogger
}

// NewEngine creates a tier engine. Temperature and maxTokens are forwarded
// to every completion call.
func NewEngine(model interfaces.LanguageModel, temperature float32, maxTokens int, logger arbor.ILogger) *Engine {
	return &Engine{
		model:        model,
		classifier:   NewKeywordSentimentClassifier(),
		expertParser: RawExpertParser{},
		temperature:  temperature,
		maxTokens:    maxTokens,
		logger:       logger,
	}
}

// tierTask binds one tier to its query and context focus.
type tierTask struct {
	tier  models.Tier
	query string
	focus string
}

var tierTasks = []tierTask{
	{models.TierA, tierAQuery, FocusFinancialMetrics},
	{models.TierB, tierBQuery, FocusGeneral},
	{models.TierC, tierCQuery, FocusDetailedAnalysis},
}

// Analyze runs the three tiers over the transcript chunks and optional
// market data. It always returns a complete result; per-tier statuses
// distinguish clean completions from degraded (offline-substituted) ones.
func (e *Engine) Analyze(ctx context.Context, chunks []models.Chunk, marketData map[string]interface{}) *models.AnalysisResult {
	responses := make([]string, len(tierTasks))
	statuses := make([]models.TierStatus, len(tierTasks))

	var wg sync.WaitGroup
	for i, task := range tierTasks {
		wg.Add(1)
		go func(i int, task tierTask) {
			defer wg.Done()
			responses[i], statuses[i] = e.runTier(ctx, task, chunks, marketData)
		}(i, task)
	}
	wg.Wait()

	result := &models.AnalysisResult{
		TierABullets: ParseBulletResponse(responses[0], e.classifier),
		TierBSummary: responses[1],
		TierCExpert:  e.expertParser.Parse(responses[2]),
		RawResponses: models.RawResponses{
			TierA: responses[0],
			TierB: responses[1],
			TierC: responses[2],
		},
		TierStatuses: map[models.Tier]models.TierStatus{
			models.TierA: statuses[0],
			models.TierB: statuses[1],
			models.TierC: statuses[2],
		},
	}

	e.logger.Info().
		Int("bullets", len(result.TierABullets)).
		Str("tier_a", string(statuses[0])).
		Str("tier_b", string(statuses[1])).
		Str("tier_c", string(statuses[2])).
		Msg("Completed tier analysis")

	return result
}

// runTier builds the context for one tier and calls the language model.
// On failure the canned offline response is substituted and the tier is
// marked degraded; a single failing call never aborts the other tiers.
func (e *Engine) runTier(ctx context.Context, task tierTask, chunks []models.Chunk, marketData map[string]interface{}) (string, models.TierStatus) {
	contextText := BuildContext(chunks, marketData, task.focus)
	prompt := fmt.Sprintf("Context:\n%s\n\nQuery: %s", contextText, task.query)

	messages := []interfaces.Message{
		{Role: "user", Content: prompt},
	}

	response, err := e.model.Complete(ctx, messages, e.temperature, e.maxTokens)
	if err != nil {
		e.logger.Error().
			Err(err).
			Str("tier", string(task.tier)).
			Msg("Language model call failed, substituting offline response")
		return llm.CannedCompletion(task.query), models.TierStatusDegraded
	}

	return response, models.TierStatusOK
}
