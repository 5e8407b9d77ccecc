package llm

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/calldigest/internal/common"
	"github.com/ternarybob/calldigest/internal/interfaces"
)

// NewLanguageModel composes the completion capability from configuration.
// When no credential is configured for the selected provider, the
// deterministic offline substitute is returned instead; callers receive
// whichever implementation was composed and never branch on configuration.
func NewLanguageModel(config *common.Config, logger arbor.ILogger) interfaces.LanguageModel {
	switch config.LLM.Provider {
	case "claude":
		model, err := NewClaudeLanguageModel(&config.Claude, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Claude unavailable, using offline language model")
			return NewOfflineLanguageModel()
		}
		logger.Info().Str("model", config.Claude.Model).Msg("Using Claude language model")
		return model

	case "openai":
		model, err := NewOpenAILanguageModel(&config.OpenAI, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("OpenAI unavailable, using offline language model")
			return NewOfflineLanguageModel()
		}
		logger.Info().Str("model", config.OpenAI.Model).Msg("Using OpenAI language model")
		return model

	default:
		logger.Info().Msg("Using offline language model")
		return NewOfflineLanguageModel()
	}
}

// NewEmbeddingClient composes the embedding capability from configuration.
// OpenAI is the only cloud embedding provider; without a key the offline
// constant-vector substitute is used.
func NewEmbeddingClient(config *common.Config, logger arbor.ILogger) interfaces.EmbeddingClient {
	if config.LLM.Provider == "offline" {
		logger.Info().Msg("Using offline embedding client")
		return NewOfflineEmbeddingClient()
	}

	client, err := NewOpenAIEmbeddingClient(&config.OpenAI, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("OpenAI embeddings unavailable, using offline embedding client")
		return NewOfflineEmbeddingClient()
	}

	logger.Info().Str("model", config.OpenAI.EmbeddingModel).Msg("Using OpenAI embedding client")
	return client
}
