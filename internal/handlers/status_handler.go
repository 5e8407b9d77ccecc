package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/calldigest/internal/common"
	"github.com/ternarybob/calldigest/internal/interfaces"
	"github.com/ternarybob/calldigest/internal/services/analysis"
)

// StatusHandler handles HTTP requests for application status
type StatusHandler struct {
	config          *common.Config
	model           interfaces.LanguageModel
	embedder        interfaces.EmbeddingClient
	analysisService *analysis.Service
	logger          arbor.ILogger
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(config *common.Config, model interfaces.LanguageModel, embedder interfaces.EmbeddingClient, analysisService *analysis.Service, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{
		config:          config,
		model:           model,
		embedder:        embedder,
		analysisService: analysisService,
		logger:          logger,
	}
}

// GetStatusHandler handles GET /api/status
func (h *StatusHandler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	analysisCount := 0
	if calls, err := h.analysisService.List(""); err == nil {
		analysisCount = len(calls)
	} else {
		h.logger.Warn().Err(err).Msg("Failed to count stored analyses")
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version":        common.GetVersion(),
		"environment":    h.config.Environment,
		"llm_provider":   h.config.LLM.Provider,
		"llm_mode":       string(h.model.Mode()),
		"embedding_mode": string(h.embedder.Mode()),
		"analyses":       analysisCount,
	})
}
