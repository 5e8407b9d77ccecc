package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/calldigest/internal/interfaces"
	"github.com/ternarybob/calldigest/internal/services/analysis"
)

// AnalysisHandler handles transcript ingestion and analysis retrieval.
type AnalysisHandler struct {
	analysisService *analysis.Service
	reportService   interfaces.ReportService
	logger          arbor.ILogger
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(analysisService *analysis.Service, reportService interfaces.ReportService, logger arbor.ILogger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		reportService:   reportService,
		logger:          logger,
	}
}

// ingestRequest is the POST /api/ingest body.
type ingestRequest struct {
	Ticker     string `json:"ticker"`
	Period     string `json:"period"`
	Transcript string `json:"transcript"`
}

// retrieveRequest is the POST /api/analysis/{id}/retrieve body.
type retrieveRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// IngestHandler handles POST /api/ingest
func (h *AnalysisHandler) IngestHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Ticker) == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required")
		return
	}
	if strings.TrimSpace(req.Transcript) == "" {
		WriteError(w, http.StatusBadRequest, "transcript is required")
		return
	}

	call, err := h.analysisService.Ingest(r.Context(), req.Ticker, req.Period, req.Transcript)
	if err != nil {
		h.logger.Error().Err(err).Str("ticker", req.Ticker).Msg("Failed to ingest transcript")
		WriteError(w, http.StatusInternalServerError, "Failed to analyze transcript")
		return
	}

	WriteJSON(w, http.StatusCreated, call)
}

// ListHandler handles GET /api/analysis with an optional ticker filter
func (h *AnalysisHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := r.URL.Query().Get("ticker")

	calls, err := h.analysisService.List(ticker)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list analyses")
		WriteError(w, http.StatusInternalServerError, "Failed to list analyses")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"analyses": calls,
		"count":    len(calls),
	})
}

// GetHandler handles GET /api/analysis/{id}
func (h *AnalysisHandler) GetHandler(w http.ResponseWriter, r *http.Request, id string) {
	call, err := h.analysisService.Get(id)
	if err != nil {
		if err == interfaces.ErrAnalysisNotFound {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("Analysis not found: %s", id))
			return
		}
		h.logger.Error().Err(err).Str("id", id).Msg("Failed to get analysis")
		WriteError(w, http.StatusInternalServerError, "Failed to get analysis")
		return
	}

	WriteJSON(w, http.StatusOK, call)
}

// DeleteHandler handles DELETE /api/analysis/{id}
func (h *AnalysisHandler) DeleteHandler(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.analysisService.Delete(id); err != nil {
		if err == interfaces.ErrAnalysisNotFound {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("Analysis not found: %s", id))
			return
		}
		h.logger.Error().Err(err).Str("id", id).Msg("Failed to delete analysis")
		WriteError(w, http.StatusInternalServerError, "Failed to delete analysis")
		return
	}

	WriteSuccess(w, fmt.Sprintf("Deleted analysis %s", id))
}

// ReportHandler handles GET /api/analysis/{id}/report and streams a PDF
func (h *AnalysisHandler) ReportHandler(w http.ResponseWriter, r *http.Request, id string) {
	call, err := h.analysisService.Get(id)
	if err != nil {
		if err == interfaces.ErrAnalysisNotFound {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("Analysis not found: %s", id))
			return
		}
		h.logger.Error().Err(err).Str("id", id).Msg("Failed to get analysis for report")
		WriteError(w, http.StatusInternalServerError, "Failed to get analysis")
		return
	}

	pdf, err := h.reportService.RenderAnalysisReport(call)
	if err != nil {
		h.logger.Error().Err(err).Str("id", id).Msg("Failed to render report")
		WriteError(w, http.StatusInternalServerError, "Failed to render report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", id))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// RetrieveHandler handles POST /api/analysis/{id}/retrieve. It ranks the
// stored transcript's chunks against an ad-hoc query, mainly useful for
// inspecting what the tier contexts would see.
func (h *AnalysisHandler) RetrieveHandler(w http.ResponseWriter, r *http.Request, id string) {
	var req retrieveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		WriteError(w, http.StatusBadRequest, "query is required")
		return
	}

	chunks, err := h.analysisService.Retrieve(r.Context(), id, req.Query, req.TopK)
	if err != nil {
		if err == interfaces.ErrAnalysisNotFound {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("Analysis not found: %s", id))
			return
		}
		h.logger.Error().Err(err).Str("id", id).Msg("Failed to retrieve chunks")
		WriteError(w, http.StatusInternalServerError, "Failed to retrieve chunks")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"query":  req.Query,
		"chunks": chunks,
		"count":  len(chunks),
	})
}
