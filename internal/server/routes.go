package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Ingestion
	mux.HandleFunc("/api/ingest", s.app.AnalysisHandler.IngestHandler) // POST - ingest and analyze a transcript

	// API routes - Analyses
	mux.HandleFunc("/api/analysis", s.app.AnalysisHandler.ListHandler) // GET - list stored analyses
	mux.HandleFunc("/api/analysis/", s.handleAnalysisRoutes)           // GET/DELETE /{id}, GET /{id}/report, POST /{id}/retrieve

	// API routes - System
	mux.HandleFunc("/api/status", s.app.StatusHandler.GetStatusHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleAnalysisRoutes routes analysis requests to the appropriate handler
func (s *Server) handleAnalysisRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/analysis/")
	if path == "" {
		http.Error(w, "Analysis ID required", http.StatusBadRequest)
		return
	}

	// GET /api/analysis/{id}/report
	if strings.HasSuffix(path, "/report") {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimSuffix(path, "/report")
		s.app.AnalysisHandler.ReportHandler(w, r, id)
		return
	}

	// POST /api/analysis/{id}/retrieve
	if strings.HasSuffix(path, "/retrieve") {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimSuffix(path, "/retrieve")
		s.app.AnalysisHandler.RetrieveHandler(w, r, id)
		return
	}

	if strings.Contains(path, "/") {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.app.AnalysisHandler.GetHandler(w, r, path)
	case http.MethodDelete:
		s.app.AnalysisHandler.DeleteHandler(w, r, path)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
