// internal/server/handlers/content.go

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	domain "pulse/internal/domain/insight"
)

const modelVersion = "gpt-4-turbo"

// ContentAnalyzer is the analysis surface the HTTP layer needs.
type ContentAnalyzer interface {
	Enabled() bool
	Analyze(ctx context.Context, content, platform string) domain.ContentAnalysis
	Recommend(ctx context.Context, performance interface{}, platform string) []domain.Recommendation
}

// ContentHandler handles content analysis requests
type ContentHandler struct {
	analyzer ContentAnalyzer
}

// NewContentHandler creates a new content handler
func NewContentHandler(analyzer ContentAnalyzer) *ContentHandler {
	return &ContentHandler{
		analyzer: analyzer,
	}
}

// AnalyzeContent analyzes the posted content and generates
// recommendations for it.
func (h *ContentHandler) AnalyzeContent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content  string `json:"content"`
		Platform string `json:"platform"`
		UserID   string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Content == "" {
		respondFailure(w, http.StatusBadRequest, "Content is required", nil)
		return
	}

	if !h.analyzer.Enabled() {
		respondFailure(w, http.StatusInternalServerError, "OpenAI API key not configured", nil)
		return
	}

	analysis := h.analyzer.Analyze(r.Context(), body.Content, body.Platform)

	platform := body.Platform
	if platform == "" {
		platform = "general"
	}
	recommendations := h.analyzer.Recommend(r.Context(), map[string]interface{}{
		"content":  body.Content,
		"platform": body.Platform,
		"analysis": analysis,
	}, platform)

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"analysis":        analysis,
		"recommendations": recommendations,
		"timestamp":       time.Now(),
		"modelVersion":    modelVersion,
	}, "Content analyzed successfully")
}

// GetAnalysis analyzes content passed as a query parameter.
func (h *ContentHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	content := r.URL.Query().Get("content")
	if content == "" {
		respondFailure(w, http.StatusBadRequest, "Content parameter is required", nil)
		return
	}

	if !h.analyzer.Enabled() {
		respondFailure(w, http.StatusInternalServerError, "OpenAI API key not configured", nil)
		return
	}

	analysis := h.analyzer.Analyze(r.Context(), content, r.URL.Query().Get("platform"))

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"analysis":     analysis,
		"timestamp":    time.Now(),
		"modelVersion": modelVersion,
	}, "Content analyzed successfully")
}
