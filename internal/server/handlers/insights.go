// internal/server/handlers/insights.go

package handlers

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"time"

	domain "pulse/internal/domain/insight"
)

// mockAIInsights is the canned insight set served while no per-user
// insight history exists.
var mockAIInsights = map[string]interface{}{
	"sentiment": map[string]interface{}{
		"overall": "positive",
		"score":   0.78,
		"breakdown": map[string]int{
			"positive": 78,
			"neutral":  15,
			"negative": 7,
		},
		"trend": "increasing",
	},
	"topics": []map[string]interface{}{
		{"name": "AI & Technology", "weight": 0.35, "sentiment": "positive"},
		{"name": "Marketing Strategy", "weight": 0.28, "sentiment": "positive"},
		{"name": "Content Creation", "weight": 0.22, "sentiment": "neutral"},
		{"name": "Social Media", "weight": 0.15, "sentiment": "positive"},
	},
	"recommendations": []map[string]interface{}{
		{
			"type":        "content",
			"title":       "Increase video content",
			"description": "Video posts show 2.5x higher engagement rates",
			"impact":      "high",
			"effort":      "medium",
			"confidence":  0.89,
		},
		{
			"type":        "timing",
			"title":       "Post more on LinkedIn",
			"description": "Your audience is most active on LinkedIn between 2-4 PM EST",
			"impact":      "medium",
			"effort":      "low",
			"confidence":  0.87,
		},
		{
			"type":        "engagement",
			"title":       "Use more hashtags",
			"description": "Posts with 3-5 hashtags perform 40% better",
			"impact":      "medium",
			"effort":      "low",
			"confidence":  0.82,
		},
	},
	"predictions": map[string]interface{}{
		"nextWeekEngagement": 28500,
		"confidence":         0.94,
		"factors": []string{
			"Recent positive sentiment trend",
			"Increased posting frequency",
			"Better content quality",
		},
	},
}

// InsightsHandler handles AI insight requests
type InsightsHandler struct {
	analyzer ContentAnalyzer
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(analyzer ContentAnalyzer) *InsightsHandler {
	return &InsightsHandler{
		analyzer: analyzer,
	}
}

// GetInsights returns the insight dashboard. When content is supplied
// and the analyzer is enabled, a live analysis is merged in.
func (h *InsightsHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	contentType := query.Get("type")
	if contentType == "" {
		contentType = "all"
	}
	platform := query.Get("platform")

	insights := make(map[string]interface{}, len(mockAIInsights)+6)
	for k, v := range mockAIInsights {
		insights[k] = v
	}
	insights["contentType"] = contentType
	insights["platform"] = platform
	insights["generatedAt"] = time.Now()
	insights["modelVersion"] = modelVersion

	if content := query.Get("content"); content != "" && h.analyzer.Enabled() {
		insights["contentAnalysis"] = h.analyzer.Analyze(r.Context(), content, platform)
		insights["realTimeAnalysis"] = true
	}

	respondSuccess(w, http.StatusOK, insights, "AI insights generated successfully")
}

// ProcessContent accepts content for asynchronous insight generation
// and acknowledges with a quick canned analysis.
func (h *InsightsHandler) ProcessContent(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondFailure(w, http.StatusInternalServerError, "Failed to analyze content", err)
		return
	}

	log.Printf("Processing content for AI insights: %v", body)

	sentiment := domain.SentimentNegative
	if rand.Float64() > 0.5 {
		sentiment = domain.SentimentPositive
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"sentiment":  sentiment,
			"confidence": rand.Float64()*0.3 + 0.7,
			"topics":     []string{"Technology", "Marketing", "Innovation"},
			"recommendations": []string{
				"Consider adding more visual content",
				"Post during peak engagement hours",
				"Use trending hashtags",
			},
		},
		"message":   "Content analyzed successfully",
		"timestamp": time.Now(),
	})
}
