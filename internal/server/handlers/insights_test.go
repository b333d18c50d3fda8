// internal/server/handlers/insights_test.go

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "pulse/internal/domain/insight"
)

func TestGetInsightsDefaults(t *testing.T) {
	h := NewInsightsHandler(&fakeAnalyzer{enabled: false})

	req := httptest.NewRequest(http.MethodGet, "/ai-insights", nil)
	rec := httptest.NewRecorder()
	h.GetInsights(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "AI insights generated successfully", body["message"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "all", data["contentType"])
	assert.Equal(t, "gpt-4-turbo", data["modelVersion"])
	assert.NotContains(t, data, "contentAnalysis")
	assert.NotContains(t, data, "realTimeAnalysis")

	sentiment := data["sentiment"].(map[string]interface{})
	assert.Equal(t, "positive", sentiment["overall"])
	assert.Equal(t, 0.78, sentiment["score"])

	assert.Len(t, data["topics"].([]interface{}), 4)
	assert.Len(t, data["recommendations"].([]interface{}), 3)

	predictions := data["predictions"].(map[string]interface{})
	assert.Equal(t, 28500.0, predictions["nextWeekEngagement"])
}

func TestGetInsightsWithContent(t *testing.T) {
	analyzer := &fakeAnalyzer{
		enabled:  true,
		analysis: domain.ContentAnalysis{Sentiment: "positive", Confidence: 0.9},
	}
	h := NewInsightsHandler(analyzer)

	req := httptest.NewRequest(http.MethodGet, "/ai-insights?content=hello&platform=twitter&type=sentiment", nil)
	rec := httptest.NewRecorder()
	h.GetInsights(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	data := body["data"].(map[string]interface{})

	assert.Equal(t, "sentiment", data["contentType"])
	assert.Equal(t, true, data["realTimeAnalysis"])

	analysis := data["contentAnalysis"].(map[string]interface{})
	assert.Equal(t, "positive", analysis["sentiment"])
	assert.Equal(t, "twitter", analyzer.lastPlatform)
}

func TestGetInsightsContentIgnoredWhenDisabled(t *testing.T) {
	h := NewInsightsHandler(&fakeAnalyzer{enabled: false})

	req := httptest.NewRequest(http.MethodGet, "/ai-insights?content=hello", nil)
	rec := httptest.NewRecorder()
	h.GetInsights(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	data := body["data"].(map[string]interface{})
	assert.NotContains(t, data, "contentAnalysis")
}

func TestProcessContent(t *testing.T) {
	h := NewInsightsHandler(&fakeAnalyzer{})

	req := httptest.NewRequest(http.MethodPost, "/ai-insights",
		strings.NewReader(`{"content": "launch post"}`))
	rec := httptest.NewRecorder()
	h.ProcessContent(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Contains(t, []interface{}{"positive", "negative"}, data["sentiment"])

	confidence := data["confidence"].(float64)
	assert.GreaterOrEqual(t, confidence, 0.7)
	assert.LessOrEqual(t, confidence, 1.0)

	assert.Len(t, data["topics"].([]interface{}), 3)
	assert.Len(t, data["recommendations"].([]interface{}), 3)
}

func TestProcessContentBadBody(t *testing.T) {
	h := NewInsightsHandler(&fakeAnalyzer{})

	req := httptest.NewRequest(http.MethodPost, "/ai-insights", strings.NewReader(`not json`))
	rec := httptest.NewRecorder()
	h.ProcessContent(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, "Failed to analyze content", body["error"])
}
