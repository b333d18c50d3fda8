// internal/service/insight/analyzer.go

package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	domain "pulse/internal/domain/insight"
)

// System prompts for the analysis operations.
const (
	analyzeSystemPrompt   = "You are an expert social media analyst and content strategist. Provide accurate, actionable insights for content optimization."
	recommendSystemPrompt = "You are a data-driven content strategist. Provide specific, actionable recommendations based on performance data."
	predictSystemPrompt   = "You are an expert at predicting social media engagement. Provide accurate predictions based on content analysis and historical data."
	sentimentSystemPrompt = "You are an expert at analyzing sentiment trends in social media content."
)

// Config holds the upstream model settings.
type Config struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

// Analyzer produces content insights through an OpenAI-compatible chat
// completions endpoint. Every operation degrades to a fixed fallback
// when the upstream model is unreachable or returns garbage, so the
// analyzer itself never fails its callers.
type Analyzer struct {
	config     Config
	httpClient *http.Client
}

// NewAnalyzer creates a new content analyzer.
func NewAnalyzer(config Config) *Analyzer {
	return &Analyzer{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Enabled reports whether an upstream credential is configured.
func (a *Analyzer) Enabled() bool {
	return a.config.APIKey != ""
}

// Analyze produces a structured analysis for one piece of content. The
// platform hint is optional.
func (a *Analyzer) Analyze(ctx context.Context, content, platform string) domain.ContentAnalysis {
	if platform == "" {
		platform = "Unknown"
	}

	prompt := fmt.Sprintf(`Analyze the following social media content and provide detailed insights:

Content: %q
Platform: %s

Please provide a JSON response with the following structure:
{
  "sentiment": "positive|negative|neutral",
  "confidence": 0.0-1.0,
  "topics": ["topic1", "topic2"],
  "keywords": ["keyword1", "keyword2"],
  "recommendations": ["recommendation1", "recommendation2"],
  "engagement_prediction": 0-100,
  "optimal_posting_time": "suggestion if applicable",
  "target_audience": "audience description if applicable"
}

Focus on:
- Sentiment analysis with confidence score
- Key topics and themes
- SEO keywords and hashtags
- Engagement optimization recommendations
- Target audience identification
- Platform-specific best practices`, content, platform)

	reply, err := a.complete(ctx, analyzeSystemPrompt, prompt, 0.3, 1000)
	if err != nil {
		log.Printf("insight: analysis failed, using fallback: %v", err)
		return domain.FallbackAnalysis()
	}

	var analysis domain.ContentAnalysis
	if err := json.Unmarshal([]byte(reply), &analysis); err != nil {
		log.Printf("insight: analysis response not parseable, using fallback: %v", err)
		return domain.FallbackAnalysis()
	}

	analysis.EngagementPrediction = clamp(analysis.EngagementPrediction, 0, 100)
	return analysis
}

// Recommend generates actionable recommendations from performance
// data. The data is forwarded to the model as JSON.
func (a *Analyzer) Recommend(ctx context.Context, performance interface{}, platform string) []domain.Recommendation {
	data, err := json.Marshal(performance)
	if err != nil {
		log.Printf("insight: performance data not serializable, using fallback: %v", err)
		return domain.FallbackRecommendations()
	}

	prompt := fmt.Sprintf(`Based on the following content performance data, generate 5 specific, actionable recommendations for improvement:

Performance Data: %s
Platform: %s

Provide recommendations in this JSON format:
{
  "recommendations": [
    {
      "title": "Recommendation title",
      "description": "Detailed explanation",
      "impact": "high|medium|low",
      "effort": "high|medium|low",
      "reasoning": "Why this will help"
    }
  ]
}`, data, platform)

	reply, err := a.complete(ctx, recommendSystemPrompt, prompt, 0.4, 800)
	if err != nil {
		log.Printf("insight: recommendations failed, using fallback: %v", err)
		return domain.FallbackRecommendations()
	}

	var result struct {
		Recommendations []domain.Recommendation `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(reply), &result); err != nil {
		log.Printf("insight: recommendations response not parseable, using fallback: %v", err)
		return domain.FallbackRecommendations()
	}
	if len(result.Recommendations) == 0 {
		return domain.FallbackRecommendations()
	}

	return result.Recommendations
}

// PredictEngagement estimates an engagement rate between 0 and 100 for
// new content given a content history. Unparseable replies predict 50.
func (a *Analyzer) PredictEngagement(ctx context.Context, content, platform string, history []domain.HistoryItem) float64 {
	data, err := json.Marshal(history)
	if err != nil {
		return 50
	}

	prompt := fmt.Sprintf(`Predict the engagement rate for this content based on historical performance:

Content: %q
Platform: %s
Historical Performance: %s

Return only a number between 0-100 representing the predicted engagement rate.`, content, platform, data)

	reply, err := a.complete(ctx, predictSystemPrompt, prompt, 0.2, 50)
	if err != nil {
		log.Printf("insight: prediction failed, using default: %v", err)
		return 50
	}

	prediction, err := strconv.ParseFloat(strings.TrimSpace(reply), 64)
	if err != nil {
		return 50
	}

	return clamp(prediction, 0, 100)
}

// SentimentTrends summarizes sentiment across a content history.
func (a *Analyzer) SentimentTrends(ctx context.Context, history []domain.HistoryItem) domain.SentimentAnalysis {
	var sb strings.Builder
	for _, item := range history {
		fmt.Fprintf(&sb, "Content: %q | Engagement: %d | Sentiment: %s\n", item.Content, item.Engagement, item.Sentiment)
	}

	prompt := fmt.Sprintf(`Analyze the sentiment trends in this content history:

%s
Provide a JSON response with:
{
  "overall": "positive|negative|neutral",
  "score": 0.0-1.0,
  "breakdown": {
    "positive": percentage,
    "neutral": percentage,
    "negative": percentage
  },
  "emotions": ["emotion1", "emotion2"]
}`, sb.String())

	reply, err := a.complete(ctx, sentimentSystemPrompt, prompt, 0.3, 500)
	if err != nil {
		log.Printf("insight: sentiment trends failed, using fallback: %v", err)
		return domain.FallbackSentiment()
	}

	var analysis domain.SentimentAnalysis
	if err := json.Unmarshal([]byte(reply), &analysis); err != nil {
		log.Printf("insight: sentiment response not parseable, using fallback: %v", err)
		return domain.FallbackSentiment()
	}

	return analysis
}

// Chat completions wire types.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete sends one non-streaming chat completion and returns the
// first choice's content.
func (a *Analyzer) complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	if !a.Enabled() {
		return "", fmt.Errorf("API key not configured")
	}

	body, err := json.Marshal(chatRequest{
		Model: a.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(a.config.APIURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.config.APIKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach completion endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion endpoint returned status code %d", resp.StatusCode)
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty completion response")
	}

	return completion.Choices[0].Message.Content, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
