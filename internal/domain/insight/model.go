// internal/domain/insight/model.go

package insight

// Sentiment labels used across analyses.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// ContentAnalysis is the structured insight object produced for one
// piece of content. It carries no identity or lifecycle beyond the
// response it is returned in.
type ContentAnalysis struct {
	Sentiment            string   `json:"sentiment"`
	Confidence           float64  `json:"confidence"`
	Topics               []string `json:"topics"`
	Keywords             []string `json:"keywords"`
	Recommendations      []string `json:"recommendations"`
	EngagementPrediction float64  `json:"engagement_prediction"`
	OptimalPostingTime   string   `json:"optimal_posting_time,omitempty"`
	TargetAudience       string   `json:"target_audience,omitempty"`
}

// Recommendation is one actionable suggestion derived from performance
// data.
type Recommendation struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Impact      string  `json:"impact,omitempty"`
	Effort      string  `json:"effort,omitempty"`
	Reasoning   string  `json:"reasoning,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
}

// SentimentBreakdown splits sentiment into percentage shares.
type SentimentBreakdown struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// SentimentAnalysis summarizes sentiment across a content history.
type SentimentAnalysis struct {
	Overall   string             `json:"overall"`
	Score     float64            `json:"score"`
	Breakdown SentimentBreakdown `json:"breakdown"`
	Emotions  []string           `json:"emotions"`
}

// HistoryItem is one entry of the content history fed into sentiment
// trend analysis and engagement prediction.
type HistoryItem struct {
	Content    string `json:"content"`
	Engagement int    `json:"engagement"`
	Sentiment  string `json:"sentiment"`
}

// FallbackAnalysis is the fixed analysis returned when the upstream
// model is unreachable. Clients depend on these exact values; do not
// vary them.
func FallbackAnalysis() ContentAnalysis {
	return ContentAnalysis{
		Sentiment:            SentimentNeutral,
		Confidence:           0.5,
		Topics:               []string{"general"},
		Keywords:             []string{},
		Recommendations:      []string{"Consider adding more specific content"},
		EngagementPrediction: 50,
	}
}

// FallbackRecommendations is the fixed recommendation list returned
// when the upstream model is unreachable.
func FallbackRecommendations() []Recommendation {
	return []Recommendation{
		{Title: "Focus on creating more engaging content"},
		{Title: "Post during peak engagement hours"},
		{Title: "Use relevant hashtags"},
		{Title: "Include visual content"},
		{Title: "Engage with your audience"},
	}
}

// FallbackSentiment is the fixed sentiment summary returned when the
// upstream model is unreachable.
func FallbackSentiment() SentimentAnalysis {
	return SentimentAnalysis{
		Overall: SentimentNeutral,
		Score:   0.5,
		Breakdown: SentimentBreakdown{
			Positive: 33,
			Neutral:  34,
			Negative: 33,
		},
		Emotions: []string{"neutral"},
	}
}
