// internal/server/handlers/analytics.go

package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"pulse/internal/adapter/storage"
	"pulse/internal/service/social"
)

// SnapshotReader reads persisted analytics snapshots. It is optional;
// without one the history section is omitted.
type SnapshotReader interface {
	RecentUpdates(ctx context.Context, userID string, limit int) ([]storage.Snapshot, error)
}

type analyticsOverview struct {
	TotalEngagement  int     `json:"totalEngagement"`
	TotalReach       int     `json:"totalReach"`
	TotalImpressions int     `json:"totalImpressions"`
	EngagementRate   float64 `json:"engagementRate"`
	Shares           int     `json:"shares"`
	Comments         int     `json:"comments"`
}

type performancePoint struct {
	Date        string `json:"date"`
	Engagement  int    `json:"engagement"`
	Reach       int    `json:"reach"`
	Impressions int    `json:"impressions"`
}

type platformShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// Baseline dashboard series served until enough history accumulates.
var (
	baselineOverview = analyticsOverview{
		TotalEngagement:  24500,
		TotalReach:       156200,
		TotalImpressions: 892100,
		EngagementRate:   4.2,
		Shares:           3200,
		Comments:         1800,
	}

	baselinePerformance = []performancePoint{
		{Date: "2024-01-01", Engagement: 2400, Reach: 1800, Impressions: 3200},
		{Date: "2024-01-02", Engagement: 1398, Reach: 2210, Impressions: 2800},
		{Date: "2024-01-03", Engagement: 9800, Reach: 2290, Impressions: 3900},
		{Date: "2024-01-04", Engagement: 3908, Reach: 2000, Impressions: 4800},
		{Date: "2024-01-05", Engagement: 4800, Reach: 2181, Impressions: 3800},
		{Date: "2024-01-06", Engagement: 3800, Reach: 2500, Impressions: 4300},
		{Date: "2024-01-07", Engagement: 4300, Reach: 2100, Impressions: 4100},
	}

	baselinePlatforms = []platformShare{
		{Name: "Twitter", Value: 35, Color: "#1DA1F2"},
		{Name: "LinkedIn", Value: 25, Color: "#0077B5"},
		{Name: "Instagram", Value: 20, Color: "#E4405F"},
		{Name: "Facebook", Value: 15, Color: "#1877F2"},
		{Name: "Other", Value: 5, Color: "#6B7280"},
	}
)

// AnalyticsHandler handles dashboard analytics requests
type AnalyticsHandler struct {
	aggregator *social.Aggregator
	snapshots  SnapshotReader
}

// NewAnalyticsHandler creates a new analytics handler. snapshots may
// be nil.
func NewAnalyticsHandler(aggregator *social.Aggregator, snapshots SnapshotReader) *AnalyticsHandler {
	return &AnalyticsHandler{
		aggregator: aggregator,
		snapshots:  snapshots,
	}
}

// GetAnalytics returns the dashboard analytics view. When the accounts
// parameter carries a platform-to-account JSON object, live aggregate
// data is merged over the baseline.
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	period := query.Get("period")
	if period == "" {
		period = "7d"
	}

	data := map[string]interface{}{
		"overview":    baselineOverview,
		"performance": baselinePerformance,
		"platforms":   baselinePlatforms,
		"lastUpdated": time.Now(),
		"period":      period,
		"platform":    query.Get("platform"),
	}

	if accountsParam := query.Get("accounts"); accountsParam != "" {
		var accounts social.Accounts
		if err := json.Unmarshal([]byte(accountsParam), &accounts); err != nil {
			log.Printf("Error parsing accounts parameter: %v", err)
		} else {
			result, _ := h.aggregator.Aggregate(r.Context(), accounts, 10)
			data["total_posts"] = result.TotalPosts
			data["total_engagement"] = result.TotalEngagement
			data["total_reach"] = result.TotalReach
			data["platform_metrics"] = result.PlatformMetrics
			data["recent_posts"] = result.RecentPosts
			data["realTimeData"] = true
		}
	}

	if userID := query.Get("userId"); userID != "" && h.snapshots != nil {
		history, err := h.snapshots.RecentUpdates(r.Context(), userID, 20)
		if err != nil {
			log.Printf("Error loading analytics history for %s: %v", userID, err)
		} else {
			data["history"] = history
		}
	}

	respondSuccess(w, http.StatusOK, data, "Analytics data retrieved successfully")
}

// IngestAnalytics accepts client-side analytics events.
func (h *AnalyticsHandler) IngestAnalytics(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondFailure(w, http.StatusInternalServerError, "Failed to process analytics data", err)
		return
	}

	log.Printf("Received analytics data: %v", body)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Analytics data processed successfully",
		"timestamp": time.Now(),
	})
}
