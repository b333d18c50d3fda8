// internal/server/handlers/analytics_test.go

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/adapter/storage"
	domain "pulse/internal/domain/social"
	"pulse/internal/service/social"
)

type fakeSnapshotReader struct {
	snapshots []storage.Snapshot
	lastUser  string
}

func (f *fakeSnapshotReader) RecentUpdates(ctx context.Context, userID string, limit int) ([]storage.Snapshot, error) {
	f.lastUser = userID
	return f.snapshots, nil
}

func testAnalyticsHandler(snapshots SnapshotReader) *AnalyticsHandler {
	aggregator := social.NewAggregator(social.NewTwitterClient(social.TwitterCredentials{}, 0))
	return NewAnalyticsHandler(aggregator, snapshots)
}

func TestGetAnalyticsBaseline(t *testing.T) {
	h := testAnalyticsHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/analytics", nil)
	rec := httptest.NewRecorder()
	h.GetAnalytics(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Analytics data retrieved successfully", body["message"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "7d", data["period"])
	assert.NotContains(t, data, "realTimeData")
	assert.NotContains(t, data, "history")

	overview := data["overview"].(map[string]interface{})
	assert.Equal(t, 24500.0, overview["totalEngagement"])
	assert.Equal(t, 4.2, overview["engagementRate"])

	performance := data["performance"].([]interface{})
	assert.Len(t, performance, 7)

	platforms := data["platforms"].([]interface{})
	assert.Len(t, platforms, 5)
}

func TestGetAnalyticsWithAccounts(t *testing.T) {
	h := testAnalyticsHandler(nil)

	accounts := url.QueryEscape(`{"twitter": "acme"}`)
	req := httptest.NewRequest(http.MethodGet, "/analytics?period=30d&accounts="+accounts, nil)
	rec := httptest.NewRecorder()
	h.GetAnalytics(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	data := body["data"].(map[string]interface{})

	assert.Equal(t, "30d", data["period"])
	assert.Equal(t, true, data["realTimeData"])
	assert.Positive(t, data["total_posts"])
	assert.NotEmpty(t, data["platform_metrics"])
}

func TestGetAnalyticsBadAccountsIgnored(t *testing.T) {
	h := testAnalyticsHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/analytics?accounts=not-json", nil)
	rec := httptest.NewRecorder()
	h.GetAnalytics(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	data := body["data"].(map[string]interface{})
	assert.NotContains(t, data, "realTimeData")
}

func TestGetAnalyticsHistory(t *testing.T) {
	reader := &fakeSnapshotReader{
		snapshots: []storage.Snapshot{
			{
				AnalyticsUpdate: domain.AnalyticsUpdate{TotalEngagement: 1000, TotalReach: 5000},
				CreatedAt:       time.Now(),
			},
		},
	}
	h := testAnalyticsHandler(reader)

	req := httptest.NewRequest(http.MethodGet, "/analytics?userId=user-1", nil)
	rec := httptest.NewRecorder()
	h.GetAnalytics(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	data := body["data"].(map[string]interface{})

	history := data["history"].([]interface{})
	require.Len(t, history, 1)
	assert.Equal(t, "user-1", reader.lastUser)
}

func TestIngestAnalytics(t *testing.T) {
	h := testAnalyticsHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/analytics",
		strings.NewReader(`{"event": "page_view"}`))
	rec := httptest.NewRecorder()
	h.IngestAnalytics(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Analytics data processed successfully", body["message"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestIngestAnalyticsBadBody(t *testing.T) {
	h := testAnalyticsHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/analytics", strings.NewReader(`not json`))
	rec := httptest.NewRecorder()
	h.IngestAnalytics(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to process analytics data", body["error"])
}
