// internal/config/config_test.go

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CorsOrigins)

	assert.False(t, cfg.Database.Enabled())
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)

	assert.Equal(t, "contentanalytics", cfg.Social.DefaultTwitterAccount)
	assert.Equal(t, "content-analytics-platform", cfg.Social.DefaultLinkedInAccount)
	assert.Equal(t, "contentanalytics", cfg.Social.DefaultInstagramAccount)
	assert.Equal(t, 10*time.Second, cfg.Social.RequestTimeout)

	assert.False(t, cfg.AI.Enabled())
	assert.Equal(t, "gpt-4-turbo-preview", cfg.AI.Model)
	assert.Equal(t, "https://api.openai.com/v1", cfg.AI.APIURL)

	assert.Equal(t, 30*time.Second, cfg.Realtime.AnalyticsInterval)
	assert.Equal(t, 10*time.Second, cfg.Realtime.TrackingInterval)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("SERVER_CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("DATABASE_URL", "postgres://localhost/pulse")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("REALTIME_ANALYTICS_INTERVAL", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CorsOrigins)
	assert.True(t, cfg.Database.Enabled())
	assert.True(t, cfg.AI.Enabled())
	assert.Equal(t, 5*time.Second, cfg.Realtime.AnalyticsInterval)
}

func TestLoadRejectsBadIntervals(t *testing.T) {
	t.Setenv("REALTIME_TRACKING_INTERVAL", "-1s")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadIgnoresUnparseableValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("SOCIAL_REQUEST_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Social.RequestTimeout)
}
