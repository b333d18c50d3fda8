// internal/service/social/clients_test.go

package social

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "pulse/internal/domain/social"
)

func TestTwitterClientUnconfiguredFallsBack(t *testing.T) {
	c := NewTwitterClient(TwitterCredentials{}, time.Second)

	assert.False(t, c.Configured())

	posts, src := c.FetchPosts(context.Background(), "acme", 5)
	assert.Len(t, posts, 5)
	assert.Equal(t, SourcePlaceholder, src.Kind)
	assert.Equal(t, "Mock Data (API not configured)", src.Label())

	metrics, src := c.FetchMetrics(context.Background(), "acme")
	assert.Equal(t, domain.PlatformTwitter, metrics.Platform)
	assert.Equal(t, SourcePlaceholder, src.Kind)
}

func TestTwitterClientCredentialSelection(t *testing.T) {
	assert.True(t, NewTwitterClient(TwitterCredentials{BearerToken: "b"}, time.Second).Configured())
	assert.True(t, NewTwitterClient(TwitterCredentials{
		ConsumerKey:    "k",
		ConsumerSecret: "s",
		AccessToken:    "a",
		AccessSecret:   "as",
	}, time.Second).Configured())
}

func TestLinkedInClientFetchesUpdates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		assert.Equal(t, "/organizations/acme-co/updates", r.URL.Path)

		w.Write([]byte(`{"elements": [{
			"id": "u1",
			"author": "urn:li:organization:1",
			"timestamp": 1704067200000,
			"numLikes": 12,
			"numShares": 3,
			"numComments": 4,
			"updateContent": {"companyStatusUpdate": {"share": {"commentary": "Hiring Go engineers #Hiring"}}}
		}]}`))
	}))
	defer srv.Close()

	c := NewLinkedInClient("token", time.Second)
	c.baseURL = srv.URL

	posts, src := c.FetchPosts(context.Background(), "acme-co", 10)
	require.Len(t, posts, 1)
	assert.Equal(t, SourceLive, src.Kind)
	assert.Equal(t, "u1", posts[0].ID)
	assert.Equal(t, domain.PlatformLinkedIn, posts[0].Platform)
	assert.Equal(t, 12, posts[0].Engagement.Likes)
	assert.Equal(t, []string{"Hiring"}, posts[0].Hashtags)
	assert.Equal(t, time.UnixMilli(1704067200000).Unix(), posts[0].PublishedAt.Unix())
}

func TestLinkedInClientErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewLinkedInClient("token", time.Second)
	c.baseURL = srv.URL

	posts, src := c.FetchPosts(context.Background(), "acme-co", 3)
	assert.Len(t, posts, 3)
	assert.Equal(t, SourcePlaceholder, src.Kind)
	assert.Contains(t, src.Reason, "401")
}

func TestInstagramClientFetchesMedia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/12345/media", r.URL.Path)
		assert.Equal(t, "token", r.URL.Query().Get("access_token"))

		w.Write([]byte(`{"data": [{
			"id": "m1",
			"caption": "New office tour #BehindTheScenes",
			"media_type": "IMAGE",
			"media_url": "https://cdn.example/m1.jpg",
			"permalink": "https://instagram.com/p/m1",
			"timestamp": "2024-02-01T10:00:00+0000",
			"like_count": 88,
			"comments_count": 7
		}]}`))
	}))
	defer srv.Close()

	c := NewInstagramClient("token", time.Second)
	c.baseURL = srv.URL

	posts, src := c.FetchPosts(context.Background(), "12345", 10)
	require.Len(t, posts, 1)
	assert.Equal(t, SourceLive, src.Kind)
	assert.Equal(t, 88, posts[0].Engagement.Likes)
	assert.Zero(t, posts[0].Engagement.Shares)
	assert.Equal(t, []string{"https://cdn.example/m1.jpg"}, posts[0].Media)
	assert.Equal(t, []string{"BehindTheScenes"}, posts[0].Hashtags)
	assert.False(t, posts[0].PublishedAt.IsZero())
}

func TestInstagramClientUnconfiguredFallsBack(t *testing.T) {
	c := NewInstagramClient("", time.Second)

	metrics, src := c.FetchMetrics(context.Background(), "12345")
	assert.Equal(t, domain.PlatformInstagram, metrics.Platform)
	assert.Equal(t, SourcePlaceholder, src.Kind)
	assert.Equal(t, "access token not configured", src.Reason)
}
