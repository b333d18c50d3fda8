// internal/service/social/client.go

package social

import (
	"context"
	"regexp"

	domain "pulse/internal/domain/social"
)

// SourceKind tells whether a fetch was served by the live platform API
// or by generated placeholder data.
type SourceKind string

const (
	SourceLive        SourceKind = "api"
	SourcePlaceholder SourceKind = "mock"
)

// Source describes where a fetch result came from. Reason is set when
// the result degraded to placeholder data, so degraded mode stays
// observable even though the fetch contract never fails.
type Source struct {
	Kind   SourceKind
	Reason string
}

// LiveSource marks a result served by the platform API.
func LiveSource() Source {
	return Source{Kind: SourceLive}
}

// PlaceholderSource marks a result substituted with placeholder data.
func PlaceholderSource(reason string) Source {
	return Source{Kind: SourcePlaceholder, Reason: reason}
}

// Label renders the source the way the HTTP metadata reports it.
func (s Source) Label() string {
	if s.Kind == SourceLive {
		return "API"
	}
	return "Mock Data (API not configured)"
}

// Client fetches recent posts and aggregate metrics for one account on
// one platform. Fetches never fail from the caller's point of view:
// when the platform is unreachable or no credential is configured the
// client substitutes placeholder data and reports the degraded source.
type Client interface {
	// Platform returns the platform name this client serves.
	Platform() string

	// Configured reports whether a live credential is present.
	Configured() bool

	// FetchPosts returns the count most recent posts for the account.
	FetchPosts(ctx context.Context, account string, count int) ([]domain.Post, Source)

	// FetchMetrics returns the aggregate metrics for the account.
	FetchMetrics(ctx context.Context, account string) (domain.PlatformMetrics, Source)
}

var hashtagPattern = regexp.MustCompile(`#(\w+)`)

// ExtractHashtags pulls hashtag names, without the '#', out of post
// content.
func ExtractHashtags(content string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(content, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}
	return tags
}

// metricsFromPosts derives platform metrics from a fetched post set.
// Follower and post-count fields are left for the caller to fill in
// from platform-specific sources.
func metricsFromPosts(platform string, posts []domain.Post) domain.PlatformMetrics {
	reach, impressions := 0, 0
	for _, p := range posts {
		reach += p.Reach
		impressions += p.Impressions
	}

	top := make([]domain.Post, len(posts))
	copy(top, posts)
	domain.SortByTopEngagement(top)
	if len(top) > 5 {
		top = top[:5]
	}

	return domain.PlatformMetrics{
		Platform:       platform,
		EngagementRate: domain.EngagementRate(posts),
		Reach:          reach,
		Impressions:    impressions,
		TopPosts:       top,
	}
}
