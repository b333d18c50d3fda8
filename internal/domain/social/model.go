// internal/domain/social/model.go

package social

import (
	"sort"
	"time"
)

// Platform identifiers for the supported networks.
const (
	PlatformTwitter   = "twitter"
	PlatformLinkedIn  = "linkedin"
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
)

// Engagement holds the interaction counters for a single post.
type Engagement struct {
	Likes    int `json:"likes"`
	Shares   int `json:"shares"`
	Comments int `json:"comments"`
	Views    int `json:"views,omitempty"`
	Clicks   int `json:"clicks,omitempty"`
}

// Total returns likes + shares + comments, the figure all engagement
// aggregates are built from.
func (e Engagement) Total() int {
	return e.Likes + e.Shares + e.Comments
}

// Post is a single published item fetched from one platform. Posts are
// immutable once constructed; identity is ID scoped to the platform.
type Post struct {
	ID          string     `json:"id"`
	Platform    string     `json:"platform"`
	Content     string     `json:"content"`
	Author      string     `json:"author"`
	PublishedAt time.Time  `json:"publishedAt"`
	Engagement  Engagement `json:"engagement"`
	Reach       int        `json:"reach,omitempty"`
	Impressions int        `json:"impressions,omitempty"`
	Hashtags    []string   `json:"hashtags"`
	Media       []string   `json:"media,omitempty"`
	URL         string     `json:"url"`
}

// PlatformMetrics is the per-platform aggregate view. It is derived
// from the post set visible at computation time and recomputed fresh on
// every request, never persisted.
type PlatformMetrics struct {
	Platform       string  `json:"platform"`
	Followers      int     `json:"followers"`
	Posts          int     `json:"posts"`
	EngagementRate float64 `json:"engagement_rate"`
	Reach          int     `json:"reach"`
	Impressions    int     `json:"impressions"`
	TopPosts       []Post  `json:"top_posts"`
}

// AggregateResult merges the metrics of every platform contributing to
// one aggregation pass. It is a pure function of the collected inputs;
// no cross-request state is retained.
type AggregateResult struct {
	TotalPosts      int               `json:"total_posts"`
	TotalEngagement int               `json:"total_engagement"`
	TotalReach      int               `json:"total_reach"`
	PlatformMetrics []PlatformMetrics `json:"platform_metrics"`
	RecentPosts     []Post            `json:"recent_posts"`
}

// EngagementSnapshot is a point-in-time engagement reading for one post.
type EngagementSnapshot struct {
	Likes     int       `json:"likes"`
	Shares    int       `json:"shares"`
	Comments  int       `json:"comments"`
	Views     int       `json:"views"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AnalyticsUpdate is the summary snapshot pushed to each user on the
// periodic analytics sweep.
type AnalyticsUpdate struct {
	TotalEngagement   int            `json:"total_engagement"`
	TotalReach        int            `json:"total_reach"`
	TotalImpressions  int            `json:"total_impressions"`
	EngagementRate    float64        `json:"engagement_rate"`
	PlatformBreakdown map[string]int `json:"platform_breakdown"`
}

// EngagementUpdate is one entry of the ambient engagement broadcast.
type EngagementUpdate struct {
	PostID         string  `json:"postId"`
	Platform       string  `json:"platform"`
	Likes          int     `json:"likes"`
	Shares         int     `json:"shares"`
	Comments       int     `json:"comments"`
	Views          int     `json:"views"`
	Reach          int     `json:"reach"`
	EngagementRate float64 `json:"engagement_rate"`
}

// SortByTopEngagement orders posts by likes+shares, highest first.
func SortByTopEngagement(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Engagement.Likes+posts[i].Engagement.Shares >
			posts[j].Engagement.Likes+posts[j].Engagement.Shares
	})
}

// SortByPublished orders posts by publish time, newest first.
func SortByPublished(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
}

// EngagementRate returns the mean per-post engagement divided by 100.
// The /100 scaling is a normalization convention, not a true
// percentage; existing consumers depend on it.
func EngagementRate(posts []Post) float64 {
	if len(posts) == 0 {
		return 0
	}

	total := 0
	for _, p := range posts {
		total += p.Engagement.Total()
	}

	return (float64(total) / float64(len(posts))) / 100
}
