// internal/service/social/mock.go

package social

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	domain "pulse/internal/domain/social"
)

// Placeholder content tables. Indexed modulo their length, so any post
// count is served.
var mockContents = []string{
	"Just launched our new AI-powered analytics platform! #AI #Analytics #Innovation",
	"Excited to share our latest insights on content performance #ContentMarketing #Data",
	"The future of social media analytics is here! Check out our latest features #SocialMedia #Tech",
	"Great feedback from our beta users! Thank you for the support #UserFeedback #Product",
	"Breaking down the latest trends in digital marketing #DigitalMarketing #Trends",
	"Our team is growing! Welcome to all new team members #TeamGrowth #Hiring",
	"Behind the scenes: How we built our analytics engine #BehindTheScenes #Engineering",
	"Customer success story: How we helped increase engagement by 300% #SuccessStory #Results",
	"New feature alert: Real-time sentiment analysis is now live! #NewFeature #SentimentAnalysis",
	"Industry insights: The impact of AI on content creation #AI #ContentCreation",
}

var mockHashtags = [][]string{
	{"AI", "Analytics", "Innovation"},
	{"ContentMarketing", "Data", "Insights"},
	{"SocialMedia", "Tech", "Future"},
	{"UserFeedback", "Product", "Support"},
	{"DigitalMarketing", "Trends", "Strategy"},
	{"TeamGrowth", "Hiring", "Culture"},
	{"BehindTheScenes", "Engineering", "Development"},
	{"SuccessStory", "Results", "Growth"},
	{"NewFeature", "SentimentAnalysis", "RealTime"},
	{"AI", "ContentCreation", "Industry"},
}

// GeneratePosts builds count placeholder posts tagged to the requested
// platform. Engagement figures are deterministic for a given
// (platform, account) pair; timestamps are spread over the last 30
// days. Generation never fails, which is what lets FetchPosts advertise
// a non-failing contract.
func GeneratePosts(platform, account string, count int) []domain.Post {
	rng := rand.New(rand.NewSource(seed(platform, account)))
	now := time.Now()

	author := "Content Analytics Platform"
	if platform == domain.PlatformTwitter {
		author = "@" + account
	}

	posts := make([]domain.Post, 0, count)
	for i := 0; i < count; i++ {
		posts = append(posts, domain.Post{
			ID:          fmt.Sprintf("%s-%d-%d", platform, now.UnixMilli(), i),
			Platform:    platform,
			Content:     mockContents[i%len(mockContents)],
			Author:      author,
			PublishedAt: now.Add(-time.Duration(rng.Int63n(int64(30 * 24 * time.Hour)))),
			Engagement: domain.Engagement{
				Likes:    rng.Intn(1000) + 50,
				Shares:   rng.Intn(200) + 10,
				Comments: rng.Intn(100) + 5,
				Views:    rng.Intn(5000) + 500,
			},
			Reach:       rng.Intn(10000) + 1000,
			Impressions: rng.Intn(15000) + 2000,
			Hashtags:    mockHashtags[i%len(mockHashtags)],
			URL:         fmt.Sprintf("https://%s.com/%s/post-%d", platform, account, i),
		})
	}

	return posts
}

// GenerateMetrics builds placeholder metrics for one account, derived
// from a placeholder post set the same way live metrics are derived
// from live posts.
func GenerateMetrics(platform, account string) domain.PlatformMetrics {
	rng := rand.New(rand.NewSource(seed(platform, account)))
	posts := GeneratePosts(platform, account, 10)

	metrics := metricsFromPosts(platform, posts)
	metrics.Followers = rng.Intn(50000) + 1000
	metrics.Posts = rng.Intn(500) + 50
	// 2-7% engagement rate, in the internal fraction representation.
	metrics.EngagementRate = (rng.Float64()*5 + 2) / 100

	return metrics
}

// GenerateSnapshot produces a fresh engagement reading for one post.
// Each call is independent; repeated calls for the same id yield new
// readings.
func GenerateSnapshot(postID string) domain.EngagementSnapshot {
	_ = postID
	return domain.EngagementSnapshot{
		Likes:     rand.Intn(100) + 10,
		Shares:    rand.Intn(50) + 5,
		Comments:  rand.Intn(30) + 2,
		Views:     rand.Intn(1000) + 100,
		UpdatedAt: time.Now(),
	}
}

func seed(platform, account string) int64 {
	h := fnv.New64a()
	h.Write([]byte(platform))
	h.Write([]byte{0})
	h.Write([]byte(account))
	return int64(h.Sum64())
}
