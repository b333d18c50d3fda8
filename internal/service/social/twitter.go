// internal/service/social/twitter.go

package social

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dghubble/oauth1"
	twitter "github.com/g8rswimmer/go-twitter/v2"

	domain "pulse/internal/domain/social"
)

const twitterHost = "https://api.twitter.com"

// bearerAuthorizer adds the app-only bearer token to API requests.
type bearerAuthorizer struct {
	token string
}

func (a bearerAuthorizer) Add(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+a.token)
}

// noopAuthorizer is used when the underlying HTTP client already signs
// requests (OAuth1 user context).
type noopAuthorizer struct{}

func (noopAuthorizer) Add(*http.Request) {}

// TwitterCredentials holds the supported credential sets. A consumer
// key pair selects OAuth1 user context; otherwise a bearer token
// selects app-only auth. With neither, the client serves placeholder
// data.
type TwitterCredentials struct {
	BearerToken    string
	ConsumerKey    string
	ConsumerSecret string
	AccessToken    string
	AccessSecret   string
}

// TwitterClient fetches posts and metrics through the Twitter v2 API,
// substituting placeholder data whenever the API is unavailable.
type TwitterClient struct {
	api        *twitter.Client
	configured bool
}

// NewTwitterClient creates a new Twitter platform client.
func NewTwitterClient(creds TwitterCredentials, timeout time.Duration) *TwitterClient {
	c := &TwitterClient{}

	switch {
	case creds.ConsumerKey != "" && creds.AccessToken != "":
		cfg := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
		httpClient := cfg.Client(oauth1.NoContext, oauth1.NewToken(creds.AccessToken, creds.AccessSecret))
		httpClient.Timeout = timeout
		c.api = &twitter.Client{
			Authorizer: noopAuthorizer{},
			Client:     httpClient,
			Host:       twitterHost,
		}
		c.configured = true
	case creds.BearerToken != "":
		c.api = &twitter.Client{
			Authorizer: bearerAuthorizer{token: creds.BearerToken},
			Client:     &http.Client{Timeout: timeout},
			Host:       twitterHost,
		}
		c.configured = true
	}

	return c
}

// Platform returns the platform name
func (c *TwitterClient) Platform() string {
	return domain.PlatformTwitter
}

// Configured reports whether a live credential is present.
func (c *TwitterClient) Configured() bool {
	return c.configured
}

// FetchPosts returns the count most recent tweets for the account.
func (c *TwitterClient) FetchPosts(ctx context.Context, account string, count int) ([]domain.Post, Source) {
	if !c.configured {
		return GeneratePosts(domain.PlatformTwitter, account, count), PlaceholderSource("credential not configured")
	}

	posts, err := c.fetchTimeline(ctx, account, count)
	if err != nil {
		log.Printf("twitter: falling back to placeholder posts for %s: %v", account, err)
		return GeneratePosts(domain.PlatformTwitter, account, count), PlaceholderSource(err.Error())
	}

	return posts, LiveSource()
}

// FetchMetrics returns the aggregate metrics for the account.
func (c *TwitterClient) FetchMetrics(ctx context.Context, account string) (domain.PlatformMetrics, Source) {
	if !c.configured {
		return GenerateMetrics(domain.PlatformTwitter, account), PlaceholderSource("credential not configured")
	}

	user, err := c.lookupUser(ctx, account)
	if err != nil {
		log.Printf("twitter: falling back to placeholder metrics for %s: %v", account, err)
		return GenerateMetrics(domain.PlatformTwitter, account), PlaceholderSource(err.Error())
	}

	posts, src := c.FetchPosts(ctx, account, 10)
	metrics := metricsFromPosts(domain.PlatformTwitter, posts)
	metrics.Followers = user.PublicMetrics.Followers
	metrics.Posts = user.PublicMetrics.Tweets

	return metrics, src
}

func (c *TwitterClient) lookupUser(ctx context.Context, account string) (*twitter.UserObj, error) {
	resp, err := c.api.UserNameLookup(ctx, []string{account}, twitter.UserLookupOpts{
		UserFields: []twitter.UserField{twitter.UserFieldPublicMetrics},
	})
	if err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	if resp.Raw == nil || len(resp.Raw.Users) == 0 {
		return nil, fmt.Errorf("user %q not found", account)
	}

	user := resp.Raw.Users[0]
	if user.PublicMetrics == nil {
		return nil, fmt.Errorf("user %q missing public metrics", account)
	}

	return user, nil
}

func (c *TwitterClient) fetchTimeline(ctx context.Context, account string, count int) ([]domain.Post, error) {
	user, err := c.lookupUser(ctx, account)
	if err != nil {
		return nil, err
	}

	timeline, err := c.api.UserTweetTimeline(ctx, user.ID, twitter.UserTweetTimelineOpts{
		MaxResults: count,
		TweetFields: []twitter.TweetField{
			twitter.TweetFieldCreatedAt,
			twitter.TweetFieldPublicMetrics,
			twitter.TweetFieldEntities,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("tweet timeline: %w", err)
	}
	if timeline.Raw == nil || len(timeline.Raw.Tweets) == 0 {
		return nil, fmt.Errorf("no tweets returned for %q", account)
	}

	posts := make([]domain.Post, 0, len(timeline.Raw.Tweets))
	for _, tw := range timeline.Raw.Tweets {
		p := domain.Post{
			ID:       tw.ID,
			Platform: domain.PlatformTwitter,
			Content:  tw.Text,
			Author:   account,
			Hashtags: []string{},
			URL:      fmt.Sprintf("https://twitter.com/%s/status/%s", account, tw.ID),
		}

		if ts, err := time.Parse(time.RFC3339, tw.CreatedAt); err == nil {
			p.PublishedAt = ts
		}
		if tw.PublicMetrics != nil {
			p.Engagement = domain.Engagement{
				Likes:    tw.PublicMetrics.Likes,
				Shares:   tw.PublicMetrics.Retweets,
				Comments: tw.PublicMetrics.Replies,
			}
		}
		if tw.Entities != nil {
			for _, tag := range tw.Entities.HashTags {
				p.Hashtags = append(p.Hashtags, tag.Tag)
			}
		}

		posts = append(posts, p)
	}

	return posts, nil
}
