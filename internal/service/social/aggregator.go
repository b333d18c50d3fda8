// internal/service/social/aggregator.go

package social

import (
	"context"
	"sort"
	"sync"

	domain "pulse/internal/domain/social"
)

// Accounts maps platform name to the account handle to aggregate.
// Platforms with no registered client are skipped.
type Accounts map[string]string

// SourceMap records, per platform, whether the aggregate was served
// from the live API or from placeholder data.
type SourceMap map[string]Source

// Aggregator fans out to every registered platform client concurrently
// and merges the results into one cross-platform view.
type Aggregator struct {
	clients map[string]Client
}

// NewAggregator creates an aggregator over the given platform clients.
func NewAggregator(clients ...Client) *Aggregator {
	byPlatform := make(map[string]Client, len(clients))
	for _, c := range clients {
		byPlatform[c.Platform()] = c
	}
	return &Aggregator{clients: byPlatform}
}

// platformResult carries one platform's fetch back to the merge step.
type platformResult struct {
	platform string
	metrics  domain.PlatformMetrics
	source   Source
}

// Aggregate fetches metrics for every requested account concurrently
// and merges them into one cross-platform view. A slow or failing
// platform never fails the aggregate; its client degrades to
// placeholder data instead. Recent posts are drawn from each
// platform's top posts, sorted newest first and capped at recentLimit.
func (a *Aggregator) Aggregate(ctx context.Context, accounts Accounts, recentLimit int) (domain.AggregateResult, SourceMap) {
	results := make(chan platformResult, len(accounts))

	var wg sync.WaitGroup
	for platform, account := range accounts {
		client, ok := a.clients[platform]
		if !ok {
			continue
		}

		wg.Add(1)
		go func(client Client, account string) {
			defer wg.Done()

			metrics, src := client.FetchMetrics(ctx, account)
			results <- platformResult{
				platform: client.Platform(),
				metrics:  metrics,
				source:   src,
			}
		}(client, account)
	}

	wg.Wait()
	close(results)

	result := domain.AggregateResult{
		PlatformMetrics: []domain.PlatformMetrics{},
		RecentPosts:     []domain.Post{},
	}
	sources := make(SourceMap, len(accounts))

	for r := range results {
		result.TotalPosts += r.metrics.Posts
		result.TotalReach += r.metrics.Reach
		for _, p := range r.metrics.TopPosts {
			result.TotalEngagement += p.Engagement.Total()
		}
		result.PlatformMetrics = append(result.PlatformMetrics, r.metrics)
		result.RecentPosts = append(result.RecentPosts, r.metrics.TopPosts...)
		sources[r.platform] = r.source
	}

	// Goroutine completion order is arbitrary; keep the output stable.
	sort.Slice(result.PlatformMetrics, func(i, j int) bool {
		return result.PlatformMetrics[i].Platform < result.PlatformMetrics[j].Platform
	})

	domain.SortByPublished(result.RecentPosts)
	if recentLimit > 0 && len(result.RecentPosts) > recentLimit {
		result.RecentPosts = result.RecentPosts[:recentLimit]
	}

	return result, sources
}

// RealTimeUpdates produces a fresh engagement reading per requested
// post id. Duplicate ids collapse to a single entry; an empty request
// yields an empty map.
func (a *Aggregator) RealTimeUpdates(postIDs []string) map[string]domain.EngagementSnapshot {
	updates := make(map[string]domain.EngagementSnapshot, len(postIDs))
	for _, id := range postIDs {
		updates[id] = GenerateSnapshot(id)
	}
	return updates
}
