// internal/service/realtime/broadcaster.go

package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	domain "pulse/internal/domain/social"
	"pulse/internal/service/social"
)

// Event names pushed over the realtime channel.
const (
	EventAnalyticsUpdate      = "analytics_update"
	EventEngagementUpdate     = "engagement_update"
	EventPostEngagementUpdate = "post_engagement_update"
	EventContentAnalysis      = "content_analysis"
	EventAIInsight            = "ai_insight"
	EventAlert                = "alert"
	EventError                = "error"
)

// Publisher is the fan-out side of the realtime bus. *nats.Conn
// satisfies it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// AnalyticsStore persists periodic analytics snapshots. It is optional;
// a nil store disables persistence.
type AnalyticsStore interface {
	SaveUpdate(ctx context.Context, userID string, update domain.AnalyticsUpdate) error
}

// Event is the wire envelope for every realtime message.
type Event struct {
	Event     string      `json:"event"`
	Type      string      `json:"type,omitempty"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// Config holds the broadcast loop intervals.
type Config struct {
	AnalyticsInterval time.Duration
	TrackingInterval  time.Duration
}

// Broadcaster runs the periodic analytics and engagement sweeps and the
// per-connection post tracking loops, publishing every event onto the
// room bus.
type Broadcaster struct {
	publisher  Publisher
	registry   *Registry
	aggregator *social.Aggregator
	store      AnalyticsStore
	config     Config

	tracking sync.Map // tracking key -> context.CancelFunc

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewBroadcaster creates a broadcaster. store may be nil.
func NewBroadcaster(publisher Publisher, registry *Registry, aggregator *social.Aggregator, store AnalyticsStore, config Config) *Broadcaster {
	return &Broadcaster{
		publisher:  publisher,
		registry:   registry,
		aggregator: aggregator,
		store:      store,
		config:     config,
	}
}

// Start launches the periodic broadcast loop.
func (b *Broadcaster) Start(ctx context.Context) error {
	b.ctx, b.cancel = context.WithCancel(ctx)

	b.wg.Add(1)
	go b.broadcastLoop()

	log.Printf("Broadcaster started (analytics every %s)", b.config.AnalyticsInterval)
	return nil
}

// Stop cancels every loop and waits for them to drain, bounded by ctx.
func (b *Broadcaster) Stop(ctx context.Context) error {
	if b.cancel == nil {
		return nil
	}
	b.cancel()

	b.tracking.Range(func(key, value interface{}) bool {
		value.(context.CancelFunc)()
		b.tracking.Delete(key)
		return true
	})

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("broadcaster shutdown timed out: %w", ctx.Err())
	}
}

func (b *Broadcaster) broadcastLoop() {
	defer b.wg.Done()

	ticker := time.NewTicker(b.config.AnalyticsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.ctx.Done():
			return
		case <-ticker.C:
			b.broadcastAnalytics()
			b.broadcastEngagement()
		}
	}
}

// broadcastAnalytics pushes a fresh analytics snapshot to every
// authenticated user's analytics room.
func (b *Broadcaster) broadcastAnalytics() {
	for _, userID := range b.registry.Users() {
		update := generateAnalyticsUpdate()

		if b.store != nil {
			if err := b.store.SaveUpdate(b.ctx, userID, update); err != nil {
				log.Printf("Error persisting analytics snapshot for %s: %v", userID, err)
			}
		}

		b.publish(AnalyticsRoom(userID), Event{
			Event:     EventAnalyticsUpdate,
			Type:      "analytics",
			Data:      update,
			Timestamp: time.Now(),
		})
	}
}

// broadcastEngagement pushes the ambient engagement feed to every
// authenticated user's engagement room.
func (b *Broadcaster) broadcastEngagement() {
	updates := generateEngagementUpdates()

	for _, userID := range b.registry.Users() {
		b.publish(EngagementRoom(userID), Event{
			Event:     EventEngagementUpdate,
			Type:      "engagement",
			Data:      updates,
			Timestamp: time.Now(),
		})
	}
}

// TrackEngagement starts a per-key tracking loop that pushes fresh
// readings for the given posts to the user's engagement room until
// StopTracking is called. A second call for the same key replaces the
// previous loop.
func (b *Broadcaster) TrackEngagement(key, userID string, postIDs []string) {
	b.StopTracking(key)

	ctx, cancel := context.WithCancel(b.ctx)
	b.tracking.Store(key, cancel)

	b.wg.Add(1)
	go b.trackLoop(ctx, userID, postIDs)

	log.Printf("Tracking %d posts for user %s", len(postIDs), userID)
}

// StopTracking cancels the tracking loop registered under key, if any.
func (b *Broadcaster) StopTracking(key string) {
	if cancel, ok := b.tracking.LoadAndDelete(key); ok {
		cancel.(context.CancelFunc)()
	}
}

func (b *Broadcaster) trackLoop(ctx context.Context, userID string, postIDs []string) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.config.TrackingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.publish(EngagementRoom(userID), Event{
				Event:     EventPostEngagementUpdate,
				Type:      "engagement",
				Data:      b.aggregator.RealTimeUpdates(postIDs),
				Timestamp: time.Now(),
			})
		}
	}
}

// SendInsight pushes an AI insight to one user's room.
func (b *Broadcaster) SendInsight(userID string, insight interface{}) {
	b.publish(UserRoom(userID), Event{
		Event:     EventAIInsight,
		Type:      "ai_insight",
		Data:      insight,
		Timestamp: time.Now(),
	})
}

// Alert is a severity-tagged notification for one user.
type Alert struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// SendAlert pushes an alert to one user's room.
func (b *Broadcaster) SendAlert(userID string, alert Alert) {
	b.publish(UserRoom(userID), Event{
		Event:     EventAlert,
		Type:      "alert",
		Data:      alert,
		Timestamp: time.Now(),
	})
}

func (b *Broadcaster) publish(subject string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", event.Event, err)
		return
	}
	if err := b.publisher.Publish(subject, data); err != nil {
		log.Printf("Error publishing %s event to %s: %v", event.Event, subject, err)
	}
}

// generateAnalyticsUpdate synthesizes a dashboard summary. Replace with
// store-backed aggregation once per-user account bindings exist.
func generateAnalyticsUpdate() domain.AnalyticsUpdate {
	totalEngagement := rand.Intn(50000) + 20000
	totalReach := rand.Intn(200000) + 100000

	return domain.AnalyticsUpdate{
		TotalEngagement:  totalEngagement,
		TotalReach:       totalReach,
		TotalImpressions: rand.Intn(1000000) + 500000,
		EngagementRate:   float64(totalEngagement) / float64(totalReach) * 100,
		PlatformBreakdown: map[string]int{
			domain.PlatformTwitter:   rand.Intn(40) + 20,
			domain.PlatformLinkedIn:  rand.Intn(30) + 15,
			domain.PlatformInstagram: rand.Intn(25) + 10,
			domain.PlatformFacebook:  rand.Intn(20) + 5,
		},
	}
}

var broadcastPlatforms = []string{
	domain.PlatformTwitter,
	domain.PlatformLinkedIn,
	domain.PlatformInstagram,
	domain.PlatformFacebook,
}

func generateEngagementUpdates() []domain.EngagementUpdate {
	updates := make([]domain.EngagementUpdate, 0, 5)
	for i := 0; i < 5; i++ {
		likes := rand.Intn(1000) + 100
		shares := rand.Intn(500) + 50
		comments := rand.Intn(200) + 20
		views := rand.Intn(10000) + 1000

		updates = append(updates, domain.EngagementUpdate{
			PostID:         fmt.Sprintf("post_%d_%d", time.Now().UnixMilli(), i),
			Platform:       broadcastPlatforms[rand.Intn(len(broadcastPlatforms))],
			Likes:          likes,
			Shares:         shares,
			Comments:       comments,
			Views:          views,
			Reach:          int(float64(views) * 0.8),
			EngagementRate: float64(likes+shares+comments) / float64(views) * 100,
		})
	}

	return updates
}
