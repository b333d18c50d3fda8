// internal/service/realtime/broadcaster_test.go

package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/service/social"
)

// fakePublisher records every published message.
type fakePublisher struct {
	mu       sync.Mutex
	messages map[string][][]byte
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{messages: make(map[string][][]byte)}
}

func (p *fakePublisher) Publish(subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	p.messages[subject] = append(p.messages[subject], buf)
	return nil
}

func (p *fakePublisher) count(subject string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages[subject])
}

func (p *fakePublisher) last(subject string) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	msgs := p.messages[subject]
	if len(msgs) == 0 {
		return nil
	}
	return msgs[len(msgs)-1]
}

func testBroadcaster(t *testing.T, pub Publisher, registry *Registry) *Broadcaster {
	t.Helper()

	b := NewBroadcaster(pub, registry, social.NewAggregator(), nil, Config{
		AnalyticsInterval: 20 * time.Millisecond,
		TrackingInterval:  20 * time.Millisecond,
	})
	require.NoError(t, b.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		b.Stop(ctx)
	})

	return b
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestBroadcastsToAuthenticatedUsers(t *testing.T) {
	pub := newFakePublisher()
	registry := NewRegistry()
	registry.Add("conn-1")
	registry.Authenticate("conn-1", "user-1")
	registry.Add("conn-2") // never authenticates

	testBroadcaster(t, pub, registry)

	waitFor(t, func() bool {
		return pub.count(AnalyticsRoom("user-1")) > 0 && pub.count(EngagementRoom("user-1")) > 0
	})

	var event Event
	require.NoError(t, json.Unmarshal(pub.last(AnalyticsRoom("user-1")), &event))
	assert.Equal(t, EventAnalyticsUpdate, event.Event)
	assert.Equal(t, "analytics", event.Type)
	assert.NotNil(t, event.Data)
	assert.False(t, event.Timestamp.IsZero())

	require.NoError(t, json.Unmarshal(pub.last(EngagementRoom("user-1")), &event))
	assert.Equal(t, EventEngagementUpdate, event.Event)

	// The unauthenticated connection has no user room to broadcast to.
	assert.Zero(t, pub.count(AnalyticsRoom("")))
}

func TestTrackEngagement(t *testing.T) {
	pub := newFakePublisher()
	registry := NewRegistry()
	b := testBroadcaster(t, pub, registry)

	b.TrackEngagement("conn-1", "user-1", []string{"p1", "p2"})

	waitFor(t, func() bool { return pub.count(EngagementRoom("user-1")) > 0 })

	var event Event
	require.NoError(t, json.Unmarshal(pub.last(EngagementRoom("user-1")), &event))
	assert.Equal(t, EventPostEngagementUpdate, event.Event)

	updates, ok := event.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, updates, 2)
	assert.Contains(t, updates, "p1")
	assert.Contains(t, updates, "p2")
}

func TestStopTrackingHaltsUpdates(t *testing.T) {
	pub := newFakePublisher()
	b := testBroadcaster(t, pub, NewRegistry())

	b.TrackEngagement("conn-1", "user-1", []string{"p1"})
	waitFor(t, func() bool { return pub.count(EngagementRoom("user-1")) > 0 })

	b.StopTracking("conn-1")
	settled := pub.count(EngagementRoom("user-1"))
	time.Sleep(100 * time.Millisecond)
	assert.LessOrEqual(t, pub.count(EngagementRoom("user-1")), settled+1)
}

func TestTrackEngagementReplacesPreviousLoop(t *testing.T) {
	pub := newFakePublisher()
	b := testBroadcaster(t, pub, NewRegistry())

	b.TrackEngagement("conn-1", "user-1", []string{"p1"})
	b.TrackEngagement("conn-1", "user-1", []string{"p2"})

	waitFor(t, func() bool { return pub.count(EngagementRoom("user-1")) > 0 })

	var event Event
	require.NoError(t, json.Unmarshal(pub.last(EngagementRoom("user-1")), &event))
	updates, ok := event.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, updates, "p2")
	assert.NotContains(t, updates, "p1")
}

func TestSendInsightAndAlert(t *testing.T) {
	pub := newFakePublisher()
	b := testBroadcaster(t, pub, NewRegistry())

	b.SendInsight("user-1", map[string]string{"summary": "engagement is trending up"})
	b.SendAlert("user-1", Alert{Type: "threshold", Message: "reach dropped", Severity: "warning"})

	require.Equal(t, 2, pub.count(UserRoom("user-1")))

	var event Event
	require.NoError(t, json.Unmarshal(pub.last(UserRoom("user-1")), &event))
	assert.Equal(t, EventAlert, event.Event)
}

func TestStopDrainsLoops(t *testing.T) {
	pub := newFakePublisher()
	registry := NewRegistry()
	registry.Add("conn-1")
	registry.Authenticate("conn-1", "user-1")

	b := NewBroadcaster(pub, registry, social.NewAggregator(), nil, Config{
		AnalyticsInterval: 20 * time.Millisecond,
		TrackingInterval:  20 * time.Millisecond,
	})
	require.NoError(t, b.Start(context.Background()))
	b.TrackEngagement("conn-1", "user-1", []string{"p1"})

	waitFor(t, func() bool { return pub.count(AnalyticsRoom("user-1")) > 0 })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, b.Stop(ctx))

	settled := pub.count(EngagementRoom("user-1"))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, settled, pub.count(EngagementRoom("user-1")))
}
