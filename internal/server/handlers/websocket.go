// internal/server/handlers/websocket.go

package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"

	"pulse/internal/service/realtime"
)

// WebSocketClient represents a connected WebSocket client
type WebSocketClient struct {
	id                string
	conn              *websocket.Conn
	send              chan []byte
	userID            string
	natsConn          *nats.Conn
	registry          *realtime.Registry
	broadcaster       *realtime.Broadcaster
	analyzer          ContentAnalyzer
	natsSubscriptions []*nats.Subscription
	subMu             sync.Mutex
	closeOnce         sync.Once
}

// WebSocketConfig contains configuration for WebSocket connections
type WebSocketConfig struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration

	// Maximum message size allowed from peer
	MaxMessageSize int64
}

// DefaultWebSocketConfig returns the default WebSocket configuration
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     (60 * time.Second * 9) / 10,
		MaxMessageSize: 1024 * 1024, // 1MB
	}
}

// WebSocketUpgrader is used to upgrade HTTP connections to WebSocket
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, this should be more restrictive
		return true
	},
}

// clientEvent is the envelope every inbound websocket message uses.
type clientEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// LiveHandler handles WebSocket connections for the realtime dashboard
// channel.
func LiveHandler(natsConn *nats.Conn, registry *realtime.Registry, broadcaster *realtime.Broadcaster, analyzer ContentAnalyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Failed to upgrade to WebSocket: %v", err)
			return
		}

		client := &WebSocketClient{
			id:          uuid.New().String(),
			conn:        conn,
			send:        make(chan []byte, 256),
			natsConn:    natsConn,
			registry:    registry,
			broadcaster: broadcaster,
			analyzer:    analyzer,
		}

		registry.Add(client.id)

		go client.writePump()
		go client.readPump()

		log.Printf("Client connected: %s", client.id)
	}
}

// readPump pumps messages from the WebSocket connection to the event
// dispatcher.
func (c *WebSocketClient) readPump() {
	config := DefaultWebSocketConfig()

	defer func() {
		c.closeConnection()
	}()

	c.conn.SetReadLimit(config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		c.handleEvent(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket
// connection.
func (c *WebSocketClient) writePump() {
	config := DefaultWebSocketConfig()
	ticker := time.NewTicker(config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.closeConnection()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleEvent dispatches one inbound client event.
func (c *WebSocketClient) handleEvent(message []byte) {
	var event clientEvent
	if err := json.Unmarshal(message, &event); err != nil {
		log.Printf("Failed to parse WebSocket message: %v", err)
		c.sendError("invalid message")
		return
	}

	switch event.Event {
	case "authenticate":
		c.handleAuthenticate(event.Data)

	case "subscribe_dashboard":
		c.handleSubscribeDashboard(event.Data)

	case "analyze_content":
		c.handleAnalyzeContent(event.Data)

	case "track_engagement":
		c.handleTrackEngagement(event.Data)

	default:
		log.Printf("Unknown event: %s", event.Event)
		c.sendError("unknown event")
	}
}

// handleAuthenticate binds the connection to a user and joins the
// user's own room.
func (c *WebSocketClient) handleAuthenticate(data json.RawMessage) {
	var payload struct {
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.UserID == "" {
		c.sendError("userId is required")
		return
	}

	c.userID = payload.UserID
	c.registry.Authenticate(c.id, payload.UserID)

	if err := c.joinRoom(realtime.UserRoom(payload.UserID)); err != nil {
		log.Printf("Failed to join user room: %v", err)
		c.sendError("subscription failed")
		return
	}

	log.Printf("User authenticated: %s (%s)", payload.UserID, c.id)
}

// handleSubscribeDashboard joins the dashboard and analytics rooms for
// a user, plus one room per requested platform.
func (c *WebSocketClient) handleSubscribeDashboard(data json.RawMessage) {
	var payload struct {
		UserID    string   `json:"userId"`
		Platforms []string `json:"platforms"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		c.sendError("invalid payload")
		return
	}

	userID := payload.UserID
	if userID == "" {
		userID = c.userID
	}
	if userID == "" {
		c.sendError("authenticate first")
		return
	}

	rooms := []string{
		realtime.DashboardRoom(userID),
		realtime.AnalyticsRoom(userID),
	}
	for _, platform := range payload.Platforms {
		rooms = append(rooms, realtime.PlatformRoom(platform, userID))
	}
	for _, room := range rooms {
		if err := c.joinRoom(room); err != nil {
			log.Printf("Failed to join room %s: %v", room, err)
			c.sendError("subscription failed")
			return
		}
	}

	log.Printf("Client %s subscribed to dashboard for user %s", c.id, userID)
}

// handleAnalyzeContent runs a content analysis and replies on this
// connection only.
func (c *WebSocketClient) handleAnalyzeContent(data json.RawMessage) {
	var payload struct {
		Content  string `json:"content"`
		Platform string `json:"platform"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Content == "" {
		c.sendError("content is required")
		return
	}

	// Analysis can take seconds; keep the read loop responsive.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()

		analysis := c.analyzer.Analyze(ctx, payload.Content, payload.Platform)
		c.sendEvent(realtime.Event{
			Event:     realtime.EventContentAnalysis,
			Type:      "ai_insight",
			Data:      analysis,
			Timestamp: time.Now(),
		})
	}()
}

// handleTrackEngagement starts the per-connection post tracking loop.
func (c *WebSocketClient) handleTrackEngagement(data json.RawMessage) {
	var payload struct {
		PostIDs []string `json:"postIds"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || len(payload.PostIDs) == 0 {
		c.sendError("postIds are required")
		return
	}
	if c.userID == "" {
		c.sendError("authenticate first")
		return
	}

	if err := c.joinRoom(realtime.EngagementRoom(c.userID)); err != nil {
		log.Printf("Failed to join engagement room: %v", err)
		c.sendError("subscription failed")
		return
	}

	c.broadcaster.TrackEngagement(c.id, c.userID, payload.PostIDs)
}

// joinRoom subscribes the connection to a room subject. Joining the
// same room twice is a no-op.
func (c *WebSocketClient) joinRoom(room string) error {
	if c.registry.InRoom(c.id, room) {
		return nil
	}

	sub, err := c.natsConn.Subscribe(room, func(msg *nats.Msg) {
		c.send <- msg.Data
	})
	if err != nil {
		return err
	}

	c.subMu.Lock()
	c.natsSubscriptions = append(c.natsSubscriptions, sub)
	c.subMu.Unlock()

	c.registry.Join(c.id, room)
	return nil
}

// sendEvent marshals and queues one event for this connection only.
func (c *WebSocketClient) sendEvent(event realtime.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event.Event, err)
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("Send buffer full for client %s, dropping %s", c.id, event.Event)
	}
}

func (c *WebSocketClient) sendError(message string) {
	c.sendEvent(realtime.Event{
		Event:     realtime.EventError,
		Data:      map[string]string{"message": message},
		Timestamp: time.Now(),
	})
}

// closeConnection closes the WebSocket connection and cleans up
// resources. Both pumps call it; only the first call runs.
func (c *WebSocketClient) closeConnection() {
	c.closeOnce.Do(func() {
		c.subMu.Lock()
		for _, sub := range c.natsSubscriptions {
			sub.Unsubscribe()
		}
		c.natsSubscriptions = nil
		c.subMu.Unlock()

		c.broadcaster.StopTracking(c.id)
		c.registry.Remove(c.id)

		c.conn.Close()
		close(c.send)

		log.Printf("Client disconnected: %s", c.id)
	})
}
