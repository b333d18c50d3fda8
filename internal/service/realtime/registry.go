// internal/service/realtime/registry.go

package realtime

import "sync"

// Room subject builders. Rooms are NATS subjects, so identifiers are
// joined with dots.
func UserRoom(userID string) string           { return "rt.user." + userID }
func DashboardRoom(userID string) string      { return "rt.dashboard." + userID }
func AnalyticsRoom(userID string) string      { return "rt.analytics." + userID }
func EngagementRoom(userID string) string     { return "rt.engagement." + userID }
func PlatformRoom(platform, id string) string { return "rt.platform." + platform + "." + id }

// Registry tracks live websocket connections, the user each one has
// authenticated as, and the rooms each one has joined. All methods are
// safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	users map[string]string              // connection id -> user id
	rooms map[string]map[string]struct{} // connection id -> joined rooms
}

// NewRegistry creates an empty connection registry.
func NewRegistry() *Registry {
	return &Registry{
		users: make(map[string]string),
		rooms: make(map[string]map[string]struct{}),
	}
}

// Add registers a new connection with no user identity yet.
func (r *Registry) Add(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[connID] = ""
	r.rooms[connID] = make(map[string]struct{})
}

// Authenticate binds a connection to a user identity.
func (r *Registry) Authenticate(connID, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[connID]; ok {
		r.users[connID] = userID
	}
}

// Join adds the connection to a room. Unknown connections are ignored.
func (r *Registry) Join(connID, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rooms, ok := r.rooms[connID]; ok {
		rooms[room] = struct{}{}
	}
}

// InRoom reports whether the connection has joined the room.
func (r *Registry) InRoom(connID, room string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rooms[connID][room]
	return ok
}

// Remove drops a connection and all of its room memberships.
func (r *Registry) Remove(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, connID)
	delete(r.rooms, connID)
}

// UserID returns the user the connection authenticated as, or "" if it
// has not authenticated.
func (r *Registry) UserID(connID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.users[connID]
}

// Users returns the distinct authenticated user ids across all live
// connections.
func (r *Registry) Users() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.users))
	users := make([]string, 0, len(r.users))
	for _, userID := range r.users {
		if userID == "" {
			continue
		}
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		users = append(users, userID)
	}

	return users
}

// Count returns the number of live connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.users)
}

// Rooms returns the rooms the connection has joined.
func (r *Registry) Rooms(connID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]string, 0, len(r.rooms[connID]))
	for room := range r.rooms[connID] {
		rooms = append(rooms, room)
	}

	return rooms
}
