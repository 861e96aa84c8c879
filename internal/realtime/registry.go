package realtime

import (
	"sync"

	"github.com/rs/zerolog"
)

// Registry tracks at most one live connection per authenticated user and the
// room memberships of every connection. It is owned by the server bootstrap
// and injected into everything that needs to reach a connected user; the
// process has exactly one instance and no state is shared across processes.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
	rooms   map[string]map[*Client]struct{}
	logger  zerolog.Logger
}

func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[*Client]struct{}),
		logger:  logger.With().Str("component", "registry").Logger(),
	}
}

// Register stores the client under its user id, displacing any previous
// connection for the same user (last connection wins). The client is
// auto-joined to its own-user room. The displaced client, if any, is returned
// so the caller can close it outside the lock.
func (r *Registry) Register(c *Client) *Client {
	r.mu.Lock()
	displaced := r.clients[c.UserID]
	if displaced == c {
		r.mu.Unlock()
		return nil
	}
	if displaced != nil {
		r.removeLocked(displaced)
	}
	r.clients[c.UserID] = c
	r.joinLocked(c, UserRoom(c.UserID))
	r.mu.Unlock()

	r.logger.Debug().Str("user_id", c.UserID).Str("role", string(c.Role)).Msg("client registered")
	return displaced
}

// Unregister removes the client and all its room memberships. Stale entries
// are removed synchronously; there is no grace period or reconnect buffering.
// Other connections are told the user went offline.
func (r *Registry) Unregister(c *Client) {
	r.mu.Lock()
	current, ok := r.clients[c.UserID]
	if !ok || current != c {
		// A newer connection already replaced this one; just drop its rooms.
		r.removeLocked(c)
		r.mu.Unlock()
		return
	}
	delete(r.clients, c.UserID)
	r.removeLocked(c)
	r.mu.Unlock()

	r.logger.Debug().Str("user_id", c.UserID).Msg("client unregistered")
	r.BroadcastAll(EventUserStatusUpdate, userStatusPayload{UserID: c.UserID, Status: "offline"}, c)
}

// Get looks up the live connection for a user. Absence is not an error: it
// means the user is offline and delivery is silently skipped.
func (r *Registry) Get(userID string) (*Client, bool) {
	r.mu.RLock()
	c, ok := r.clients[userID]
	r.mu.RUnlock()
	return c, ok
}

// Join adds the client to a room. Joining a room twice is a no-op.
func (r *Registry) Join(c *Client, room string) {
	r.mu.Lock()
	r.joinLocked(c, room)
	r.mu.Unlock()
}

func (r *Registry) Leave(c *Client, room string) {
	r.mu.Lock()
	r.leaveLocked(c, room)
	r.mu.Unlock()
}

// Emit marshals the event once and queues it on every current member of the
// room. except, when non-nil, is skipped (typically the sender).
func (r *Registry) Emit(room, event string, data interface{}, except *Client) {
	frame, err := newFrame(event, data)
	if err != nil {
		r.logger.Error().Err(err).Str("event", event).Msg("failed to encode frame")
		return
	}

	r.mu.RLock()
	members := make([]*Client, 0, len(r.rooms[room]))
	for member := range r.rooms[room] {
		if member != except {
			members = append(members, member)
		}
	}
	r.mu.RUnlock()

	for _, member := range members {
		member.queue(frame)
	}
}

// EmitToUser delivers directly to a single user's connection. It reports
// whether the user had a live connection; a miss is not an error.
func (r *Registry) EmitToUser(userID, event string, data interface{}) bool {
	c, ok := r.Get(userID)
	if !ok {
		return false
	}
	frame, err := newFrame(event, data)
	if err != nil {
		r.logger.Error().Err(err).Str("event", event).Msg("failed to encode frame")
		return false
	}
	c.queue(frame)
	return true
}

// BroadcastAll queues the event on every connected client except the one given.
func (r *Registry) BroadcastAll(event string, data interface{}, except *Client) {
	frame, err := newFrame(event, data)
	if err != nil {
		r.logger.Error().Err(err).Str("event", event).Msg("failed to encode frame")
		return
	}

	r.mu.RLock()
	clients := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		if c != except {
			clients = append(clients, c)
		}
	}
	r.mu.RUnlock()

	for _, c := range clients {
		c.queue(frame)
	}
}

// InRoom reports whether the client is currently a member of the room.
func (r *Registry) InRoom(c *Client, room string) bool {
	r.mu.RLock()
	_, ok := r.rooms[room][c]
	r.mu.RUnlock()
	return ok
}

// ConnectedCount returns the number of live connections.
func (r *Registry) ConnectedCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Close drops every connection, typically during shutdown.
func (r *Registry) Close() {
	r.mu.Lock()
	clients := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		clients = append(clients, c)
	}
	r.clients = make(map[string]*Client)
	r.rooms = make(map[string]map[*Client]struct{})
	r.mu.Unlock()

	for _, c := range clients {
		c.closeSend()
	}
}

func (r *Registry) joinLocked(c *Client, room string) {
	members, ok := r.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		r.rooms[room] = members
	}
	members[c] = struct{}{}
	c.rooms[room] = struct{}{}
}

func (r *Registry) leaveLocked(c *Client, room string) {
	if members, ok := r.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}
	delete(c.rooms, room)
}

// removeLocked leaves every room the client belongs to.
func (r *Registry) removeLocked(c *Client) {
	for room := range c.rooms {
		if members, ok := r.rooms[room]; ok {
			delete(members, c)
			if len(members) == 0 {
				delete(r.rooms, room)
			}
		}
	}
	c.rooms = make(map[string]struct{})
}
