package realtime

import (
	"github.com/rs/zerolog"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
)

// Dispatcher pushes notifications to live connections. Every call is
// fire-and-forget: there is no acknowledgment, retry, or queue for offline
// recipients, and delivery failures never reach the caller.
type Dispatcher struct {
	registry *Registry
	logger   zerolog.Logger
}

func NewDispatcher(registry *Registry, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		logger:   logger.With().Str("component", "dispatcher").Logger(),
	}
}

// BroadcastByRooms emits the notification once per declared role room and
// once per declared class room, relying on room membership for the fan-out.
// A declared TargetAll role reaches every connected client. The acting user
// is skipped unless explicitly listed in TargetUsers. Explicit target users
// whose connection no declared room reaches get a direct send, so delivery
// stays at most once per recipient.
func (d *Dispatcher) BroadcastByRooms(n models.Notification) {
	var except *Client
	if n.CreatedBy.ID != "" && !containsID(n.TargetUsers, n.CreatedBy.ID) {
		if c, ok := d.registry.Get(n.CreatedBy.ID); ok {
			except = c
		}
	}

	for _, role := range n.TargetRoles {
		if role == models.TargetAll {
			d.registry.BroadcastAll(EventNewNotification, n, except)
			continue
		}
		d.registry.Emit(RoleRoom(role), EventNewNotification, n, except)
	}
	for _, classID := range n.TargetClasses {
		d.registry.Emit(ClassRoom(classID), EventNewNotification, n, except)
	}
	for _, userID := range n.TargetUsers {
		c, ok := d.registry.Get(userID)
		if !ok {
			continue
		}
		if d.coveredByRooms(c, n) {
			continue
		}
		d.registry.EmitToUser(userID, EventNewNotification, n)
	}
	d.logger.Debug().
		Str("notification_id", n.ID).
		Str("type", string(n.Type)).
		Int("roles", len(n.TargetRoles)).
		Int("classes", len(n.TargetClasses)).
		Msg("room broadcast")
}

// coveredByRooms reports whether one of the notification's declared rooms
// already reaches this connection.
func (d *Dispatcher) coveredByRooms(c *Client, n models.Notification) bool {
	for _, role := range n.TargetRoles {
		if role == models.TargetAll {
			return true
		}
		if d.registry.InRoom(c, RoleRoom(role)) {
			return true
		}
	}
	for _, classID := range n.TargetClasses {
		if d.registry.InRoom(c, ClassRoom(classID)) {
			return true
		}
	}
	return false
}

// SendToUser delivers directly to one user. If the user has no live
// connection this is a silent no-op.
func (d *Dispatcher) SendToUser(userID string, n models.Notification) {
	d.registry.EmitToUser(userID, EventNewNotification, n)
}

// UpdateUnreadCount pushes an incremental counter update to a connected user.
// The server keeps no durable counter; the client owns its own total.
func (d *Dispatcher) UpdateUnreadCount(userID string, delta int) {
	d.registry.EmitToUser(userID, EventUnreadCount, unreadDeltaPayload{Delta: delta})
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
