package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192

	// sendBuffer bounds the per-client outbound queue. A client that cannot
	// drain it in time is considered dead and is disconnected.
	sendBuffer = 64
)

// Client is one live websocket connection. Identity is bound once at the
// handshake and never changes for the lifetime of the connection.
type Client struct {
	UserID string
	Role   models.UserRole

	conn     *websocket.Conn
	send     chan []byte
	registry *Registry
	logger   zerolog.Logger

	// rooms is the set of rooms this client belongs to, guarded by the
	// registry's mutex.
	rooms map[string]struct{}

	// sendMu orders queue against closeSend. Publishers work off member
	// snapshots taken outside the registry lock, so a frame can arrive
	// after teardown; closed makes that a dropped frame instead of a send
	// on a closed channel.
	sendMu sync.Mutex
	closed bool
}

func NewClient(conn *websocket.Conn, userID string, role models.UserRole, registry *Registry, logger zerolog.Logger) *Client {
	return &Client{
		UserID:   userID,
		Role:     role,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		registry: registry,
		logger:   logger.With().Str("component", "ws_client").Str("user_id", userID).Logger(),
		rooms:    make(map[string]struct{}),
	}
}

// queue enqueues an already-encoded frame without blocking. Frames for a
// torn-down connection are dropped; if the client's buffer is full the
// connection is dropped. Delivery is best-effort either way.
func (c *Client) queue(frame []byte) {
	c.sendMu.Lock()
	if c.closed {
		c.sendMu.Unlock()
		return
	}
	select {
	case c.send <- frame:
		c.sendMu.Unlock()
	default:
		c.closed = true
		close(c.send)
		c.sendMu.Unlock()
		c.logger.Warn().Msg("send buffer full, dropping connection")
		c.registry.Unregister(c)
	}
}

func (c *Client) closeSend() {
	c.sendMu.Lock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.sendMu.Unlock()
}

// emitSelf sends an event straight back to this connection.
func (c *Client) emitSelf(event string, data interface{}) {
	frame, err := newFrame(event, data)
	if err != nil {
		c.logger.Error().Err(err).Str("event", event).Msg("failed to encode frame")
		return
	}
	c.queue(frame)
}

// readPump reads frames off the socket until the peer goes away, then tears
// the connection down. One readPump runs per connection.
func (c *Client) readPump() {
	defer func() {
		c.registry.Unregister(c)
		c.closeSend()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug().Err(err).Msg("unexpected close")
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.logger.Warn().Err(err).Msg("malformed frame")
			continue
		}
		c.handleFrame(frame)
	}
}

// writePump owns all writes to the socket, which preserves per-connection
// delivery order. One writePump runs per connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleFrame(frame Frame) {
	switch frame.Event {
	case EventJoinChat:
		var p chatRef
		if err := json.Unmarshal(frame.Data, &p); err != nil || p.ChatID == "" {
			return
		}
		c.registry.Join(c, ChatRoom(p.ChatID))

	case EventLeaveChat:
		var p chatRef
		if err := json.Unmarshal(frame.Data, &p); err != nil || p.ChatID == "" {
			return
		}
		c.registry.Leave(c, ChatRoom(p.ChatID))

	case EventMessageSent:
		var p messageSentPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil || p.ChatID == "" {
			return
		}
		c.registry.Emit(ChatRoom(p.ChatID), EventNewMessage, map[string]interface{}{
			"chatId":   p.ChatID,
			"senderId": c.UserID,
			"message":  p.Message,
		}, c)
		c.emitSelf(EventMessageConfirmed, chatRef{ChatID: p.ChatID})

	case EventMessageRead:
		var p messageReadPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil || p.ChatID == "" {
			return
		}
		c.registry.Emit(ChatRoom(p.ChatID), EventMessageReadUpdate, map[string]interface{}{
			"chatId":    p.ChatID,
			"messageId": p.MessageID,
			"readerId":  c.UserID,
		}, c)

	case EventTypingStart:
		var p chatRef
		if err := json.Unmarshal(frame.Data, &p); err != nil || p.ChatID == "" {
			return
		}
		c.registry.Emit(ChatRoom(p.ChatID), EventUserTyping, typingPayload{ChatID: p.ChatID, UserID: c.UserID}, c)

	case EventTypingStop:
		var p chatRef
		if err := json.Unmarshal(frame.Data, &p); err != nil || p.ChatID == "" {
			return
		}
		c.registry.Emit(ChatRoom(p.ChatID), EventUserStopTyping, typingPayload{ChatID: p.ChatID, UserID: c.UserID}, c)

	case EventUserOnline:
		c.registry.BroadcastAll(EventUserStatusUpdate, userStatusPayload{UserID: c.UserID, Status: "online"}, c)

	case EventJoinNotifications:
		var p joinNotificationsPayload
		if frame.Data != nil {
			if err := json.Unmarshal(frame.Data, &p); err != nil {
				return
			}
		}
		c.joinNotificationRooms(p.Roles)

	case EventMarkNotificationRead:
		var p markNotificationReadPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil || p.NotificationID == "" {
			return
		}
		c.registry.Emit(UserRoom(c.UserID), EventNotificationRead, notificationReadPayload{
			NotificationID: p.NotificationID,
			UserID:         c.UserID,
		}, nil)

	case EventGetUnreadCount:
		// The client is the source of truth for its own unread count once
		// seeded; the server keeps no durable counter.
		c.emitSelf(EventUnreadCount, unreadCountPayload{Count: 0})

	default:
		c.logger.Debug().Str("event", frame.Event).Msg("unknown event")
	}
}

// joinNotificationRooms subscribes the connection to one room per declared
// role plus its own-user room. Re-joining is idempotent.
func (c *Client) joinNotificationRooms(roles []string) {
	c.registry.Join(c, UserRoom(c.UserID))
	for _, raw := range roles {
		role := models.TargetRole(raw)
		if _, ok := models.UserRoleForTarget(role); !ok && role != models.TargetAll {
			continue
		}
		c.registry.Join(c, RoleRoom(role))
	}
}
