package realtime

import "encoding/json"

// Client -> server events.
const (
	EventJoinChat             = "join-chat"
	EventLeaveChat            = "leave-chat"
	EventMessageSent          = "message-sent"
	EventMessageRead          = "message-read"
	EventTypingStart          = "typing-start"
	EventTypingStop           = "typing-stop"
	EventUserOnline           = "user-online"
	EventJoinNotifications    = "join-notifications"
	EventMarkNotificationRead = "mark-notification-read"
	EventGetUnreadCount       = "get-unread-count"
)

// Server -> client events.
const (
	EventNewMessage        = "new-message"
	EventMessageConfirmed  = "message-confirmed"
	EventMessageReadUpdate = "message-read-update"
	EventUserTyping        = "user-typing"
	EventUserStopTyping    = "user-stop-typing"
	EventUserStatusUpdate  = "user-status-update"
	EventNewNotification   = "new-notification"
	EventNotificationRead  = "notification-read"
	EventUnreadCount       = "unread-count"
)

// Frame is the wire envelope for both directions of the socket.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func newFrame(event string, data interface{}) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Event: event, Data: payload})
}

type chatRef struct {
	ChatID string `json:"chatId"`
}

type messageSentPayload struct {
	ChatID  string          `json:"chatId"`
	Message json.RawMessage `json:"message"`
}

type messageReadPayload struct {
	ChatID    string `json:"chatId"`
	MessageID string `json:"messageId"`
}

type joinNotificationsPayload struct {
	Roles []string `json:"roles"`
}

type markNotificationReadPayload struct {
	NotificationID string `json:"notificationId"`
}

type userStatusPayload struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

type typingPayload struct {
	ChatID string `json:"chatId"`
	UserID string `json:"userId"`
}

type unreadCountPayload struct {
	Count int `json:"count"`
}

type unreadDeltaPayload struct {
	Delta int `json:"delta"`
}

type notificationReadPayload struct {
	NotificationID string `json:"notificationId"`
	UserID         string `json:"userId"`
}
