package realtime

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
)

func frameFor(t *testing.T, event string, data interface{}) Frame {
	t.Helper()
	payload, err := json.Marshal(data)
	require.NoError(t, err)
	return Frame{Event: event, Data: payload}
}

func TestHandleFrameJoinAndLeaveChat(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	c := newTestClient(r, "u1", models.RoleStudent)
	r.Register(c)

	c.handleFrame(frameFor(t, EventJoinChat, chatRef{ChatID: "chat1"}))
	r.Emit(ChatRoom("chat1"), EventNewMessage, nil, nil)
	assert.Len(t, drainFrames(t, c), 1)

	c.handleFrame(frameFor(t, EventLeaveChat, chatRef{ChatID: "chat1"}))
	r.Emit(ChatRoom("chat1"), EventNewMessage, nil, nil)
	assert.Empty(t, drainFrames(t, c))
}

func TestHandleFrameMessageSentRelaysAndConfirms(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	sender := newTestClient(r, "u1", models.RoleStudent)
	peer := newTestClient(r, "u2", models.RoleStudent)
	r.Register(sender)
	r.Register(peer)
	r.Join(sender, ChatRoom("chat1"))
	r.Join(peer, ChatRoom("chat1"))

	sender.handleFrame(frameFor(t, EventMessageSent, map[string]interface{}{
		"chatId":  "chat1",
		"message": map[string]string{"content": "hi"},
	}))

	// Peer gets the relayed message, sender only gets the ack.
	peerFrames := drainFrames(t, peer)
	require.Len(t, peerFrames, 1)
	assert.Equal(t, EventNewMessage, peerFrames[0].Event)

	var relayed struct {
		ChatID   string `json:"chatId"`
		SenderID string `json:"senderId"`
	}
	require.NoError(t, json.Unmarshal(peerFrames[0].Data, &relayed))
	assert.Equal(t, "u1", relayed.SenderID)

	senderFrames := drainFrames(t, sender)
	require.Len(t, senderFrames, 1)
	assert.Equal(t, EventMessageConfirmed, senderFrames[0].Event)
}

func TestHandleFrameTyping(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	typist := newTestClient(r, "u1", models.RoleStudent)
	watcher := newTestClient(r, "u2", models.RoleStudent)
	r.Register(typist)
	r.Register(watcher)
	r.Join(typist, ChatRoom("chat1"))
	r.Join(watcher, ChatRoom("chat1"))

	typist.handleFrame(frameFor(t, EventTypingStart, chatRef{ChatID: "chat1"}))
	typist.handleFrame(frameFor(t, EventTypingStop, chatRef{ChatID: "chat1"}))

	frames := drainFrames(t, watcher)
	require.Equal(t, []string{EventUserTyping, EventUserStopTyping}, eventNames(frames))
	assert.Empty(t, drainFrames(t, typist))
}

func TestHandleFrameJoinNotifications(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	c := newTestClient(r, "u1", models.RoleStudent)
	r.Register(c)

	c.handleFrame(frameFor(t, EventJoinNotifications, joinNotificationsPayload{
		Roles: []string{string(models.TargetStudents), "BOGUS"},
	}))

	r.Emit(RoleRoom(models.TargetStudents), EventNewNotification, nil, nil)
	assert.Len(t, drainFrames(t, c), 1)

	// The unknown role never became a room membership.
	r.Emit("notifications:BOGUS", EventNewNotification, nil, nil)
	assert.Empty(t, drainFrames(t, c))
}

func TestHandleFrameMarkNotificationRead(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	c := newTestClient(r, "u1", models.RoleStudent)
	r.Register(c)

	c.handleFrame(frameFor(t, EventMarkNotificationRead, markNotificationReadPayload{
		NotificationID: "n1",
	}))

	// Read state syncs across the user's own room, including this device.
	frames := drainFrames(t, c)
	require.Len(t, frames, 1)
	assert.Equal(t, EventNotificationRead, frames[0].Event)
}

func TestHandleFrameGetUnreadCount(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	c := newTestClient(r, "u1", models.RoleStudent)
	r.Register(c)

	c.handleFrame(Frame{Event: EventGetUnreadCount})

	frames := drainFrames(t, c)
	require.Len(t, frames, 1)
	assert.Equal(t, EventUnreadCount, frames[0].Event)
}

func TestHandleFrameMalformedPayloadIgnored(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	c := newTestClient(r, "u1", models.RoleStudent)
	r.Register(c)

	c.handleFrame(Frame{Event: EventJoinChat, Data: json.RawMessage(`"not an object"`)})
	c.handleFrame(Frame{Event: EventMessageSent, Data: json.RawMessage(`{}`)})
	c.handleFrame(Frame{Event: "unknown-event"})

	assert.Empty(t, drainFrames(t, c))
}
