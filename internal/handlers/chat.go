package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/AlexSaifo/school-management-system-sub003/internal/notification"
	"github.com/AlexSaifo/school-management-system-sub003/internal/repository"
)

type ChatHandler struct {
	chatRepo      repository.ChatRepository
	userRepo      repository.UserRepository
	notifications *notification.Service
	logger        zerolog.Logger
}

func NewChatHandler(chatRepo repository.ChatRepository, userRepo repository.UserRepository, notifications *notification.Service, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		chatRepo:      chatRepo,
		userRepo:      userRepo,
		notifications: notifications,
		logger:        logger.With().Str("handler", "chat").Logger(),
	}
}

type sendMessageRequest struct {
	ChatID      string `json:"chat_id"`
	RecipientID string `json:"recipient_id"`
	Content     string `json:"content" validate:"required"`
}

// SendMessage persists the message and notifies the other participants. The
// live relay inside an open chat happens over the socket; this path covers
// recipients who are not in the chat room right now.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r, h.userRepo)
	if !ok {
		http.Error(w, "User not authenticated", http.StatusUnauthorized)
		return
	}

	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	chatID := req.ChatID
	if chatID == "" {
		if req.RecipientID == "" {
			http.Error(w, "chat_id or recipient_id is required", http.StatusBadRequest)
			return
		}
		chat, err := h.chatRepo.EnsureDirectChat(r.Context(), actor.ID, req.RecipientID)
		if err != nil {
			http.Error(w, "Failed to open chat: "+err.Error(), http.StatusBadRequest)
			return
		}
		chatID = chat.ID
	}

	participants, err := h.chatRepo.Participants(r.Context(), chatID)
	if err != nil {
		http.Error(w, "Chat not found", http.StatusNotFound)
		return
	}
	if !containsID(participants, actor.ID) {
		http.Error(w, "Not a chat participant", http.StatusForbidden)
		return
	}

	msg, err := h.chatRepo.SaveMessage(r.Context(), chatID, actor.ID, req.Content)
	if err != nil {
		http.Error(w, "Failed to save message: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recipients := make([]string, 0, len(participants)-1)
	for _, id := range participants {
		if id != actor.ID {
			recipients = append(recipients, id)
		}
	}
	if err := h.notifications.Publish(r.Context(), notification.NewChatMessage(msg, recipients, actor)); err != nil {
		h.logger.Warn().Err(err).Str("message_id", msg.ID).Msg("chat notification not published")
	}

	writeJSON(w, http.StatusCreated, msg)
}

func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	messageID := mux.Vars(r)["messageID"]
	if messageID == "" {
		http.Error(w, "Message ID is required", http.StatusBadRequest)
		return
	}
	if err := h.chatRepo.MarkMessageRead(r.Context(), messageID); err != nil {
		http.Error(w, "Failed to mark message read: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
