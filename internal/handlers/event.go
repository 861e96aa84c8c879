package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
	"github.com/AlexSaifo/school-management-system-sub003/internal/notification"
	"github.com/AlexSaifo/school-management-system-sub003/internal/repository"
)

// EventHandler covers school events and plain announcements, both of which
// are role-broadcast notifications.
type EventHandler struct {
	eventRepo     repository.EventRepository
	userRepo      repository.UserRepository
	notifications *notification.Service
	logger        zerolog.Logger
}

func NewEventHandler(eventRepo repository.EventRepository, userRepo repository.UserRepository, notifications *notification.Service, logger zerolog.Logger) *EventHandler {
	return &EventHandler{
		eventRepo:     eventRepo,
		userRepo:      userRepo,
		notifications: notifications,
		logger:        logger.With().Str("handler", "event").Logger(),
	}
}

type createEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	TargetRoles []string  `json:"target_roles"`
}

func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r, h.userRepo)
	if !ok {
		http.Error(w, "User not authenticated", http.StatusUnauthorized)
		return
	}

	var req createEventRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := h.eventRepo.CreateEvent(r.Context(), models.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		CreatedBy:   actor.ID,
	})
	if err != nil {
		http.Error(w, "Failed to create event: "+err.Error(), http.StatusInternalServerError)
		return
	}

	n := notification.NewEvent(created, parseTargetRoles(req.TargetRoles), actor)
	if err := h.notifications.Publish(r.Context(), n); err != nil {
		h.logger.Warn().Err(err).Str("event_id", created.ID).Msg("event notification not published")
	}

	writeJSON(w, http.StatusCreated, created)
}

type createAnnouncementRequest struct {
	Title       string   `json:"title" validate:"required"`
	Body        string   `json:"body" validate:"required"`
	TargetRoles []string `json:"target_roles"`
	Urgent      bool     `json:"urgent"`
}

func (h *EventHandler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r, h.userRepo)
	if !ok {
		http.Error(w, "User not authenticated", http.StatusUnauthorized)
		return
	}

	var req createAnnouncementRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := h.eventRepo.CreateAnnouncement(r.Context(), models.Announcement{
		Title:     req.Title,
		Body:      req.Body,
		CreatedBy: actor.ID,
	})
	if err != nil {
		http.Error(w, "Failed to create announcement: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var opts []notification.Option
	if req.Urgent {
		opts = append(opts, notification.WithPriority(models.PriorityUrgent))
	}
	n := notification.NewAnnouncement(created.ID, created.Title, created.Body, parseTargetRoles(req.TargetRoles), actor, opts...)
	if err := h.notifications.Publish(r.Context(), n); err != nil {
		h.logger.Warn().Err(err).Str("announcement_id", created.ID).Msg("announcement notification not published")
	}

	writeJSON(w, http.StatusCreated, created)
}

func parseTargetRoles(raw []string) []models.TargetRole {
	var roles []models.TargetRole
	for _, v := range raw {
		role := models.TargetRole(v)
		if role == models.TargetAll {
			roles = append(roles, role)
			continue
		}
		if _, ok := models.UserRoleForTarget(role); ok {
			roles = append(roles, role)
		}
	}
	return roles
}
