package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
	"github.com/AlexSaifo/school-management-system-sub003/internal/notification"
	"github.com/AlexSaifo/school-management-system-sub003/internal/repository"
)

type TimetableHandler struct {
	timetableRepo repository.TimetableRepository
	userRepo      repository.UserRepository
	notifications *notification.Service
	logger        zerolog.Logger
}

func NewTimetableHandler(timetableRepo repository.TimetableRepository, userRepo repository.UserRepository, notifications *notification.Service, logger zerolog.Logger) *TimetableHandler {
	return &TimetableHandler{
		timetableRepo: timetableRepo,
		userRepo:      userRepo,
		notifications: notifications,
		logger:        logger.With().Str("handler", "timetable").Logger(),
	}
}

type updateTimetableRequest struct {
	ClassRoomID   string    `json:"classroom_id" validate:"required"`
	SubjectID     string    `json:"subject_id" validate:"required"`
	TeacherID     string    `json:"teacher_id" validate:"required"`
	Weekday       int       `json:"weekday" validate:"gte=0,lte=6"`
	StartTime     string    `json:"start_time" validate:"required"`
	EndTime       string    `json:"end_time" validate:"required"`
	EffectiveDate time.Time `json:"effective_date"`
}

func (h *TimetableHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r, h.userRepo)
	if !ok {
		http.Error(w, "User not authenticated", http.StatusUnauthorized)
		return
	}

	var req updateTimetableRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	slot, err := h.timetableRepo.UpsertSlot(r.Context(), models.TimetableSlot{
		ClassRoomID: req.ClassRoomID,
		SubjectID:   req.SubjectID,
		TeacherID:   req.TeacherID,
		Weekday:     req.Weekday,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		http.Error(w, "Failed to update timetable: "+err.Error(), http.StatusInternalServerError)
		return
	}

	effective := req.EffectiveDate
	if effective.IsZero() {
		effective = time.Now().UTC()
	}
	if err := h.notifications.Publish(r.Context(), notification.NewTimetableUpdate(slot.ClassRoomID, effective, actor)); err != nil {
		h.logger.Warn().Err(err).Str("classroom_id", slot.ClassRoomID).Msg("timetable notification not published")
	}

	writeJSON(w, http.StatusOK, slot)
}
