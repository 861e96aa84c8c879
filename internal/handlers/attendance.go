package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
	"github.com/AlexSaifo/school-management-system-sub003/internal/notification"
	"github.com/AlexSaifo/school-management-system-sub003/internal/repository"
)

type AttendanceHandler struct {
	attendanceRepo repository.AttendanceRepository
	classRepo      repository.ClassRepository
	userRepo       repository.UserRepository
	notifications  *notification.Service
	logger         zerolog.Logger
}

func NewAttendanceHandler(attendanceRepo repository.AttendanceRepository, classRepo repository.ClassRepository, userRepo repository.UserRepository, notifications *notification.Service, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceRepo: attendanceRepo,
		classRepo:      classRepo,
		userRepo:       userRepo,
		notifications:  notifications,
		logger:         logger.With().Str("handler", "attendance").Logger(),
	}
}

type recordAttendanceRequest struct {
	StudentID   string    `json:"student_id" validate:"required"`
	ClassRoomID string    `json:"classroom_id" validate:"required"`
	Date        time.Time `json:"date" validate:"required"`
	Status      string    `json:"status" validate:"required"`
}

func (h *AttendanceHandler) Record(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r, h.userRepo)
	if !ok {
		http.Error(w, "User not authenticated", http.StatusUnauthorized)
		return
	}

	var req recordAttendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	status := strings.ToUpper(strings.TrimSpace(req.Status))
	switch status {
	case models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLate, models.AttendanceExcused:
	default:
		http.Error(w, "Invalid attendance status", http.StatusBadRequest)
		return
	}

	created, err := h.attendanceRepo.RecordAttendance(r.Context(), models.AttendanceRecord{
		StudentID:   req.StudentID,
		ClassRoomID: req.ClassRoomID,
		Date:        req.Date,
		Status:      status,
		RecordedBy:  actor.ID,
	})
	if err != nil {
		http.Error(w, "Failed to record attendance: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Presence needs no alert; everything else goes to the student and
	// their linked parents.
	if status != models.AttendancePresent {
		parents, err := h.classRepo.ParentsOfStudent(r.Context(), created.StudentID)
		if err != nil {
			h.logger.Warn().Err(err).Str("student_id", created.StudentID).Msg("parent lookup failed")
		}
		if err := h.notifications.Publish(r.Context(), notification.NewAttendanceAlert(created, parents, actor)); err != nil {
			h.logger.Warn().Err(err).Str("attendance_id", created.ID).Msg("attendance alert not published")
		}
	}

	writeJSON(w, http.StatusCreated, created)
}
