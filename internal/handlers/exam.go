package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
	"github.com/AlexSaifo/school-management-system-sub003/internal/notification"
	"github.com/AlexSaifo/school-management-system-sub003/internal/repository"
)

type ExamHandler struct {
	examRepo      repository.ExamRepository
	userRepo      repository.UserRepository
	notifications *notification.Service
	logger        zerolog.Logger
}

func NewExamHandler(examRepo repository.ExamRepository, userRepo repository.UserRepository, notifications *notification.Service, logger zerolog.Logger) *ExamHandler {
	return &ExamHandler{
		examRepo:      examRepo,
		userRepo:      userRepo,
		notifications: notifications,
		logger:        logger.With().Str("handler", "exam").Logger(),
	}
}

type scheduleExamRequest struct {
	ClassRoomID string    `json:"classroom_id" validate:"required"`
	SubjectID   string    `json:"subject_id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	DurationMin int       `json:"duration_minutes" validate:"gt=0"`
	TotalMarks  int       `json:"total_marks" validate:"gte=0"`
}

func (h *ExamHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r, h.userRepo)
	if !ok {
		http.Error(w, "User not authenticated", http.StatusUnauthorized)
		return
	}

	var req scheduleExamRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := h.examRepo.CreateExam(r.Context(), models.Exam{
		ClassRoomID: req.ClassRoomID,
		SubjectID:   req.SubjectID,
		TeacherID:   actor.ID,
		Title:       req.Title,
		ScheduledAt: req.ScheduledAt,
		DurationMin: req.DurationMin,
		TotalMarks:  req.TotalMarks,
	})
	if err != nil {
		http.Error(w, "Failed to schedule exam: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.notifications.Publish(r.Context(), notification.NewExam(created, actor)); err != nil {
		h.logger.Warn().Err(err).Str("exam_id", created.ID).Msg("exam notification not published")
	}

	writeJSON(w, http.StatusCreated, created)
}
