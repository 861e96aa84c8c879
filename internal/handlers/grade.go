package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
	"github.com/AlexSaifo/school-management-system-sub003/internal/notification"
	"github.com/AlexSaifo/school-management-system-sub003/internal/repository"
)

type GradeHandler struct {
	gradeRepo     repository.GradeRepository
	classRepo     repository.ClassRepository
	userRepo      repository.UserRepository
	notifications *notification.Service
	logger        zerolog.Logger
}

func NewGradeHandler(gradeRepo repository.GradeRepository, classRepo repository.ClassRepository, userRepo repository.UserRepository, notifications *notification.Service, logger zerolog.Logger) *GradeHandler {
	return &GradeHandler{
		gradeRepo:     gradeRepo,
		classRepo:     classRepo,
		userRepo:      userRepo,
		notifications: notifications,
		logger:        logger.With().Str("handler", "grade").Logger(),
	}
}

type publishGradeRequest struct {
	StudentID  string  `json:"student_id" validate:"required"`
	SubjectID  string  `json:"subject_id" validate:"required"`
	ExamID     *string `json:"exam_id"`
	Marks      int     `json:"marks" validate:"gte=0"`
	TotalMarks int     `json:"total_marks" validate:"gt=0"`
}

func (h *GradeHandler) Publish(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r, h.userRepo)
	if !ok {
		http.Error(w, "User not authenticated", http.StatusUnauthorized)
		return
	}

	var req publishGradeRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := h.gradeRepo.CreateGrade(r.Context(), models.Grade{
		StudentID:  req.StudentID,
		SubjectID:  req.SubjectID,
		ExamID:     req.ExamID,
		Marks:      req.Marks,
		TotalMarks: req.TotalMarks,
	})
	if err != nil {
		http.Error(w, "Failed to publish grade: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Linked parents see the grade too. A failed lookup only shrinks the
	// audience, never the response.
	parents, err := h.classRepo.ParentsOfStudent(r.Context(), created.StudentID)
	if err != nil {
		h.logger.Warn().Err(err).Str("student_id", created.StudentID).Msg("parent lookup failed")
	}

	if err := h.notifications.Publish(r.Context(), notification.NewGradePublished(created, parents, actor)); err != nil {
		h.logger.Warn().Err(err).Str("grade_id", created.ID).Msg("grade notification not published")
	}

	writeJSON(w, http.StatusCreated, created)
}
