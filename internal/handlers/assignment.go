package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
	"github.com/AlexSaifo/school-management-system-sub003/internal/notification"
	"github.com/AlexSaifo/school-management-system-sub003/internal/repository"
)

type AssignmentHandler struct {
	assignmentRepo repository.AssignmentRepository
	userRepo       repository.UserRepository
	notifications  *notification.Service
	logger         zerolog.Logger
}

func NewAssignmentHandler(assignmentRepo repository.AssignmentRepository, userRepo repository.UserRepository, notifications *notification.Service, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		notifications:  notifications,
		logger:         logger.With().Str("handler", "assignment").Logger(),
	}
}

type createAssignmentRequest struct {
	ClassRoomID string    `json:"classroom_id" validate:"required"`
	SubjectID   string    `json:"subject_id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	TotalMarks  int       `json:"total_marks" validate:"gte=0"`
}

func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r, h.userRepo)
	if !ok {
		http.Error(w, "User not authenticated", http.StatusUnauthorized)
		return
	}

	var req createAssignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := h.assignmentRepo.CreateAssignment(r.Context(), models.Assignment{
		ClassRoomID: req.ClassRoomID,
		SubjectID:   req.SubjectID,
		TeacherID:   actor.ID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		TotalMarks:  req.TotalMarks,
	})
	if err != nil {
		http.Error(w, "Failed to create assignment: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Broadcast outcome never affects the response.
	if err := h.notifications.Publish(r.Context(), notification.NewAssignment(created, actor)); err != nil {
		h.logger.Warn().Err(err).Str("assignment_id", created.ID).Msg("assignment notification not published")
	}

	writeJSON(w, http.StatusCreated, created)
}

type submitAssignmentRequest struct {
	AssignmentID string `json:"assignment_id" validate:"required"`
	Content      string `json:"content" validate:"required"`
}

func (h *AssignmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r, h.userRepo)
	if !ok {
		http.Error(w, "User not authenticated", http.StatusUnauthorized)
		return
	}

	var req submitAssignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	assignment, err := h.assignmentRepo.GetAssignment(r.Context(), req.AssignmentID)
	if err != nil {
		http.Error(w, "Assignment not found", http.StatusNotFound)
		return
	}

	submission, err := h.assignmentRepo.CreateSubmission(r.Context(), models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    actor.ID,
		Content:      req.Content,
	})
	if err != nil {
		http.Error(w, "Failed to save submission: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.notifications.Publish(r.Context(), notification.NewAssignmentSubmission(submission, assignment, actor)); err != nil {
		h.logger.Warn().Err(err).Str("submission_id", submission.ID).Msg("submission notification not published")
	}

	writeJSON(w, http.StatusCreated, submission)
}
