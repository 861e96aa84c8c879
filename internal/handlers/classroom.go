package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/AlexSaifo/school-management-system-sub003/internal/repository"
)

// ClassroomHandler manages the membership data the target resolver queries:
// enrollments, parent links, and teacher schedules.
type ClassroomHandler struct {
	classRepo repository.ClassRepository
	logger    zerolog.Logger
}

func NewClassroomHandler(classRepo repository.ClassRepository, logger zerolog.Logger) *ClassroomHandler {
	return &ClassroomHandler{
		classRepo: classRepo,
		logger:    logger.With().Str("handler", "classroom").Logger(),
	}
}

type createClassroomRequest struct {
	Name      string `json:"name" validate:"required"`
	GradeName string `json:"grade_name"`
}

func (h *ClassroomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createClassroomRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	room, err := h.classRepo.CreateClassroom(r.Context(), req.Name, req.GradeName)
	if err != nil {
		http.Error(w, "Failed to create classroom: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

type memberRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

func (h *ClassroomHandler) EnrollStudent(w http.ResponseWriter, r *http.Request) {
	classID := mux.Vars(r)["classroomID"]
	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := h.classRepo.EnrollStudent(r.Context(), classID, req.UserID); err != nil {
		http.Error(w, "Failed to enroll student: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ClassroomHandler) ScheduleTeacher(w http.ResponseWriter, r *http.Request) {
	classID := mux.Vars(r)["classroomID"]
	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := h.classRepo.ScheduleTeacher(r.Context(), classID, req.UserID); err != nil {
		http.Error(w, "Failed to schedule teacher: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type linkParentRequest struct {
	ParentID  string `json:"parent_id" validate:"required"`
	StudentID string `json:"student_id" validate:"required"`
}

func (h *ClassroomHandler) LinkParent(w http.ResponseWriter, r *http.Request) {
	var req linkParentRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := h.classRepo.LinkParent(r.Context(), req.ParentID, req.StudentID); err != nil {
		http.Error(w, "Failed to link parent: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
