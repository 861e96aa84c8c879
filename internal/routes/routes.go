package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AlexSaifo/school-management-system-sub003/internal/authz"
	"github.com/AlexSaifo/school-management-system-sub003/internal/handlers"
	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
	"github.com/AlexSaifo/school-management-system-sub003/internal/realtime"
)

// NewRouter sets up the API routes
func NewRouter(
	jwtSecret string,
	auth *handlers.AuthHandler,
	classroom *handlers.ClassroomHandler,
	assignment *handlers.AssignmentHandler,
	exam *handlers.ExamHandler,
	event *handlers.EventHandler,
	grade *handlers.GradeHandler,
	attendance *handlers.AttendanceHandler,
	timetable *handlers.TimetableHandler,
	chat *handlers.ChatHandler,
	ws *realtime.Handler,
) *mux.Router {
	router := mux.NewRouter()

	// Health check route
	router.HandleFunc("/health", handlers.HealthCheck).Methods(http.MethodGet)

	// Public auth endpoints
	router.HandleFunc("/api/signup", auth.SignUp).Methods(http.MethodPost)
	router.HandleFunc("/api/login", auth.Login).Methods(http.MethodPost)

	// Socket endpoint authenticates itself during the handshake.
	router.HandleFunc("/ws", ws.ServeWS)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(authz.Authenticate(jwtSecret))

	teacherOnly := authz.RequireRole(models.RoleTeacher)
	adminOnly := authz.RequireRole(models.RoleAdmin)

	// Classroom membership (feeds target resolution)
	api.Handle("/classrooms", adminOnly(http.HandlerFunc(classroom.Create))).Methods(http.MethodPost)
	api.Handle("/classrooms/{classroomID}/students", adminOnly(http.HandlerFunc(classroom.EnrollStudent))).Methods(http.MethodPost)
	api.Handle("/classrooms/{classroomID}/teachers", adminOnly(http.HandlerFunc(classroom.ScheduleTeacher))).Methods(http.MethodPost)
	api.Handle("/parent-links", adminOnly(http.HandlerFunc(classroom.LinkParent))).Methods(http.MethodPost)

	// Mutations that publish notifications
	api.Handle("/assignments", teacherOnly(http.HandlerFunc(assignment.Create))).Methods(http.MethodPost)
	api.HandleFunc("/assignments/submit", assignment.Submit).Methods(http.MethodPost)
	api.Handle("/exams", teacherOnly(http.HandlerFunc(exam.Schedule))).Methods(http.MethodPost)
	api.Handle("/events", teacherOnly(http.HandlerFunc(event.CreateEvent))).Methods(http.MethodPost)
	api.Handle("/announcements", teacherOnly(http.HandlerFunc(event.CreateAnnouncement))).Methods(http.MethodPost)
	api.Handle("/grades", teacherOnly(http.HandlerFunc(grade.Publish))).Methods(http.MethodPost)
	api.Handle("/attendance", teacherOnly(http.HandlerFunc(attendance.Record))).Methods(http.MethodPost)
	api.Handle("/timetable", adminOnly(http.HandlerFunc(timetable.Update))).Methods(http.MethodPost)

	// Chat
	api.HandleFunc("/chat/messages", chat.SendMessage).Methods(http.MethodPost)
	api.HandleFunc("/chat/messages/{messageID}/read", chat.MarkRead).Methods(http.MethodPut)

	return router
}
