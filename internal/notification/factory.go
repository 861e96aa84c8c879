package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
)

// Option overrides a constructor default (priority, expiry, localized text).
type Option func(*models.Notification)

func WithPriority(p models.NotificationPriority) Option {
	return func(n *models.Notification) { n.Priority = p }
}

func WithExpiry(at time.Time) Option {
	return func(n *models.Notification) { n.ExpiresAt = &at }
}

func WithArabic(title, message string) Option {
	return func(n *models.Notification) {
		n.TitleAr = title
		n.MessageAr = message
	}
}

// WithTargetUsers adds explicit recipients on top of the declared audience.
func WithTargetUsers(userIDs ...string) Option {
	return func(n *models.Notification) {
		n.TargetUsers = append(n.TargetUsers, userIDs...)
	}
}

// The constructors below are pure: they build the notification record and
// declare its intended audience, but never expand roles or classes to user
// ids. Expansion is the Resolver's job.

func newNotification(t models.NotificationType, priority models.NotificationPriority, actor models.User, opts ...Option) models.Notification {
	n := models.Notification{
		ID:       uuid.NewString(),
		Type:     t,
		Priority: priority,
		CreatedBy: models.CreatedBy{
			ID:   actor.ID,
			Name: actor.DisplayName(),
			Role: actor.Role,
		},
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// NewAnnouncement targets the given roles, defaulting to everyone.
func NewAnnouncement(announcementID, title, message string, roles []models.TargetRole, actor models.User, opts ...Option) models.Notification {
	if len(roles) == 0 {
		roles = []models.TargetRole{models.TargetAll}
	}
	n := newNotification(models.NotificationTypeAnnouncement, models.PriorityNormal, actor, opts...)
	n.Title = title
	n.Message = message
	n.TargetRoles = roles
	n.Metadata = models.AnnouncementMetadata{AnnouncementID: announcementID}
	return n
}

func NewEvent(event models.Event, roles []models.TargetRole, actor models.User, opts ...Option) models.Notification {
	if len(roles) == 0 {
		roles = []models.TargetRole{models.TargetAll}
	}
	n := newNotification(models.NotificationTypeEvent, models.PriorityNormal, actor, opts...)
	n.Title = "New event: " + event.Title
	n.Message = event.Description
	n.TargetRoles = roles
	n.Metadata = models.EventMetadata{
		EventID:  event.ID,
		StartsAt: event.StartsAt,
		Location: event.Location,
	}
	return n
}

// NewAssignment targets the students of the affected class and their parents.
func NewAssignment(a models.Assignment, actor models.User, opts ...Option) models.Notification {
	n := newNotification(models.NotificationTypeAssignment, models.PriorityNormal, actor, opts...)
	n.Title = "New assignment: " + a.Title
	n.Message = fmt.Sprintf("%s is due %s.", a.Title, a.DueDate.Format("Jan 2, 2006"))
	n.TargetRoles = []models.TargetRole{models.TargetStudents, models.TargetParents}
	n.TargetClasses = []string{a.ClassRoomID}
	n.Metadata = models.AssignmentMetadata{
		AssignmentID: a.ID,
		ClassRoomID:  a.ClassRoomID,
		SubjectID:    a.SubjectID,
		DueDate:      a.DueDate,
		TotalMarks:   a.TotalMarks,
	}
	return n
}

func NewExam(e models.Exam, actor models.User, opts ...Option) models.Notification {
	n := newNotification(models.NotificationTypeExam, models.PriorityHigh, actor, opts...)
	n.Title = "Exam scheduled: " + e.Title
	n.Message = fmt.Sprintf("%s is scheduled for %s.", e.Title, e.ScheduledAt.Format("Jan 2, 2006 15:04"))
	n.TargetRoles = []models.TargetRole{models.TargetStudents, models.TargetParents}
	n.TargetClasses = []string{e.ClassRoomID}
	n.Metadata = models.ExamMetadata{
		ExamID:      e.ID,
		ClassRoomID: e.ClassRoomID,
		SubjectID:   e.SubjectID,
		ScheduledAt: e.ScheduledAt,
		DurationMin: e.DurationMin,
		TotalMarks:  e.TotalMarks,
	}
	return n
}

func NewTimetableUpdate(classRoomID string, effective time.Time, actor models.User, opts ...Option) models.Notification {
	n := newNotification(models.NotificationTypeTimetableUpdate, models.PriorityNormal, actor, opts...)
	n.Title = "Timetable updated"
	n.Message = fmt.Sprintf("The class timetable changes on %s.", effective.Format("Jan 2, 2006"))
	n.TargetRoles = []models.TargetRole{models.TargetStudents, models.TargetParents, models.TargetTeachers}
	n.TargetClasses = []string{classRoomID}
	n.Metadata = models.TimetableUpdateMetadata{
		ClassRoomID:   classRoomID,
		EffectiveDate: effective,
	}
	return n
}

// NewAssignmentSubmission notifies the assignment's teacher only.
func NewAssignmentSubmission(sub models.Submission, a models.Assignment, actor models.User, opts ...Option) models.Notification {
	n := newNotification(models.NotificationTypeAssignmentSubmission, models.PriorityNormal, actor, opts...)
	n.Title = "Assignment submitted"
	n.Message = fmt.Sprintf("%s submitted %q.", actor.DisplayName(), a.Title)
	n.TargetUsers = []string{a.TeacherID}
	n.Metadata = models.AssignmentSubmissionMetadata{
		AssignmentID: a.ID,
		SubmissionID: sub.ID,
		StudentID:    sub.StudentID,
		SubmittedAt:  sub.SubmittedAt,
	}
	return n
}

// NewGradePublished notifies the student and their linked parents, which the
// caller resolves beforehand since constructors do no I/O.
func NewGradePublished(g models.Grade, parentIDs []string, actor models.User, opts ...Option) models.Notification {
	n := newNotification(models.NotificationTypeGradePublished, models.PriorityNormal, actor, opts...)
	n.Title = "Grade published"
	n.Message = fmt.Sprintf("A new grade was published: %d/%d.", g.Marks, g.TotalMarks)
	n.TargetUsers = append([]string{g.StudentID}, parentIDs...)
	n.Metadata = models.GradePublishedMetadata{
		GradeID:    g.ID,
		StudentID:  g.StudentID,
		SubjectID:  g.SubjectID,
		Marks:      g.Marks,
		TotalMarks: g.TotalMarks,
	}
	return n
}

func NewAttendanceAlert(rec models.AttendanceRecord, parentIDs []string, actor models.User, opts ...Option) models.Notification {
	n := newNotification(models.NotificationTypeAttendanceAlert, models.PriorityHigh, actor, opts...)
	n.Title = "Attendance alert"
	n.Message = fmt.Sprintf("Attendance marked %s on %s.", rec.Status, rec.Date.Format("Jan 2, 2006"))
	n.TargetUsers = append([]string{rec.StudentID}, parentIDs...)
	n.Metadata = models.AttendanceAlertMetadata{
		StudentID:   rec.StudentID,
		ClassRoomID: rec.ClassRoomID,
		Date:        rec.Date,
		Status:      rec.Status,
	}
	return n
}

// NewChatMessage targets the other participants explicitly; chat messages are
// never role-broadcast.
func NewChatMessage(msg models.ChatMessage, recipientIDs []string, actor models.User, opts ...Option) models.Notification {
	n := newNotification(models.NotificationTypeChatMessage, models.PriorityNormal, actor, opts...)
	n.Title = "New message from " + actor.DisplayName()
	n.Message = preview(msg.Content, 120)
	n.TargetUsers = recipientIDs
	n.Metadata = models.ChatMessageMetadata{
		ChatID:    msg.ChatID,
		MessageID: msg.ID,
		SenderID:  msg.SenderID,
		Preview:   preview(msg.Content, 80),
	}
	return n
}

func preview(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
