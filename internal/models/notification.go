package models

import "time"

type NotificationType string

const (
	NotificationTypeAnnouncement         NotificationType = "ANNOUNCEMENT"
	NotificationTypeEvent                NotificationType = "EVENT"
	NotificationTypeAssignment           NotificationType = "ASSIGNMENT"
	NotificationTypeExam                 NotificationType = "EXAM"
	NotificationTypeTimetableUpdate      NotificationType = "TIMETABLE_UPDATE"
	NotificationTypeAssignmentSubmission NotificationType = "ASSIGNMENT_SUBMISSION"
	NotificationTypeGradePublished       NotificationType = "GRADE_PUBLISHED"
	NotificationTypeAttendanceAlert      NotificationType = "ATTENDANCE_ALERT"
	NotificationTypeChatMessage          NotificationType = "CHAT_MESSAGE"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "LOW"
	PriorityNormal NotificationPriority = "NORMAL"
	PriorityHigh   NotificationPriority = "HIGH"
	PriorityUrgent NotificationPriority = "URGENT"
)

// TargetRole is the declarative audience of a notification, before expansion
// to concrete user ids.
type TargetRole string

const (
	TargetAll      TargetRole = "ALL"
	TargetStudents TargetRole = "STUDENTS"
	TargetParents  TargetRole = "PARENTS"
	TargetTeachers TargetRole = "TEACHERS"
	TargetAdmins   TargetRole = "ADMINS"
)

// UserRoleForTarget maps a declared audience to the stored user role. TargetAll
// has no single role and returns false.
func UserRoleForTarget(t TargetRole) (UserRole, bool) {
	switch t {
	case TargetStudents:
		return RoleStudent, true
	case TargetParents:
		return RoleParent, true
	case TargetTeachers:
		return RoleTeacher, true
	case TargetAdmins:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// TargetForUserRole is the inverse mapping, used when a connection subscribes
// to the room matching its own role.
func TargetForUserRole(r UserRole) (TargetRole, bool) {
	switch r {
	case RoleStudent:
		return TargetStudents, true
	case RoleParent:
		return TargetParents, true
	case RoleTeacher:
		return TargetTeachers, true
	case RoleAdmin:
		return TargetAdmins, true
	default:
		return "", false
	}
}

// CreatedBy is a snapshot of the acting user taken when the notification is
// built, so the payload stays stable even if the user row changes later.
type CreatedBy struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Role UserRole `json:"role"`
}

// NotificationMetadata is the per-type payload variant. Exactly one concrete
// struct exists per NotificationType; Kind ties the variant to its type so the
// pairing can be checked wherever metadata is read.
type NotificationMetadata interface {
	Kind() NotificationType
}

type AnnouncementMetadata struct {
	AnnouncementID string `json:"announcementId"`
}

type EventMetadata struct {
	EventID  string    `json:"eventId"`
	StartsAt time.Time `json:"startsAt"`
	Location string    `json:"location,omitempty"`
}

type AssignmentMetadata struct {
	AssignmentID string    `json:"assignmentId"`
	ClassRoomID  string    `json:"classRoomId"`
	SubjectID    string    `json:"subjectId"`
	DueDate      time.Time `json:"dueDate"`
	TotalMarks   int       `json:"totalMarks"`
}

type ExamMetadata struct {
	ExamID      string    `json:"examId"`
	ClassRoomID string    `json:"classRoomId"`
	SubjectID   string    `json:"subjectId"`
	ScheduledAt time.Time `json:"scheduledAt"`
	DurationMin int       `json:"durationMinutes"`
	TotalMarks  int       `json:"totalMarks"`
}

type TimetableUpdateMetadata struct {
	ClassRoomID   string    `json:"classRoomId"`
	EffectiveDate time.Time `json:"effectiveDate"`
}

type AssignmentSubmissionMetadata struct {
	AssignmentID string    `json:"assignmentId"`
	SubmissionID string    `json:"submissionId"`
	StudentID    string    `json:"studentId"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

type GradePublishedMetadata struct {
	GradeID    string `json:"gradeId"`
	StudentID  string `json:"studentId"`
	SubjectID  string `json:"subjectId"`
	Marks      int    `json:"marks"`
	TotalMarks int    `json:"totalMarks"`
}

type AttendanceAlertMetadata struct {
	StudentID   string    `json:"studentId"`
	ClassRoomID string    `json:"classRoomId"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
}

type ChatMessageMetadata struct {
	ChatID    string `json:"chatId"`
	MessageID string `json:"messageId"`
	SenderID  string `json:"senderId"`
	Preview   string `json:"preview,omitempty"`
}

func (AnnouncementMetadata) Kind() NotificationType         { return NotificationTypeAnnouncement }
func (EventMetadata) Kind() NotificationType                { return NotificationTypeEvent }
func (AssignmentMetadata) Kind() NotificationType           { return NotificationTypeAssignment }
func (ExamMetadata) Kind() NotificationType                 { return NotificationTypeExam }
func (TimetableUpdateMetadata) Kind() NotificationType      { return NotificationTypeTimetableUpdate }
func (AssignmentSubmissionMetadata) Kind() NotificationType {
	return NotificationTypeAssignmentSubmission
}
func (GradePublishedMetadata) Kind() NotificationType  { return NotificationTypeGradePublished }
func (AttendanceAlertMetadata) Kind() NotificationType { return NotificationTypeAttendanceAlert }
func (ChatMessageMetadata) Kind() NotificationType     { return NotificationTypeChatMessage }

// Notification is broadcast-only: it is never written to the database, it only
// lives for the duration of a dispatch.
type Notification struct {
	ID            string               `json:"id"`
	Type          NotificationType     `json:"type"`
	Title         string               `json:"title"`
	Message       string               `json:"message"`
	TitleAr       string               `json:"title_ar,omitempty"`
	MessageAr     string               `json:"message_ar,omitempty"`
	Priority      NotificationPriority `json:"priority"`
	TargetRoles   []TargetRole         `json:"target_roles,omitempty"`
	TargetUsers   []string             `json:"target_users,omitempty"`
	TargetClasses []string             `json:"target_classes,omitempty"`
	CreatedBy     CreatedBy            `json:"created_by"`
	Metadata      NotificationMetadata `json:"metadata"`
	CreatedAt     time.Time            `json:"created_at"`
	ExpiresAt     *time.Time           `json:"expires_at,omitempty"`
}

// HasAudience reports whether the notification declares at least one audience.
func (n Notification) HasAudience() bool {
	return len(n.TargetRoles) > 0 || len(n.TargetUsers) > 0
}
