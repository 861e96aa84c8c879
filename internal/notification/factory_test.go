package notification

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
)

var teacher = models.User{
	ID:        "t1",
	Email:     "jane@school.test",
	FirstName: "Jane",
	LastName:  "Doe",
	Role:      models.RoleTeacher,
}

func TestNewAssignment(t *testing.T) {
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	a := models.Assignment{
		ID:          "a1",
		ClassRoomID: "c1",
		SubjectID:   "math",
		TeacherID:   "t1",
		Title:       "Fractions",
		DueDate:     due,
		TotalMarks:  20,
	}

	n := NewAssignment(a, teacher)

	require.NotEmpty(t, n.ID)
	assert.Equal(t, models.NotificationTypeAssignment, n.Type)
	assert.Equal(t, models.PriorityNormal, n.Priority)
	assert.Equal(t, []models.TargetRole{models.TargetStudents, models.TargetParents}, n.TargetRoles)
	assert.Equal(t, []string{"c1"}, n.TargetClasses)
	assert.Equal(t, "t1", n.CreatedBy.ID)
	assert.Equal(t, "Jane Doe", n.CreatedBy.Name)

	meta, ok := n.Metadata.(models.AssignmentMetadata)
	require.True(t, ok)
	assert.Equal(t, "a1", meta.AssignmentID)
	assert.Equal(t, due, meta.DueDate)
	assert.Equal(t, 20, meta.TotalMarks)
}

func TestNewExamIsHighPriority(t *testing.T) {
	e := models.Exam{ID: "e1", ClassRoomID: "c1", SubjectID: "math", Title: "Midterm", ScheduledAt: time.Now()}

	n := NewExam(e, teacher)

	assert.Equal(t, models.PriorityHigh, n.Priority)
	assert.Equal(t, []string{"c1"}, n.TargetClasses)
	_, ok := n.Metadata.(models.ExamMetadata)
	assert.True(t, ok)
}

func TestNewAnnouncementDefaultsToAll(t *testing.T) {
	n := NewAnnouncement("ann1", "Sports day", "Friday.", nil, teacher)

	assert.Equal(t, []models.TargetRole{models.TargetAll}, n.TargetRoles)
	assert.Equal(t, models.AnnouncementMetadata{AnnouncementID: "ann1"}, n.Metadata)
}

func TestNewAssignmentSubmissionTargetsTeacher(t *testing.T) {
	student := models.User{ID: "s1", FirstName: "Omar", Role: models.RoleStudent}
	a := models.Assignment{ID: "a1", TeacherID: "t1", Title: "Fractions"}
	sub := models.Submission{ID: "sub1", AssignmentID: "a1", StudentID: "s1", SubmittedAt: time.Now()}

	n := NewAssignmentSubmission(sub, a, student)

	assert.Equal(t, []string{"t1"}, n.TargetUsers)
	assert.Empty(t, n.TargetRoles)
	meta, ok := n.Metadata.(models.AssignmentSubmissionMetadata)
	require.True(t, ok)
	assert.Equal(t, "s1", meta.StudentID)
}

func TestNewGradePublishedTargetsStudentAndParents(t *testing.T) {
	g := models.Grade{ID: "g1", StudentID: "s1", SubjectID: "math", Marks: 18, TotalMarks: 20}

	n := NewGradePublished(g, []string{"p1", "p2"}, teacher)

	assert.Equal(t, []string{"s1", "p1", "p2"}, n.TargetUsers)
	assert.Contains(t, n.Message, "18/20")
}

func TestNewChatMessagePreview(t *testing.T) {
	long := strings.Repeat("x", 200)
	msg := models.ChatMessage{ID: "m1", ChatID: "chat1", SenderID: "s1", Content: long}

	n := NewChatMessage(msg, []string{"u2"}, teacher)

	meta, ok := n.Metadata.(models.ChatMessageMetadata)
	require.True(t, ok)
	assert.Len(t, []rune(meta.Preview), 81) // 80 runes + ellipsis
	assert.Equal(t, []string{"u2"}, n.TargetUsers)
}

func TestMetadataKindMatchesNotificationType(t *testing.T) {
	actor := teacher
	cases := []models.Notification{
		NewAnnouncement("ann1", "t", "m", nil, actor),
		NewEvent(models.Event{ID: "e1"}, nil, actor),
		NewAssignment(models.Assignment{ID: "a1", ClassRoomID: "c1"}, actor),
		NewExam(models.Exam{ID: "e1", ClassRoomID: "c1"}, actor),
		NewTimetableUpdate("c1", time.Now(), actor),
		NewAssignmentSubmission(models.Submission{ID: "s1"}, models.Assignment{TeacherID: "t1"}, actor),
		NewGradePublished(models.Grade{ID: "g1", StudentID: "s1"}, nil, actor),
		NewAttendanceAlert(models.AttendanceRecord{StudentID: "s1", Status: models.AttendanceAbsent}, nil, actor),
		NewChatMessage(models.ChatMessage{ID: "m1"}, []string{"u2"}, actor),
	}
	for _, n := range cases {
		require.NotNil(t, n.Metadata, string(n.Type))
		assert.Equal(t, n.Type, n.Metadata.Kind(), string(n.Type))
	}
}

func TestOptions(t *testing.T) {
	expiry := time.Now().Add(48 * time.Hour)
	n := NewAnnouncement("ann1", "t", "m", nil, teacher,
		WithPriority(models.PriorityUrgent),
		WithExpiry(expiry),
		WithArabic("عنوان", "نص"),
		WithTargetUsers("extra1"),
	)

	assert.Equal(t, models.PriorityUrgent, n.Priority)
	require.NotNil(t, n.ExpiresAt)
	assert.Equal(t, expiry, *n.ExpiresAt)
	assert.Equal(t, "عنوان", n.TitleAr)
	assert.Equal(t, []string{"extra1"}, n.TargetUsers)
}
