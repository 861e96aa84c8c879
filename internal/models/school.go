package models

import "time"

type Classroom struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	GradeName string    `json:"grade_name" db:"grade_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Subject struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Assignment struct {
	ID          string    `json:"id" db:"id"`
	ClassRoomID string    `json:"classroom_id" db:"classroom_id"`
	SubjectID   string    `json:"subject_id" db:"subject_id"`
	TeacherID   string    `json:"teacher_id" db:"teacher_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	DueDate     time.Time `json:"due_date" db:"due_date"`
	TotalMarks  int       `json:"total_marks" db:"total_marks"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type Submission struct {
	ID           string    `json:"id" db:"id"`
	AssignmentID string    `json:"assignment_id" db:"assignment_id"`
	StudentID    string    `json:"student_id" db:"student_id"`
	Content      string    `json:"content" db:"content"`
	SubmittedAt  time.Time `json:"submitted_at" db:"submitted_at"`
}

type Exam struct {
	ID          string    `json:"id" db:"id"`
	ClassRoomID string    `json:"classroom_id" db:"classroom_id"`
	SubjectID   string    `json:"subject_id" db:"subject_id"`
	TeacherID   string    `json:"teacher_id" db:"teacher_id"`
	Title       string    `json:"title" db:"title"`
	ScheduledAt time.Time `json:"scheduled_at" db:"scheduled_at"`
	DurationMin int       `json:"duration_minutes" db:"duration_minutes"`
	TotalMarks  int       `json:"total_marks" db:"total_marks"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type Announcement struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	CreatedBy string    `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Event struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Location    string    `json:"location" db:"location"`
	StartsAt    time.Time `json:"starts_at" db:"starts_at"`
	CreatedBy   string    `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type Grade struct {
	ID         string    `json:"id" db:"id"`
	StudentID  string    `json:"student_id" db:"student_id"`
	SubjectID  string    `json:"subject_id" db:"subject_id"`
	ExamID     *string   `json:"exam_id,omitempty" db:"exam_id"`
	Marks      int       `json:"marks" db:"marks"`
	TotalMarks int       `json:"total_marks" db:"total_marks"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// AttendanceStatus values mirror what the attendance handlers accept.
const (
	AttendancePresent = "PRESENT"
	AttendanceAbsent  = "ABSENT"
	AttendanceLate    = "LATE"
	AttendanceExcused = "EXCUSED"
)

type AttendanceRecord struct {
	ID          string    `json:"id" db:"id"`
	StudentID   string    `json:"student_id" db:"student_id"`
	ClassRoomID string    `json:"classroom_id" db:"classroom_id"`
	Date        time.Time `json:"date" db:"date"`
	Status      string    `json:"status" db:"status"`
	RecordedBy  string    `json:"recorded_by" db:"recorded_by"`
}

type TimetableSlot struct {
	ID          string    `json:"id" db:"id"`
	ClassRoomID string    `json:"classroom_id" db:"classroom_id"`
	SubjectID   string    `json:"subject_id" db:"subject_id"`
	TeacherID   string    `json:"teacher_id" db:"teacher_id"`
	Weekday     int       `json:"weekday" db:"weekday"`
	StartTime   string    `json:"start_time" db:"start_time"`
	EndTime     string    `json:"end_time" db:"end_time"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
