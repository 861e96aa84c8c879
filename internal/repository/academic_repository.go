package repository

import (
	"context"
	"database/sql"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
)

type ExamRepository interface {
	CreateExam(ctx context.Context, e models.Exam) (models.Exam, error)
}

type EventRepository interface {
	CreateEvent(ctx context.Context, e models.Event) (models.Event, error)
	CreateAnnouncement(ctx context.Context, a models.Announcement) (models.Announcement, error)
}

type GradeRepository interface {
	CreateGrade(ctx context.Context, g models.Grade) (models.Grade, error)
}

type AttendanceRepository interface {
	RecordAttendance(ctx context.Context, rec models.AttendanceRecord) (models.AttendanceRecord, error)
}

type TimetableRepository interface {
	UpsertSlot(ctx context.Context, slot models.TimetableSlot) (models.TimetableSlot, error)
}

type examRepository struct{ db *sql.DB }

func NewExamRepository(db *sql.DB) ExamRepository { return &examRepository{db: db} }

func (r *examRepository) CreateExam(ctx context.Context, e models.Exam) (models.Exam, error) {
	const query = `
		INSERT INTO school.exams (classroom_id, subject_id, teacher_id, title, scheduled_at, duration_minutes, total_marks)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		e.ClassRoomID, e.SubjectID, e.TeacherID, e.Title, e.ScheduledAt, e.DurationMin, e.TotalMarks,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return models.Exam{}, err
	}
	return e, nil
}

type eventRepository struct{ db *sql.DB }

func NewEventRepository(db *sql.DB) EventRepository { return &eventRepository{db: db} }

func (r *eventRepository) CreateEvent(ctx context.Context, e models.Event) (models.Event, error) {
	const query = `
		INSERT INTO school.events (title, description, location, starts_at, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, e.Title, e.Description, e.Location, e.StartsAt, e.CreatedBy).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return models.Event{}, err
	}
	return e, nil
}

func (r *eventRepository) CreateAnnouncement(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	const query = `
		INSERT INTO school.announcements (title, body, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, a.Title, a.Body, a.CreatedBy).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return models.Announcement{}, err
	}
	return a, nil
}

type gradeRepository struct{ db *sql.DB }

func NewGradeRepository(db *sql.DB) GradeRepository { return &gradeRepository{db: db} }

func (r *gradeRepository) CreateGrade(ctx context.Context, g models.Grade) (models.Grade, error) {
	const query = `
		INSERT INTO school.grades (student_id, subject_id, exam_id, marks, total_marks)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, g.StudentID, g.SubjectID, g.ExamID, g.Marks, g.TotalMarks).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return models.Grade{}, err
	}
	return g, nil
}

type attendanceRepository struct{ db *sql.DB }

func NewAttendanceRepository(db *sql.DB) AttendanceRepository { return &attendanceRepository{db: db} }

func (r *attendanceRepository) RecordAttendance(ctx context.Context, rec models.AttendanceRecord) (models.AttendanceRecord, error) {
	const query = `
		INSERT INTO school.attendance (student_id, classroom_id, date, status, recorded_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (student_id, date) DO UPDATE SET status = EXCLUDED.status, recorded_by = EXCLUDED.recorded_by
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, rec.StudentID, rec.ClassRoomID, rec.Date, rec.Status, rec.RecordedBy).Scan(&rec.ID)
	if err != nil {
		return models.AttendanceRecord{}, err
	}
	return rec, nil
}

type timetableRepository struct{ db *sql.DB }

func NewTimetableRepository(db *sql.DB) TimetableRepository { return &timetableRepository{db: db} }

func (r *timetableRepository) UpsertSlot(ctx context.Context, slot models.TimetableSlot) (models.TimetableSlot, error) {
	const query = `
		INSERT INTO school.timetable_slots (classroom_id, subject_id, teacher_id, weekday, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (classroom_id, weekday, start_time) DO UPDATE
			SET subject_id = EXCLUDED.subject_id,
			    teacher_id = EXCLUDED.teacher_id,
			    end_time = EXCLUDED.end_time,
			    updated_at = NOW()
		RETURNING id, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		slot.ClassRoomID, slot.SubjectID, slot.TeacherID, slot.Weekday, slot.StartTime, slot.EndTime,
	).Scan(&slot.ID, &slot.UpdatedAt)
	if err != nil {
		return models.TimetableSlot{}, err
	}
	return slot, nil
}
