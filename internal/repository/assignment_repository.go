package repository

import (
	"context"
	"database/sql"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
)

type AssignmentRepository interface {
	CreateAssignment(ctx context.Context, a models.Assignment) (models.Assignment, error)
	GetAssignment(ctx context.Context, assignmentID string) (models.Assignment, error)
	CreateSubmission(ctx context.Context, s models.Submission) (models.Submission, error)
}

type assignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) CreateAssignment(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	const query = `
		INSERT INTO school.assignments (classroom_id, subject_id, teacher_id, title, description, due_date, total_marks)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		a.ClassRoomID, a.SubjectID, a.TeacherID, a.Title, a.Description, a.DueDate, a.TotalMarks,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return models.Assignment{}, err
	}
	return a, nil
}

func (r *assignmentRepository) GetAssignment(ctx context.Context, assignmentID string) (models.Assignment, error) {
	var a models.Assignment
	const query = `
		SELECT id, classroom_id, subject_id, teacher_id, title, description, due_date, total_marks, created_at
		FROM school.assignments
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, assignmentID).Scan(
		&a.ID, &a.ClassRoomID, &a.SubjectID, &a.TeacherID, &a.Title, &a.Description, &a.DueDate, &a.TotalMarks, &a.CreatedAt,
	)
	if err != nil {
		return models.Assignment{}, err
	}
	return a, nil
}

func (r *assignmentRepository) CreateSubmission(ctx context.Context, s models.Submission) (models.Submission, error) {
	const query = `
		INSERT INTO school.submissions (assignment_id, student_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, submitted_at`
	err := r.db.QueryRowContext(ctx, query, s.AssignmentID, s.StudentID, s.Content).Scan(&s.ID, &s.SubmittedAt)
	if err != nil {
		return models.Submission{}, err
	}
	return s, nil
}
