package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
)

type ClassRepository interface {
	CreateClassroom(ctx context.Context, name, gradeName string) (models.Classroom, error)
	GetClassroom(ctx context.Context, classID string) (models.Classroom, error)
	EnrollStudent(ctx context.Context, classID, studentID string) error
	LinkParent(ctx context.Context, parentID, studentID string) error
	ScheduleTeacher(ctx context.Context, classID, teacherID string) error

	// ClassAudience expands a class to the users associated with it:
	// enrolled students, their linked parents, and scheduled teachers.
	// A nil roles filter returns the whole audience.
	ClassAudience(ctx context.Context, classID string, roles []models.UserRole) ([]string, error)
	ParentsOfStudent(ctx context.Context, studentID string) ([]string, error)
}

type classRepository struct {
	db *sql.DB
}

func NewClassRepository(db *sql.DB) ClassRepository {
	return &classRepository{db: db}
}

func (c *classRepository) CreateClassroom(ctx context.Context, name, gradeName string) (models.Classroom, error) {
	room := models.Classroom{Name: name, GradeName: gradeName}
	const query = `
		INSERT INTO school.classrooms (name, grade_name)
		VALUES ($1, $2)
		RETURNING id, created_at`
	err := c.db.QueryRowContext(ctx, query, name, gradeName).Scan(&room.ID, &room.CreatedAt)
	if err != nil {
		return models.Classroom{}, err
	}
	return room, nil
}

func (c *classRepository) GetClassroom(ctx context.Context, classID string) (models.Classroom, error) {
	var room models.Classroom
	const query = `
		SELECT id, name, grade_name, created_at
		FROM school.classrooms
		WHERE id = $1`
	err := c.db.QueryRowContext(ctx, query, classID).Scan(&room.ID, &room.Name, &room.GradeName, &room.CreatedAt)
	if err != nil {
		return models.Classroom{}, err
	}
	return room, nil
}

func (c *classRepository) EnrollStudent(ctx context.Context, classID, studentID string) error {
	const query = `
		INSERT INTO school.enrollments (classroom_id, student_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`
	_, err := c.db.ExecContext(ctx, query, classID, studentID)
	return err
}

func (c *classRepository) LinkParent(ctx context.Context, parentID, studentID string) error {
	const query = `
		INSERT INTO school.parent_links (parent_id, student_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`
	_, err := c.db.ExecContext(ctx, query, parentID, studentID)
	return err
}

func (c *classRepository) ScheduleTeacher(ctx context.Context, classID, teacherID string) error {
	const query = `
		INSERT INTO school.teacher_schedule (classroom_id, teacher_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`
	_, err := c.db.ExecContext(ctx, query, classID, teacherID)
	return err
}

func (c *classRepository) ClassAudience(ctx context.Context, classID string, roles []models.UserRole) ([]string, error) {
	const query = `
		SELECT u.id
		FROM school.users u
		WHERE u.is_active
		  AND u.deleted_at IS NULL
		  AND ($2::text[] IS NULL OR u.role = ANY($2))
		  AND (
		       (u.role = 'STUDENT' AND EXISTS (
		            SELECT 1 FROM school.enrollments e
		            WHERE e.classroom_id = $1 AND e.student_id = u.id))
		    OR (u.role = 'PARENT' AND EXISTS (
		            SELECT 1 FROM school.parent_links pl
		            JOIN school.enrollments e ON e.student_id = pl.student_id
		            WHERE e.classroom_id = $1 AND pl.parent_id = u.id))
		    OR (u.role = 'TEACHER' AND EXISTS (
		            SELECT 1 FROM school.teacher_schedule ts
		            WHERE ts.classroom_id = $1 AND ts.teacher_id = u.id))
		  )
		ORDER BY u.role DESC, u.id`

	var filter interface{}
	if len(roles) > 0 {
		names := make([]string, 0, len(roles))
		for _, role := range roles {
			names = append(names, string(role))
		}
		filter = pq.Array(names)
	}

	rows, err := c.db.QueryContext(ctx, query, classID, filter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (c *classRepository) ParentsOfStudent(ctx context.Context, studentID string) ([]string, error) {
	const query = `
		SELECT p.id
		FROM school.users p
		JOIN school.parent_links pl ON pl.parent_id = p.id
		WHERE pl.student_id = $1 AND p.is_active AND p.deleted_at IS NULL
		ORDER BY p.id`

	rows, err := c.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
