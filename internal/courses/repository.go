package courses

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantutor/admin-backend/internal/models"
)

// Repository handles course persistence. The subject list is one JSONB
// document per course, edited wholesale the way the console edits it.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a course repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanCourse(row interface{ Scan(...any) error }) (*models.Course, error) {
	var course models.Course
	var description *string
	var subjects []byte
	err := row.Scan(&course.ID, &course.CourseID, &course.CourseName, &description,
		&course.Levels, &subjects, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if description != nil {
		course.Description = *description
	}
	if err := json.Unmarshal(subjects, &course.SubjectList); err != nil {
		return nil, fmt.Errorf("decode subject list: %w", err)
	}
	if course.SubjectList == nil {
		course.SubjectList = []models.Subject{}
	}
	return &course, nil
}

const courseColumns = `id, course_id, course_name, description, levels, subject_list, created_at, updated_at`

// Create inserts a new course.
func (r *Repository) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	subjects, err := json.Marshal(course.SubjectList)
	if err != nil {
		return nil, fmt.Errorf("encode subject list: %w", err)
	}
	const q = `INSERT INTO courses (course_id, course_name, description, levels, subject_list)
		VALUES ($1, $2, NULLIF($3,''), $4, $5)
		RETURNING ` + courseColumns
	return scanCourse(r.pool.QueryRow(ctx, q,
		course.CourseID, course.CourseName, course.Description, course.Levels, subjects))
}

// GetByID returns a course by its row ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
}

// List returns all courses ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Course, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY course_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *course)
	}
	return list, rows.Err()
}

// Update replaces a course's editable fields.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, name, description string, levels []string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE courses SET course_name = $1, description = NULLIF($2,''), levels = $3, updated_at = NOW() WHERE id = $4`,
		name, description, levels, id)
	return err
}

// ReplaceSubjects overwrites a course's subject list document.
func (r *Repository) ReplaceSubjects(ctx context.Context, id uuid.UUID, subjects []models.Subject) error {
	doc, err := json.Marshal(subjects)
	if err != nil {
		return fmt.Errorf("encode subject list: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`UPDATE courses SET subject_list = $1, updated_at = NOW() WHERE id = $2`, doc, id)
	return err
}

// Delete removes a course.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	return err
}

// Count returns the total number of courses.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&n)
	return n, err
}
