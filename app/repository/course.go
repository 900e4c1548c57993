package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/huynhdieutuong/DevCamper-API/app/entity"
)

type CourseRepository struct {
	db DBTX
}

func NewCourseRepository(db DBTX) *CourseRepository {
	return &CourseRepository{db: db}
}

const courseColumns = `id, bootcamp_id, title, description, weeks, tuition, minimum_skill,
		       scholarship_available, created_at, updated_at`

func (r *CourseRepository) Create(ctx context.Context, course *entity.Course) error {
	query := `
		INSERT INTO courses (bootcamp_id, title, description, weeks, tuition, minimum_skill, scholarship_available, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		course.BootcampID,
		course.Title,
		course.Description,
		course.Weeks,
		course.Tuition,
		course.MinimumSkill,
		course.ScholarshipAvailable,
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	course.ID = uint64(id)
	return nil
}

func scanCourse(scan func(dest ...any) error) (*entity.Course, error) {
	course := &entity.Course{}
	err := scan(
		&course.ID,
		&course.BootcampID,
		&course.Title,
		&course.Description,
		&course.Weeks,
		&course.Tuition,
		&course.MinimumSkill,
		&course.ScholarshipAvailable,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return course, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id uint64) (*entity.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses WHERE id = ?
	`
	course, err := scanCourse(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return course, nil
}

func (r *CourseRepository) collect(rows *sql.Rows) ([]*entity.Course, error) {
	defer rows.Close()

	var courses []*entity.Course
	for rows.Next() {
		course, err := scanCourse(rows.Scan)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func (r *CourseRepository) List(ctx context.Context, limit, offset int) ([]*entity.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses ORDER BY id LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *CourseRepository) ListByBootcamp(ctx context.Context, bootcampID uint64) ([]*entity.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses WHERE bootcamp_id = ? ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, bootcampID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *CourseRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count)
	return count, err
}

func (r *CourseRepository) Update(ctx context.Context, course *entity.Course) error {
	query := `
		UPDATE courses SET
			title = ?,
			description = ?,
			weeks = ?,
			tuition = ?,
			minimum_skill = ?,
			scholarship_available = ?,
			updated_at = ?
		WHERE id = ?
	`
	course.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		course.Title,
		course.Description,
		course.Weeks,
		course.Tuition,
		course.MinimumSkill,
		course.ScholarshipAvailable,
		course.UpdatedAt,
		course.ID,
	)
	return err
}

func (r *CourseRepository) Delete(ctx context.Context, id uint64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
