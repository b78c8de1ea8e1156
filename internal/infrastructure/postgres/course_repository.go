package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var (
	_ repository.CourseRepository  = (*CourseRepo)(nil)
	_ repository.StudentRepository = (*StudentRepo)(nil)
)

// TxQuerier Querier que además puede abrir una transacción (pool) o un savepoint (tx).
type TxQuerier interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// CourseRepo implementación de CourseRepository; las inscripciones viven en course_students.
type CourseRepo struct {
	db TxQuerier
}

// NewCourseRepository construye el adaptador.
func NewCourseRepository(db TxQuerier) *CourseRepo {
	return &CourseRepo{db: db}
}

// Create inserta el curso y sus inscripciones en una sola transacción.
func (r *CourseRepo) Create(ctx context.Context, c *entity.Course) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO courses (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
			c.ID, c.Name, c.CreatedAt, c.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert course: %w", err)
		}
		return replaceEnrollments(ctx, tx, c.ID, c.StudentIDs)
	})
}

// GetByID obtiene un curso con sus estudiantes.
func (r *CourseRepo) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	list, err := r.query(ctx, repository.CourseFilter{ID: id}, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// Update reemplaza nombre e inscripciones.
func (r *CourseRepo) Update(ctx context.Context, c *entity.Course) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`UPDATE courses SET name = $2, updated_at = $3 WHERE id = $1`,
			c.ID, c.Name, c.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("update course: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM course_students WHERE course_id = $1`, c.ID); err != nil {
			return fmt.Errorf("clear enrollments: %w", err)
		}
		return replaceEnrollments(ctx, tx, c.ID, c.StudentIDs)
	})
}

// Delete elimina el curso; las inscripciones caen por ON DELETE CASCADE.
func (r *CourseRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}

// List lista cursos en orden de creación con filtros exactos por id y nombre.
func (r *CourseRepo) List(ctx context.Context, filter repository.CourseFilter, limit, offset int) ([]*entity.Course, error) {
	list, err := r.query(ctx, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return list, nil
}

func (r *CourseRepo) query(ctx context.Context, filter repository.CourseFilter, limit, offset int) ([]*entity.Course, error) {
	query := `
		SELECT c.id, c.name, c.created_at, c.updated_at,
		       COALESCE(array_agg(cs.student_id ORDER BY cs.position)
		                FILTER (WHERE cs.student_id IS NOT NULL), '{}')
		FROM courses c
		LEFT JOIN course_students cs ON cs.course_id = c.id
		WHERE ($1 = '' OR c.id = $1) AND ($2 = '' OR c.name = $2)
		GROUP BY c.id
		ORDER BY c.created_at, c.id LIMIT $3 OFFSET $4`
	rows, err := r.db.Query(ctx, query, filter.ID, filter.Name, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*entity.Course
	for rows.Next() {
		var c entity.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt, &c.StudentIDs); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func replaceEnrollments(ctx context.Context, tx pgx.Tx, courseID string, studentIDs []string) error {
	for i, sid := range studentIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO course_students (course_id, student_id, position) VALUES ($1, $2, $3)`,
			courseID, sid, i,
		)
		if err != nil {
			if isForeignKeyViolation(err) || isUniqueViolation(err) {
				return translateWriteErr(err)
			}
			return fmt.Errorf("insert enrollment: %w", err)
		}
	}
	return nil
}

// StudentRepo implementación de StudentRepository sobre PostgreSQL.
type StudentRepo struct {
	q Querier
}

// NewStudentRepository construye el adaptador.
func NewStudentRepository(q Querier) *StudentRepo {
	return &StudentRepo{q: q}
}

// Create persiste un estudiante.
func (r *StudentRepo) Create(ctx context.Context, s *entity.Student) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO students (id, name, birth_date, created_at) VALUES ($1, $2, $3, $4)`,
		s.ID, s.Name, s.BirthDate, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

// GetByID obtiene un estudiante por ID.
func (r *StudentRepo) GetByID(ctx context.Context, id string) (*entity.Student, error) {
	var s entity.Student
	err := r.q.QueryRow(ctx,
		`SELECT id, name, birth_date, created_at FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.BirthDate, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	return &s, nil
}

// List lista estudiantes en orden de creación.
func (r *StudentRepo) List(ctx context.Context, limit, offset int) ([]*entity.Student, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, birth_date, created_at FROM students ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()
	var list []*entity.Student
	for rows.Next() {
		var s entity.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.BirthDate, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CountExisting cuenta cuántos de los ids existen en students.
func (r *StudentRepo) CountExisting(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM students WHERE id = ANY($1)`, ids).Scan(&n); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return n, nil
}
