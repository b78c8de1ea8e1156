package repository

import (
	"context"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

// CourseFilter filtros exactos por id y nombre.
type CourseFilter struct {
	ID   string
	Name string
}

// CourseRepository define el puerto de persistencia para Course y sus inscripciones.
// Create y Update reemplazan el conjunto de estudiantes del curso.
type CourseRepository interface {
	Create(ctx context.Context, course *entity.Course) error
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	Update(ctx context.Context, course *entity.Course) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter CourseFilter, limit, offset int) ([]*entity.Course, error)
}

// StudentRepository define el puerto de persistencia para Student.
type StudentRepository interface {
	Create(ctx context.Context, student *entity.Student) error
	GetByID(ctx context.Context, id string) (*entity.Student, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Student, error)
	// CountExisting cuenta cuántos de los ids existen.
	CountExisting(ctx context.Context, ids []string) (int, error)
}
