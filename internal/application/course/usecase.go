package course

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// DefaultMaxStudents cupo por curso cuando la configuración no lo define.
const DefaultMaxStudents = 20

const dateLayout = "2006-01-02"

// UseCase casos de uso de cursos y estudiantes.
type UseCase struct {
	courses     repository.CourseRepository
	students    repository.StudentRepository
	maxStudents int
}

// NewUseCase construye el caso de uso. maxStudents <= 0 usa DefaultMaxStudents.
func NewUseCase(courses repository.CourseRepository, students repository.StudentRepository, maxStudents int) *UseCase {
	if maxStudents <= 0 {
		maxStudents = DefaultMaxStudents
	}
	return &UseCase{courses: courses, students: students, maxStudents: maxStudents}
}

// CreateStudent registra un estudiante.
func (uc *UseCase) CreateStudent(ctx context.Context, in dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name requerido", domain.ErrInvalidInput)
	}
	student := &entity.Student{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if in.BirthDate != "" {
		bd, err := time.Parse(dateLayout, in.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("%w: birth_date debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
		student.BirthDate = &bd
	}
	if err := uc.students.Create(ctx, student); err != nil {
		return nil, err
	}
	return toStudentResponse(student), nil
}

// ListStudents lista estudiantes en orden de creación.
func (uc *UseCase) ListStudents(ctx context.Context, limit, offset int) (*dto.StudentListResponse, error) {
	list, err := uc.students.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StudentResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStudentResponse(s))
	}
	return &dto.StudentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Create crea un curso con sus estudiantes.
func (uc *UseCase) Create(ctx context.Context, in dto.CourseRequest) (*dto.CourseResponse, error) {
	name, studentIDs, err := uc.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Course{
		ID:         uuid.New().String(),
		Name:       name,
		StudentIDs: studentIDs,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.courses.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCourseResponse(c), nil
}

// GetByID obtiene un curso. (nil, nil) si no existe.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	c, err := uc.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCourseResponse(c), nil
}

// List lista cursos filtrando por id y nombre exactos.
func (uc *UseCase) List(ctx context.Context, id, name string, limit, offset int) (*dto.CourseListResponse, error) {
	list, err := uc.courses.List(ctx, repository.CourseFilter{ID: id, Name: name}, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CourseResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCourseResponse(c))
	}
	return &dto.CourseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update reemplaza nombre y estudiantes. (nil, nil) si no existe.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.CourseRequest) (*dto.CourseResponse, error) {
	name, studentIDs, err := uc.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	c, err := uc.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	c.Name = name
	c.StudentIDs = studentIDs
	c.UpdatedAt = time.Now()
	if err := uc.courses.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCourseResponse(c), nil
}

// Delete elimina un curso. ErrNotFound si no existe.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.courses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.courses.Delete(ctx, id)
}

// validate normaliza el nombre, quita ids repetidos y controla cupo y existencia de estudiantes.
func (uc *UseCase) validate(ctx context.Context, in dto.CourseRequest) (string, []string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", nil, fmt.Errorf("%w: name requerido", domain.ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(in.Students))
	ids := make([]string, 0, len(in.Students))
	for _, id := range in.Students {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) > uc.maxStudents {
		return "", nil, fmt.Errorf("%w: máximo %d estudiantes por curso", domain.ErrInvalidInput, uc.maxStudents)
	}
	n, err := uc.students.CountExisting(ctx, ids)
	if err != nil {
		return "", nil, err
	}
	if n != len(ids) {
		return "", nil, fmt.Errorf("%w: estudiante inexistente", domain.ErrInvalidReference)
	}
	return name, ids, nil
}

func toStudentResponse(s *entity.Student) *dto.StudentResponse {
	out := &dto.StudentResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt}
	if s.BirthDate != nil {
		bd := s.BirthDate.Format(dateLayout)
		out.BirthDate = &bd
	}
	return out
}

func toCourseResponse(c *entity.Course) *dto.CourseResponse {
	if c == nil {
		return nil
	}
	students := c.StudentIDs
	if students == nil {
		students = []string{}
	}
	return &dto.CourseResponse{
		ID:        c.ID,
		Name:      c.Name,
		Students:  students,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
