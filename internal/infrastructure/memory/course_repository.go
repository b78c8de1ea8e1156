package memory

import (
	"context"
	"slices"

	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var (
	_ repository.CourseRepository  = (*CourseRepo)(nil)
	_ repository.StudentRepository = (*StudentRepo)(nil)
)

// CourseRepo implementación en memoria de CourseRepository.
type CourseRepo struct {
	s *Store
}

// NewCourseRepository construye el repositorio de cursos sobre el store.
func NewCourseRepository(s *Store) *CourseRepo {
	return &CourseRepo{s: s}
}

// checkStudents valida que todos los estudiantes existan. Requiere mu tomado.
func (d *data) checkStudents(ids []string) error {
	for _, id := range ids {
		if _, ok := d.students[id]; !ok {
			return domain.ErrInvalidReference
		}
	}
	return nil
}

func (r *CourseRepo) Create(_ context.Context, course *entity.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.d
	if err := d.checkStudents(course.StudentIDs); err != nil {
		return err
	}
	c := *course
	c.StudentIDs = slices.Clone(course.StudentIDs)
	d.courses[c.ID] = c
	d.track(c.ID)
	return nil
}

func (r *CourseRepo) GetByID(_ context.Context, id string) (*entity.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.d.courses[id]
	if !ok {
		return nil, nil
	}
	c.StudentIDs = slices.Clone(c.StudentIDs)
	return &c, nil
}

func (r *CourseRepo) Update(_ context.Context, course *entity.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.d
	if _, ok := d.courses[course.ID]; !ok {
		return nil
	}
	if err := d.checkStudents(course.StudentIDs); err != nil {
		return err
	}
	c := *course
	c.StudentIDs = slices.Clone(course.StudentIDs)
	d.courses[c.ID] = c
	return nil
}

func (r *CourseRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.d.courses, id)
	delete(r.s.d.order, id)
	return nil
}

func (r *CourseRepo) List(_ context.Context, filter repository.CourseFilter, limit, offset int) ([]*entity.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d := r.s.d
	ids := make([]string, 0, len(d.courses))
	for id, c := range d.courses {
		if filter.ID != "" && id != filter.ID {
			continue
		}
		if filter.Name != "" && c.Name != filter.Name {
			continue
		}
		ids = append(ids, id)
	}
	d.sortByInsertion(ids)
	list := make([]*entity.Course, 0, len(ids))
	for _, id := range page(ids, limit, offset) {
		c := d.courses[id]
		c.StudentIDs = slices.Clone(c.StudentIDs)
		list = append(list, &c)
	}
	return list, nil
}

// StudentRepo implementación en memoria de StudentRepository.
type StudentRepo struct {
	s *Store
}

// NewStudentRepository construye el repositorio de estudiantes sobre el store.
func NewStudentRepository(s *Store) *StudentRepo {
	return &StudentRepo{s: s}
}

func (r *StudentRepo) Create(_ context.Context, student *entity.Student) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.students[student.ID] = *student
	r.s.d.track(student.ID)
	return nil
}

func (r *StudentRepo) GetByID(_ context.Context, id string) (*entity.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.d.students[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (r *StudentRepo) List(_ context.Context, limit, offset int) ([]*entity.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d := r.s.d
	ids := make([]string, 0, len(d.students))
	for id := range d.students {
		ids = append(ids, id)
	}
	d.sortByInsertion(ids)
	list := make([]*entity.Student, 0, len(ids))
	for _, id := range page(ids, limit, offset) {
		st := d.students[id]
		list = append(list, &st)
	}
	return list, nil
}

func (r *StudentRepo) CountExisting(_ context.Context, ids []string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, id := range ids {
		if _, ok := r.s.d.students[id]; ok {
			n++
		}
	}
	return n, nil
}
