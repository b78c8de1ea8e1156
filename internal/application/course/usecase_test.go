package course_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-api/internal/application/course"
	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/memory"
)

func newCourses(maxStudents int) *course.UseCase {
	store := memory.NewStore()
	return course.NewUseCase(memory.NewCourseRepository(store), memory.NewStudentRepository(store), maxStudents)
}

func students(t *testing.T, uc *course.UseCase, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s, err := uc.CreateStudent(context.Background(), dto.CreateStudentRequest{Name: fmt.Sprintf("alumno %d", i)})
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}
	return ids
}

func TestCreate_ConEstudiantes(t *testing.T) {
	uc := newCourses(20)
	ids := students(t, uc, 3)
	out, err := uc.Create(context.Background(), dto.CourseRequest{Name: "Go", Students: ids})
	require.NoError(t, err)
	assert.Equal(t, ids, out.Students)
}

func TestCreate_SuperaCupo(t *testing.T) {
	uc := newCourses(2)
	ids := students(t, uc, 3)
	_, err := uc.Create(context.Background(), dto.CourseRequest{Name: "Go", Students: ids})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_EstudianteInexistente(t *testing.T) {
	uc := newCourses(20)
	_, err := uc.Create(context.Background(), dto.CourseRequest{Name: "Go", Students: []string{"fantasma"}})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestList_FiltraPorNombreEnOrdenDeCreacion(t *testing.T) {
	uc := newCourses(20)
	ctx := context.Background()
	first, err := uc.Create(ctx, dto.CourseRequest{Name: "Go"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CourseRequest{Name: "Python"})
	require.NoError(t, err)
	second, err := uc.Create(ctx, dto.CourseRequest{Name: "Go"})
	require.NoError(t, err)

	out, err := uc.List(ctx, "", "Go", 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, first.ID, out.Items[0].ID)
	assert.Equal(t, second.ID, out.Items[1].ID)

	byID, err := uc.List(ctx, second.ID, "", 20, 0)
	require.NoError(t, err)
	require.Len(t, byID.Items, 1)
}

func TestUpdateDelete(t *testing.T) {
	uc := newCourses(20)
	ctx := context.Background()
	c, err := uc.Create(ctx, dto.CourseRequest{Name: "Go"})
	require.NoError(t, err)

	out, err := uc.Update(ctx, c.ID, dto.CourseRequest{Name: "Go avanzado"})
	require.NoError(t, err)
	assert.Equal(t, "Go avanzado", out.Name)

	require.NoError(t, uc.Delete(ctx, c.ID))
	got, err := uc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, uc.Delete(ctx, c.ID), domain.ErrNotFound)
}
