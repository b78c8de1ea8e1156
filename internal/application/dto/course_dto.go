package dto

import "time"

// CreateStudentRequest entrada para registrar un estudiante. birth_date en formato YYYY-MM-DD.
type CreateStudentRequest struct {
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
}

// StudentResponse salida de un estudiante.
type StudentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BirthDate *string   `json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
}

// StudentListResponse lista paginada de estudiantes.
type StudentListResponse struct {
	Items []StudentResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CourseRequest entrada de creación y PUT (reemplaza nombre y estudiantes).
type CourseRequest struct {
	Name     string   `json:"name"`
	Students []string `json:"students"`
}

// CourseResponse salida de un curso.
type CourseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Students  []string  `json:"students"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CourseListResponse lista paginada de cursos.
type CourseListResponse struct {
	Items []CourseResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
