package entity

import "time"

// Student representa un estudiante.
type Student struct {
	ID        string
	Name      string
	BirthDate *time.Time
	CreatedAt time.Time
}

// Course representa un curso con sus estudiantes inscritos.
type Course struct {
	ID         string
	Name       string
	StudentIDs []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
