package entity

import "time"

// Category representa un modelo de cámara.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryRef referencia liviana a una categoría (id + nombre) para respuestas pobladas.
type CategoryRef struct {
	ID   string
	Name string
}
