package dto

import "time"

// CategoryRequest entrada para crear o actualizar una categoría (modelo de cámara).
type CategoryRequest struct {
	ID          string  `json:"_id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateSubCategoryRequest entrada para crear un tipo de repuesto.
type CreateSubCategoryRequest struct {
	Name           string   `json:"name"`
	Code           string   `json:"code"`
	Image          string   `json:"image"`
	Category       []string `json:"category"`
	PartsPerCamera int      `json:"partsPerCamera"` // 0 -> 1
}

// UpdateSubCategoryRequest entrada parcial; los campos nil no se modifican.
type UpdateSubCategoryRequest struct {
	ID             string    `json:"_id"`
	Name           *string   `json:"name"`
	Code           *string   `json:"code"`
	Image          *string   `json:"image"`
	Category       *[]string `json:"category"`
	PartsPerCamera *int      `json:"partsPerCamera"`
}

// SubCategoryResponse salida de un repuesto con sus categorías pobladas.
type SubCategoryResponse struct {
	ID             string    `json:"_id"`
	Name           string    `json:"name"`
	Code           string    `json:"code"`
	Image          string    `json:"image"`
	PartsPerCamera int       `json:"partsPerCamera"`
	Category       []RefDTO  `json:"category"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
