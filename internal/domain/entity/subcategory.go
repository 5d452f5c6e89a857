package entity

import "time"

// SubCategory representa un tipo de repuesto de cámara (lente, sensor, carcasa...).
// PartsPerCamera indica cuántas unidades del repuesto consume una cámara armada.
type SubCategory struct {
	ID             string
	Name           string
	Code           string
	Image          string
	PartsPerCamera int
	Categories     []CategoryRef // al crear/actualizar solo se usa el ID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CategoryIDs devuelve los IDs de las categorías asociadas.
func (s *SubCategory) CategoryIDs() []string {
	ids := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// BelongsTo informa si el repuesto está asociado a la categoría.
func (s *SubCategory) BelongsTo(categoryID string) bool {
	for _, c := range s.Categories {
		if c.ID == categoryID {
			return true
		}
	}
	return false
}
