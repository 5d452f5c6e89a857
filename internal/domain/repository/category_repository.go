package repository

import (
	"context"

	"github.com/jhoicas/camstock-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (modelo de cámara).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context) ([]*entity.Category, error)
	Delete(ctx context.Context, id string) error
	// InUse indica si algún repuesto o entrada de stock referencia la categoría.
	InUse(ctx context.Context, id string) (bool, error)
}
