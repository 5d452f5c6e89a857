package repository

import (
	"context"

	"github.com/jhoicas/camstock-api/internal/domain/entity"
)

// SubCategoryRepository define el puerto de persistencia para SubCategory (tipo de repuesto).
// Las lecturas devuelven Categories poblado con id y nombre.
type SubCategoryRepository interface {
	Create(ctx context.Context, sub *entity.SubCategory) error
	GetByID(ctx context.Context, id string) (*entity.SubCategory, error)
	// FindByCodeOrName busca primero por código y luego por nombre (sin distinguir mayúsculas).
	FindByCodeOrName(ctx context.Context, value string) (*entity.SubCategory, error)
	Update(ctx context.Context, sub *entity.SubCategory) error
	List(ctx context.Context) ([]*entity.SubCategory, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.SubCategory, error)
	Delete(ctx context.Context, id string) error
}
