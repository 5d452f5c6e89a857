package repository

import (
	"context"

	"github.com/jhoicas/camstock-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para las entradas de stock y sus cajas.
// Las lecturas devuelven nombres de categoría y repuesto poblados.
type ProductRepository interface {
	// Create inserta la entrada junto con sus cajas.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// Update actualiza descripción, detalles y publicación; si replaceBoxes, reemplaza las cajas.
	Update(ctx context.Context, product *entity.Product, replaceBoxes bool) error
	Delete(ctx context.Context, id string) error

	// List todas las entradas, más recientes primero; search filtra por texto en la descripción.
	List(ctx context.Context, search string) ([]*entity.Product, error)
	// ListByCategory entradas de la categoría; limit <= 0 no limita.
	ListByCategory(ctx context.Context, categoryID string, limit int) ([]*entity.Product, error)
	ListByCategoryAndSubCategory(ctx context.Context, categoryID, subCategoryID string, limit, offset int) ([]*entity.Product, int, error)
	Search(ctx context.Context, text string, limit, offset int) ([]*entity.Product, int, error)

	// LatestForUpdate entrada más reciente de la categoría y repuesto, bloqueada para la tx.
	LatestForUpdate(ctx context.Context, categoryID, subCategoryID string) (*entity.Product, error)
	AddBox(ctx context.Context, box *entity.Box) error
	// GetBoxForUpdate caja con su entrada (categoría/repuesto), bloqueada para la tx.
	GetBoxForUpdate(ctx context.Context, boxID string) (*entity.Box, *entity.Product, error)
}
