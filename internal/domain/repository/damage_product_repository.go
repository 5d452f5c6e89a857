package repository

import (
	"context"

	"github.com/jhoicas/camstock-api/internal/domain/entity"
)

// DamageProductRepository define el puerto de persistencia para el libro de daños.
type DamageProductRepository interface {
	Create(ctx context.Context, entry *entity.DamageProduct) error
	List(ctx context.Context) ([]*entity.DamageProduct, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.DamageProduct, error)
	// Balance saldo dañado (Σ Add − Σ Out) de un número de caja para la categoría y repuesto.
	Balance(ctx context.Context, categoryID, subCategoryID, boxNo string) (int, error)
	// Lock serializa escrituras concurrentes sobre la misma categoría y repuesto hasta el fin de la tx.
	Lock(ctx context.Context, categoryID, subCategoryID string) error
}
