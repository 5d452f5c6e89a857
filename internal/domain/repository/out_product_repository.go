package repository

import (
	"context"

	"github.com/jhoicas/camstock-api/internal/domain/entity"
)

// OutProductRepository define el puerto de persistencia para las salidas de stock.
type OutProductRepository interface {
	Create(ctx context.Context, out *entity.OutProduct) error
	List(ctx context.Context) ([]*entity.OutProduct, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.OutProduct, error)
	// ListByBox salidas registradas contra una caja.
	ListByBox(ctx context.Context, boxID string) ([]*entity.OutProduct, error)
}
