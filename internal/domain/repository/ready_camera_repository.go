package repository

import (
	"context"

	"github.com/jhoicas/camstock-api/internal/domain/entity"
)

// ReadyCameraRepository define el puerto de persistencia para cámaras listas y sus cajas de UIDs.
type ReadyCameraRepository interface {
	Create(ctx context.Context, rc *entity.ReadyCamera) error
	// LockInStockUIDs serializa las altas de la categoría dentro de la tx y devuelve
	// cuáles de los UIDs ya están en alguna caja de esa categoría.
	LockInStockUIDs(ctx context.Context, categoryID string, uids []string) ([]string, error)
	// List lotes con nombre de categoría y cajas, más recientes primero.
	List(ctx context.Context) ([]*entity.ReadyCamera, error)
	// ListBoxesByCategory cajas de la categoría que todavía tienen UIDs.
	ListBoxesByCategory(ctx context.Context, categoryID string) ([]*entity.ReadyBox, error)
	// LockBoxes cajas de la categoría (por nombre) con ese número, bloqueadas para la tx.
	LockBoxes(ctx context.Context, categoryName, boxNo string) ([]*entity.ReadyBox, error)
	UpdateBoxUIDs(ctx context.Context, boxID string, uids []string) error
	DeleteBox(ctx context.Context, boxID string) error
}
