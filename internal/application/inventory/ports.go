package inventory

import (
	"context"
	"io"

	"github.com/jhoicas/camstock-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Products     repository.ProductRepository
	OutProducts  repository.OutProductRepository
	Damages      repository.DamageProductRepository
	ReadyCameras repository.ReadyCameraRepository
	Deliveries   repository.DeliveryRepository
	Uploads      repository.ExcelUploadRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

// UploadRow fila cruda de una planilla de entrada. Row es el número de fila en la hoja (1 = encabezado).
type UploadRow struct {
	Row         int
	PartsName   string
	PartsCode   string
	BoxNo       string
	Qty         string
	Category    string
	SubCategory string
}

// SheetParser lee las filas de datos de una planilla de entrada de stock.
type SheetParser interface {
	Parse(r io.Reader) ([]UploadRow, error)
}
