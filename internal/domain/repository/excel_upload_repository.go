package repository

import (
	"context"

	"github.com/jhoicas/camstock-api/internal/domain/entity"
)

// ExcelUploadRepository define el puerto de persistencia para las filas importadas desde Excel.
type ExcelUploadRepository interface {
	CreateBatch(ctx context.Context, rows []*entity.ExcelUpload) error
	// ListByStatus filas con ese estado; status vacío lista todas.
	ListByStatus(ctx context.Context, status string) ([]*entity.ExcelUpload, error)
	// UpdateStatus cambia estado y observación; devuelve las filas afectadas.
	UpdateStatus(ctx context.Context, ids []string, status, remark string) (int, error)
	// ListApprovedForUpdate filas aprobadas aún no contabilizadas, bloqueadas para la tx.
	ListApprovedForUpdate(ctx context.Context) ([]*entity.ExcelUpload, error)
	MarkProcessed(ctx context.Context, ids []string) error
}
