package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/camstock-api/internal/domain"
	"github.com/jhoicas/camstock-api/internal/domain/entity"
	"github.com/jhoicas/camstock-api/internal/domain/repository"
)

var _ repository.ExcelUploadRepository = (*ExcelUploadRepo)(nil)

const excelUploadSelect = `
	SELECT u.id, u.parts_name, u.parts_code, u.box_no, u.qty, u.category_id, c.name, u.subcategory_id, s.name,
	       u.status, u.remark, u.processed, COALESCE(u.user_id::text, ''), u.created_at, u.updated_at
	FROM excel_uploads u
	JOIN categories c ON c.id = u.category_id
	JOIN subcategories s ON s.id = u.subcategory_id`

// ExcelUploadRepo filas importadas desde planillas, pendientes de revisión.
type ExcelUploadRepo struct {
	q Querier
}

// NewExcelUploadRepository construye el adaptador. Acepta pool o tx (Querier).
func NewExcelUploadRepository(q Querier) *ExcelUploadRepo {
	return &ExcelUploadRepo{q: q}
}

// CreateBatch inserta todas las filas en un pgx.Batch (un solo viaje a la base).
func (r *ExcelUploadRepo) CreateBatch(ctx context.Context, rows []*entity.ExcelUpload) error {
	if len(rows) == 0 {
		return nil
	}
	return inTx(ctx, r.q, func(q Querier) error {
		sender, ok := q.(interface {
			SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
		})
		query := `
			INSERT INTO excel_uploads (id, parts_name, parts_code, box_no, qty, category_id, subcategory_id,
			                           status, remark, processed, user_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
		args := func(u *entity.ExcelUpload) []any {
			return []any{
				u.ID, u.PartsName, u.PartsCode, u.BoxNo, u.Qty, u.CategoryID, u.SubCategoryID,
				u.Status, u.Remark, u.Processed, nullable(u.UserID), u.CreatedAt, u.UpdatedAt,
			}
		}
		if !ok {
			for _, u := range rows {
				if _, err := q.Exec(ctx, query, args(u)...); err != nil {
					return fmt.Errorf("insert excel upload: %w", err)
				}
			}
			return nil
		}
		batch := &pgx.Batch{}
		for _, u := range rows {
			batch.Queue(query, args(u)...)
		}
		if err := sender.SendBatch(ctx, batch).Close(); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: categoría o repuesto inexistente", domain.ErrNotFound)
			}
			return fmt.Errorf("insert excel uploads: %w", err)
		}
		return nil
	})
}

func (r *ExcelUploadRepo) ListByStatus(ctx context.Context, status string) ([]*entity.ExcelUpload, error) {
	if status == "" {
		return r.list(ctx, excelUploadSelect+` ORDER BY u.created_at DESC`)
	}
	return r.list(ctx, excelUploadSelect+` WHERE u.status = $1 ORDER BY u.created_at DESC`, status)
}

// UpdateStatus cambia estado y observación. Las filas ya contabilizadas no se tocan.
func (r *ExcelUploadRepo) UpdateStatus(ctx context.Context, ids []string, status, remark string) (int, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE excel_uploads SET status = $2, remark = $3, updated_at = $4
		WHERE id = ANY($1::uuid[]) AND NOT processed`,
		ids, status, remark, time.Now())
	if err != nil {
		return 0, fmt.Errorf("update excel upload status: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

// ListApprovedForUpdate filas aprobadas sin contabilizar, en orden de carga, bloqueadas para la tx.
func (r *ExcelUploadRepo) ListApprovedForUpdate(ctx context.Context) ([]*entity.ExcelUpload, error) {
	return r.list(ctx, excelUploadSelect+`
		WHERE u.status = 'Approved' AND NOT u.processed
		ORDER BY u.created_at, u.id
		FOR UPDATE OF u`)
}

func (r *ExcelUploadRepo) MarkProcessed(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.q.Exec(ctx,
		`UPDATE excel_uploads SET processed = TRUE, updated_at = $2 WHERE id = ANY($1::uuid[])`,
		ids, time.Now(),
	); err != nil {
		return fmt.Errorf("mark excel uploads processed: %w", err)
	}
	return nil
}

func (r *ExcelUploadRepo) list(ctx context.Context, query string, args ...any) ([]*entity.ExcelUpload, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list excel uploads: %w", err)
	}
	defer rows.Close()
	var list []*entity.ExcelUpload
	for rows.Next() {
		var u entity.ExcelUpload
		if err := rows.Scan(
			&u.ID, &u.PartsName, &u.PartsCode, &u.BoxNo, &u.Qty, &u.CategoryID, &u.CategoryName,
			&u.SubCategoryID, &u.SubCategoryName, &u.Status, &u.Remark, &u.Processed, &u.UserID,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan excel upload: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
