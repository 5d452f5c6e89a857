package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/camstock-api/internal/domain/entity"
	"github.com/jhoicas/camstock-api/internal/domain/repository"
)

var _ repository.OutProductRepository = (*OutProductRepo)(nil)

const outProductSelect = `
	SELECT o.id, o.category_id, c.name, o.subcategory_id, s.name,
	       COALESCE(o.box_id::text, ''), o.box_no, o.quantity, COALESCE(o.user_id::text, ''),
	       o.created_at, o.updated_at
	FROM out_products o
	JOIN categories c ON c.id = o.category_id
	JOIN subcategories s ON s.id = o.subcategory_id`

// OutProductRepo implementación de OutProductRepository sobre PostgreSQL.
type OutProductRepo struct {
	q Querier
}

// NewOutProductRepository construye el adaptador. Acepta pool o tx (Querier).
func NewOutProductRepository(q Querier) *OutProductRepo {
	return &OutProductRepo{q: q}
}

func (r *OutProductRepo) Create(ctx context.Context, o *entity.OutProduct) error {
	query := `
		INSERT INTO out_products (id, category_id, subcategory_id, box_id, box_no, quantity, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CategoryID, o.SubCategoryID, nullable(o.BoxID), o.BoxNo, o.Quantity,
		nullable(o.UserID), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert out product: %w", err)
	}
	return nil
}

func (r *OutProductRepo) List(ctx context.Context) ([]*entity.OutProduct, error) {
	return r.list(ctx, outProductSelect+` ORDER BY o.created_at DESC`)
}

func (r *OutProductRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.OutProduct, error) {
	return r.list(ctx, outProductSelect+` WHERE o.category_id = $1 ORDER BY o.created_at DESC`, categoryID)
}

func (r *OutProductRepo) ListByBox(ctx context.Context, boxID string) ([]*entity.OutProduct, error) {
	return r.list(ctx, outProductSelect+` WHERE o.box_id = $1 ORDER BY o.created_at`, boxID)
}

func (r *OutProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.OutProduct, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list out products: %w", err)
	}
	defer rows.Close()
	var list []*entity.OutProduct
	for rows.Next() {
		var o entity.OutProduct
		if err := rows.Scan(
			&o.ID, &o.CategoryID, &o.CategoryName, &o.SubCategoryID, &o.SubCategoryName,
			&o.BoxID, &o.BoxNo, &o.Quantity, &o.UserID, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan out product: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
