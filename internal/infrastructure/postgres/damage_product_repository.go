package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/camstock-api/internal/domain/entity"
	"github.com/jhoicas/camstock-api/internal/domain/repository"
)

var _ repository.DamageProductRepository = (*DamageProductRepo)(nil)

const damageSelect = `
	SELECT d.id, d.category_id, c.name, d.subcategory_id, s.name, d.box_no, d.quantity, d.action,
	       COALESCE(d.user_id::text, ''), d.created_at, d.updated_at
	FROM damage_products d
	JOIN categories c ON c.id = d.category_id
	JOIN subcategories s ON s.id = d.subcategory_id`

// DamageProductRepo libro de daños sobre PostgreSQL. Las filas nunca se actualizan:
// el saldo se calcula sumando Add y restando Out.
type DamageProductRepo struct {
	q Querier
}

// NewDamageProductRepository construye el adaptador. Acepta pool o tx (Querier).
func NewDamageProductRepository(q Querier) *DamageProductRepo {
	return &DamageProductRepo{q: q}
}

func (r *DamageProductRepo) Create(ctx context.Context, d *entity.DamageProduct) error {
	query := `
		INSERT INTO damage_products (id, category_id, subcategory_id, box_no, quantity, action, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.CategoryID, d.SubCategoryID, d.BoxNo, d.Quantity, d.Action,
		nullable(d.UserID), d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert damage product: %w", err)
	}
	return nil
}

func (r *DamageProductRepo) List(ctx context.Context) ([]*entity.DamageProduct, error) {
	return r.list(ctx, damageSelect+` ORDER BY d.created_at DESC`)
}

func (r *DamageProductRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.DamageProduct, error) {
	return r.list(ctx, damageSelect+` WHERE d.category_id = $1 ORDER BY d.created_at DESC`, categoryID)
}

func (r *DamageProductRepo) Balance(ctx context.Context, categoryID, subCategoryID, boxNo string) (int, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN action = 'Out' THEN -quantity ELSE quantity END), 0)
		FROM damage_products
		WHERE category_id = $1 AND subcategory_id = $2 AND box_no = $3`
	var balance int
	if err := r.q.QueryRow(ctx, query, categoryID, subCategoryID, boxNo).Scan(&balance); err != nil {
		return 0, fmt.Errorf("damage balance: %w", err)
	}
	return balance, nil
}

// Lock toma un advisory lock transaccional por (categoría, repuesto); se libera con Commit o Rollback.
func (r *DamageProductRepo) Lock(ctx context.Context, categoryID, subCategoryID string) error {
	if _, err := r.q.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext('damage:' || $1::text || ':' || $2::text))`,
		categoryID, subCategoryID,
	); err != nil {
		return fmt.Errorf("lock damage ledger: %w", err)
	}
	return nil
}

func (r *DamageProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.DamageProduct, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list damage products: %w", err)
	}
	defer rows.Close()
	var list []*entity.DamageProduct
	for rows.Next() {
		var d entity.DamageProduct
		if err := rows.Scan(
			&d.ID, &d.CategoryID, &d.CategoryName, &d.SubCategoryID, &d.SubCategoryName,
			&d.BoxNo, &d.Quantity, &d.Action, &d.UserID, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan damage product: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
