package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/camstock-api/internal/domain"
	"github.com/jhoicas/camstock-api/internal/domain/entity"
	"github.com/jhoicas/camstock-api/internal/domain/repository"
	"github.com/jhoicas/camstock-api/internal/domain/stock"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productSelect = `
	SELECT p.id, p.category_id, c.name, p.subcategory_id, s.name, s.code,
	       p.description, p.more_details, p.publish, COALESCE(p.user_id::text, ''),
	       p.created_at, p.updated_at
	FROM products p
	JOIN categories c ON c.id = p.category_id
	JOIN subcategories s ON s.id = p.subcategory_id`

// productSearch filtra por descripción, repuesto o categoría.
const productSearch = `(p.description ILIKE $1 OR s.name ILIKE $1 OR s.code ILIKE $1 OR c.name ILIKE $1)`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// Las cajas viven en product_boxes y se cargan con una segunda consulta por lote.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para entradas. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste la entrada y sus cajas en una misma transacción.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return inTx(ctx, r.q, func(q Querier) error {
		query := `
			INSERT INTO products (id, category_id, subcategory_id, description, more_details, publish, user_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
		_, err := q.Exec(ctx, query,
			product.ID, product.CategoryID, product.SubCategoryID, product.Description, product.MoreDetails,
			product.Publish, nullable(product.UserID), product.CreatedAt, product.UpdatedAt,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: categoría o repuesto inexistente", domain.ErrNotFound)
			}
			return fmt.Errorf("insert product: %w", err)
		}
		return insertBoxes(ctx, q, product.ID, product.Boxes)
	})
}

// GetByID obtiene una entrada con sus cajas.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	list, err := r.list(ctx, productSelect+` WHERE p.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// Update actualiza descripción, detalles y publicación; con replaceBoxes reemplaza todas las cajas.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product, replaceBoxes bool) error {
	return inTx(ctx, r.q, func(q Querier) error {
		query := `
			UPDATE products SET description = $2, more_details = $3, publish = $4, updated_at = $5
			WHERE id = $1`
		cmd, err := q.Exec(ctx, query,
			product.ID, product.Description, product.MoreDetails, product.Publish, product.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		if !replaceBoxes {
			return nil
		}
		return reconcileBoxes(ctx, q, product)
	})
}

// reconcileBoxes concilia las cajas por número: las que siguen conservan su ID (y con él
// sus salidas), las nuevas se insertan y las que sobran se eliminan.
func reconcileBoxes(ctx context.Context, q Querier, product *entity.Product) error {
	rows, err := q.Query(ctx, `
		SELECT b.id, b.box_no, b.parts_qty, b.created_at,
		       (SELECT COALESCE(SUM(o.quantity), 0) FROM out_products o WHERE o.box_id = b.id)
		FROM product_boxes b
		WHERE b.product_id = $1
		ORDER BY b.position
		FOR UPDATE OF b`, product.ID)
	if err != nil {
		return fmt.Errorf("lock product boxes: %w", err)
	}
	var current []entity.Box
	dispatched := make(map[string]int)
	for rows.Next() {
		var b entity.Box
		var used int
		if err := rows.Scan(&b.ID, &b.BoxNo, &b.PartsQty, &b.CreatedAt, &used); err != nil {
			rows.Close()
			return fmt.Errorf("scan product box: %w", err)
		}
		b.ProductID = product.ID
		current = append(current, b)
		dispatched[b.ID] = used
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("lock product boxes: %w", err)
	}

	boxes, err := stock.ReconcileBoxes(current, dispatched, product.Boxes)
	if err != nil {
		return err
	}
	keep := make([]string, 0, len(boxes))
	for i := range boxes {
		boxes[i].ProductID = product.ID
		if boxes[i].ID == "" {
			boxes[i].ID = uuid.New().String()
		} else {
			keep = append(keep, boxes[i].ID)
		}
	}
	if _, err := q.Exec(ctx,
		`DELETE FROM product_boxes WHERE product_id = $1 AND NOT (id = ANY($2::uuid[]))`,
		product.ID, keep,
	); err != nil {
		return fmt.Errorf("clear product boxes: %w", err)
	}
	if err := insertBoxes(ctx, q, product.ID, boxes); err != nil {
		return err
	}
	product.Boxes = boxes
	return nil
}

// Delete elimina la entrada; sus cajas caen en cascada.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) List(ctx context.Context, search string) ([]*entity.Product, error) {
	if search == "" {
		return r.list(ctx, productSelect+` ORDER BY p.created_at DESC`)
	}
	return r.list(ctx, productSelect+` WHERE `+productSearch+` ORDER BY p.created_at DESC`, likePattern(search))
}

// ListByCategory entradas más recientes de la categoría. limit <= 0 no limita (LIMIT NULL).
func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID string, limit int) ([]*entity.Product, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}
	return r.list(ctx, productSelect+` WHERE p.category_id = $1 ORDER BY p.created_at DESC LIMIT $2`, categoryID, lim)
}

func (r *ProductRepo) ListByCategoryAndSubCategory(
	ctx context.Context,
	categoryID, subCategoryID string,
	limit, offset int,
) ([]*entity.Product, int, error) {
	var total int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE category_id = $1 AND subcategory_id = $2`,
		categoryID, subCategoryID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	list, err := r.list(ctx, productSelect+`
		WHERE p.category_id = $1 AND p.subcategory_id = $2
		ORDER BY p.created_at DESC LIMIT $3 OFFSET $4`,
		categoryID, subCategoryID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Search busca texto en descripción, repuesto y categoría, paginado.
func (r *ProductRepo) Search(ctx context.Context, text string, limit, offset int) ([]*entity.Product, int, error) {
	pattern := likePattern(text)
	var total int
	if err := r.q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN subcategories s ON s.id = p.subcategory_id
		WHERE `+productSearch, pattern,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count product search: %w", err)
	}
	list, err := r.list(ctx, productSelect+` WHERE `+productSearch+` ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`,
		pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// LatestForUpdate bloquea la entrada más reciente del repuesto en la categoría hasta el fin de la tx.
func (r *ProductRepo) LatestForUpdate(ctx context.Context, categoryID, subCategoryID string) (*entity.Product, error) {
	list, err := r.list(ctx, productSelect+`
		WHERE p.category_id = $1 AND p.subcategory_id = $2
		ORDER BY p.created_at DESC LIMIT 1
		FOR UPDATE OF p`, categoryID, subCategoryID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// AddBox agrega una caja al final de la entrada y actualiza su fecha de modificación.
func (r *ProductRepo) AddBox(ctx context.Context, box *entity.Box) error {
	query := `
		INSERT INTO product_boxes (id, product_id, box_no, parts_qty, position, created_at)
		VALUES ($1, $2, $3, $4,
		        (SELECT COALESCE(MAX(position) + 1, 0) FROM product_boxes WHERE product_id = $2), $5)`
	if _, err := r.q.Exec(ctx, query, box.ID, box.ProductID, box.BoxNo, box.PartsQty, box.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: entrada inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert product box: %w", err)
	}
	if _, err := r.q.Exec(ctx, `UPDATE products SET updated_at = $2 WHERE id = $1`, box.ProductID, box.CreatedAt); err != nil {
		return fmt.Errorf("touch product: %w", err)
	}
	return nil
}

// GetBoxForUpdate bloquea la caja y devuelve su entrada (sin cajas) con nombres poblados.
func (r *ProductRepo) GetBoxForUpdate(ctx context.Context, boxID string) (*entity.Box, *entity.Product, error) {
	query := `
		SELECT b.id, b.product_id, b.box_no, b.parts_qty, b.created_at,
		       p.id, p.category_id, c.name, p.subcategory_id, s.name, s.code,
		       p.description, p.publish, p.created_at, p.updated_at
		FROM product_boxes b
		JOIN products p ON p.id = b.product_id
		JOIN categories c ON c.id = p.category_id
		JOIN subcategories s ON s.id = p.subcategory_id
		WHERE b.id = $1
		FOR UPDATE OF b`
	var b entity.Box
	var p entity.Product
	err := r.q.QueryRow(ctx, query, boxID).Scan(
		&b.ID, &b.ProductID, &b.BoxNo, &b.PartsQty, &b.CreatedAt,
		&p.ID, &p.CategoryID, &p.CategoryName, &p.SubCategoryID, &p.SubCategoryName, &p.SubCategoryCode,
		&p.Description, &p.Publish, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get product box: %w", err)
	}
	return &b, &p, nil
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.CategoryID, &p.CategoryName, &p.SubCategoryID, &p.SubCategoryName, &p.SubCategoryCode,
			&p.Description, &p.MoreDetails, &p.Publish, &p.UserID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if err := r.attachBoxes(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ProductRepo) attachBoxes(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Product, len(products))
	ids := make([]string, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, box_no, parts_qty, created_at
		FROM product_boxes
		WHERE product_id = ANY($1::uuid[])
		ORDER BY product_id, position, created_at`, ids)
	if err != nil {
		return fmt.Errorf("list product boxes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var b entity.Box
		if err := rows.Scan(&b.ID, &b.ProductID, &b.BoxNo, &b.PartsQty, &b.CreatedAt); err != nil {
			return fmt.Errorf("scan product box: %w", err)
		}
		if p, ok := byID[b.ProductID]; ok {
			p.Boxes = append(p.Boxes, b)
		}
	}
	return rows.Err()
}

// insertBoxes inserta las cajas en una sola sentencia, conservando el orden recibido.
// Una caja con ID existente solo actualiza cantidad y posición.
func insertBoxes(ctx context.Context, q Querier, productID string, boxes []entity.Box) error {
	if len(boxes) == 0 {
		return nil
	}
	ids := make([]string, len(boxes))
	boxNos := make([]string, len(boxes))
	qtys := make([]int32, len(boxes))
	created := make([]time.Time, len(boxes))
	for i, b := range boxes {
		ids[i], boxNos[i], qtys[i], created[i] = b.ID, b.BoxNo, int32(b.PartsQty), b.CreatedAt
	}
	query := `
		INSERT INTO product_boxes (id, product_id, box_no, parts_qty, position, created_at)
		SELECT t.id, $1, t.box_no, t.parts_qty, t.ord - 1, t.created_at
		FROM unnest($2::uuid[], $3::text[], $4::int[], $5::timestamptz[])
		     WITH ORDINALITY AS t(id, box_no, parts_qty, created_at, ord)
		ON CONFLICT (id) DO UPDATE SET parts_qty = EXCLUDED.parts_qty, position = EXCLUDED.position`
	if _, err := q.Exec(ctx, query, productID, ids, boxNos, qtys, created); err != nil {
		return fmt.Errorf("insert product boxes: %w", err)
	}
	return nil
}
