package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/camstock-api/internal/domain"
	"github.com/jhoicas/camstock-api/internal/domain/entity"
	"github.com/jhoicas/camstock-api/internal/domain/repository"
)

var _ repository.SubCategoryRepository = (*SubCategoryRepo)(nil)

const subCategoryColumns = `s.id, s.name, s.code, s.image, s.parts_per_camera, s.created_at, s.updated_at`

// SubCategoryRepo implementación de SubCategoryRepository sobre PostgreSQL.
// La relación con categorías vive en subcategory_categories.
type SubCategoryRepo struct {
	q Querier
}

// NewSubCategoryRepository construye el adaptador. Acepta pool o tx (Querier).
func NewSubCategoryRepository(q Querier) *SubCategoryRepo {
	return &SubCategoryRepo{q: q}
}

// Create inserta el repuesto y sus categorías en una misma transacción.
func (r *SubCategoryRepo) Create(ctx context.Context, sub *entity.SubCategory) error {
	return inTx(ctx, r.q, func(q Querier) error {
		query := `
			INSERT INTO subcategories (id, name, code, image, parts_per_camera, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		if _, err := q.Exec(ctx, query,
			sub.ID, sub.Name, sub.Code, sub.Image, sub.PartsPerCamera, sub.CreatedAt, sub.UpdatedAt,
		); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert subcategory: %w", err)
		}
		return insertSubCategoryLinks(ctx, q, sub)
	})
}

func (r *SubCategoryRepo) GetByID(ctx context.Context, id string) (*entity.SubCategory, error) {
	return r.findOne(ctx, `SELECT `+subCategoryColumns+` FROM subcategories s WHERE s.id = $1`, id)
}

// FindByCodeOrName prioriza la coincidencia por código sobre la de nombre.
func (r *SubCategoryRepo) FindByCodeOrName(ctx context.Context, value string) (*entity.SubCategory, error) {
	query := `
		SELECT ` + subCategoryColumns + `
		FROM subcategories s
		WHERE lower(s.code) = lower($1) OR lower(s.name) = lower($1)
		ORDER BY (lower(s.code) = lower($1)) DESC, s.created_at
		LIMIT 1`
	return r.findOne(ctx, query, value)
}

// Update reemplaza datos y categorías del repuesto.
func (r *SubCategoryRepo) Update(ctx context.Context, sub *entity.SubCategory) error {
	return inTx(ctx, r.q, func(q Querier) error {
		query := `
			UPDATE subcategories SET name = $2, code = $3, image = $4, parts_per_camera = $5, updated_at = $6
			WHERE id = $1`
		cmd, err := q.Exec(ctx, query, sub.ID, sub.Name, sub.Code, sub.Image, sub.PartsPerCamera, sub.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update subcategory: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		if _, err := q.Exec(ctx, `DELETE FROM subcategory_categories WHERE subcategory_id = $1`, sub.ID); err != nil {
			return fmt.Errorf("clear subcategory categories: %w", err)
		}
		return insertSubCategoryLinks(ctx, q, sub)
	})
}

func (r *SubCategoryRepo) List(ctx context.Context) ([]*entity.SubCategory, error) {
	return r.list(ctx, `SELECT `+subCategoryColumns+` FROM subcategories s ORDER BY s.created_at DESC`)
}

// ListByCategory repuestos asociados a la categoría, ordenados por código.
func (r *SubCategoryRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.SubCategory, error) {
	query := `
		SELECT ` + subCategoryColumns + `
		FROM subcategories s
		JOIN subcategory_categories sc ON sc.subcategory_id = s.id
		WHERE sc.category_id = $1
		ORDER BY s.code, s.name`
	return r.list(ctx, query, categoryID)
}

func (r *SubCategoryRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el repuesto tiene movimientos de stock", domain.ErrConflict)
		}
		return fmt.Errorf("delete subcategory: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SubCategoryRepo) findOne(ctx context.Context, query string, args ...any) (*entity.SubCategory, error) {
	var s entity.SubCategory
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.Name, &s.Code, &s.Image, &s.PartsPerCamera, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subcategory: %w", err)
	}
	if err := r.attachCategories(ctx, []*entity.SubCategory{&s}); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubCategoryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.SubCategory, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()
	var list []*entity.SubCategory
	for rows.Next() {
		var s entity.SubCategory
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.Image, &s.PartsPerCamera, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	if err := r.attachCategories(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachCategories puebla Categories (id + nombre) con una sola consulta.
func (r *SubCategoryRepo) attachCategories(ctx context.Context, subs []*entity.SubCategory) error {
	if len(subs) == 0 {
		return nil
	}
	byID := make(map[string]*entity.SubCategory, len(subs))
	ids := make([]string, 0, len(subs))
	for _, s := range subs {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}
	query := `
		SELECT sc.subcategory_id, c.id, c.name
		FROM subcategory_categories sc
		JOIN categories c ON c.id = sc.category_id
		WHERE sc.subcategory_id = ANY($1::uuid[])
		ORDER BY sc.subcategory_id, sc.position`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list subcategory categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var subID string
		var ref entity.CategoryRef
		if err := rows.Scan(&subID, &ref.ID, &ref.Name); err != nil {
			return fmt.Errorf("scan subcategory category: %w", err)
		}
		if s, ok := byID[subID]; ok {
			s.Categories = append(s.Categories, ref)
		}
	}
	return rows.Err()
}

func insertSubCategoryLinks(ctx context.Context, q Querier, sub *entity.SubCategory) error {
	ids := sub.CategoryIDs()
	if len(ids) == 0 {
		return nil
	}
	query := `
		INSERT INTO subcategory_categories (subcategory_id, category_id, position)
		SELECT $1, t.category_id, t.ord - 1
		FROM unnest($2::uuid[]) WITH ORDINALITY AS t(category_id, ord)`
	if _, err := q.Exec(ctx, query, sub.ID, ids); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoría inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert subcategory categories: %w", err)
	}
	return nil
}
