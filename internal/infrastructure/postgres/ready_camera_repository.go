package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/camstock-api/internal/domain"
	"github.com/jhoicas/camstock-api/internal/domain/entity"
	"github.com/jhoicas/camstock-api/internal/domain/repository"
)

var _ repository.ReadyCameraRepository = (*ReadyCameraRepo)(nil)

// ReadyCameraRepo lotes de cámaras armadas; los UIDs de cada caja se guardan como TEXT[].
type ReadyCameraRepo struct {
	q Querier
}

// NewReadyCameraRepository construye el adaptador. Acepta pool o tx (Querier).
func NewReadyCameraRepository(q Querier) *ReadyCameraRepo {
	return &ReadyCameraRepo{q: q}
}

// Create inserta el lote y sus cajas.
func (r *ReadyCameraRepo) Create(ctx context.Context, rc *entity.ReadyCamera) error {
	return inTx(ctx, r.q, func(q Querier) error {
		query := `
			INSERT INTO ready_cameras (id, category_id, description, user_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := q.Exec(ctx, query,
			rc.ID, rc.CategoryID, rc.Description, nullable(rc.UserID), rc.CreatedAt, rc.UpdatedAt,
		); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: categoría inexistente", domain.ErrNotFound)
			}
			return fmt.Errorf("insert ready camera: %w", err)
		}
		for i, b := range rc.Boxes {
			if _, err := q.Exec(ctx, `
				INSERT INTO ready_camera_boxes (id, ready_camera_id, box_no, part_uids, total_parts, position)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				b.ID, rc.ID, b.BoxNo, b.PartUIDs, len(b.PartUIDs), i,
			); err != nil {
				return fmt.Errorf("insert ready camera box: %w", err)
			}
		}
		return nil
	})
}

func (r *ReadyCameraRepo) LockInStockUIDs(ctx context.Context, categoryID string, uids []string) ([]string, error) {
	if _, err := r.q.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext('ready:' || $1::text))`, categoryID,
	); err != nil {
		return nil, fmt.Errorf("lock ready cameras: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT DISTINCT u.uid
		FROM ready_camera_boxes b
		JOIN ready_cameras rc ON rc.id = b.ready_camera_id
		CROSS JOIN LATERAL unnest(b.part_uids) AS u(uid)
		WHERE rc.category_id = $1 AND u.uid = ANY($2::text[])
		ORDER BY u.uid`, categoryID, uids)
	if err != nil {
		return nil, fmt.Errorf("find ready camera uids: %w", err)
	}
	defer rows.Close()
	var found []string
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, fmt.Errorf("scan ready camera uid: %w", err)
		}
		found = append(found, uid)
	}
	return found, rows.Err()
}

// List lotes más recientes primero, con nombre de categoría y cajas.
func (r *ReadyCameraRepo) List(ctx context.Context) ([]*entity.ReadyCamera, error) {
	rows, err := r.q.Query(ctx, `
		SELECT rc.id, rc.category_id, c.name, rc.description, COALESCE(rc.user_id::text, ''), rc.created_at, rc.updated_at
		FROM ready_cameras rc
		JOIN categories c ON c.id = rc.category_id
		ORDER BY rc.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list ready cameras: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReadyCamera
	var ids []string
	byID := make(map[string]*entity.ReadyCamera)
	for rows.Next() {
		var rc entity.ReadyCamera
		if err := rows.Scan(&rc.ID, &rc.CategoryID, &rc.CategoryName, &rc.Description, &rc.UserID, &rc.CreatedAt, &rc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ready camera: %w", err)
		}
		list = append(list, &rc)
		ids = append(ids, rc.ID)
		byID[rc.ID] = &rc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ready cameras: %w", err)
	}
	if len(list) == 0 {
		return list, nil
	}

	boxes, err := r.boxes(ctx, `
		SELECT id, ready_camera_id, box_no, part_uids, total_parts
		FROM ready_camera_boxes
		WHERE ready_camera_id = ANY($1::uuid[])
		ORDER BY ready_camera_id, position`, ids)
	if err != nil {
		return nil, err
	}
	for _, b := range boxes {
		if rc, ok := byID[b.ReadyCameraID]; ok {
			rc.Boxes = append(rc.Boxes, *b)
		}
	}
	return list, nil
}

func (r *ReadyCameraRepo) ListBoxesByCategory(ctx context.Context, categoryID string) ([]*entity.ReadyBox, error) {
	return r.boxes(ctx, `
		SELECT b.id, b.ready_camera_id, b.box_no, b.part_uids, b.total_parts
		FROM ready_camera_boxes b
		JOIN ready_cameras rc ON rc.id = b.ready_camera_id
		WHERE rc.category_id = $1 AND cardinality(b.part_uids) > 0
		ORDER BY b.box_no, rc.created_at`, categoryID)
}

// LockBoxes bloquea las cajas con ese número cuyo lote pertenece a la categoría (por nombre).
func (r *ReadyCameraRepo) LockBoxes(ctx context.Context, categoryName, boxNo string) ([]*entity.ReadyBox, error) {
	return r.boxes(ctx, `
		SELECT b.id, b.ready_camera_id, b.box_no, b.part_uids, b.total_parts
		FROM ready_camera_boxes b
		JOIN ready_cameras rc ON rc.id = b.ready_camera_id
		JOIN categories c ON c.id = rc.category_id
		WHERE c.name = $1 AND b.box_no = $2
		ORDER BY rc.created_at, b.position
		FOR UPDATE OF b`, categoryName, boxNo)
}

// UpdateBoxUIDs reemplaza los UIDs de la caja; total_parts queda igual a su cantidad.
func (r *ReadyCameraRepo) UpdateBoxUIDs(ctx context.Context, boxID string, uids []string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE ready_camera_boxes SET part_uids = $2, total_parts = cardinality($2::text[]) WHERE id = $1`,
		boxID, uids)
	if err != nil {
		return fmt.Errorf("update ready camera box: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReadyCameraRepo) DeleteBox(ctx context.Context, boxID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM ready_camera_boxes WHERE id = $1`, boxID); err != nil {
		return fmt.Errorf("delete ready camera box: %w", err)
	}
	return nil
}

func (r *ReadyCameraRepo) boxes(ctx context.Context, query string, args ...any) ([]*entity.ReadyBox, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ready camera boxes: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReadyBox
	for rows.Next() {
		var b entity.ReadyBox
		if err := rows.Scan(&b.ID, &b.ReadyCameraID, &b.BoxNo, &b.PartUIDs, &b.TotalParts); err != nil {
			return nil, fmt.Errorf("scan ready camera box: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
