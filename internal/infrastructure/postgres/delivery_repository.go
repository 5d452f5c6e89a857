package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/camstock-api/internal/domain/entity"
	"github.com/jhoicas/camstock-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo historial de entregas; las cajas entregadas van en delivery_boxes.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Acepta pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

func (r *DeliveryRepo) Create(ctx context.Context, d *entity.DeliveryHistory) error {
	return inTx(ctx, r.q, func(q Querier) error {
		if _, err := q.Exec(ctx, `
			INSERT INTO delivery_histories (id, iwon_name, category, user_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			d.ID, d.IwonName, d.Category, nullable(d.UserID), d.CreatedAt, d.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert delivery: %w", err)
		}
		for i, b := range d.Boxes {
			if _, err := q.Exec(ctx, `
				INSERT INTO delivery_boxes (delivery_id, position, box_no, delivered_uids)
				VALUES ($1, $2, $3, $4)`,
				d.ID, i, b.BoxNo, b.DeliveredUIDs,
			); err != nil {
				return fmt.Errorf("insert delivery box: %w", err)
			}
		}
		return nil
	})
}

// List historial más reciente primero, filtrado por nombre de categoría y fecha mínima.
func (r *DeliveryRepo) List(ctx context.Context, f repository.DeliveryFilter) ([]*entity.DeliveryHistory, error) {
	var where []string
	var args []any
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Since != nil {
		args = append(args, *f.Since)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	query := `SELECT id, iwon_name, category, COALESCE(user_id::text, ''), created_at, updated_at FROM delivery_histories`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeliveryHistory
	byID := make(map[string]*entity.DeliveryHistory)
	ids := []string{}
	for rows.Next() {
		var d entity.DeliveryHistory
		if err := rows.Scan(&d.ID, &d.IwonName, &d.Category, &d.UserID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		list = append(list, &d)
		byID[d.ID] = &d
		ids = append(ids, d.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}

	boxRows, err := r.q.Query(ctx, `
		SELECT delivery_id, box_no, delivered_uids
		FROM delivery_boxes
		WHERE delivery_id = ANY($1::uuid[])
		ORDER BY delivery_id, position`, ids)
	if err != nil {
		return nil, fmt.Errorf("list delivery boxes: %w", err)
	}
	defer boxRows.Close()
	for boxRows.Next() {
		var id string
		var b entity.DeliveryBox
		if err := boxRows.Scan(&id, &b.BoxNo, &b.DeliveredUIDs); err != nil {
			return nil, fmt.Errorf("scan delivery box: %w", err)
		}
		if d, ok := byID[id]; ok {
			d.Boxes = append(d.Boxes, b)
		}
	}
	return list, boxRows.Err()
}
