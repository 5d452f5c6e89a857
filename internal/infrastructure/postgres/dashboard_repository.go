package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/camstock-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para las tarjetas del panel.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del panel.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

func (r *DashboardRepo) CountReadyUIDs(ctx context.Context) (int, error) {
	return r.scalar(ctx, "ready uids", `SELECT COALESCE(SUM(cardinality(part_uids)), 0) FROM ready_camera_boxes`)
}

func (r *DashboardRepo) CountBoxes(ctx context.Context) (int, error) {
	return r.scalar(ctx, "boxes", `SELECT COUNT(*) FROM product_boxes`)
}

// SumInwardSince repuestos de las cajas creadas desde since (incluye cajas agregadas por daños).
func (r *DashboardRepo) SumInwardSince(ctx context.Context, since time.Time) (int, error) {
	return r.scalar(ctx, "inward", `SELECT COALESCE(SUM(parts_qty), 0) FROM product_boxes WHERE created_at >= $1`, since)
}

func (r *DashboardRepo) CountDeliveredSince(ctx context.Context, since time.Time) (int, error) {
	return r.scalar(ctx, "delivered", `
		SELECT COALESCE(SUM(cardinality(b.delivered_uids)), 0)
		FROM delivery_boxes b
		JOIN delivery_histories d ON d.id = b.delivery_id
		WHERE d.created_at >= $1`, since)
}

func (r *DashboardRepo) CountCategories(ctx context.Context) (int, error) {
	return r.scalar(ctx, "categories", `SELECT COUNT(*) FROM categories`)
}

func (r *DashboardRepo) scalar(ctx context.Context, what, query string, args ...any) (int, error) {
	var n int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard %s: %w", what, err)
	}
	return int(n), nil
}
