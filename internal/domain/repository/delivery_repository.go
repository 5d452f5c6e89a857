package repository

import (
	"context"
	"time"

	"github.com/jhoicas/camstock-api/internal/domain/entity"
)

// DeliveryFilter filtros del historial de entregas. Campos vacíos no filtran.
type DeliveryFilter struct {
	Category string
	Since    *time.Time
}

// DeliveryRepository define el puerto de persistencia para el historial de entregas.
type DeliveryRepository interface {
	Create(ctx context.Context, d *entity.DeliveryHistory) error
	List(ctx context.Context, f DeliveryFilter) ([]*entity.DeliveryHistory, error)
}
