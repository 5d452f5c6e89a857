package repository

import (
	"context"
	"time"
)

// DashboardRepository consultas de solo lectura para las tarjetas del panel de administración.
// Cada método es una consulta independiente; el use case las ejecuta en paralelo.
type DashboardRepository interface {
	// CountReadyUIDs cámaras armadas todavía en stock.
	CountReadyUIDs(ctx context.Context) (int, error)
	// CountBoxes cajas de entrada registradas.
	CountBoxes(ctx context.Context) (int, error)
	// SumInwardSince repuestos ingresados desde el instante dado.
	SumInwardSince(ctx context.Context, since time.Time) (int, error)
	// CountDeliveredSince UIDs entregados desde el instante dado.
	CountDeliveredSince(ctx context.Context, since time.Time) (int, error)
	CountCategories(ctx context.Context) (int, error)
}
