package ports

import (
	"context"
	"time"
)

// Cache define el puerto de salida para la caché de lecturas agregadas (resúmenes, estadísticas).
// Un fallo de la caché nunca debe romper la lectura: los use cases lo registran y consultan la DB.
type Cache interface {
	// Get devuelve (valor, true) si existe la clave.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// DeletePrefix elimina todas las claves que empiezan con prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

// StockObserver recibe aviso de cada escritura en el libro de stock
// (entradas, salidas, daños, cámaras listas, entregas) para invalidar lecturas agregadas.
type StockObserver interface {
	StockChanged(ctx context.Context)
}
