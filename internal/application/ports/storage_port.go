package ports

import (
	"context"
	"io"
)

// ObjectStorage define el puerto de salida para guardar archivos (imágenes de repuestos).
type ObjectStorage interface {
	// Put guarda el contenido bajo key y devuelve la URL pública.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}
