package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/camstock-api/internal/application/dto"
	"github.com/jhoicas/camstock-api/internal/application/ports"
	"github.com/jhoicas/camstock-api/internal/domain"
)

// MaxImageSize tamaño máximo de una imagen subida (5 MiB).
const MaxImageSize = 5 << 20

// FileUseCase sube imágenes de repuestos al almacenamiento de objetos.
type FileUseCase struct {
	storage ports.ObjectStorage // nil si no está configurado
}

// NewFileUseCase construye el caso de uso. storage puede ser nil.
func NewFileUseCase(storage ports.ObjectStorage) *FileUseCase {
	return &FileUseCase{storage: storage}
}

// UploadImage valida tipo y tamaño y guarda la imagen como images/<uuid><ext>.
func (uc *FileUseCase) UploadImage(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*dto.FileUploadResponse, error) {
	if uc.storage == nil {
		return nil, fmt.Errorf("%w: almacenamiento de archivos no configurado", domain.ErrUnavailable)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, invalid("solo se aceptan imágenes")
	}
	if size <= 0 || size > MaxImageSize {
		return nil, invalid("la imagen debe pesar como máximo 5 MiB")
	}
	key := "images/" + uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	url, err := uc.storage.Put(ctx, key, io.LimitReader(r, size), size, contentType)
	if err != nil {
		return nil, fmt.Errorf("subir imagen: %w", err)
	}
	return &dto.FileUploadResponse{URL: url}, nil
}
