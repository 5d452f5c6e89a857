package ports

import (
	"io"

	"github.com/jhoicas/camstock-api/internal/application/dto"
)

// SummaryWriter define el puerto de salida para exportar la conciliación de repuestos
// (planilla Excel, PDF).
type SummaryWriter interface {
	Write(w io.Writer, summary *dto.PartsSummaryDTO) error
	ContentType() string
	Extension() string
}
