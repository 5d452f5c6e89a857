package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/camstock-api/internal/application/dto"
	"github.com/jhoicas/camstock-api/internal/application/ports"
)

var _ ports.SummaryWriter = (*SummaryWriter)(nil)

const summarySheet = "Resumen"

var summaryHeaders = []string{
	"Código", "Repuesto", "Por cámara", "Entradas", "Salidas", "Dañados",
	"Disponibles", "Cámaras posibles", "% daño", "Última actualización",
}

// SummaryWriter exporta la conciliación de repuestos como libro .xlsx.
type SummaryWriter struct{}

// NewSummaryWriter construye el exportador.
func NewSummaryWriter() *SummaryWriter { return &SummaryWriter{} }

func (SummaryWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (SummaryWriter) Extension() string { return "xlsx" }

// Write arma una hoja con encabezado en negrita, una fila por repuesto y el total de cámaras posibles.
func (SummaryWriter) Write(w io.Writer, s *dto.PartsSummaryDTO) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return fmt.Errorf("estilo encabezado: %w", err)
	}

	if err := f.SetCellValue(summarySheet, "A1", fmt.Sprintf("Categoría: %s", s.CategoryName)); err != nil {
		return err
	}
	if err := f.SetCellValue(summarySheet, "A2", fmt.Sprintf("Generado: %s", s.GeneratedAt.Format("2006-01-02 15:04"))); err != nil {
		return err
	}

	const headerRow = 4
	for i, h := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellValue(summarySheet, cell, h); err != nil {
			return err
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(summaryHeaders), headerRow)
	if err := f.SetCellStyle(summarySheet, first, last, bold); err != nil {
		return err
	}

	for i, p := range s.Parts {
		cell, _ := excelize.CoordinatesToCellName(1, headerRow+1+i)
		values := []any{
			p.PartsCode, p.PartsName, p.PartsPerCamera, p.InwardQty, p.OutwardQty, p.DamageQty,
			p.AvailableQty, p.PossibleCameras, p.DamageRate.InexactFloat64(), p.LastUpdated.Format("2006-01-02 15:04"),
		}
		if err := f.SetSheetRow(summarySheet, cell, &values); err != nil {
			return fmt.Errorf("fila %s: %w", p.PartsCode, err)
		}
	}

	totalRow := headerRow + len(s.Parts) + 2
	label, _ := excelize.CoordinatesToCellName(1, totalRow)
	value, _ := excelize.CoordinatesToCellName(8, totalRow)
	if err := f.SetCellValue(summarySheet, label, "Cámaras posibles (categoría)"); err != nil {
		return err
	}
	if err := f.SetCellValue(summarySheet, value, s.PossibleCameras); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, label, value, bold); err != nil {
		return err
	}

	widths := []float64{12, 24, 11, 10, 10, 10, 12, 16, 9, 20}
	for i, wd := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(summarySheet, col, col, wd)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("escribir xlsx: %w", err)
	}
	return nil
}
