// Package pdf genera la conciliación de repuestos de una categoría como PDF.
//
// Layout de la página A4 apaisada:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Categoría            │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Repuesto | Entradas | Salidas | Dañados ... │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: Cámaras posibles de la categoría                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"io"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/camstock-api/internal/application/dto"
	"github.com/jhoicas/camstock-api/internal/application/ports"
)

var _ ports.SummaryWriter = (*SummaryWriter)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 250}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// tableCol columna de la tabla: encabezado, ancho en la grilla de 12 y alineación.
type tableCol struct {
	label string
	size  int
	align align.Type
	value func(p dto.PartSummaryDTO) string
}

var columns = []tableCol{
	{"Código", 1, align.Left, func(p dto.PartSummaryDTO) string { return p.PartsCode }},
	{"Repuesto", 3, align.Left, func(p dto.PartSummaryDTO) string { return p.PartsName }},
	{"x Cám.", 1, align.Center, func(p dto.PartSummaryDTO) string { return strconv.Itoa(p.PartsPerCamera) }},
	{"Entradas", 1, align.Right, func(p dto.PartSummaryDTO) string { return formatQty(p.InwardQty) }},
	{"Salidas", 1, align.Right, func(p dto.PartSummaryDTO) string { return formatQty(p.OutwardQty) }},
	{"Dañados", 1, align.Right, func(p dto.PartSummaryDTO) string { return formatQty(p.DamageQty) }},
	{"Disp.", 1, align.Right, func(p dto.PartSummaryDTO) string { return formatQty(p.AvailableQty) }},
	{"Cámaras", 1, align.Right, func(p dto.PartSummaryDTO) string { return formatQty(p.PossibleCameras) }},
	{"% daño", 1, align.Right, func(p dto.PartSummaryDTO) string { return p.DamageRate.StringFixed(2) }},
	{"Actualizado", 1, align.Right, func(p dto.PartSummaryDTO) string { return p.LastUpdated.Format("02/01/06") }},
}

// ── Writer ────────────────────────────────────────────────────────────────────

// SummaryWriter implementa ports.SummaryWriter usando Maroto v2.
type SummaryWriter struct{}

// NewSummaryWriter construye el generador.
func NewSummaryWriter() *SummaryWriter { return &SummaryWriter{} }

func (SummaryWriter) ContentType() string { return "application/pdf" }

func (SummaryWriter) Extension() string { return "pdf" }

// Write genera el documento completo y lo copia en w.
func (SummaryWriter) Write(w io.Writer, s *dto.PartsSummaryDTO) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Conciliación de repuestos "+s.CategoryName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(s.Parts)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(s))

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("pdf: generar documento: %w", err)
	}
	if _, err := w.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("pdf: escribir: %w", err)
	}
	return nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(s *dto.PartsSummaryDTO) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("CONCILIACIÓN DE REPUESTOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(s.CategoryName, props.Text{
				Style: fontstyle.Bold, Size: 14, Top: 6,
			}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 1,
			}),
			text.New(s.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows una fila por repuesto, con franjas alternas. Sin cámaras posibles se marca en rojo.
func tableRows(parts []dto.PartSummaryDTO) []core.Row {
	if len(parts) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(text.New(
			"Sin entradas de stock para esta categoría.",
			props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2},
		)))}
	}
	rows := make([]core.Row, 0, len(parts))
	for i, p := range parts {
		cols := make([]core.Col, 0, len(columns))
		for _, c := range columns {
			style := props.Text{Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1}
			if p.PossibleCameras == 0 {
				style.Color = colorAlert
			}
			cols = append(cols, col.New(c.size).Add(text.New(c.value(p), style)))
		}
		r := row.New(6).Add(cols...)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		rows = append(rows, r)
	}
	return rows
}

func totalRow(s *dto.PartsSummaryDTO) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(3).Add(text.New("Cámaras posibles:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(1).Add(text.New(formatQty(s.PossibleCameras), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatQty inserta puntos de miles. Ej: 25000 → "25.000".
func formatQty(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	l := len(s)
	if l <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, l+l/3)
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
