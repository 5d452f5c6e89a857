// Package excel lee planillas de entrada de stock y genera la conciliación en .xlsx.
package excel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"

	"github.com/jhoicas/camstock-api/internal/application/inventory"
)

var _ inventory.SheetParser = (*Parser)(nil)

// Columnas reconocidas, ya normalizadas con headerKey.
const (
	colPartsName   = "partsname"
	colPartsCode   = "partscode"
	colBoxNo       = "boxno"
	colQty         = "qty"
	colCategory    = "category"
	colSubCategory = "subcategory"
)

var requiredColumns = []string{colBoxNo, colQty, colCategory, colSubCategory}

// ErrEmptySheet la planilla no tiene encabezado.
var ErrEmptySheet = errors.New("la planilla está vacía")

// Parser lee la primera hoja de un .xlsx con encabezado en la fila 1.
type Parser struct{}

// NewParser construye el parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse devuelve las filas de datos; las filas completamente vacías se omiten.
// Los encabezados se comparan sin mayúsculas, espacios ni guiones ("Box No", "box_no" y "BOXNO" valen igual).
func (p *Parser) Parse(r io.Reader) ([]inventory.UploadRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir planilla: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	// cases.Caser guarda estado: uno por llamada.
	fold := cases.Fold()
	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		if key := headerKey(fold, h); key != "" {
			if _, dup := index[key]; !dup {
				index[key] = i
			}
		}
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("faltan columnas: %s", strings.Join(missing, ", "))
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]inventory.UploadRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		out = append(out, inventory.UploadRow{
			Row:         i + 2,
			PartsName:   cell(row, colPartsName),
			PartsCode:   cell(row, colPartsCode),
			BoxNo:       cell(row, colBoxNo),
			Qty:         cell(row, colQty),
			Category:    cell(row, colCategory),
			SubCategory: cell(row, colSubCategory),
		})
	}
	return out, nil
}

func headerKey(fold cases.Caser, h string) string {
	var b strings.Builder
	for _, r := range fold.String(strings.TrimSpace(h)) {
		switch r {
		case ' ', '_', '-', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
