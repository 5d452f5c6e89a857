package stock

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/camstock-api/internal/domain/entity"
)

const notAvailable = "N/A"

// PartSummary conciliación de un repuesto dentro de una categoría.
type PartSummary struct {
	SubCategoryID   string
	PartsCode       string
	PartsName       string
	PartsPerCamera  int
	InwardQty       int
	OutwardQty      int
	DamageQty       int
	AvailableQty    int
	PossibleCameras int
	DamageRate      decimal.Decimal // % de daño sobre lo ingresado
	LastUpdated     time.Time
}

// Ledger datos ya materializados de una categoría.
type Ledger struct {
	Products []*entity.Product
	Outs     []*entity.OutProduct
	Damages  []*entity.DamageProduct
	Parts    map[string]*entity.SubCategory // por ID de subcategoría
}

// Summarize arma una fila por repuesto con stock de entrada en la categoría.
// Salidas y daños solo se cuentan contra repuestos que tienen entradas.
func Summarize(l Ledger) []PartSummary {
	rows := make(map[string]*PartSummary)
	for _, p := range l.Products {
		row, ok := rows[p.SubCategoryID]
		if !ok {
			row = newRow(p.SubCategoryID, l.Parts[p.SubCategoryID])
			rows[p.SubCategoryID] = row
		}
		row.InwardQty += p.TotalParts()
		row.LastUpdated = latest(row.LastUpdated, p.UpdatedAt)
	}
	for _, o := range l.Outs {
		if row, ok := rows[o.SubCategoryID]; ok {
			row.OutwardQty += o.Quantity
			row.LastUpdated = latest(row.LastUpdated, o.UpdatedAt)
		}
	}
	for _, d := range l.Damages {
		if row, ok := rows[d.SubCategoryID]; ok {
			row.DamageQty += d.SignedQuantity()
			row.LastUpdated = latest(row.LastUpdated, d.UpdatedAt)
		}
	}

	out := make([]PartSummary, 0, len(rows))
	for _, row := range rows {
		row.AvailableQty = row.InwardQty - row.OutwardQty - row.DamageQty
		if row.AvailableQty < 0 {
			row.AvailableQty = 0
		}
		row.PossibleCameras = row.AvailableQty / row.PartsPerCamera
		row.DamageRate = damageRate(row.DamageQty, row.InwardQty)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PartsCode != out[j].PartsCode {
			return out[i].PartsCode < out[j].PartsCode
		}
		return out[i].SubCategoryID < out[j].SubCategoryID
	})
	return out
}

// PossibleCameras cámaras completas que se pueden armar con el stock disponible:
// el mínimo entre repuestos. Sin repuestos, cero.
func PossibleCameras(rows []PartSummary) int {
	if len(rows) == 0 {
		return 0
	}
	lowest := rows[0].PossibleCameras
	for _, r := range rows[1:] {
		if r.PossibleCameras < lowest {
			lowest = r.PossibleCameras
		}
	}
	return lowest
}

func newRow(subCategoryID string, part *entity.SubCategory) *PartSummary {
	row := &PartSummary{
		SubCategoryID:  subCategoryID,
		PartsCode:      notAvailable,
		PartsName:      notAvailable,
		PartsPerCamera: 1,
	}
	if part != nil {
		if part.Code != "" {
			row.PartsCode = part.Code
		}
		if part.Name != "" {
			row.PartsName = part.Name
		}
		if part.PartsPerCamera > 0 {
			row.PartsPerCamera = part.PartsPerCamera
		}
	}
	return row
}

func damageRate(damage, inward int) decimal.Decimal {
	if inward <= 0 || damage <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(damage)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(inward))).
		Round(2)
}

func latest(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
