// Package stock reúne los cálculos de inventario sobre datos ya consultados:
// combinación de cajas, saldos por caja y conciliación entrada/salida/daño.
package stock

import (
	"fmt"

	"github.com/jhoicas/camstock-api/internal/domain"
	"github.com/jhoicas/camstock-api/internal/domain/entity"
)

// CombineBoxes agrupa cajas con el mismo número sumando sus cantidades.
// Conserva el orden de primera aparición y la fecha más reciente de cada grupo.
func CombineBoxes(boxes []entity.Box) []entity.Box {
	index := make(map[string]int, len(boxes))
	out := make([]entity.Box, 0, len(boxes))
	for _, b := range boxes {
		i, ok := index[b.BoxNo]
		if !ok {
			index[b.BoxNo] = len(out)
			out = append(out, b)
			continue
		}
		out[i].PartsQty += b.PartsQty
		if b.CreatedAt.After(out[i].CreatedAt) {
			out[i].CreatedAt = b.CreatedAt
		}
	}
	return out
}

// BoxRemaining cantidad disponible en una caja después de las salidas registradas contra ella.
func BoxRemaining(box entity.Box, outs []*entity.OutProduct) int {
	remaining := box.PartsQty
	for _, o := range outs {
		if o.BoxID == box.ID {
			remaining -= o.Quantity
		}
	}
	if remaining < 0 {
		return 0
	}
	return remaining
}

// DamageBalances saldo de repuestos dañados por número de caja (Σ Add − Σ Out).
func DamageBalances(entries []*entity.DamageProduct) map[string]int {
	balances := make(map[string]int)
	for _, d := range entries {
		balances[d.BoxNo] += d.SignedQuantity()
	}
	return balances
}

// ReconcileBoxes aplica un reemplazo de cajas sobre las existentes de una entrada.
// Las cajas que conservan su número mantienen ID y fecha, así sus salidas siguen
// descontando. dispatched es lo ya despachado por ID de caja: ninguna caja puede
// quedar por debajo de eso ni desaparecer con salidas registradas.
// Las cajas nuevas vuelven con ID vacío.
func ReconcileBoxes(current []entity.Box, dispatched map[string]int, next []entity.Box) ([]entity.Box, error) {
	byNo := make(map[string]entity.Box, len(current))
	for _, b := range current {
		byNo[b.BoxNo] = b
	}
	kept := make(map[string]bool, len(next))
	out := make([]entity.Box, 0, len(next))
	for _, b := range CombineBoxes(next) {
		b.ID = ""
		if prev, ok := byNo[b.BoxNo]; ok {
			if used := dispatched[prev.ID]; b.PartsQty < used {
				return nil, fmt.Errorf("%w: la caja %s ya tiene %d piezas despachadas", domain.ErrInsufficientStock, b.BoxNo, used)
			}
			b.ID, b.CreatedAt = prev.ID, prev.CreatedAt
			kept[prev.ID] = true
		}
		out = append(out, b)
	}
	for _, b := range current {
		if !kept[b.ID] && dispatched[b.ID] > 0 {
			return nil, fmt.Errorf("%w: la caja %s tiene salidas registradas y no se puede quitar", domain.ErrConflict, b.BoxNo)
		}
	}
	return out, nil
}
