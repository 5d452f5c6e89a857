package entity

import "time"

// Acciones del libro de daños.
const (
	DamageActionAdd = "Add" // ingresan repuestos dañados
	DamageActionOut = "Out" // salen repuestos dañados (descarte, devolución)
)

// DamageProduct asiento del libro de repuestos dañados.
type DamageProduct struct {
	ID              string
	CategoryID      string
	CategoryName    string
	SubCategoryID   string
	SubCategoryName string
	BoxNo           string
	Quantity        int
	Action          string
	UserID          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SignedQuantity devuelve la cantidad con signo según la acción (Add suma, Out resta).
func (d *DamageProduct) SignedQuantity() int {
	if d.Action == DamageActionOut {
		return -d.Quantity
	}
	return d.Quantity
}

// ValidDamageAction informa si la acción es Add u Out.
func ValidDamageAction(action string) bool {
	return action == DamageActionAdd || action == DamageActionOut
}
