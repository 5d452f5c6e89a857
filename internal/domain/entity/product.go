package entity

import (
	"encoding/json"
	"time"
)

// Product representa una entrada de stock (inward) de un repuesto, repartida en cajas.
type Product struct {
	ID              string
	CategoryID      string
	CategoryName    string // poblado en lecturas
	SubCategoryID   string
	SubCategoryName string // poblado en lecturas
	SubCategoryCode string // poblado en lecturas
	Boxes           []Box
	Description     string
	MoreDetails     json.RawMessage
	Publish         bool
	UserID          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Box caja física con una cantidad de un repuesto.
type Box struct {
	ID        string
	ProductID string
	BoxNo     string
	PartsQty  int
	CreatedAt time.Time
}

// TotalParts suma las cantidades de todas las cajas de la entrada.
func (p *Product) TotalParts() int {
	total := 0
	for _, b := range p.Boxes {
		total += b.PartsQty
	}
	return total
}
