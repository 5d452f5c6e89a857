package entity

import "time"

// DeliveryHistory registro de una entrega de cámaras listas a un destinatario (IWON).
type DeliveryHistory struct {
	ID        string
	IwonName  string
	Category  string // nombre de la categoría, tal como la ve el operador
	Boxes     []DeliveryBox
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeliveryBox UIDs entregados de una caja.
type DeliveryBox struct {
	BoxNo         string
	DeliveredUIDs []string
}

// TotalDelivered cuenta los UIDs entregados.
func (d *DeliveryHistory) TotalDelivered() int {
	total := 0
	for _, b := range d.Boxes {
		total += len(b.DeliveredUIDs)
	}
	return total
}
