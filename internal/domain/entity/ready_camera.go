package entity

import "time"

// ReadyCamera lote de cámaras armadas pendientes de entrega, identificadas por UID y agrupadas por caja.
type ReadyCamera struct {
	ID           string
	CategoryID   string
	CategoryName string
	Boxes        []ReadyBox
	Description  string
	UserID       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReadyBox caja de cámaras listas. TotalParts siempre es len(PartUIDs).
type ReadyBox struct {
	ID            string
	ReadyCameraID string
	BoxNo         string
	PartUIDs      []string
	TotalParts    int
}

// TotalQty suma las cámaras de todas las cajas del lote.
func (r *ReadyCamera) TotalQty() int {
	total := 0
	for _, b := range r.Boxes {
		total += len(b.PartUIDs)
	}
	return total
}
