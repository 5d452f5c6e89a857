package entity

import "time"

// OutProduct registro de salida de repuestos desde una caja de inventario.
type OutProduct struct {
	ID              string
	CategoryID      string
	CategoryName    string
	SubCategoryID   string
	SubCategoryName string
	BoxID           string
	BoxNo           string
	Quantity        int
	UserID          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
