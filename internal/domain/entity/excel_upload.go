package entity

import "time"

// Estados de una fila importada desde Excel.
const (
	UploadStatusPending  = "Pending"
	UploadStatusApproved = "Approved"
	UploadStatusRejected = "Rejected"
)

// ExcelUpload fila de una planilla de entrada pendiente de aprobación.
type ExcelUpload struct {
	ID              string
	PartsName       string
	PartsCode       string
	BoxNo           string
	Qty             int
	CategoryID      string
	CategoryName    string
	SubCategoryID   string
	SubCategoryName string
	Status          string
	Remark          string
	Processed       bool // ya fue contabilizada como entrada de stock
	UserID          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidUploadReview informa si el estado es una decisión de revisión válida.
func ValidUploadReview(status string) bool {
	return status == UploadStatusApproved || status == UploadStatusRejected
}
