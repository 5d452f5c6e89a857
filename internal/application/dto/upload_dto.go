package dto

import "time"

// UploadRowError fila de la planilla que no se pudo importar.
type UploadRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// UploadResult resumen de una importación de Excel.
type UploadResult struct {
	Inserted int              `json:"inserted"`
	Failed   int              `json:"failed"`
	Errors   []UploadRowError `json:"errors"`
}

// ExcelUploadResponse fila importada pendiente o revisada.
type ExcelUploadResponse struct {
	ID          string    `json:"_id"`
	PartsName   string    `json:"partsName"`
	PartsCode   string    `json:"partsCode"`
	BoxNo       string    `json:"boxNo"`
	Qty         int       `json:"qty"`
	Category    RefDTO    `json:"category"`
	SubCategory RefDTO    `json:"subCategory"`
	Status      string    `json:"status"`
	Remark      string    `json:"remark"`
	Processed   bool      `json:"processed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UpdateUploadStatusRequest aprueba o rechaza filas (por _id o por lote en ids).
type UpdateUploadStatusRequest struct {
	ID     string   `json:"_id"`
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
	Remark string   `json:"remark"`
}

// ProcessUploadResult entradas y cajas creadas al contabilizar filas aprobadas.
type ProcessUploadResult struct {
	Products int `json:"products"`
	Boxes    int `json:"boxes"`
}

// FileUploadResponse URL pública de un archivo subido.
type FileUploadResponse struct {
	URL string `json:"url"`
}
