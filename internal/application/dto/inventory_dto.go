package dto

import "time"

// ── Salidas ───────────────────────────────────────────────────────────────────

// AddOutProductRequest entrada para retirar repuestos de una caja.
type AddOutProductRequest struct {
	Category    string `json:"category"`
	SubCategory string `json:"subCategory"`
	Box         string `json:"box"`
	Quantity    int    `json:"quantity"`
}

// BoxRefDTO referencia poblada a una caja.
type BoxRefDTO struct {
	ID    string `json:"_id"`
	BoxNo string `json:"boxNo"`
}

// OutProductResponse salida registrada.
type OutProductResponse struct {
	ID          string    `json:"_id"`
	Category    RefDTO    `json:"category"`
	SubCategory RefDTO    `json:"subCategory"`
	Box         BoxRefDTO `json:"box"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ── Daños ─────────────────────────────────────────────────────────────────────

// DamageRequest entrada de add-or-out.
type DamageRequest struct {
	Category    string     `json:"category"`
	SubCategory string     `json:"subCategory"`
	Action      string     `json:"action"` // Add | Out
	Boxes       []BoxInput `json:"boxes"`
}

// DamageResult cajas procesadas y omitidas por datos inválidos.
type DamageResult struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
}

// DamageProductResponse asiento del libro de daños.
type DamageProductResponse struct {
	ID          string    `json:"_id"`
	Category    RefDTO    `json:"category"`
	SubCategory RefDTO    `json:"subCategory"`
	BoxNo       string    `json:"boxNo"`
	Quantity    int       `json:"quantity"`
	Action      string    `json:"action"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DamagedBoxesRequest cuerpo de damageproduct/boxes.
type DamagedBoxesRequest struct {
	CategoryID string `json:"categoryId"`
}

// ── Cámaras listas ────────────────────────────────────────────────────────────

// ReadyBoxInput caja con los UIDs de cámaras armadas.
type ReadyBoxInput struct {
	BoxNo    string   `json:"boxNo"`
	PartUIDs []string `json:"partUIDs"`
}

// CreateReadyCameraRequest entrada para registrar cámaras armadas.
type CreateReadyCameraRequest struct {
	Category    string          `json:"category"`
	Boxes       []ReadyBoxInput `json:"boxes"`
	Description string          `json:"description"`
}

// ReadyBoxResponse caja de cámaras listas.
type ReadyBoxResponse struct {
	ID         string   `json:"_id"`
	BoxNo      string   `json:"boxNo"`
	PartUIDs   []string `json:"partUIDs"`
	TotalParts int      `json:"totalParts"`
}

// ReadyCameraResponse lote de cámaras listas.
type ReadyCameraResponse struct {
	ID          string             `json:"_id"`
	Category    RefDTO             `json:"category"`
	Boxes       []ReadyBoxResponse `json:"boxes"`
	Description string             `json:"description"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ReadyCameraHistoryItem fila del historial de cámaras listas.
type ReadyCameraHistoryItem struct {
	ID         string             `json:"_id"`
	CreatedAt  time.Time          `json:"createdAt"`
	Category   string             `json:"category"`
	Boxes      []ReadyBoxResponse `json:"boxes"`
	TotalQty   int                `json:"totalQty"`
	TotalBoxes int                `json:"totalBoxes"`
}

// ── Entregas ──────────────────────────────────────────────────────────────────

// DeliveryBoxInput UIDs seleccionados de una caja.
type DeliveryBoxInput struct {
	BoxNo        string   `json:"boxNo"`
	SelectedUIDs []string `json:"selectedUIDs"`
}

// DeliverRequest entrada para entregar cámaras a un IWON.
type DeliverRequest struct {
	IwonName string             `json:"iwonName"`
	Category string             `json:"category"` // nombre de la categoría
	Boxes    []DeliveryBoxInput `json:"boxes"`
}

// DeliveryBoxResponse UIDs entregados de una caja.
type DeliveryBoxResponse struct {
	BoxNo         string   `json:"boxNo"`
	DeliveredUIDs []string `json:"deliveredUIDs"`
}

// DeliveryResponse registro del historial de entregas.
type DeliveryResponse struct {
	ID             string                `json:"_id"`
	IwonName       string                `json:"iwonName"`
	Category       string                `json:"category"`
	Boxes          []DeliveryBoxResponse `json:"boxes"`
	TotalDelivered int                   `json:"totalDelivered"`
	CreatedAt      time.Time             `json:"createdAt"`
}

// DeliveryHistoryQuery filtros del historial: category (nombre) y date (YYYY-MM-DD).
type DeliveryHistoryQuery struct {
	Category string `query:"category"`
	Date     string `query:"date"`
}
