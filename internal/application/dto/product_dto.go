package dto

import (
	"encoding/json"
	"time"
)

// BoxInput caja enviada al crear o actualizar una entrada.
type BoxInput struct {
	BoxNo    string `json:"boxNo"`
	PartsQty int    `json:"partsQty"`
}

// BoxResponse caja de una entrada de stock.
type BoxResponse struct {
	ID        string    `json:"_id"`
	BoxNo     string    `json:"boxNo"`
	PartsQty  int       `json:"partsQty"`
	CreatedAt time.Time `json:"createdAt"`
}

// PartRefDTO referencia poblada a un repuesto.
type PartRefDTO struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// CreateProductRequest entrada para registrar stock entrante.
type CreateProductRequest struct {
	Category    string          `json:"category"`
	SubCategory string          `json:"subCategory"`
	Boxes       []BoxInput      `json:"boxes"`
	Description string          `json:"description"`
	MoreDetails json.RawMessage `json:"more_details" swaggertype:"object"`
}

// UpdateProductRequest entrada parcial; Boxes nil no reemplaza las cajas.
type UpdateProductRequest struct {
	ID          string          `json:"_id"`
	Description *string         `json:"description"`
	MoreDetails json.RawMessage `json:"more_details" swaggertype:"object"`
	Boxes       []BoxInput      `json:"boxes"`
	Publish     *bool           `json:"publish"`
}

// ProductResponse salida de una entrada de stock con nombres poblados.
type ProductResponse struct {
	ID          string          `json:"_id"`
	Category    RefDTO          `json:"category"`
	SubCategory PartRefDTO      `json:"subCategory"`
	Boxes       []BoxResponse   `json:"boxes"`
	TotalParts  int             `json:"totalParts"`
	Description string          `json:"description"`
	MoreDetails json.RawMessage `json:"more_details,omitempty" swaggertype:"object"`
	Publish     bool            `json:"publish"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductListRequest filtro opcional del listado general.
type ProductListRequest struct {
	Search string `json:"search"`
}

// ProductByCategoryRequest cuerpo de get-product-by-category.
type ProductByCategoryRequest struct {
	ID string `json:"id"`
}

// ProductByCategoryAndSubRequest cuerpo del listado paginado por categoría y repuesto.
type ProductByCategoryAndSubRequest struct {
	PageRequest
	CategoryID    string `json:"categoryId"`
	SubCategoryID string `json:"subCategoryId"`
}

// ProductDetailsRequest cuerpo de get-product-details.
type ProductDetailsRequest struct {
	ProductID string `json:"productId"`
}

// SearchProductRequest cuerpo de search-product.
type SearchProductRequest struct {
	PageRequest
	Search string `json:"search"`
}

// ProductPage página de entradas con totales.
type ProductPage struct {
	Items      []ProductResponse
	TotalCount int
	TotalPage  int
	Page       int
	Limit      int
}
