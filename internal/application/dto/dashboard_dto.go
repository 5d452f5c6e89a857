package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartSummaryDTO fila de la conciliación por repuesto.
type PartSummaryDTO struct {
	SubCategoryID   string          `json:"subCategoryId"`
	PartsCode       string          `json:"partsCode"`
	PartsName       string          `json:"partsName"`
	PartsPerCamera  int             `json:"partsPerCamera"`
	InwardQty       int             `json:"inwardQty"`
	OutwardQty      int             `json:"outwardQty"`
	DamageQty       int             `json:"damageQty"`
	AvailableQty    int             `json:"availableQty"`
	PossibleCameras int             `json:"possibleCameras"`
	DamageRate      decimal.Decimal `json:"damageRate" swaggertype:"string"`
	LastUpdated     time.Time       `json:"lastUpdated"`
}

// PartsSummaryDTO conciliación completa de una categoría.
type PartsSummaryDTO struct {
	CategoryID      string           `json:"categoryId"`
	CategoryName    string           `json:"categoryName"`
	PossibleCameras int              `json:"possibleCameras"`
	Parts           []PartSummaryDTO `json:"parts"`
	GeneratedAt     time.Time        `json:"generatedAt"`
}

// DashboardStatsDTO tarjetas del panel de administración.
type DashboardStatsDTO struct {
	TotalCameras   int       `json:"totalCameras"`
	TotalBoxes     int       `json:"totalBoxes"`
	TodayInward    int       `json:"todayInward"`
	TodayDelivered int       `json:"todayDelivered"`
	LiveProjects   int       `json:"liveProjects"`
	GeneratedAt    time.Time `json:"generatedAt"`
}
