package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryKPIsDTO tarjetas del tablero general.
type InventoryKPIsDTO struct {
	TotalSKUs       int             `json:"total_skus"`
	OutOfStock      int             `json:"out_of_stock"`
	LowStock        int             `json:"low_stock"`
	NearExpiry      int             `json:"near_expiry"`
	TotalValue      decimal.Decimal `json:"total_value"`
	PendingReorders int             `json:"pending_reorders"`
}

// ProductStockDTO fila de la tabla de inventario.
type ProductStockDTO struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Supplier     string `json:"supplier"`
	CurrentStock int64  `json:"current_stock"`
	MinStock     int64  `json:"min_stock"`
	MaxStock     int64  `json:"max_stock"`
	StockPct     int64  `json:"stock_pct"` // current / min * 100
	Status       string `json:"status"`    // out_of_stock|low|warning|healthy
}

// LowStockAlertDTO alerta de stock bajo.
type LowStockAlertDTO struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	Supplier     string `json:"supplier"`
	CurrentStock int64  `json:"current_stock"`
	MinStock     int64  `json:"min_stock"`
	Percentage   int64  `json:"percentage"`
	Urgency      string `json:"urgency"` // high|medium|low
}

// CategoryShareDTO porción de la distribución por categoría.
type CategoryShareDTO struct {
	Category   string          `json:"category"`
	Count      int             `json:"count"`
	TotalValue decimal.Decimal `json:"total_value"`
	Percentage decimal.Decimal `json:"percentage"`
}

// AlertDTO aviso del banner (ya excluye los descartados por el usuario).
type AlertDTO struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // error|warning|success
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Priority  string    `json:"priority"` // high|medium|low
	Action    string    `json:"action,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// InventoryOverviewDTO tablero general de inventario.
type InventoryOverviewDTO struct {
	GeneratedAt  time.Time          `json:"generated_at"`
	KPIs         InventoryKPIsDTO   `json:"kpis"`
	Products     []ProductStockDTO  `json:"products"`
	LowStock     []LowStockAlertDTO `json:"low_stock"`
	Distribution []CategoryShareDTO `json:"distribution"`
	Alerts       []AlertDTO         `json:"alerts"`
}
