package dto

import "github.com/shopspring/decimal"

// ReorderRequest parámetros de la tabla de optimización de reorden.
type ReorderRequest struct {
	Mode      string   `json:"mode"`    // balanced|cost|availability
	SortBy    string   `json:"sort_by"` // savings|risk|name
	Desc      bool     `json:"desc"`
	Suppliers []string `json:"suppliers"` // coincidencia parcial, sin distinguir mayúsculas

	// Ficha de proveedores: sin métrica ordena por confiabilidad descendente.
	SupplierIDs    []string `json:"supplier_ids"`
	SupplierSortBy string   `json:"supplier_sort_by"` // reliability|cost_efficiency|quality_score|lead_time
	SupplierDesc   bool     `json:"supplier_desc"`    // en lead_time, el plazo más corto primero
}

// ReorderItemDTO recomendación de punto de reorden para un SKU.
type ReorderItemDTO struct {
	ProductID        string          `json:"product_id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Supplier         string          `json:"supplier"`
	CurrentStock     int64           `json:"current_stock"`
	CurrentROP       int64           `json:"current_rop"`
	OptimizedROP     int64           `json:"optimized_rop"` // ajustado por modo
	LeadTimeDays     int             `json:"lead_time_days"`
	AnnualDemand     int64           `json:"annual_demand"`
	CostPerUnit      decimal.Decimal `json:"cost_per_unit"`
	HoldingCostRate  decimal.Decimal `json:"holding_cost_rate"`
	StockoutRisk     string          `json:"stockout_risk"` // Low|Medium|High
	PotentialSavings decimal.Decimal `json:"potential_savings"`
	Recommendation   string          `json:"recommendation"` // Increase|Decrease|Maintain
}

// ReorderSummaryDTO tarjetas resumen.
type ReorderSummaryDTO struct {
	TotalSavings  decimal.Decimal `json:"total_savings"`
	ChangesNeeded int             `json:"changes_needed"` // recomendación distinta de Maintain
	TotalProducts int             `json:"total_products"`
	HighRiskCount int             `json:"high_risk_count"`
}

// SupplierPerformanceDTO fila de la ficha de desempeño de proveedores.
type SupplierPerformanceDTO struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Reliability    int64           `json:"reliability"`
	CostEfficiency int64           `json:"cost_efficiency"`
	QualityScore   int64           `json:"quality_score"`
	LeadTimeDays   decimal.Decimal `json:"lead_time_days"`
	Trend          string          `json:"trend"`
	ScoreBand      string          `json:"score_band"` // banda de la confiabilidad: excellent|good|fair|poor
}

// ReorderReportDTO respuesta del optimizador de reorden.
type ReorderReportDTO struct {
	Mode    string            `json:"mode"`
	SortBy  string            `json:"sort_by"`
	Desc    bool              `json:"desc"`
	Items   []ReorderItemDTO  `json:"items"`
	Summary ReorderSummaryDTO `json:"summary"`

	SupplierSortBy string                   `json:"supplier_sort_by"`
	SupplierDesc   bool                     `json:"supplier_desc"`
	Suppliers      []SupplierPerformanceDTO `json:"suppliers"`
}
