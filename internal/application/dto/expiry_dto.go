package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpiryFilterDTO filtros aplicados a la tabla, línea de tiempo y panel de prioridades.
type ExpiryFilterDTO struct {
	Category    string `json:"category"`     // "all" = todas
	BatchSearch string `json:"batch_search"` // subcadena del número de lote
	WithinDays  int    `json:"within_days"`  // 30, 60, 90; 0 = sin límite
}

// BatchRowDTO fila de la tabla de vencimientos con los campos derivados del clasificador.
type BatchRowDTO struct {
	BatchID           string          `json:"batch_id"`
	ProductName       string          `json:"product_name"`
	BatchNumber       string          `json:"batch_number"`
	Category          string          `json:"category"`
	Supplier          string          `json:"supplier"`
	ExpiryDate        time.Time       `json:"expiry_date"`
	PurchaseDate      time.Time       `json:"purchase_date"`
	StockQuantity     int64           `json:"stock_quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	TotalValue        decimal.Decimal `json:"total_value"` // stock_quantity * unit_cost
	DaysUntilExpiry   int             `json:"days_until_expiry"`
	UrgencyLevel      string          `json:"urgency_level"`      // critical|high|medium|low
	Status            string          `json:"status"`             // expired|critical|warning|monitor|good
	RecommendedAction string          `json:"recommended_action"` // immediate_disposal|return_supplier|monitor_closely
	DisposalRequired  bool            `json:"disposal_required"`
	ComplianceStatus  string          `json:"compliance_status"` // action_required|monitored|compliant
}

// PriorityItemDTO elemento del panel de acciones prioritarias (1 = más urgente).
type PriorityItemDTO struct {
	Rank int `json:"rank"`
	BatchRowDTO
	UrgencyScore  decimal.Decimal `json:"urgency_score"`
	ValueScore    decimal.Decimal `json:"value_score"`
	StockScore    decimal.Decimal `json:"stock_score"`
	PriorityScore decimal.Decimal `json:"priority_score"`
}

// PrioritySummaryDTO pie del panel de prioridades.
type PrioritySummaryDTO struct {
	CriticalItems int             `json:"critical_items"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// ComplianceMetricsDTO tarjetas de cumplimiento. Los contadores de 7 y 30 días son acumulativos.
type ComplianceMetricsDTO struct {
	Expiring7Days   int             `json:"expiring_7_days"`
	Expiring30Days  int             `json:"expiring_30_days"`
	ExpiredItems    int             `json:"expired_items"`
	ComplianceScore decimal.Decimal `json:"compliance_score"`
}

// TimelineMonthDTO barra mensual de la línea de tiempo de vencimientos.
type TimelineMonthDTO struct {
	Year          int             `json:"year"`
	Month         int             `json:"month"` // 1-12
	Label         string          `json:"label"` // ej: "Octubre 2026"
	Items         int             `json:"items"`
	CriticalItems int             `json:"critical_items"`
	TotalValue    decimal.Decimal `json:"total_value"`
	Severity      string          `json:"severity"`  // critical|high|medium|low
	BatchIDs      []string        `json:"batch_ids"` // detalle del tooltip
}

// TimelineTotalsDTO resumen de la línea de tiempo.
type TimelineTotalsDTO struct {
	Items         int             `json:"items"`
	CriticalItems int             `json:"critical_items"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// ExpiryReportDTO reporte completo del tablero de vencimientos y cumplimiento.
type ExpiryReportDTO struct {
	GeneratedAt     time.Time            `json:"generated_at"`
	Filter          ExpiryFilterDTO      `json:"filter"`
	Categories      []string             `json:"categories"`
	Compliance      ComplianceMetricsDTO `json:"compliance"` // sobre todos los lotes, sin filtro
	Priorities      []PriorityItemDTO    `json:"priorities"`
	PrioritySummary PrioritySummaryDTO   `json:"priority_summary"`
	Timeline        []TimelineMonthDTO   `json:"timeline"`
	TimelineTotals  TimelineTotalsDTO    `json:"timeline_totals"`
	Batches         []BatchRowDTO        `json:"batches"` // orden por vencimiento ascendente
}
