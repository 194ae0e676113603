package entity

import "time"

// Tipos de acción operativa. Se registran en la bitácora; no modifican el snapshot.
const (
	ActionDispose        = "dispose"          // descarte del lote
	ActionReturn         = "return"           // devolución al proveedor
	ActionReorder        = "reorder"          // pedido rápido de reposición
	ActionViewDetails    = "view_details"     // consulta de detalle
	ActionBulkDispose    = "dispose_critical" // descarte masivo de lotes críticos
	ActionDisposalReport = "generate_disposal_report"
	ActionNotifySupplier = "notify_suppliers"
)

// ActionRecord representa una acción solicitada desde el tablero sobre un lote o producto.
type ActionRecord struct {
	ID          string
	SessionID   string
	Type        string
	TargetID    string // ID de lote o producto; vacío en acciones masivas
	BatchNumber string
	Quantity    int64 // unidades afectadas (informativo)
	Items       int   // número de registros afectados en acciones masivas
	Note        string
	CreatedAt   time.Time
}
