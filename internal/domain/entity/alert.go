package entity

import "time"

// Tipos y prioridades de alerta del banner operativo.
const (
	AlertTypeError   = "error"
	AlertTypeWarning = "warning"
	AlertTypeSuccess = "success"

	AlertPriorityHigh   = "high"
	AlertPriorityMedium = "medium"
	AlertPriorityLow    = "low"
)

// Alert aviso derivado del estado del inventario. El ID es determinista para que
// un descarte (dismiss) sobreviva a la recarga de datos.
type Alert struct {
	ID        string
	Type      string
	Title     string
	Message   string
	Priority  string
	Action    string
	CreatedAt time.Time
}
