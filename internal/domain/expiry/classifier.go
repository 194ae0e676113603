// Package expiry contiene los servicios de dominio para vencimiento de lotes:
// clasificación de urgencia, puntaje de prioridad, agregados de cumplimiento y
// línea de tiempo mensual. Todas las funciones son puras y reciben el instante
// actual (now) como parámetro; nunca leen el reloj global.
package expiry

import (
	"time"

	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
)

// Umbrales en días hasta el vencimiento (inclusivos).
const (
	CriticalDays = 7
	WarningDays  = 30
	MonitorDays  = 90
)

// UrgencyLevel nivel cualitativo usado para puntaje y agrupación.
type UrgencyLevel string

const (
	UrgencyCritical UrgencyLevel = "critical"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyLow      UrgencyLevel = "low"
)

// Status etiqueta de visualización; Expired tiene prioridad sobre Critical.
type Status string

const (
	StatusExpired  Status = "expired"
	StatusCritical Status = "critical"
	StatusWarning  Status = "warning"
	StatusMonitor  Status = "monitor"
	StatusGood     Status = "good"
)

// Action acción recomendada para el lote.
type Action string

const (
	ActionImmediateDisposal Action = "immediate_disposal"
	ActionReturnSupplier    Action = "return_supplier"
	ActionMonitorClosely    Action = "monitor_closely"
)

// ComplianceStatus estado regulatorio derivado.
type ComplianceStatus string

const (
	ComplianceActionRequired ComplianceStatus = "action_required"
	ComplianceMonitored      ComplianceStatus = "monitored"
	ComplianceCompliant      ComplianceStatus = "compliant"
)

// Classification resultado de clasificar un lote en un instante dado.
type Classification struct {
	DaysUntilExpiry   int
	UrgencyLevel      UrgencyLevel
	Status            Status
	RecommendedAction Action
	DisposalRequired  bool
	ComplianceStatus  ComplianceStatus
}

// Classify calcula días hasta el vencimiento, urgencia, estado y acción recomendada.
func Classify(b entity.Batch, now time.Time) (Classification, error) {
	if err := b.Validate(); err != nil {
		return Classification{}, err
	}
	return classify(b, now), nil
}

// classify asume un lote ya validado.
func classify(b entity.Batch, now time.Time) Classification {
	days := DaysUntil(b.ExpiryDate, now)
	return Classification{
		DaysUntilExpiry:   days,
		UrgencyLevel:      urgencyFor(days),
		Status:            statusFor(days),
		RecommendedAction: actionFor(days),
		DisposalRequired:  days <= CriticalDays,
		ComplianceStatus:  complianceFor(days),
	}
}

// DaysUntil = ceil((expiry - now) / 24h). Negativo si ya venció.
func DaysUntil(expiry, now time.Time) int {
	const day = int64(24 * time.Hour)
	ns := int64(expiry.Sub(now))
	q := ns / day
	// la división entera trunca hacia cero: para positivos con resto hay que subir
	if ns%day > 0 {
		q++
	}
	return int(q)
}

func urgencyFor(days int) UrgencyLevel {
	switch {
	case days <= CriticalDays:
		return UrgencyCritical
	case days <= WarningDays:
		return UrgencyHigh
	case days <= MonitorDays:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

func statusFor(days int) Status {
	switch {
	case days <= 0:
		return StatusExpired
	case days <= CriticalDays:
		return StatusCritical
	case days <= WarningDays:
		return StatusWarning
	case days <= MonitorDays:
		return StatusMonitor
	default:
		return StatusGood
	}
}

func actionFor(days int) Action {
	switch {
	case days <= CriticalDays:
		return ActionImmediateDisposal
	case days <= WarningDays:
		return ActionReturnSupplier
	default:
		return ActionMonitorClosely
	}
}

func complianceFor(days int) ComplianceStatus {
	switch {
	case days <= CriticalDays:
		return ComplianceActionRequired
	case days <= WarningDays:
		return ComplianceMonitored
	default:
		return ComplianceCompliant
	}
}
