package expiry

import (
	"time"

	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var (
	// neutralComplianceScore puntaje de RatioPolicy cuando no hay lotes que evaluar.
	neutralComplianceScore = decimal.NewFromInt(100)
	// DefaultComplianceScore valor de la política por defecto (mismo default que COMPLIANCE_SCORE).
	DefaultComplianceScore = decimal.RequireFromString("87.5")
)

// DefaultPolicy política usada cuando no se inyecta ninguna: FixedPolicy con DefaultComplianceScore.
func DefaultPolicy() CompliancePolicy {
	return FixedPolicy{Value: DefaultComplianceScore}
}

// CompliancePolicy calcula el puntaje de cumplimiento regulatorio.
// La política real (ponderación regulatoria) es externa al motor; se inyecta.
type CompliancePolicy interface {
	Score(batches []entity.Batch, classes []Classification) decimal.Decimal
}

// FixedPolicy devuelve un puntaje constante configurado (ej. 87.5).
type FixedPolicy struct {
	Value decimal.Decimal
}

// Score ignora los lotes.
func (p FixedPolicy) Score(_ []entity.Batch, _ []Classification) decimal.Decimal {
	return p.Value
}

// RatioPolicy puntaje = 100 * lotes en estado compliant / total. Sin lotes → 100.
type RatioPolicy struct{}

// Score calcula la proporción de lotes sin acción regulatoria pendiente.
func (RatioPolicy) Score(_ []entity.Batch, classes []Classification) decimal.Decimal {
	if len(classes) == 0 {
		return neutralComplianceScore
	}
	compliant := 0
	for _, c := range classes {
		if c.ComplianceStatus == ComplianceCompliant {
			compliant++
		}
	}
	return decimal.NewFromInt(int64(compliant)).
		Div(decimal.NewFromInt(int64(len(classes)))).
		Mul(neutralComplianceScore).
		Round(2)
}

// ComplianceMetrics agregados del panel de cumplimiento.
// Expiring7Days y Expiring30Days son umbrales acumulativos: un lote a 5 días cuenta en ambos.
type ComplianceMetrics struct {
	Expiring7Days   int
	Expiring30Days  int
	ExpiredItems    int
	ComplianceScore decimal.Decimal
}

// Aggregate calcula los agregados de cumplimiento. policy nil usa DefaultPolicy.
func Aggregate(batches []entity.Batch, now time.Time, policy CompliancePolicy) (ComplianceMetrics, error) {
	if err := entity.ValidateBatches(batches); err != nil {
		return ComplianceMetrics{}, err
	}
	if policy == nil {
		policy = DefaultPolicy()
	}

	var m ComplianceMetrics
	classes := make([]Classification, 0, len(batches))
	for _, b := range batches {
		c := classify(b, now)
		classes = append(classes, c)
		if c.DaysUntilExpiry <= CriticalDays {
			m.Expiring7Days++
		}
		if c.DaysUntilExpiry <= WarningDays {
			m.Expiring30Days++
		}
		if b.ExpiryDate.Before(now) {
			m.ExpiredItems++
		}
	}
	m.ComplianceScore = policy.Score(batches, classes)
	return m, nil
}
