package entity

import (
	"github.com/jhoicas/farmacia-riesgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SupplierTrend tendencia reciente del desempeño del proveedor.
type SupplierTrend string

const (
	TrendUp     SupplierTrend = "up"
	TrendStable SupplierTrend = "stable"
	TrendDown   SupplierTrend = "down"
)

// Supplier ficha de desempeño de un proveedor. Los puntajes van de 0 a 100;
// LeadTimeDays es el plazo medio de entrega (menor es mejor).
type Supplier struct {
	ID             string
	Name           string
	Reliability    int64
	CostEfficiency int64
	QualityScore   int64
	LeadTimeDays   decimal.Decimal
	Trend          SupplierTrend
}

// Validate rechaza puntajes fuera de 0..100, plazos negativos y tendencias desconocidas.
func (s Supplier) Validate() error {
	if s.ID == "" {
		return domain.NewValidationError("", "id", "requerido")
	}
	scores := []struct {
		field string
		value int64
	}{
		{"reliability", s.Reliability},
		{"costEfficiency", s.CostEfficiency},
		{"qualityScore", s.QualityScore},
	}
	for _, sc := range scores {
		if sc.value < 0 || sc.value > 100 {
			return domain.NewValidationError(s.ID, sc.field, "fuera de rango 0..100")
		}
	}
	if s.LeadTimeDays.IsNegative() {
		return domain.NewValidationError(s.ID, "leadTimeDays", "no puede ser negativo")
	}
	switch s.Trend {
	case "", TrendUp, TrendStable, TrendDown:
	default:
		return domain.NewValidationError(s.ID, "trend", "valor desconocido: "+string(s.Trend))
	}
	return nil
}

// ValidateSuppliers valida cada proveedor y la unicidad de ID.
func ValidateSuppliers(suppliers []Supplier) error {
	ids := make(map[string]struct{}, len(suppliers))
	for _, s := range suppliers {
		if err := s.Validate(); err != nil {
			return err
		}
		if _, ok := ids[s.ID]; ok {
			return domain.NewValidationError(s.ID, "id", "duplicado")
		}
		ids[s.ID] = struct{}{}
	}
	return nil
}
