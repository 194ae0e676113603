package reorder

import (
	"sort"

	"github.com/jhoicas/farmacia-riesgo/internal/domain"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
)

// SupplierMetric columna de la ficha de desempeño de proveedores.
type SupplierMetric string

const (
	MetricReliability    SupplierMetric = "reliability"
	MetricCostEfficiency SupplierMetric = "cost_efficiency"
	MetricQualityScore   SupplierMetric = "quality_score"
	MetricLeadTime       SupplierMetric = "lead_time"
)

// ScoreBand banda de color de un puntaje 0..100.
type ScoreBand string

const (
	BandExcellent ScoreBand = "excellent" // >= 90
	BandGood      ScoreBand = "good"      // >= 80
	BandFair      ScoreBand = "fair"      // >= 70
	BandPoor      ScoreBand = "poor"
)

// BandFor clasifica un puntaje en su banda.
func BandFor(score int64) ScoreBand {
	switch {
	case score >= 90:
		return BandExcellent
	case score >= 80:
		return BandGood
	case score >= 70:
		return BandFair
	default:
		return BandPoor
	}
}

// FilterSuppliersByID conserva los proveedores seleccionados. Sin IDs devuelve la lista tal cual.
func FilterSuppliersByID(suppliers []entity.Supplier, ids []string) []entity.Supplier {
	if len(ids) == 0 {
		return suppliers
	}
	selected := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		selected[id] = struct{}{}
	}
	out := make([]entity.Supplier, 0, len(ids))
	for _, s := range suppliers {
		if _, ok := selected[s.ID]; ok {
			out = append(out, s)
		}
	}
	return out
}

// SortSuppliers ordena en sitio (estable). desc pone primero al mejor proveedor:
// el puntaje más alto, o el plazo de entrega más corto en MetricLeadTime.
// Sin métrica ordena por confiabilidad.
func SortSuppliers(suppliers []entity.Supplier, by SupplierMetric, desc bool) error {
	var better func(a, b entity.Supplier) int
	switch by {
	case "", MetricReliability:
		better = func(a, b entity.Supplier) int { return cmpInt64(a.Reliability, b.Reliability) }
	case MetricCostEfficiency:
		better = func(a, b entity.Supplier) int { return cmpInt64(a.CostEfficiency, b.CostEfficiency) }
	case MetricQualityScore:
		better = func(a, b entity.Supplier) int { return cmpInt64(a.QualityScore, b.QualityScore) }
	case MetricLeadTime:
		// plazo invertido: menor es mejor
		better = func(a, b entity.Supplier) int { return b.LeadTimeDays.Cmp(a.LeadTimeDays) }
	default:
		return domain.NewValidationError("", "supplierSortBy", "métrica desconocida: "+string(by))
	}
	sort.SliceStable(suppliers, func(i, j int) bool {
		c := better(suppliers[i], suppliers[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
	return nil
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
