package reorder

import (
	"sort"
	"strings"

	"github.com/jhoicas/farmacia-riesgo/internal/domain"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// SortField criterio de ordenamiento de la tabla de optimización.
type SortField string

const (
	SortBySavings SortField = "savings"
	SortByRisk    SortField = "risk"
	SortByName    SortField = "name"
)

var riskWeight = map[entity.StockoutRisk]int{
	entity.RiskLow:    1,
	entity.RiskMedium: 2,
	entity.RiskHigh:   3,
}

// FilterBySuppliers conserva los resultados cuyo proveedor contiene alguno de los términos
// (sin distinguir mayúsculas). Sin términos devuelve la lista tal cual.
func FilterBySuppliers(results []Result, suppliers []string) []Result {
	fold := cases.Fold()
	terms := make([]string, 0, len(suppliers))
	for _, s := range suppliers {
		if s = strings.TrimSpace(s); s != "" {
			terms = append(terms, fold.String(s))
		}
	}
	if len(terms) == 0 {
		return results
	}

	out := make([]Result, 0, len(results))
	for _, r := range results {
		supplier := fold.String(r.Product.Supplier)
		for _, t := range terms {
			if strings.Contains(supplier, t) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Sort ordena en sitio (estable) por ahorro, riesgo o nombre.
func Sort(results []Result, by SortField, desc bool) error {
	var cmp func(a, b Result) int
	switch by {
	case "", SortBySavings:
		cmp = func(a, b Result) int { return a.PotentialSavings.Cmp(b.PotentialSavings) }
	case SortByRisk:
		cmp = func(a, b Result) int { return riskWeight[a.StockoutRisk] - riskWeight[b.StockoutRisk] }
	case SortByName:
		cmp = func(a, b Result) int { return strings.Compare(a.Product.Name, b.Product.Name) }
	default:
		return domain.NewValidationError("", "sortBy", "criterio desconocido: "+string(by))
	}
	sort.SliceStable(results, func(i, j int) bool {
		c := cmp(results[i], results[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
	return nil
}

// Summary tarjetas resumen de la tabla de optimización.
type Summary struct {
	TotalSavings  decimal.Decimal
	ChangesNeeded int // productos con recomendación distinta de Maintain
	TotalProducts int
	HighRiskCount int
}

// Summarize calcula los totales de la lista.
func Summarize(results []Result) Summary {
	s := Summary{TotalProducts: len(results)}
	for _, r := range results {
		s.TotalSavings = s.TotalSavings.Add(r.PotentialSavings)
		if r.Recommendation != entity.RecommendMaintain {
			s.ChangesNeeded++
		}
		if r.StockoutRisk == entity.RiskHigh {
			s.HighRiskCount++
		}
	}
	return s
}
