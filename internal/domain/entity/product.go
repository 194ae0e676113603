package entity

import (
	"github.com/jhoicas/farmacia-riesgo/internal/domain"
	"github.com/shopspring/decimal"
)

// StockoutRisk probabilidad cualitativa de quiebre de stock antes de la reposición.
type StockoutRisk string

const (
	RiskLow    StockoutRisk = "Low"
	RiskMedium StockoutRisk = "Medium"
	RiskHigh   StockoutRisk = "High"
)

// Recommendation etiqueta de ajuste del punto de reorden.
type Recommendation string

const (
	RecommendIncrease Recommendation = "Increase"
	RecommendDecrease Recommendation = "Decrease"
	RecommendMaintain Recommendation = "Maintain"
)

// Product representa un SKU con seguimiento de reorden.
// BaseOptimizedROP y BasePotentialSavings son entradas precalculadas (experto o modelo estadístico);
// StockoutRisk y Recommendation son opcionales: vacíos = se derivan.
type Product struct {
	ID                   string
	Name                 string
	Category             string
	Supplier             string
	CurrentStock         int64
	MinStock             int64
	MaxStock             int64
	CurrentROP           int64
	LeadTimeDays         int
	AnnualDemand         int64
	CostPerUnit          decimal.Decimal
	HoldingCostRate      decimal.Decimal // fracción anual, ej. 0.18
	BaseOptimizedROP     int64
	BasePotentialSavings decimal.Decimal
	StockoutRisk         StockoutRisk
	Recommendation       Recommendation
}

// Validate rechaza productos mal formados (stock negativo, MinStock > MaxStock, etiquetas desconocidas).
func (p Product) Validate() error {
	switch {
	case p.ID == "":
		return domain.NewValidationError("", "id", "requerido")
	case p.CurrentStock < 0:
		return domain.NewValidationError(p.ID, "currentStock", "no puede ser negativo")
	case p.MinStock < 0:
		return domain.NewValidationError(p.ID, "minStock", "no puede ser negativo")
	case p.MinStock > p.MaxStock:
		return domain.NewValidationError(p.ID, "minStock", "mayor que maxStock")
	case p.CurrentROP < 0:
		return domain.NewValidationError(p.ID, "currentROP", "no puede ser negativo")
	case p.BaseOptimizedROP < 0:
		return domain.NewValidationError(p.ID, "optimizedROP", "no puede ser negativo")
	case p.LeadTimeDays < 0:
		return domain.NewValidationError(p.ID, "leadTimeDays", "no puede ser negativo")
	case p.AnnualDemand < 0:
		return domain.NewValidationError(p.ID, "annualDemand", "no puede ser negativo")
	case p.CostPerUnit.IsNegative():
		return domain.NewValidationError(p.ID, "costPerUnit", "no puede ser negativo")
	case p.HoldingCostRate.IsNegative():
		return domain.NewValidationError(p.ID, "holdingCostRate", "no puede ser negativo")
	case p.BasePotentialSavings.IsNegative():
		return domain.NewValidationError(p.ID, "potentialSavings", "no puede ser negativo")
	}
	switch p.StockoutRisk {
	case "", RiskLow, RiskMedium, RiskHigh:
	default:
		return domain.NewValidationError(p.ID, "stockoutRisk", "valor desconocido: "+string(p.StockoutRisk))
	}
	switch p.Recommendation {
	case "", RecommendIncrease, RecommendDecrease, RecommendMaintain:
	default:
		return domain.NewValidationError(p.ID, "recommendation", "valor desconocido: "+string(p.Recommendation))
	}
	return nil
}

// ValidateProducts valida cada producto y la unicidad de ID.
func ValidateProducts(products []Product) error {
	ids := make(map[string]struct{}, len(products))
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, ok := ids[p.ID]; ok {
			return domain.NewValidationError(p.ID, "id", "duplicado")
		}
		ids[p.ID] = struct{}{}
	}
	return nil
}
