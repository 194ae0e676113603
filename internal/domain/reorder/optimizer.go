// Package reorder implementa el ajuste del punto de reorden (ROP) por modo de optimización.
// El ROP optimizado base y el ahorro potencial son entradas precalculadas; aquí solo se
// aplica la corrección multiplicativa del modo elegido.
package reorder

import (
	"github.com/jhoicas/farmacia-riesgo/internal/domain"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Mode modo de optimización del tablero de cadena de suministro.
type Mode string

const (
	ModeBalanced     Mode = "balanced"
	ModeCost         Mode = "cost"
	ModeAvailability Mode = "availability"
)

// ParseMode valida el modo; vacío equivale a balanced.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeBalanced:
		return ModeBalanced, nil
	case ModeCost:
		return ModeCost, nil
	case ModeAvailability:
		return ModeAvailability, nil
	}
	return "", domain.NewValidationError("", "mode", "modo desconocido: "+s)
}

var (
	costROPFactor          = decimal.NewFromFloat(0.9)
	costSavingsFactor      = decimal.NewFromFloat(1.2)
	availabilityROPFactor  = decimal.NewFromFloat(1.15)
	availabilitySavingsFac = decimal.NewFromFloat(0.8)

	// maintainBand variación relativa máxima del ROP para recomendar Maintain.
	maintainBand = decimal.NewFromFloat(0.10)
	// warningStockFactor stock <= MinStock*1.5 se considera riesgo medio.
	warningStockFactor = decimal.NewFromFloat(1.5)
)

// Result recomendación de reorden para un producto en un modo dado.
type Result struct {
	Product          entity.Product
	Mode             Mode
	CurrentROP       int64
	OptimizedROP     int64
	PotentialSavings decimal.Decimal
	StockoutRisk     entity.StockoutRisk
	Recommendation   entity.Recommendation
}

// Optimize aplica el ajuste del modo sobre los valores base del producto.
// La recomendación se fija antes del ajuste y el modo no la modifica.
func Optimize(p entity.Product, mode Mode) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	mode, err := ParseMode(string(mode))
	if err != nil {
		return Result{}, err
	}

	rec := RecommendationFor(p)
	risk := RiskFor(p)

	rop := decimal.NewFromInt(p.BaseOptimizedROP)
	savings := p.BasePotentialSavings

	switch mode {
	case ModeCost:
		if rec == entity.RecommendDecrease || rec == entity.RecommendMaintain {
			rop = rop.Mul(costROPFactor).Round(0)
			savings = savings.Mul(costSavingsFactor).Round(0)
		}
	case ModeAvailability:
		if rec == entity.RecommendIncrease || risk != entity.RiskLow {
			rop = rop.Mul(availabilityROPFactor).Round(0)
			savings = savings.Mul(availabilitySavingsFac).Round(0)
		}
	}

	return Result{
		Product:          p,
		Mode:             mode,
		CurrentROP:       p.CurrentROP,
		OptimizedROP:     rop.IntPart(),
		PotentialSavings: savings,
		StockoutRisk:     risk,
		Recommendation:   rec,
	}, nil
}

// OptimizeAll optimiza la lista completa conservando el orden de entrada.
func OptimizeAll(products []entity.Product, mode Mode) ([]Result, error) {
	if err := entity.ValidateProducts(products); err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(products))
	for _, p := range products {
		r, err := Optimize(p, mode)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// RecommendationFor usa la etiqueta de entrada si existe; si no, compara el ROP base
// optimizado contra el actual con una banda de ±10% para Maintain.
func RecommendationFor(p entity.Product) entity.Recommendation {
	if p.Recommendation != "" {
		return p.Recommendation
	}
	cur := decimal.NewFromInt(p.CurrentROP)
	opt := decimal.NewFromInt(p.BaseOptimizedROP)
	if cur.IsZero() {
		if opt.IsPositive() {
			return entity.RecommendIncrease
		}
		return entity.RecommendMaintain
	}
	delta := opt.Sub(cur).Div(cur)
	switch {
	case delta.GreaterThan(maintainBand):
		return entity.RecommendIncrease
	case delta.LessThan(maintainBand.Neg()):
		return entity.RecommendDecrease
	default:
		return entity.RecommendMaintain
	}
}

// RiskFor usa la etiqueta de entrada si existe; si no, compara stock actual contra MinStock.
func RiskFor(p entity.Product) entity.StockoutRisk {
	if p.StockoutRisk != "" {
		return p.StockoutRisk
	}
	cur := decimal.NewFromInt(p.CurrentStock)
	minStock := decimal.NewFromInt(p.MinStock)
	switch {
	case cur.LessThanOrEqual(minStock):
		return entity.RiskHigh
	case cur.LessThanOrEqual(minStock.Mul(warningStockFactor)):
		return entity.RiskMedium
	default:
		return entity.RiskLow
	}
}
