package reorder_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-riesgo/internal/domain"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/reorder"
)

func product(id, name, supplier string, rop, opt int64, savings string, risk entity.StockoutRisk, rec entity.Recommendation) entity.Product {
	return entity.Product{
		ID:                   id,
		Name:                 name,
		Category:             "General",
		Supplier:             supplier,
		CurrentStock:         100,
		MinStock:             20,
		MaxStock:             400,
		CurrentROP:           rop,
		LeadTimeDays:         5,
		AnnualDemand:         1200,
		CostPerUnit:          decimal.RequireFromString("1.25"),
		HoldingCostRate:      decimal.RequireFromString("0.18"),
		BaseOptimizedROP:     opt,
		BasePotentialSavings: decimal.RequireFromString(savings),
		StockoutRisk:         risk,
		Recommendation:       rec,
	}
}

// catalog productos de ejemplo del tablero de cadena de suministro.
func catalog() []entity.Product {
	return []entity.Product{
		product("prod1", "Amoxicillin 500mg", "PharmaCorp Inc.", 50, 42, "980", entity.RiskLow, entity.RecommendDecrease),
		product("prod2", "Lisinopril 10mg", "MediSource Ltd.", 75, 90, "1250", entity.RiskHigh, entity.RecommendIncrease),
		product("prod3", "Albuterol Inhaler", "HealthDirect Supplies", 30, 45, "1850", entity.RiskMedium, entity.RecommendIncrease),
		product("prod4", "Metformin 850mg", "BioTech Pharmaceuticals", 100, 85, "1120", entity.RiskLow, entity.RecommendDecrease),
		product("prod5", "Omeprazole 20mg", "Global Pharma Distributors", 60, 55, "570", entity.RiskLow, entity.RecommendMaintain),
		product("prod6", "Ibuprofen 400mg", "MedEquip Solutions", 120, 100, "840", entity.RiskLow, entity.RecommendDecrease),
		product("prod7", "Fluticasone Nasal Spray", "PrecisionMed Supply Co.", 40, 60, "2100", entity.RiskHigh, entity.RecommendIncrease),
		product("prod8", "Atorvastatin 20mg", "Vital Healthcare Products", 80, 75, "630", entity.RiskLow, entity.RecommendMaintain),
	}
}

func byID(results []reorder.Result) map[string]reorder.Result {
	m := make(map[string]reorder.Result, len(results))
	for _, r := range results {
		m[r.Product.ID] = r
	}
	return m
}

func TestParseMode(t *testing.T) {
	m, err := reorder.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, reorder.ModeBalanced, m, "vacío equivale a balanced")

	m, err = reorder.ParseMode("availability")
	require.NoError(t, err)
	assert.Equal(t, reorder.ModeAvailability, m)

	_, err = reorder.ParseMode("aggressive")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// TestOptimize_BalancedIdentidad: el modo balanced devuelve los valores base sin cambios.
func TestOptimize_BalancedIdentidad(t *testing.T) {
	for _, p := range catalog() {
		r, err := reorder.Optimize(p, reorder.ModeBalanced)
		require.NoError(t, err)
		assert.Equal(t, p.BaseOptimizedROP, r.OptimizedROP, p.ID)
		assert.True(t, r.PotentialSavings.Equal(p.BasePotentialSavings), p.ID)
		assert.Equal(t, p.CurrentROP, r.CurrentROP)
		assert.Equal(t, p.Recommendation, r.Recommendation)
		assert.Equal(t, p.StockoutRisk, r.StockoutRisk)
	}
}

func TestOptimize_ModoCosto(t *testing.T) {
	results, err := reorder.OptimizeAll(catalog(), reorder.ModeCost)
	require.NoError(t, err)
	got := byID(results)

	// Decrease: 42 × 0.9 = 37.8 → 38; 980 × 1.2 = 1176
	assert.Equal(t, int64(38), got["prod1"].OptimizedROP)
	assert.Equal(t, "1176", got["prod1"].PotentialSavings.String())

	// Maintain: 55 × 0.9 = 49.5 → 50 (mitad lejos de cero); 570 × 1.2 = 684
	assert.Equal(t, int64(50), got["prod5"].OptimizedROP)
	assert.Equal(t, "684", got["prod5"].PotentialSavings.String())

	// Increase: sin ajuste
	assert.Equal(t, int64(90), got["prod2"].OptimizedROP)
	assert.Equal(t, "1250", got["prod2"].PotentialSavings.String())
}

func TestOptimize_ModoDisponibilidad(t *testing.T) {
	results, err := reorder.OptimizeAll(catalog(), reorder.ModeAvailability)
	require.NoError(t, err)
	got := byID(results)

	// Increase + High: 90 × 1.15 = 103.5 → 104; 1250 × 0.8 = 1000
	assert.Equal(t, int64(104), got["prod2"].OptimizedROP)
	assert.Equal(t, "1000", got["prod2"].PotentialSavings.String())

	// Increase + Medium: 45 × 1.15 = 51.75 → 52; 1850 × 0.8 = 1480
	assert.Equal(t, int64(52), got["prod3"].OptimizedROP)
	assert.Equal(t, "1480", got["prod3"].PotentialSavings.String())

	// Decrease + Low: sin ajuste
	assert.Equal(t, int64(42), got["prod1"].OptimizedROP)
	assert.Equal(t, "980", got["prod1"].PotentialSavings.String())
}

// TestOptimize_ModoNoCambiaRecomendacion: la etiqueta se fija antes del ajuste.
func TestOptimize_ModoNoCambiaRecomendacion(t *testing.T) {
	for _, mode := range []reorder.Mode{reorder.ModeBalanced, reorder.ModeCost, reorder.ModeAvailability} {
		results, err := reorder.OptimizeAll(catalog(), mode)
		require.NoError(t, err)
		for i, p := range catalog() {
			assert.Equal(t, p.Recommendation, results[i].Recommendation, "%s/%s", mode, p.ID)
			assert.Equal(t, mode, results[i].Mode)
		}
	}
}

func TestOptimize_ModoDesconocido(t *testing.T) {
	_, err := reorder.Optimize(catalog()[0], reorder.Mode("aggressive"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestOptimize_ProductoInvalido(t *testing.T) {
	p := catalog()[0]
	p.MinStock = 500 // > MaxStock
	_, err := reorder.Optimize(p, reorder.ModeBalanced)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "minStock", verr.Field)
}

func TestRecommendationFor_Derivada(t *testing.T) {
	p := product("x", "X", "S", 100, 0, "0", "", "")

	p.BaseOptimizedROP = 115
	assert.Equal(t, entity.RecommendIncrease, reorder.RecommendationFor(p))

	p.BaseOptimizedROP = 110
	assert.Equal(t, entity.RecommendMaintain, reorder.RecommendationFor(p), "banda ±10% inclusiva")

	p.BaseOptimizedROP = 105
	assert.Equal(t, entity.RecommendMaintain, reorder.RecommendationFor(p))

	p.BaseOptimizedROP = 85
	assert.Equal(t, entity.RecommendDecrease, reorder.RecommendationFor(p))

	p.CurrentROP, p.BaseOptimizedROP = 0, 5
	assert.Equal(t, entity.RecommendIncrease, reorder.RecommendationFor(p))
}

func TestRiskFor_Derivado(t *testing.T) {
	p := product("x", "X", "S", 10, 10, "0", "", "")
	p.MinStock = 10

	p.CurrentStock = 10
	assert.Equal(t, entity.RiskHigh, reorder.RiskFor(p))
	p.CurrentStock = 15
	assert.Equal(t, entity.RiskMedium, reorder.RiskFor(p))
	p.CurrentStock = 16
	assert.Equal(t, entity.RiskLow, reorder.RiskFor(p))

	p.StockoutRisk = entity.RiskHigh
	assert.Equal(t, entity.RiskHigh, reorder.RiskFor(p), "la etiqueta de entrada tiene prioridad")
}
