package expiry_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/expiry"
)

func complianceFixture() []entity.Batch {
	return []entity.Batch{
		newBatch("vencido", -3, 10, "1.00"),
		newBatch("critico", 5, 150, "2.50"),
		newBatch("alerta", 20, 300, "1.25"),
		newBatch("ok", 45, 200, "3.75"),
	}
}

func TestAggregate_Contadores(t *testing.T) {
	m, err := expiry.Aggregate(complianceFixture(), testNow, expiry.RatioPolicy{})
	require.NoError(t, err)

	assert.Equal(t, 2, m.Expiring7Days, "vencido y crítico")
	assert.Equal(t, 3, m.Expiring30Days, "umbral acumulativo")
	assert.Equal(t, 1, m.ExpiredItems)
	assert.True(t, m.ComplianceScore.Equal(decimal.NewFromInt(25)), "1 de 4 conformes: %s", m.ComplianceScore)
}

// TestAggregate_SieteDiasSubconjuntoDeTreinta para cualquier instante del reloj.
func TestAggregate_SieteDiasSubconjuntoDeTreinta(t *testing.T) {
	batches := complianceFixture()
	for d := -10; d <= 60; d += 5 {
		now := testNow.AddDate(0, 0, d)
		m, err := expiry.Aggregate(batches, now, nil)
		require.NoError(t, err)
		assert.LessOrEqual(t, m.Expiring7Days, m.Expiring30Days, "desplazamiento %d días", d)
		assert.LessOrEqual(t, m.ExpiredItems, m.Expiring7Days, "desplazamiento %d días", d)
	}
}

func TestAggregate_PoliticaFija(t *testing.T) {
	policy := expiry.FixedPolicy{Value: decimal.RequireFromString("87.5")}
	m, err := expiry.Aggregate(complianceFixture(), testNow, policy)
	require.NoError(t, err)
	assert.Equal(t, "87.5", m.ComplianceScore.String())
}

func TestAggregate_Vacio(t *testing.T) {
	m, err := expiry.Aggregate(nil, testNow, expiry.RatioPolicy{})
	require.NoError(t, err)

	assert.Zero(t, m.Expiring7Days)
	assert.Zero(t, m.Expiring30Days)
	assert.Zero(t, m.ExpiredItems)
	assert.True(t, m.ComplianceScore.Equal(decimal.NewFromInt(100)), "sin lotes el puntaje es neutro")
}

// TestAggregate_PoliticaPorDefecto: sin política inyectada se usa el puntaje fijo configurable (87.5).
func TestAggregate_PoliticaPorDefecto(t *testing.T) {
	m, err := expiry.Aggregate(complianceFixture(), testNow, nil)
	require.NoError(t, err)
	assert.True(t, m.ComplianceScore.Equal(expiry.DefaultComplianceScore), m.ComplianceScore.String())
	assert.Equal(t, "87.5", m.ComplianceScore.String())

	empty, err := expiry.Aggregate(nil, testNow, nil)
	require.NoError(t, err)
	assert.Equal(t, "87.5", empty.ComplianceScore.String())
}

// TestAggregate_VenceExactamenteAhora: no cuenta como vencido (comparación estricta).
func TestAggregate_VenceExactamenteAhora(t *testing.T) {
	m, err := expiry.Aggregate([]entity.Batch{newBatch("a", 0, 10, "1.00")}, testNow, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.ExpiredItems)
	assert.Equal(t, 1, m.Expiring7Days)
}

func TestRatioPolicy_Redondeo(t *testing.T) {
	batches := []entity.Batch{
		newBatch("a", 45, 10, "1.00"),
		newBatch("b", 50, 10, "1.00"),
		newBatch("c", 5, 10, "1.00"),
	}
	m, err := expiry.Aggregate(batches, testNow, expiry.RatioPolicy{})
	require.NoError(t, err)
	assert.Equal(t, "66.67", m.ComplianceScore.StringFixed(2))
}
