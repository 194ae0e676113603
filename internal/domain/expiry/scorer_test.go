package expiry_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-riesgo/internal/domain"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/expiry"
)

// ──────────────────────────────────────────────────────────────────────────────
// Ejemplo de referencia: 150 unidades × 2.50 a 5 días de vencer.
//
//	urgencia = 100 (<= 7 días)
//	valor    = 375 / 1000 × 10 = 3.75
//	stock    = 20 (> 100 unidades)
//	total    = 123.75
// ──────────────────────────────────────────────────────────────────────────────

func TestScore_EjemploDeReferencia(t *testing.T) {
	s, err := expiry.Score(newBatch("1", 5, 150, "2.50"), testNow)
	require.NoError(t, err)

	assert.True(t, s.Urgency.Equal(decimal.NewFromInt(100)), "urgencia: %s", s.Urgency)
	assert.True(t, s.Value.Equal(decimal.RequireFromString("3.75")), "valor: %s", s.Value)
	assert.True(t, s.Stock.Equal(decimal.NewFromInt(20)), "stock: %s", s.Stock)
	assert.True(t, s.Total.Equal(decimal.RequireFromString("123.75")), "total: %s", s.Total)
}

func TestScore_Componentes(t *testing.T) {
	// 20 días → 75; 100 unidades exactas → stock bajo (10)
	s, err := expiry.Score(newBatch("1", 20, 100, "10.00"), testNow)
	require.NoError(t, err)
	assert.True(t, s.Urgency.Equal(decimal.NewFromInt(75)))
	assert.True(t, s.Value.Equal(decimal.NewFromInt(10)))
	assert.True(t, s.Stock.Equal(decimal.NewFromInt(10)))
	assert.True(t, s.Total.Equal(decimal.NewFromInt(95)))

	// 60 días → 50
	s, err = expiry.Score(newBatch("2", 60, 0, "0"), testNow)
	require.NoError(t, err)
	assert.True(t, s.Total.Equal(decimal.NewFromInt(60)), "50 + 0 + 10")
}

// TestScore_MonotonoEnValorYStock: más valor o más stock nunca bajan el puntaje.
func TestScore_MonotonoEnValorYStock(t *testing.T) {
	base, err := expiry.Score(newBatch("1", 20, 50, "2.00"), testNow)
	require.NoError(t, err)

	masValor, err := expiry.Score(newBatch("1", 20, 50, "9.00"), testNow)
	require.NoError(t, err)
	assert.True(t, masValor.Total.GreaterThanOrEqual(base.Total))

	masStock, err := expiry.Score(newBatch("1", 20, 500, "2.00"), testNow)
	require.NoError(t, err)
	assert.True(t, masStock.Total.GreaterThanOrEqual(base.Total))
}

func TestRank_OrdenDescendenteYTopN(t *testing.T) {
	batches := []entity.Batch{
		newBatch("a", 60, 10, "1.00"),  // 50 + 0.1 + 10
		newBatch("b", 5, 150, "2.50"),  // 123.75
		newBatch("c", 20, 300, "1.25"), // 75 + 3.75 + 20
		newBatch("d", 3, 10, "1.00"),   // 100 + 0.1 + 10
	}

	items, err := expiry.Rank(batches, testNow, 3)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "b", items[0].Batch.ID)
	assert.Equal(t, "d", items[1].Batch.ID)
	assert.Equal(t, "c", items[2].Batch.ID)
	for i := 1; i < len(items); i++ {
		assert.True(t, items[i-1].Score.Total.GreaterThanOrEqual(items[i].Score.Total))
	}
}

func TestRank_MenosLotesQueN(t *testing.T) {
	items, err := expiry.Rank([]entity.Batch{newBatch("a", 5, 10, "1.00")}, testNow, 10)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestRank_NCeroUsaDefault(t *testing.T) {
	batches := make([]entity.Batch, 0, 15)
	for i := 0; i < 15; i++ {
		batches = append(batches, newBatch(string(rune('a'+i)), i+1, 10, "1.00"))
	}
	items, err := expiry.Rank(batches, testNow, 0)
	require.NoError(t, err)
	assert.Len(t, items, expiry.DefaultTopN)
}

// TestRank_EstableEnEmpates: lotes con el mismo puntaje conservan el orden de entrada.
func TestRank_EstableEnEmpates(t *testing.T) {
	batches := []entity.Batch{
		newBatch("x", 10, 20, "1.00"),
		newBatch("y", 12, 20, "1.00"),
		newBatch("z", 15, 20, "1.00"),
	}
	items, err := expiry.Rank(batches, testNow, 3)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"x", "y", "z"}, []string{items[0].Batch.ID, items[1].Batch.ID, items[2].Batch.ID})
}

func TestRank_Vacio(t *testing.T) {
	items, err := expiry.Rank(nil, testNow, 5)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRank_DuplicadoRechazado(t *testing.T) {
	batches := []entity.Batch{newBatch("a", 5, 10, "1.00"), newBatch("a", 6, 10, "1.00")}
	_, err := expiry.Rank(batches, testNow, 5)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSummarize_CriticosYValor(t *testing.T) {
	items, err := expiry.Rank([]entity.Batch{
		newBatch("a", 5, 150, "2.50"),
		newBatch("b", 15, 300, "1.25"),
		newBatch("c", 2, 10, "4.00"),
	}, testNow, 10)
	require.NoError(t, err)

	s := expiry.Summarize(items)
	assert.Equal(t, 2, s.CriticalItems)
	assert.True(t, s.TotalValue.Equal(decimal.NewFromInt(790)), "375 + 375 + 40 = %s", s.TotalValue)
}
