package expiry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-riesgo/internal/application/dto"
	appexpiry "github.com/jhoicas/farmacia-riesgo/internal/application/expiry"
	"github.com/jhoicas/farmacia-riesgo/internal/domain"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
	domexpiry "github.com/jhoicas/farmacia-riesgo/internal/domain/expiry"
)

var testNow = time.Date(2026, time.February, 10, 9, 30, 0, 0, time.UTC)

type fakeBatchRepo struct {
	batches []entity.Batch
	err     error
}

func (f *fakeBatchRepo) ListBatches(_ context.Context) ([]entity.Batch, error) {
	return f.batches, f.err
}

func batch(id, number, category string, days int, qty int64, cost string) entity.Batch {
	return entity.Batch{
		ID:            id,
		ProductName:   "Producto " + id,
		BatchNumber:   number,
		Category:      category,
		Supplier:      "PharmaCorp Ltd",
		ExpiryDate:    testNow.Add(time.Duration(days) * 24 * time.Hour),
		PurchaseDate:  time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC),
		StockQuantity: qty,
		UnitCost:      decimal.RequireFromString(cost),
	}
}

// fixture lotes de ejemplo del tablero de vencimientos (5, 15, 25, 45 y 60 días).
func fixture() []entity.Batch {
	return []entity.Batch{
		batch("4", "LIS2024004", "Cardiovascular", 45, 200, "3.75"),
		batch("1", "AMX2024001", "Antibiotics", 5, 150, "2.50"),
		batch("2", "IBU2024002", "Pain Relief", 15, 300, "1.25"),
		batch("3", "INS2024003", "Diabetes", 25, 50, "45.00"),
		batch("5", "MET2024005", "Diabetes", 60, 400, "1.80"),
	}
}

func TestGetReport_SinFiltro(t *testing.T) {
	uc := appexpiry.NewReportUseCase(&fakeBatchRepo{batches: fixture()}, appexpiry.Options{
		Policy: domexpiry.FixedPolicy{Value: decimal.RequireFromString("87.5")},
	})

	r, err := uc.GetReport(context.Background(), testNow, dto.ExpiryFilterDTO{Category: "all"})
	require.NoError(t, err)

	assert.Equal(t, testNow, r.GeneratedAt)
	assert.Equal(t, 1, r.Compliance.Expiring7Days)
	assert.Equal(t, 3, r.Compliance.Expiring30Days)
	assert.Equal(t, 0, r.Compliance.ExpiredItems)
	assert.Equal(t, "87.5", r.Compliance.ComplianceScore.String())

	require.Len(t, r.Priorities, 5)
	assert.Equal(t, 1, r.Priorities[0].Rank)
	assert.Equal(t, "AMX2024001", r.Priorities[0].BatchNumber)
	assert.Equal(t, "123.75", r.Priorities[0].PriorityScore.String())
	assert.Equal(t, "immediate_disposal", r.Priorities[0].RecommendedAction)
	assert.Equal(t, 1, r.PrioritySummary.CriticalItems)

	require.Len(t, r.Timeline, domexpiry.DefaultMonthsAhead)
	assert.Equal(t, "Febrero 2026", r.Timeline[0].Label)
	assert.Equal(t, []string{"1", "2"}, r.Timeline[0].BatchIDs)
	assert.Equal(t, 5, r.TimelineTotals.Items)

	// tabla ordenada por vencimiento ascendente
	require.Len(t, r.Batches, 5)
	for i := 1; i < len(r.Batches); i++ {
		assert.False(t, r.Batches[i].ExpiryDate.Before(r.Batches[i-1].ExpiryDate))
	}
	assert.Equal(t, []string{"Cardiovascular", "Antibiotics", "Pain Relief", "Diabetes"}, r.Categories)
}

// TestGetReport_CumplimientoIgnoraFiltro: las métricas usan todos los lotes; el resto, los filtrados.
func TestGetReport_CumplimientoIgnoraFiltro(t *testing.T) {
	uc := appexpiry.NewReportUseCase(&fakeBatchRepo{batches: fixture()}, appexpiry.Options{
		TopN:   2,
		Policy: domexpiry.RatioPolicy{},
	})

	r, err := uc.GetReport(context.Background(), testNow, dto.ExpiryFilterDTO{Category: "Diabetes"})
	require.NoError(t, err)

	assert.Equal(t, 3, r.Compliance.Expiring30Days, "sin filtro")
	assert.Equal(t, "40", r.Compliance.ComplianceScore.String(), "RatioPolicy: 2 de 5")

	require.Len(t, r.Priorities, 2)
	for _, p := range r.Priorities {
		assert.Equal(t, "Diabetes", p.Category)
	}
	require.Len(t, r.Batches, 2)
	assert.Equal(t, 2, r.TimelineTotals.Items)
}

func TestGetReport_VentanaDeDias(t *testing.T) {
	uc := appexpiry.NewReportUseCase(&fakeBatchRepo{batches: fixture()}, appexpiry.Options{})

	r, err := uc.GetReport(context.Background(), testNow, dto.ExpiryFilterDTO{WithinDays: 30})
	require.NoError(t, err)
	assert.Equal(t, "87.5", r.Compliance.ComplianceScore.String(), "política por defecto")
	require.Len(t, r.Batches, 3)
	assert.Equal(t, "AMX2024001", r.Batches[0].BatchNumber)
	assert.Equal(t, "INS2024003", r.Batches[2].BatchNumber)
}

func TestGetReport_SnapshotVacio(t *testing.T) {
	uc := appexpiry.NewReportUseCase(&fakeBatchRepo{}, appexpiry.Options{Policy: domexpiry.RatioPolicy{}})

	r, err := uc.GetReport(context.Background(), testNow, dto.ExpiryFilterDTO{})
	require.NoError(t, err)
	assert.Empty(t, r.Priorities)
	assert.Empty(t, r.Batches)
	assert.Equal(t, "100", r.Compliance.ComplianceScore.String())
}

func TestGetReport_LoteInvalido(t *testing.T) {
	batches := fixture()
	batches[2].UnitCost = decimal.NewFromInt(-1)
	uc := appexpiry.NewReportUseCase(&fakeBatchRepo{batches: batches}, appexpiry.Options{})

	_, err := uc.GetReport(context.Background(), testNow, dto.ExpiryFilterDTO{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestGetReport_ErrorDeRepositorio(t *testing.T) {
	boom := errors.New("boom")
	uc := appexpiry.NewReportUseCase(&fakeBatchRepo{err: boom}, appexpiry.Options{})

	_, err := uc.GetReport(context.Background(), testNow, dto.ExpiryFilterDTO{})
	assert.ErrorIs(t, err, boom)
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Enero 2027", appexpiry.MonthLabel(2027, time.January))
	assert.Equal(t, "Diciembre 2026", appexpiry.MonthLabel(2026, time.December))
}
