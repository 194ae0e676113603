package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-riesgo/internal/application/dto"
	appexpiry "github.com/jhoicas/farmacia-riesgo/internal/application/expiry"
	"github.com/jhoicas/farmacia-riesgo/internal/application/ports"
	appreorder "github.com/jhoicas/farmacia-riesgo/internal/application/reorder"
	"github.com/jhoicas/farmacia-riesgo/internal/infrastructure/pdf"
	"github.com/jhoicas/farmacia-riesgo/internal/infrastructure/snapshot"
)

var testNow = time.Date(2026, time.February, 10, 9, 30, 0, 0, time.UTC)

func complianceReport(t *testing.T, withReorder bool) ports.ComplianceReport {
	t.Helper()
	store, err := snapshot.Load("", testNow)
	require.NoError(t, err)

	exp, err := appexpiry.NewReportUseCase(store, appexpiry.Options{}).
		GetReport(context.Background(), testNow, dto.ExpiryFilterDTO{})
	require.NoError(t, err)

	r := ports.ComplianceReport{
		Title:       "Reporte de Cumplimiento",
		SessionID:   "4c1f0f5e-2d0b-4a53-9f38-6f1d3c8e9a10",
		GeneratedAt: testNow,
		Expiry:      exp,
	}
	if withReorder {
		r.Reorder, err = appreorder.NewUseCase(store, store).GetRecommendations(context.Background(), dto.ReorderRequest{})
		require.NoError(t, err)
	}
	return r
}

func TestGenerateComplianceReport_Completo(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("Farmacia Central")

	data, err := g.GenerateComplianceReport(context.Background(), complianceReport(t, true))
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "cabecera PDF")
}

func TestGenerateComplianceReport_SinFichaDeProveedores(t *testing.T) {
	r := complianceReport(t, true)
	require.Len(t, r.Reorder.Suppliers, 8)
	r.Reorder.Suppliers = nil

	data, err := pdf.NewMarotoPDFGenerator("").GenerateComplianceReport(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestGenerateComplianceReport_SinReordenNiSesion(t *testing.T) {
	r := complianceReport(t, false)
	r.SessionID = ""
	r.Title = ""

	data, err := pdf.NewMarotoPDFGenerator("").GenerateComplianceReport(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestGenerateComplianceReport_SinVencimientos(t *testing.T) {
	_, err := pdf.NewMarotoPDFGenerator("").GenerateComplianceReport(context.Background(), ports.ComplianceReport{})
	assert.Error(t, err)
}

func TestGenerateComplianceReport_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pdf.NewMarotoPDFGenerator("").GenerateComplianceReport(ctx, complianceReport(t, false))
	assert.ErrorIs(t, err, context.Canceled)
}
