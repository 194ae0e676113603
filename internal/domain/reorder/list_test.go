package reorder_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-riesgo/internal/domain"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/reorder"
)

func names(results []reorder.Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Product.ID)
	}
	return out
}

func TestFilterBySuppliers_CoincidenciaParcial(t *testing.T) {
	results, err := reorder.OptimizeAll(catalog(), reorder.ModeBalanced)
	require.NoError(t, err)

	out := reorder.FilterBySuppliers(results, []string{"PHARMA"})
	assert.Equal(t, []string{"prod1", "prod4", "prod5"}, names(out))

	out = reorder.FilterBySuppliers(results, []string{"medisource", "vital"})
	assert.Equal(t, []string{"prod2", "prod8"}, names(out))
}

func TestFilterBySuppliers_SinTerminos(t *testing.T) {
	results, err := reorder.OptimizeAll(catalog(), reorder.ModeBalanced)
	require.NoError(t, err)

	assert.Len(t, reorder.FilterBySuppliers(results, nil), 8)
	assert.Len(t, reorder.FilterBySuppliers(results, []string{" ", ""}), 8)
}

func TestSort_PorAhorroDescendente(t *testing.T) {
	results, err := reorder.OptimizeAll(catalog(), reorder.ModeBalanced)
	require.NoError(t, err)

	require.NoError(t, reorder.Sort(results, reorder.SortBySavings, true))
	assert.Equal(t, []string{"prod7", "prod3", "prod2", "prod4", "prod1", "prod6", "prod8", "prod5"}, names(results))
}

func TestSort_PorRiesgoEstable(t *testing.T) {
	results, err := reorder.OptimizeAll(catalog(), reorder.ModeBalanced)
	require.NoError(t, err)

	require.NoError(t, reorder.Sort(results, reorder.SortByRisk, true))
	// High en orden de entrada, luego Medium, luego Low en orden de entrada
	assert.Equal(t, []string{"prod2", "prod7", "prod3", "prod1", "prod4", "prod5", "prod6", "prod8"}, names(results))
}

func TestSort_PorNombreAscendente(t *testing.T) {
	results, err := reorder.OptimizeAll(catalog(), reorder.ModeBalanced)
	require.NoError(t, err)

	require.NoError(t, reorder.Sort(results, reorder.SortByName, false))
	assert.Equal(t, "Albuterol Inhaler", results[0].Product.Name)
	assert.Equal(t, "Omeprazole 20mg", results[len(results)-1].Product.Name)
}

func TestSort_CriterioDesconocido(t *testing.T) {
	results, err := reorder.OptimizeAll(catalog(), reorder.ModeBalanced)
	require.NoError(t, err)

	err = reorder.Sort(results, reorder.SortField("lead_time"), false)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSummarize(t *testing.T) {
	results, err := reorder.OptimizeAll(catalog(), reorder.ModeBalanced)
	require.NoError(t, err)

	s := reorder.Summarize(results)
	assert.Equal(t, "9340", s.TotalSavings.String())
	assert.Equal(t, 6, s.ChangesNeeded)
	assert.Equal(t, 8, s.TotalProducts)
	assert.Equal(t, 2, s.HighRiskCount)
}
