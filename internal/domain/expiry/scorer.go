package expiry

import (
	"sort"
	"time"

	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DefaultTopN tamaño por defecto del panel de acciones prioritarias.
const DefaultTopN = 10

var (
	urgencyScoreCritical = decimal.NewFromInt(100)
	urgencyScoreWarning  = decimal.NewFromInt(75)
	urgencyScoreDefault  = decimal.NewFromInt(50)
	stockScoreHigh       = decimal.NewFromInt(20)
	stockScoreLow        = decimal.NewFromInt(10)
	valueScale           = decimal.NewFromInt(1000)
	valueWeight          = decimal.NewFromInt(10)
)

// highStockUnits por encima de este stock el lote suma el puntaje alto.
const highStockUnits = 100

// PriorityScore desglose del puntaje de prioridad de un lote.
type PriorityScore struct {
	Urgency decimal.Decimal
	Value   decimal.Decimal
	Stock   decimal.Decimal
	Total   decimal.Decimal
}

// PrioritizedBatch lote enriquecido con su clasificación y puntaje.
type PrioritizedBatch struct {
	Batch          entity.Batch
	Classification Classification
	Score          PriorityScore
}

// Score calcula el puntaje: urgencia + (valor/1000)*10 + stock.
func Score(b entity.Batch, now time.Time) (PriorityScore, error) {
	if err := b.Validate(); err != nil {
		return PriorityScore{}, err
	}
	return score(b, DaysUntil(b.ExpiryDate, now)), nil
}

func score(b entity.Batch, days int) PriorityScore {
	urgency := urgencyScoreDefault
	switch {
	case days <= CriticalDays:
		urgency = urgencyScoreCritical
	case days <= WarningDays:
		urgency = urgencyScoreWarning
	}
	value := b.TotalValue().Div(valueScale).Mul(valueWeight)
	stock := stockScoreLow
	if b.StockQuantity > highStockUnits {
		stock = stockScoreHigh
	}
	return PriorityScore{
		Urgency: urgency,
		Value:   value,
		Stock:   stock,
		Total:   urgency.Add(value).Add(stock),
	}
}

// Rank devuelve los n lotes de mayor puntaje en orden descendente.
// Empates conservan el orden de entrada (ordenamiento estable). n <= 0 usa DefaultTopN.
func Rank(batches []entity.Batch, now time.Time, n int) ([]PrioritizedBatch, error) {
	if err := entity.ValidateBatches(batches); err != nil {
		return nil, err
	}
	if n <= 0 {
		n = DefaultTopN
	}

	items := make([]PrioritizedBatch, 0, len(batches))
	for _, b := range batches {
		c := classify(b, now)
		items = append(items, PrioritizedBatch{
			Batch:          b,
			Classification: c,
			Score:          score(b, c.DaysUntilExpiry),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score.Total.GreaterThan(items[j].Score.Total)
	})

	if len(items) > n {
		items = items[:n]
	}
	return items, nil
}

// PrioritySummary pie del panel de prioridades.
type PrioritySummary struct {
	CriticalItems int
	TotalValue    decimal.Decimal
}

// Summarize cuenta los críticos y suma el valor de una lista ya rankeada.
func Summarize(items []PrioritizedBatch) PrioritySummary {
	var s PrioritySummary
	for _, it := range items {
		if it.Classification.UrgencyLevel == UrgencyCritical {
			s.CriticalItems++
		}
		s.TotalValue = s.TotalValue.Add(it.Batch.TotalValue())
	}
	return s
}
