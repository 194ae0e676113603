package inventory

import (
	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CategoryShare participación de una categoría en el inventario.
type CategoryShare struct {
	Category   string
	Count      int
	TotalValue decimal.Decimal
	Percentage decimal.Decimal // Count / total * 100, 1 decimal; 0 si no hay lotes
}

// Distribution agrupa los lotes por categoría, en orden de primera aparición.
func Distribution(batches []entity.Batch) ([]CategoryShare, error) {
	if err := entity.ValidateBatches(batches); err != nil {
		return nil, err
	}
	index := make(map[string]int)
	shares := []CategoryShare{}
	for _, b := range batches {
		i, ok := index[b.Category]
		if !ok {
			i = len(shares)
			index[b.Category] = i
			shares = append(shares, CategoryShare{Category: b.Category})
		}
		shares[i].Count++
		shares[i].TotalValue = shares[i].TotalValue.Add(b.TotalValue())
	}

	if len(batches) == 0 {
		return shares, nil
	}
	total := decimal.NewFromInt(int64(len(batches)))
	for i := range shares {
		shares[i].Percentage = decimal.NewFromInt(int64(shares[i].Count)).
			Div(total).
			Mul(hundred).
			Round(1)
	}
	return shares, nil
}
