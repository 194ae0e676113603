package entity

import (
	"time"

	"github.com/jhoicas/farmacia-riesgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Batch representa un lote comprado de un producto farmacéutico, con su propia fecha de vencimiento.
// TotalValue no se almacena: se calcula siempre como StockQuantity * UnitCost.
type Batch struct {
	ID            string
	ProductName   string
	BatchNumber   string // único por producto
	Category      string
	Supplier      string
	ExpiryDate    time.Time
	PurchaseDate  time.Time
	StockQuantity int64
	UnitCost      decimal.Decimal
}

// TotalValue devuelve el valor del lote al momento de la lectura.
func (b Batch) TotalValue() decimal.Decimal {
	return decimal.NewFromInt(b.StockQuantity).Mul(b.UnitCost)
}

// Validate rechaza lotes mal formados sin corregirlos.
func (b Batch) Validate() error {
	switch {
	case b.ID == "":
		return domain.NewValidationError("", "id", "requerido")
	case b.BatchNumber == "":
		return domain.NewValidationError(b.ID, "batchNumber", "requerido")
	case b.ExpiryDate.IsZero():
		return domain.NewValidationError(b.ID, "expiryDate", "fecha requerida")
	case b.PurchaseDate.IsZero():
		return domain.NewValidationError(b.ID, "purchaseDate", "fecha requerida")
	case b.StockQuantity < 0:
		return domain.NewValidationError(b.ID, "stockQuantity", "no puede ser negativo")
	case b.UnitCost.IsNegative():
		return domain.NewValidationError(b.ID, "unitCost", "no puede ser negativo")
	}
	return nil
}

// ValidateBatches valida cada lote y la unicidad de ID y de (producto, número de lote).
func ValidateBatches(batches []Batch) error {
	ids := make(map[string]struct{}, len(batches))
	lots := make(map[[2]string]struct{}, len(batches))
	for _, b := range batches {
		if err := b.Validate(); err != nil {
			return err
		}
		if _, ok := ids[b.ID]; ok {
			return domain.NewValidationError(b.ID, "id", "duplicado")
		}
		ids[b.ID] = struct{}{}
		key := [2]string{b.ProductName, b.BatchNumber}
		if _, ok := lots[key]; ok {
			return domain.NewValidationError(b.ID, "batchNumber", "duplicado para el producto "+b.ProductName)
		}
		lots[key] = struct{}{}
	}
	return nil
}
