// Package inventory contiene servicios de dominio del resumen de inventario:
// estado de stock por SKU, alertas de stock bajo y KPIs del tablero general.
package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/expiry"
	"github.com/shopspring/decimal"
)

// StockStatus estado del nivel de stock de un SKU.
type StockStatus string

const (
	StatusOutOfStock StockStatus = "out_of_stock"
	StatusLow        StockStatus = "low"     // stock <= MinStock
	StatusWarning    StockStatus = "warning" // stock <= MinStock * 1.5
	StatusHealthy    StockStatus = "healthy"
)

// AlertUrgency urgencia de una alerta de stock bajo.
type AlertUrgency string

const (
	UrgencyHigh   AlertUrgency = "high"
	UrgencyMedium AlertUrgency = "medium"
	UrgencyLow    AlertUrgency = "low"
)

// criticalStockPct porcentaje del mínimo por debajo del cual la alerta es high.
const criticalStockPct = 25

var (
	hundred            = decimal.NewFromInt(100)
	warningStockFactor = decimal.NewFromFloat(1.5)
)

// Status clasifica el nivel de stock: 0 → out_of_stock; <= Min → low; <= 1.5*Min → warning.
func Status(p entity.Product) StockStatus {
	cur := decimal.NewFromInt(p.CurrentStock)
	minStock := decimal.NewFromInt(p.MinStock)
	switch {
	case p.CurrentStock == 0:
		return StatusOutOfStock
	case cur.LessThanOrEqual(minStock):
		return StatusLow
	case cur.LessThanOrEqual(minStock.Mul(warningStockFactor)):
		return StatusWarning
	default:
		return StatusHealthy
	}
}

// Percentage devuelve round(current / min * 100). Con min = 0 devuelve 0.
func Percentage(current, minStock int64) int64 {
	if minStock <= 0 {
		return 0
	}
	return decimal.NewFromInt(current).
		Div(decimal.NewFromInt(minStock)).
		Mul(hundred).
		Round(0).
		IntPart()
}

// LowStockAlert SKU en o por debajo de su stock mínimo.
type LowStockAlert struct {
	ProductID    string
	Name         string
	Supplier     string
	CurrentStock int64
	MinStock     int64
	Percentage   int64
	Urgency      AlertUrgency
}

// LowStockAlerts lista los productos con stock <= MinStock (y MinStock > 0),
// ordenados por urgencia (high primero) y luego por porcentaje ascendente.
func LowStockAlerts(products []entity.Product) ([]LowStockAlert, error) {
	if err := entity.ValidateProducts(products); err != nil {
		return nil, err
	}
	alerts := []LowStockAlert{}
	for _, p := range products {
		if p.MinStock == 0 || p.CurrentStock > p.MinStock {
			continue
		}
		pct := Percentage(p.CurrentStock, p.MinStock)
		alerts = append(alerts, LowStockAlert{
			ProductID:    p.ID,
			Name:         p.Name,
			Supplier:     p.Supplier,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
			Percentage:   pct,
			Urgency:      urgencyFor(pct),
		})
	}
	rank := map[AlertUrgency]int{UrgencyHigh: 0, UrgencyMedium: 1, UrgencyLow: 2}
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Urgency != alerts[j].Urgency {
			return rank[alerts[i].Urgency] < rank[alerts[j].Urgency]
		}
		return alerts[i].Percentage < alerts[j].Percentage
	})
	return alerts, nil
}

// urgencyFor: <= 25% high; < 100% medium; exactamente en el mínimo low.
func urgencyFor(pct int64) AlertUrgency {
	switch {
	case pct <= criticalStockPct:
		return UrgencyHigh
	case pct < 100:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// KPIs tarjetas del tablero general de inventario.
type KPIs struct {
	TotalSKUs       int
	OutOfStock      int
	LowStock        int
	NearExpiry      int // lotes con <= 30 días (incluye vencidos)
	TotalValue      decimal.Decimal
	PendingReorders int // SKUs con stock <= ROP actual
}

// ComputeKPIs calcula los KPIs a partir de productos y lotes.
func ComputeKPIs(products []entity.Product, batches []entity.Batch, now time.Time) (KPIs, error) {
	if err := entity.ValidateProducts(products); err != nil {
		return KPIs{}, err
	}
	if err := entity.ValidateBatches(batches); err != nil {
		return KPIs{}, err
	}

	k := KPIs{TotalSKUs: len(products)}
	for _, p := range products {
		switch Status(p) {
		case StatusOutOfStock:
			k.OutOfStock++
		case StatusLow:
			k.LowStock++
		}
		if p.CurrentROP > 0 && p.CurrentStock <= p.CurrentROP {
			k.PendingReorders++
		}
	}
	for _, b := range batches {
		if expiry.DaysUntil(b.ExpiryDate, now) <= expiry.WarningDays {
			k.NearExpiry++
		}
		k.TotalValue = k.TotalValue.Add(b.TotalValue())
	}
	return k, nil
}
