package expiry

import (
	"time"

	"github.com/jhoicas/farmacia-riesgo/internal/domain"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DefaultMonthsAhead horizonte de la línea de tiempo del tablero.
const DefaultMonthsAhead = 12

// highSeverityItems más de esta cantidad de lotes en un mes sin críticos → severidad high.
const highSeverityItems = 5

// Severity severidad de un mes en la línea de tiempo.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// MonthBucket lotes que vencen en un mes calendario.
type MonthBucket struct {
	Year          int
	Month         time.Month
	Items         int
	CriticalItems int
	TotalValue    decimal.Decimal
	Severity      Severity
	Batches       []entity.Batch
}

// BucketByMonth agrupa los lotes por (mes, año) de vencimiento para monthsAhead meses
// consecutivos a partir del mes de now. Los meses se evalúan en la zona horaria de now.
// Lotes fuera de la ventana no aparecen; cada lote cae en un solo mes.
func BucketByMonth(batches []entity.Batch, monthsAhead int, now time.Time) ([]MonthBucket, error) {
	if monthsAhead < 0 {
		return nil, domain.NewValidationError("", "monthsAhead", "no puede ser negativo")
	}
	if err := entity.ValidateBatches(batches); err != nil {
		return nil, err
	}

	loc := now.Location()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	buckets := make([]MonthBucket, monthsAhead)
	for i := range buckets {
		m := start.AddDate(0, i, 0)
		buckets[i] = MonthBucket{Year: m.Year(), Month: m.Month(), Batches: []entity.Batch{}}
	}

	for _, b := range batches {
		exp := b.ExpiryDate.In(loc)
		idx := (exp.Year()-start.Year())*12 + int(exp.Month()-start.Month())
		if idx < 0 || idx >= monthsAhead {
			continue
		}
		c := classify(b, now)
		bk := &buckets[idx]
		bk.Items++
		if c.DaysUntilExpiry <= WarningDays || c.UrgencyLevel == UrgencyCritical {
			bk.CriticalItems++
		}
		bk.TotalValue = bk.TotalValue.Add(b.TotalValue())
		bk.Batches = append(bk.Batches, b)
	}

	for i := range buckets {
		buckets[i].Severity = severityFor(buckets[i].Items, buckets[i].CriticalItems)
	}
	return buckets, nil
}

func severityFor(items, critical int) Severity {
	switch {
	case critical > 0:
		return SeverityCritical
	case items > highSeverityItems:
		return SeverityHigh
	case items > 0:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// TimelineTotals resumen de la línea de tiempo (suma de todos los meses).
type TimelineTotals struct {
	Items         int
	CriticalItems int
	TotalValue    decimal.Decimal
}

// Totals suma los contadores de todos los meses.
func Totals(buckets []MonthBucket) TimelineTotals {
	var t TimelineTotals
	for _, b := range buckets {
		t.Items += b.Items
		t.CriticalItems += b.CriticalItems
		t.TotalValue = t.TotalValue.Add(b.TotalValue)
	}
	return t
}
