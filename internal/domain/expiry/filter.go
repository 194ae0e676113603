package expiry

import (
	"strings"
	"time"

	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
	"golang.org/x/text/cases"
)

// CategoryAll selecciona todas las categorías.
const CategoryAll = "all"

// Filter criterios de la tabla de vencimientos.
type Filter struct {
	Category    string // "" o "all" = todas
	BatchSearch string // subcadena del número de lote, sin distinguir mayúsculas
	WithinDays  int    // > 0: solo lotes con días hasta vencimiento <= WithinDays
}

// Apply devuelve los lotes que cumplen el filtro, en el orden de entrada.
func Apply(batches []entity.Batch, now time.Time, f Filter) ([]entity.Batch, error) {
	if err := entity.ValidateBatches(batches); err != nil {
		return nil, err
	}
	fold := cases.Fold()
	search := fold.String(strings.TrimSpace(f.BatchSearch))

	out := make([]entity.Batch, 0, len(batches))
	for _, b := range batches {
		if f.Category != "" && f.Category != CategoryAll && b.Category != f.Category {
			continue
		}
		if search != "" && !strings.Contains(fold.String(b.BatchNumber), search) {
			continue
		}
		if f.WithinDays > 0 && DaysUntil(b.ExpiryDate, now) > f.WithinDays {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// Categories devuelve las categorías distintas en orden de primera aparición.
func Categories(batches []entity.Batch) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, b := range batches {
		if b.Category == "" {
			continue
		}
		if _, ok := seen[b.Category]; ok {
			continue
		}
		seen[b.Category] = struct{}{}
		out = append(out, b.Category)
	}
	return out
}
