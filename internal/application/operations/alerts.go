// Package operations contiene el tablero general de inventario y el estado
// operativo de la sesión: alertas, descartes y bitácora de acciones.
package operations

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/expiry"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/inventory"
)

// IDs deterministas: el mismo estado de inventario produce las mismas alertas.
const (
	alertIDStockPrefix = "stock-critical:"
	alertIDExpiry7d    = "expiry-7d"
	alertIDExpired     = "expired-items"
	alertIDAllClear    = "all-clear"
)

// BuildAlerts deriva las alertas del banner a partir del snapshot:
// stock crítico (urgencia high), lotes que vencen en 7 días y lotes vencidos.
// Sin ninguna condición devuelve una única alerta success.
func BuildAlerts(products []entity.Product, batches []entity.Batch, now time.Time) ([]entity.Alert, error) {
	lowStock, err := inventory.LowStockAlerts(products)
	if err != nil {
		return nil, err
	}
	if err := entity.ValidateBatches(batches); err != nil {
		return nil, err
	}

	alerts := []entity.Alert{}
	for _, ls := range lowStock {
		if ls.Urgency != inventory.UrgencyHigh {
			continue
		}
		alerts = append(alerts, entity.Alert{
			ID:        alertIDStockPrefix + ls.ProductID,
			Type:      entity.AlertTypeError,
			Title:     "Alerta de stock crítico",
			Message:   fmt.Sprintf("%s por debajo del umbral de seguridad (%d unidades restantes)", ls.Name, ls.CurrentStock),
			Priority:  entity.AlertPriorityHigh,
			Action:    "Pedir ahora",
			CreatedAt: now,
		})
	}

	var expiring, expired int
	// vencido con el mismo criterio que expiry.Aggregate; el resto de <= 7 días es aviso
	for _, b := range batches {
		switch {
		case b.ExpiryDate.Before(now):
			expired++
		case expiry.DaysUntil(b.ExpiryDate, now) <= expiry.CriticalDays:
			expiring++
		}
	}
	if expired > 0 {
		alerts = append(alerts, entity.Alert{
			ID:        alertIDExpired,
			Type:      entity.AlertTypeError,
			Title:     "Lotes vencidos",
			Message:   fmt.Sprintf("%d lotes vencidos requieren descarte", expired),
			Priority:  entity.AlertPriorityHigh,
			Action:    "Generar reporte de descarte",
			CreatedAt: now,
		})
	}
	if expiring > 0 {
		alerts = append(alerts, entity.Alert{
			ID:        alertIDExpiry7d,
			Type:      entity.AlertTypeWarning,
			Title:     "Aviso de vencimiento",
			Message:   fmt.Sprintf("%d lotes vencen en los próximos 7 días", expiring),
			Priority:  entity.AlertPriorityMedium,
			Action:    "Revisar lotes",
			CreatedAt: now,
		})
	}
	if len(alerts) == 0 {
		alerts = append(alerts, entity.Alert{
			ID:        alertIDAllClear,
			Type:      entity.AlertTypeSuccess,
			Title:     "Inventario en orden",
			Message:   "Sin alertas de stock ni de vencimiento",
			Priority:  entity.AlertPriorityLow,
			CreatedAt: now,
		})
	}

	rank := map[string]int{
		entity.AlertPriorityHigh:   0,
		entity.AlertPriorityMedium: 1,
		entity.AlertPriorityLow:    2,
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return rank[alerts[i].Priority] < rank[alerts[j].Priority]
	})
	return alerts, nil
}

// AlertState conjunto de alertas descartadas durante la sesión.
// No se persiste; lo posee quien construye el tablero.
type AlertState struct {
	mu        sync.Mutex
	dismissed map[string]struct{}
}

// NewAlertState crea un estado vacío.
func NewAlertState() *AlertState {
	return &AlertState{dismissed: make(map[string]struct{})}
}

// Dismiss marca una alerta como descartada. Idempotente.
func (s *AlertState) Dismiss(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissed[id] = struct{}{}
}

// IsDismissed indica si la alerta fue descartada.
func (s *AlertState) IsDismissed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.dismissed[id]
	return ok
}

// Visible filtra las alertas descartadas, conservando el orden.
func (s *AlertState) Visible(alerts []entity.Alert) []entity.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Alert, 0, len(alerts))
	for _, a := range alerts {
		if _, ok := s.dismissed[a.ID]; ok {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Reset vuelve a mostrar todas las alertas.
func (s *AlertState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissed = make(map[string]struct{})
}
