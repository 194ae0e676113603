package operations

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/farmacia-riesgo/pkg/logger"
)

// Session estado de una sesión del tablero: identificador, última recarga,
// alertas descartadas y bitácora de acciones. Vive solo en memoria.
type Session struct {
	ID        string
	StartedAt time.Time
	Alerts    *AlertState
	Actions   *ActionLog

	mu          sync.Mutex
	lastRefresh time.Time
}

// NewSession abre una sesión en el instante now.
func NewSession(log *logger.Logger, now time.Time, clock func() time.Time) *Session {
	id := uuid.New().String()
	return &Session{
		ID:          id,
		StartedAt:   now,
		Alerts:      NewAlertState(),
		Actions:     NewActionLog(log, id, clock),
		lastRefresh: now,
	}
}

// Refresh registra una recarga de datos. Los descartes se conservan.
func (s *Session) Refresh(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRefresh = now
}

// LastRefresh instante de la última recarga.
func (s *Session) LastRefresh() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRefresh
}
