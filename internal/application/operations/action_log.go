package operations

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/farmacia-riesgo/internal/domain"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
	"github.com/jhoicas/farmacia-riesgo/pkg/logger"
)

// Acciones que operan sobre un único lote o producto y exigen TargetID.
var singleTargetActions = map[string]bool{
	entity.ActionDispose:     true,
	entity.ActionReturn:      true,
	entity.ActionReorder:     true,
	entity.ActionViewDetails: true,
}

// Acciones masivas; TargetID vacío.
var bulkActions = map[string]bool{
	entity.ActionBulkDispose:    true,
	entity.ActionDisposalReport: true,
	entity.ActionNotifySupplier: true,
}

// ActionLog bitácora en memoria de las acciones solicitadas en la sesión.
// Las acciones se registran y se emiten al log; el snapshot no se modifica.
type ActionLog struct {
	mu        sync.Mutex
	log       *logger.Logger
	sessionID string
	clock     func() time.Time
	records   []entity.ActionRecord
}

// NewActionLog crea la bitácora de una sesión. clock nil usa time.Now.
func NewActionLog(log *logger.Logger, sessionID string, clock func() time.Time) *ActionLog {
	if log == nil {
		log = logger.Nop()
	}
	if clock == nil {
		clock = time.Now
	}
	return &ActionLog{
		log:       log.WithComponent("action_log"),
		sessionID: sessionID,
		clock:     clock,
	}
}

// Record valida y registra una acción. Asigna ID, SessionID y CreatedAt.
func (l *ActionLog) Record(ctx context.Context, rec entity.ActionRecord) (*entity.ActionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec.Type = strings.TrimSpace(rec.Type)
	switch {
	case singleTargetActions[rec.Type]:
		if strings.TrimSpace(rec.TargetID) == "" {
			return nil, domain.NewValidationError("", "targetId", "requerido para la acción "+rec.Type)
		}
	case bulkActions[rec.Type]:
	default:
		return nil, domain.NewValidationError(rec.TargetID, "type", "acción desconocida: "+rec.Type)
	}
	if rec.Quantity < 0 {
		return nil, domain.NewValidationError(rec.TargetID, "quantity", "no puede ser negativa")
	}

	rec.ID = uuid.New().String()
	rec.SessionID = l.sessionID
	rec.CreatedAt = l.clock()

	l.mu.Lock()
	l.records = append(l.records, rec)
	l.mu.Unlock()

	l.log.Info().
		Str("action_id", rec.ID).
		Str("session_id", rec.SessionID).
		Str("type", rec.Type).
		Str("target_id", rec.TargetID).
		Str("batch_number", rec.BatchNumber).
		Int64("quantity", rec.Quantity).
		Int("items", rec.Items).
		Msg("acción registrada")
	return &rec, nil
}

// Records devuelve una copia de las acciones registradas, en orden de llegada.
func (l *ActionLog) Records() []entity.ActionRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]entity.ActionRecord, len(l.records))
	copy(out, l.records)
	return out
}
