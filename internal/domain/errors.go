package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrEmptySnapshot = errors.New("snapshot sin registros")
)

// ValidationError indica un registro mal formado; Field nombra el campo ofensor.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Field    string
	RecordID string // opcional: ID del lote o producto
	Reason   string
}

// NewValidationError construye el error para un campo y motivo.
func NewValidationError(recordID, field, reason string) *ValidationError {
	return &ValidationError{Field: field, RecordID: recordID, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.RecordID != "" {
		return fmt.Sprintf("validación: %s (registro %s): %s", e.Field, e.RecordID, e.Reason)
	}
	return fmt.Sprintf("validación: %s: %s", e.Field, e.Reason)
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
