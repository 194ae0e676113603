package repository

import (
	"context"

	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
)

// BatchRepository define el puerto de lectura de lotes del snapshot de la sesión (DIP).
// Las implementaciones son read-only y devuelven una copia en orden de inserción.
type BatchRepository interface {
	ListBatches(ctx context.Context) ([]entity.Batch, error)
}
