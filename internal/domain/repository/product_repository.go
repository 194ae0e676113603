package repository

import (
	"context"

	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
)

// ProductRepository define el puerto de lectura de SKUs con seguimiento de reorden (DIP).
// GetByID devuelve nil, nil si el producto no existe.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
