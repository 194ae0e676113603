package repository

import (
	"context"

	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
)

// SupplierRepository puerto de lectura de las fichas de desempeño de proveedores.
type SupplierRepository interface {
	ListSuppliers(ctx context.Context) ([]entity.Supplier, error)
}
