// Package snapshot implementa los puertos de lectura sobre un snapshot en memoria
// cargado desde JSON o YAML. El snapshot es inmutable durante la sesión.
package snapshot

import (
	"context"

	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/repository"
)

var (
	_ repository.BatchRepository    = (*Store)(nil)
	_ repository.ProductRepository  = (*Store)(nil)
	_ repository.SupplierRepository = (*Store)(nil)
)

// Store snapshot read-only de lotes, productos y proveedores. Seguro para lectura concurrente.
type Store struct {
	batches   []entity.Batch
	products  []entity.Product
	suppliers []entity.Supplier
	byID      map[string]int
}

// NewStore construye el store a partir de registros ya validados. Copia los slices.
func NewStore(batches []entity.Batch, products []entity.Product, suppliers []entity.Supplier) *Store {
	s := &Store{
		batches:   append([]entity.Batch(nil), batches...),
		products:  append([]entity.Product(nil), products...),
		suppliers: append([]entity.Supplier(nil), suppliers...),
		byID:      make(map[string]int, len(products)),
	}
	for i, p := range s.products {
		s.byID[p.ID] = i
	}
	return s
}

// ListBatches devuelve una copia de los lotes en orden de carga.
func (s *Store) ListBatches(ctx context.Context) ([]entity.Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]entity.Batch{}, s.batches...), nil
}

// ListProducts devuelve una copia de los productos en orden de carga.
func (s *Store) ListProducts(ctx context.Context) ([]entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]entity.Product{}, s.products...), nil
}

// GetByID obtiene un producto por ID. Devuelve nil, nil si no existe.
func (s *Store) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	p := s.products[i]
	return &p, nil
}

// ListSuppliers devuelve una copia de las fichas de proveedores en orden de carga.
func (s *Store) ListSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]entity.Supplier{}, s.suppliers...), nil
}
