// Package reorder contiene el caso de uso del optimizador de punto de reorden
// del tablero de analítica de cadena de suministro.
package reorder

import (
	"context"
	"fmt"

	"github.com/jhoicas/farmacia-riesgo/internal/application/dto"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
	domreorder "github.com/jhoicas/farmacia-riesgo/internal/domain/reorder"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/repository"
)

// UseCase genera la tabla de optimización de ROP para el modo elegido
// y la ficha de desempeño de proveedores.
type UseCase struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewUseCase construye el caso de uso. supplierRepo nil omite la ficha de proveedores.
func NewUseCase(productRepo repository.ProductRepository, supplierRepo repository.SupplierRepository) *UseCase {
	return &UseCase{productRepo: productRepo, supplierRepo: supplierRepo}
}

// GetRecommendations aplica el modo de optimización, filtra por proveedores y ordena.
// Sin SortBy ordena por ahorro potencial descendente.
func (uc *UseCase) GetRecommendations(ctx context.Context, req dto.ReorderRequest) (*dto.ReorderReportDTO, error) {
	mode, err := domreorder.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	sortBy := domreorder.SortField(req.SortBy)
	desc := req.Desc
	if sortBy == "" {
		sortBy = domreorder.SortBySavings
		desc = true
	}
	supplierSortBy := domreorder.SupplierMetric(req.SupplierSortBy)
	supplierDesc := req.SupplierDesc
	if supplierSortBy == "" {
		supplierSortBy = domreorder.MetricReliability
		supplierDesc = true
	}

	products, err := uc.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("reorder: listar productos: %w", err)
	}

	// 1. Ajuste por modo (valida cada producto)
	results, err := domreorder.OptimizeAll(products, mode)
	if err != nil {
		return nil, fmt.Errorf("reorder: optimizar: %w", err)
	}

	// 2. Filtro por proveedor y orden de la tabla
	results = domreorder.FilterBySuppliers(results, req.Suppliers)
	if err := domreorder.Sort(results, sortBy, desc); err != nil {
		return nil, err
	}

	// 3. DTOs
	items := make([]dto.ReorderItemDTO, 0, len(results))
	for _, r := range results {
		p := r.Product
		items = append(items, dto.ReorderItemDTO{
			ProductID:        p.ID,
			Name:             p.Name,
			Category:         p.Category,
			Supplier:         p.Supplier,
			CurrentStock:     p.CurrentStock,
			CurrentROP:       r.CurrentROP,
			OptimizedROP:     r.OptimizedROP,
			LeadTimeDays:     p.LeadTimeDays,
			AnnualDemand:     p.AnnualDemand,
			CostPerUnit:      p.CostPerUnit,
			HoldingCostRate:  p.HoldingCostRate,
			StockoutRisk:     string(r.StockoutRisk),
			PotentialSavings: r.PotentialSavings,
			Recommendation:   string(r.Recommendation),
		})
	}

	// 4. Ficha de proveedores
	suppliers, err := uc.supplierPerformance(ctx, req.SupplierIDs, supplierSortBy, supplierDesc)
	if err != nil {
		return nil, err
	}

	s := domreorder.Summarize(results)
	return &dto.ReorderReportDTO{
		Mode:           string(mode),
		SortBy:         string(sortBy),
		Desc:           desc,
		Items:          items,
		SupplierSortBy: string(supplierSortBy),
		SupplierDesc:   supplierDesc,
		Suppliers:      suppliers,
		Summary: dto.ReorderSummaryDTO{
			TotalSavings:  s.TotalSavings,
			ChangesNeeded: s.ChangesNeeded,
			TotalProducts: s.TotalProducts,
			HighRiskCount: s.HighRiskCount,
		},
	}, nil
}

func (uc *UseCase) supplierPerformance(ctx context.Context, ids []string, by domreorder.SupplierMetric, desc bool) ([]dto.SupplierPerformanceDTO, error) {
	var suppliers []entity.Supplier
	if uc.supplierRepo != nil {
		var err error
		suppliers, err = uc.supplierRepo.ListSuppliers(ctx)
		if err != nil {
			return nil, fmt.Errorf("reorder: listar proveedores: %w", err)
		}
	}

	suppliers = domreorder.FilterSuppliersByID(suppliers, ids)
	if err := domreorder.SortSuppliers(suppliers, by, desc); err != nil {
		return nil, err
	}

	out := make([]dto.SupplierPerformanceDTO, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, dto.SupplierPerformanceDTO{
			ID:             s.ID,
			Name:           s.Name,
			Reliability:    s.Reliability,
			CostEfficiency: s.CostEfficiency,
			QualityScore:   s.QualityScore,
			LeadTimeDays:   s.LeadTimeDays,
			Trend:          string(s.Trend),
			ScoreBand:      string(domreorder.BandFor(s.Reliability)),
		})
	}
	return out, nil
}
