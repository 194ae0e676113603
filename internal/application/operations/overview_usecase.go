package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/farmacia-riesgo/internal/application/dto"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/inventory"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/repository"
)

// OverviewUseCase tablero general: KPIs, tabla de stock, alertas de stock bajo,
// distribución por categoría y banner de alertas.
type OverviewUseCase struct {
	productRepo repository.ProductRepository
	batchRepo   repository.BatchRepository
	alerts      *AlertState
}

// NewOverviewUseCase construye el caso de uso. alerts puede ser nil (sin descartes).
func NewOverviewUseCase(
	productRepo repository.ProductRepository,
	batchRepo repository.BatchRepository,
	alerts *AlertState,
) *OverviewUseCase {
	return &OverviewUseCase{productRepo: productRepo, batchRepo: batchRepo, alerts: alerts}
}

// GetOverview construye el InventoryOverviewDTO para el instante now.
func (uc *OverviewUseCase) GetOverview(ctx context.Context, now time.Time) (*dto.InventoryOverviewDTO, error) {
	// ── Lectura en paralelo de productos y lotes ──────────────────────────────
	type productsResult struct {
		items []entity.Product
		err   error
	}
	type batchesResult struct {
		items []entity.Batch
		err   error
	}
	productsCh := make(chan productsResult, 1)
	batchesCh := make(chan batchesResult, 1)

	go func() {
		items, err := uc.productRepo.ListProducts(ctx)
		productsCh <- productsResult{items, err}
	}()
	go func() {
		items, err := uc.batchRepo.ListBatches(ctx)
		batchesCh <- batchesResult{items, err}
	}()

	pr := <-productsCh
	br := <-batchesCh
	if pr.err != nil {
		return nil, fmt.Errorf("overview: listar productos: %w", pr.err)
	}
	if br.err != nil {
		return nil, fmt.Errorf("overview: listar lotes: %w", br.err)
	}
	products, batches := pr.items, br.items

	kpis, err := inventory.ComputeKPIs(products, batches, now)
	if err != nil {
		return nil, fmt.Errorf("overview: kpis: %w", err)
	}
	lowStock, err := inventory.LowStockAlerts(products)
	if err != nil {
		return nil, fmt.Errorf("overview: stock bajo: %w", err)
	}
	shares, err := inventory.Distribution(batches)
	if err != nil {
		return nil, fmt.Errorf("overview: distribución: %w", err)
	}
	alerts, err := BuildAlerts(products, batches, now)
	if err != nil {
		return nil, fmt.Errorf("overview: alertas: %w", err)
	}
	if uc.alerts != nil {
		alerts = uc.alerts.Visible(alerts)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	out := &dto.InventoryOverviewDTO{
		GeneratedAt: now,
		KPIs: dto.InventoryKPIsDTO{
			TotalSKUs:       kpis.TotalSKUs,
			OutOfStock:      kpis.OutOfStock,
			LowStock:        kpis.LowStock,
			NearExpiry:      kpis.NearExpiry,
			TotalValue:      kpis.TotalValue,
			PendingReorders: kpis.PendingReorders,
		},
		Products:     make([]dto.ProductStockDTO, 0, len(products)),
		LowStock:     make([]dto.LowStockAlertDTO, 0, len(lowStock)),
		Distribution: make([]dto.CategoryShareDTO, 0, len(shares)),
		Alerts:       make([]dto.AlertDTO, 0, len(alerts)),
	}
	for _, p := range products {
		out.Products = append(out.Products, dto.ProductStockDTO{
			ProductID:    p.ID,
			Name:         p.Name,
			Category:     p.Category,
			Supplier:     p.Supplier,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
			MaxStock:     p.MaxStock,
			StockPct:     inventory.Percentage(p.CurrentStock, p.MinStock),
			Status:       string(inventory.Status(p)),
		})
	}
	for _, a := range lowStock {
		out.LowStock = append(out.LowStock, dto.LowStockAlertDTO{
			ProductID:    a.ProductID,
			Name:         a.Name,
			Supplier:     a.Supplier,
			CurrentStock: a.CurrentStock,
			MinStock:     a.MinStock,
			Percentage:   a.Percentage,
			Urgency:      string(a.Urgency),
		})
	}
	for _, s := range shares {
		out.Distribution = append(out.Distribution, dto.CategoryShareDTO{
			Category:   s.Category,
			Count:      s.Count,
			TotalValue: s.TotalValue,
			Percentage: s.Percentage,
		})
	}
	for _, a := range alerts {
		out.Alerts = append(out.Alerts, dto.AlertDTO{
			ID:        a.ID,
			Type:      a.Type,
			Title:     a.Title,
			Message:   a.Message,
			Priority:  a.Priority,
			Action:    a.Action,
			CreatedAt: a.CreatedAt,
		})
	}
	return out, nil
}
