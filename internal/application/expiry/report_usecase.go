// Package expiry contiene el caso de uso del tablero de Vencimientos y Cumplimiento.
package expiry

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/farmacia-riesgo/internal/application/dto"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
	domexpiry "github.com/jhoicas/farmacia-riesgo/internal/domain/expiry"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/repository"
)

// Options parámetros del reporte (normalmente desde config).
type Options struct {
	TopN        int                        // 0 = domexpiry.DefaultTopN
	MonthsAhead int                        // 0 = domexpiry.DefaultMonthsAhead
	Policy      domexpiry.CompliancePolicy // nil = domexpiry.DefaultPolicy()
}

// ReportUseCase genera el reporte de vencimientos: métricas de cumplimiento,
// panel de prioridades, línea de tiempo y tabla filtrada.
//
// Fuente de datos: BatchRepository (snapshot read-only de la sesión).
type ReportUseCase struct {
	batchRepo repository.BatchRepository
	opts      Options
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(batchRepo repository.BatchRepository, opts Options) *ReportUseCase {
	if opts.TopN <= 0 {
		opts.TopN = domexpiry.DefaultTopN
	}
	if opts.MonthsAhead <= 0 {
		opts.MonthsAhead = domexpiry.DefaultMonthsAhead
	}
	if opts.Policy == nil {
		opts.Policy = domexpiry.DefaultPolicy()
	}
	return &ReportUseCase{batchRepo: batchRepo, opts: opts}
}

// GetReport construye el ExpiryReportDTO para el instante now.
//
// Las métricas de cumplimiento se calculan sobre todos los lotes; prioridades,
// línea de tiempo y tabla sobre los lotes filtrados. Tres cálculos en paralelo:
//  1. Aggregate(todos)       → Compliance
//  2. Rank(filtrados, topN)  → Priorities
//  3. BucketByMonth(filtrados) → Timeline
func (uc *ReportUseCase) GetReport(
	ctx context.Context,
	now time.Time,
	filter dto.ExpiryFilterDTO,
) (*dto.ExpiryReportDTO, error) {
	batches, err := uc.batchRepo.ListBatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("expiry: listar lotes: %w", err)
	}
	if err := entity.ValidateBatches(batches); err != nil {
		return nil, fmt.Errorf("expiry: snapshot inválido: %w", err)
	}

	filtered, err := domexpiry.Apply(batches, now, domexpiry.Filter{
		Category:    filter.Category,
		BatchSearch: filter.BatchSearch,
		WithinDays:  filter.WithinDays,
	})
	if err != nil {
		return nil, fmt.Errorf("expiry: filtrar: %w", err)
	}

	// ── Goroutines para paralelizar los tres cálculos ─────────────────────────
	type complianceResult struct {
		m   domexpiry.ComplianceMetrics
		err error
	}
	type rankResult struct {
		items []domexpiry.PrioritizedBatch
		err   error
	}
	type timelineResult struct {
		buckets []domexpiry.MonthBucket
		err     error
	}

	complianceCh := make(chan complianceResult, 1)
	rankCh := make(chan rankResult, 1)
	timelineCh := make(chan timelineResult, 1)

	go func() {
		m, err := domexpiry.Aggregate(batches, now, uc.opts.Policy)
		complianceCh <- complianceResult{m, err}
	}()
	go func() {
		items, err := domexpiry.Rank(filtered, now, uc.opts.TopN)
		rankCh <- rankResult{items, err}
	}()
	go func() {
		buckets, err := domexpiry.BucketByMonth(filtered, uc.opts.MonthsAhead, now)
		timelineCh <- timelineResult{buckets, err}
	}()

	compliance := <-complianceCh
	ranked := <-rankCh
	timeline := <-timelineCh

	if compliance.err != nil {
		return nil, fmt.Errorf("expiry: cumplimiento: %w", compliance.err)
	}
	if ranked.err != nil {
		return nil, fmt.Errorf("expiry: prioridades: %w", ranked.err)
	}
	if timeline.err != nil {
		return nil, fmt.Errorf("expiry: línea de tiempo: %w", timeline.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	summary := domexpiry.Summarize(ranked.items)
	totals := domexpiry.Totals(timeline.buckets)

	return &dto.ExpiryReportDTO{
		GeneratedAt: now,
		Filter:      filter,
		Categories:  domexpiry.Categories(batches),
		Compliance: dto.ComplianceMetricsDTO{
			Expiring7Days:   compliance.m.Expiring7Days,
			Expiring30Days:  compliance.m.Expiring30Days,
			ExpiredItems:    compliance.m.ExpiredItems,
			ComplianceScore: compliance.m.ComplianceScore,
		},
		Priorities: buildPriorities(ranked.items),
		PrioritySummary: dto.PrioritySummaryDTO{
			CriticalItems: summary.CriticalItems,
			TotalValue:    summary.TotalValue,
		},
		Timeline: buildTimeline(timeline.buckets),
		TimelineTotals: dto.TimelineTotalsDTO{
			Items:         totals.Items,
			CriticalItems: totals.CriticalItems,
			TotalValue:    totals.TotalValue,
		},
		Batches: buildRows(filtered, now),
	}, nil
}

func buildPriorities(items []domexpiry.PrioritizedBatch) []dto.PriorityItemDTO {
	out := make([]dto.PriorityItemDTO, 0, len(items))
	for i, it := range items {
		out = append(out, dto.PriorityItemDTO{
			Rank:          i + 1,
			BatchRowDTO:   toRow(it.Batch, it.Classification),
			UrgencyScore:  it.Score.Urgency,
			ValueScore:    it.Score.Value,
			StockScore:    it.Score.Stock,
			PriorityScore: it.Score.Total,
		})
	}
	return out
}

func buildTimeline(buckets []domexpiry.MonthBucket) []dto.TimelineMonthDTO {
	out := make([]dto.TimelineMonthDTO, 0, len(buckets))
	for _, b := range buckets {
		ids := make([]string, 0, len(b.Batches))
		for _, bt := range b.Batches {
			ids = append(ids, bt.ID)
		}
		out = append(out, dto.TimelineMonthDTO{
			Year:          b.Year,
			Month:         int(b.Month),
			Label:         MonthLabel(b.Year, b.Month),
			Items:         b.Items,
			CriticalItems: b.CriticalItems,
			TotalValue:    b.TotalValue,
			Severity:      string(b.Severity),
			BatchIDs:      ids,
		})
	}
	return out
}

// buildRows filas de la tabla ordenadas por fecha de vencimiento ascendente (orden por defecto).
func buildRows(batches []entity.Batch, now time.Time) []dto.BatchRowDTO {
	rows := make([]dto.BatchRowDTO, 0, len(batches))
	for _, b := range batches {
		c, err := domexpiry.Classify(b, now)
		if err != nil {
			// ya validado por ValidateBatches
			continue
		}
		rows = append(rows, toRow(b, c))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ExpiryDate.Before(rows[j].ExpiryDate)
	})
	return rows
}

func toRow(b entity.Batch, c domexpiry.Classification) dto.BatchRowDTO {
	return dto.BatchRowDTO{
		BatchID:           b.ID,
		ProductName:       b.ProductName,
		BatchNumber:       b.BatchNumber,
		Category:          b.Category,
		Supplier:          b.Supplier,
		ExpiryDate:        b.ExpiryDate,
		PurchaseDate:      b.PurchaseDate,
		StockQuantity:     b.StockQuantity,
		UnitCost:          b.UnitCost,
		TotalValue:        b.TotalValue(),
		DaysUntilExpiry:   c.DaysUntilExpiry,
		UrgencyLevel:      string(c.UrgencyLevel),
		Status:            string(c.Status),
		RecommendedAction: string(c.RecommendedAction),
		DisposalRequired:  c.DisposalRequired,
		ComplianceStatus:  string(c.ComplianceStatus),
	}
}

// MonthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func MonthLabel(year int, month time.Month) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[month-1], year)
}
