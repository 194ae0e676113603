package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/farmacia-riesgo/internal/application/dto"
	"github.com/jhoicas/farmacia-riesgo/internal/application/expiry"
	"github.com/jhoicas/farmacia-riesgo/internal/application/ports"
	"github.com/jhoicas/farmacia-riesgo/internal/application/reorder"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
)

// ExportUseCase genera el reporte de cumplimiento exportable y registra la acción en la bitácora.
type ExportUseCase struct {
	expiryUC  *expiry.ReportUseCase
	reorderUC *reorder.UseCase
	generator ports.ComplianceReportGenerator
	session   *Session
	title     string
}

// NewExportUseCase construye el caso de uso inyectando sus dependencias.
// reorderUC puede ser nil: el reporte omite la tabla de reorden.
func NewExportUseCase(
	expiryUC *expiry.ReportUseCase,
	reorderUC *reorder.UseCase,
	generator ports.ComplianceReportGenerator,
	session *Session,
	title string,
) *ExportUseCase {
	return &ExportUseCase{
		expiryUC:  expiryUC,
		reorderUC: reorderUC,
		generator: generator,
		session:   session,
		title:     title,
	}
}

// Export construye el reporte para now y devuelve los bytes y un nombre de archivo sugerido.
func (uc *ExportUseCase) Export(
	ctx context.Context,
	now time.Time,
	filter dto.ExpiryFilterDTO,
	req dto.ReorderRequest,
) (data []byte, filename string, err error) {
	// ── 1. Reporte de vencimientos ────────────────────────────────────────────
	exp, err := uc.expiryUC.GetReport(ctx, now, filter)
	if err != nil {
		return nil, "", fmt.Errorf("export: %w", err)
	}

	// ── 2. Tabla de reorden (opcional) ────────────────────────────────────────
	var reo *dto.ReorderReportDTO
	if uc.reorderUC != nil {
		reo, err = uc.reorderUC.GetRecommendations(ctx, req)
		if err != nil {
			return nil, "", fmt.Errorf("export: %w", err)
		}
	}

	report := ports.ComplianceReport{
		Title:       uc.title,
		GeneratedAt: now,
		Expiry:      exp,
		Reorder:     reo,
	}
	if uc.session != nil {
		report.SessionID = uc.session.ID
	}

	// ── 3. Generar documento ──────────────────────────────────────────────────
	data, err = uc.generator.GenerateComplianceReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("export: generar: %w", err)
	}

	if uc.session != nil {
		if _, err := uc.session.Actions.Record(ctx, entity.ActionRecord{
			Type:  entity.ActionDisposalReport,
			Items: len(exp.Batches),
			Note:  "reporte de cumplimiento exportado",
		}); err != nil {
			return nil, "", fmt.Errorf("export: bitácora: %w", err)
		}
	}

	filename = fmt.Sprintf("reporte-cumplimiento-%s.pdf", now.Format("2006-01-02"))
	return data, filename, nil
}
