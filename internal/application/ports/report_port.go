package ports

import (
	"context"
	"time"

	"github.com/jhoicas/farmacia-riesgo/internal/application/dto"
)

// ComplianceReport datos de entrada del reporte de cumplimiento exportable.
type ComplianceReport struct {
	Title       string
	SessionID   string
	GeneratedAt time.Time
	Expiry      *dto.ExpiryReportDTO
	Reorder     *dto.ReorderReportDTO // opcional
}

// ComplianceReportGenerator define el puerto de salida para exportar el reporte
// de cumplimiento (PDF u otro formato). La aplicación solo conoce este contrato.
type ComplianceReportGenerator interface {
	GenerateComplianceReport(ctx context.Context, report ComplianceReport) ([]byte, error)
}
