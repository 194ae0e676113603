// Package pdf implementa la exportación del Reporte de Cumplimiento de vencimientos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Sesión     │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MÉTRICAS: 7 días | 30 días | Vencidos | Puntaje            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ACCIONES PRIORITARIAS: # | Producto | Lote | Días | Valor  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LÍNEA DE TIEMPO: Mes | Lotes | Críticos | Valor | Severidad│
//	│  ─────────────────────────────────────────────────────────  │
//	│  REORDEN: Producto | Proveedor | ROP | Riesgo | Ahorro      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de la sesión + leyenda                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/farmacia-riesgo/internal/application/dto"
	"github.com/jhoicas/farmacia-riesgo/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorError   = &props.Color{Red: 190, Green: 30, Blue: 45}
	colorWarning = &props.Color{Red: 200, Green: 120, Blue: 0}
)

var printer = message.NewPrinter(language.Spanish)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.ComplianceReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.ComplianceReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// GenerateComplianceReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateComplianceReport(ctx context.Context, report ports.ComplianceReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if report.Expiry == nil {
		return nil, fmt.Errorf("pdf: reporte de vencimientos requerido")
	}
	title := nonEmpty(report.Title, "Reporte de Cumplimiento de Vencimientos")

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(nonEmpty(g.author, "farmacia-riesgo"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(metricsRow(report.Expiry.Compliance))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow("ACCIONES PRIORITARIAS"))
	m.AddRows(priorityHeaderRow())
	m.AddRows(priorityRows(report.Expiry.Priorities)...)
	m.AddRows(prioritySummaryRow(report.Expiry.PrioritySummary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow("LÍNEA DE TIEMPO DE VENCIMIENTOS"))
	m.AddRows(timelineHeaderRow())
	m.AddRows(timelineRows(report.Expiry.Timeline)...)

	if report.Reorder != nil {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(sectionTitleRow(fmt.Sprintf("OPTIMIZACIÓN DE PUNTO DE REORDEN (modo %s)", report.Reorder.Mode)))
		m.AddRows(reorderHeaderRow())
		m.AddRows(reorderRows(report.Reorder.Items)...)
		m.AddRows(reorderSummaryRow(report.Reorder.Summary))

		if len(report.Reorder.Suppliers) > 0 {
			m.AddRows(sectionTitleRow("DESEMPEÑO DE PROVEEDORES"))
			m.AddRows(supplierHeaderRow())
			m.AddRows(supplierRows(report.Reorder.Suppliers)...)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(report)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + sesión (izq) y fecha de generación (der).
func headerRow(title string, report ports.ComplianceReport) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Sesión: "+nonEmpty(report.SessionID, "—"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("GENERADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
		),
	)
}

// metricsRow: tarjetas de cumplimiento (sobre todos los lotes).
func metricsRow(c dto.ComplianceMetricsDTO) core.Row {
	card := func(label, value string, color *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: color, Top: 6,
			}),
		)
	}
	return row.New(16).Add(
		card("Vencen en 7 días", printer.Sprintf("%d", c.Expiring7Days), colorError),
		card("Vencen en 30 días", printer.Sprintf("%d", c.Expiring30Days), colorWarning),
		card("Vencidos", printer.Sprintf("%d", c.ExpiredItems), colorError),
		card("Puntaje de cumplimiento", formatPercent(c.ComplianceScore), colorPrimary),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

func headerCol(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 7.5, Align: a,
		Color: colorPrimary, Top: 1, Left: 1, Right: 1,
	}))
}

func cellCol(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func priorityHeaderRow() core.Row {
	return row.New(6).Add(
		headerCol("#", 1, align.Center),
		headerCol("Producto", 4, align.Left),
		headerCol("Lote", 2, align.Left),
		headerCol("Días", 1, align.Center),
		headerCol("Valor", 2, align.Right),
		headerCol("Puntaje", 2, align.Right),
	)
}

func priorityRows(items []dto.PriorityItemDTO) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			cellCol(fmt.Sprintf("%d", it.Rank), 1, align.Center),
			cellCol(it.ProductName, 4, align.Left),
			cellCol(it.BatchNumber, 2, align.Left),
			cellCol(fmt.Sprintf("%d", it.DaysUntilExpiry), 1, align.Center),
			cellCol(formatMoney(it.TotalValue), 2, align.Right),
			cellCol(formatNumber(it.PriorityScore), 2, align.Right),
		))
	}
	return rows
}

func prioritySummaryRow(s dto.PrioritySummaryDTO) core.Row {
	return row.New(7).Add(
		col.New(6),
		col.New(6).Add(text.New(
			printer.Sprintf("Críticos: %d   |   Valor en riesgo: %s", s.CriticalItems, formatMoney(s.TotalValue)),
			props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2, Right: 1},
		)),
	)
}

func timelineHeaderRow() core.Row {
	return row.New(6).Add(
		headerCol("Mes", 4, align.Left),
		headerCol("Lotes", 2, align.Center),
		headerCol("Críticos", 2, align.Center),
		headerCol("Valor", 2, align.Right),
		headerCol("Severidad", 2, align.Center),
	)
}

func timelineRows(months []dto.TimelineMonthDTO) []core.Row {
	rows := make([]core.Row, 0, len(months))
	for _, mo := range months {
		rows = append(rows, row.New(6).Add(
			cellCol(mo.Label, 4, align.Left),
			cellCol(fmt.Sprintf("%d", mo.Items), 2, align.Center),
			cellCol(fmt.Sprintf("%d", mo.CriticalItems), 2, align.Center),
			cellCol(formatMoney(mo.TotalValue), 2, align.Right),
			cellCol(mo.Severity, 2, align.Center),
		))
	}
	return rows
}

func reorderHeaderRow() core.Row {
	return row.New(6).Add(
		headerCol("Producto", 3, align.Left),
		headerCol("Proveedor", 3, align.Left),
		headerCol("ROP", 1, align.Center),
		headerCol("Óptimo", 1, align.Center),
		headerCol("Riesgo", 1, align.Center),
		headerCol("Ahorro", 2, align.Right),
		headerCol("Acción", 1, align.Center),
	)
}

func reorderRows(items []dto.ReorderItemDTO) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			cellCol(it.Name, 3, align.Left),
			cellCol(it.Supplier, 3, align.Left),
			cellCol(fmt.Sprintf("%d", it.CurrentROP), 1, align.Center),
			cellCol(fmt.Sprintf("%d", it.OptimizedROP), 1, align.Center),
			cellCol(it.StockoutRisk, 1, align.Center),
			cellCol(formatMoney(it.PotentialSavings), 2, align.Right),
			cellCol(it.Recommendation, 1, align.Center),
		))
	}
	return rows
}

func reorderSummaryRow(s dto.ReorderSummaryDTO) core.Row {
	return row.New(7).Add(
		col.New(4),
		col.New(8).Add(text.New(
			printer.Sprintf("Ahorro total: %s   |   Cambios: %d de %d   |   Riesgo alto: %d",
				formatMoney(s.TotalSavings), s.ChangesNeeded, s.TotalProducts, s.HighRiskCount),
			props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2, Right: 1},
		)),
	)
}

func supplierHeaderRow() core.Row {
	return row.New(6).Add(
		headerCol("Proveedor", 4, align.Left),
		headerCol("Confiab.", 2, align.Center),
		headerCol("Costo", 2, align.Center),
		headerCol("Calidad", 2, align.Center),
		headerCol("Plazo (d)", 2, align.Center),
	)
}

func supplierRows(items []dto.SupplierPerformanceDTO) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			cellCol(it.Name, 4, align.Left),
			cellCol(fmt.Sprintf("%d (%s)", it.Reliability, it.ScoreBand), 2, align.Center),
			cellCol(fmt.Sprintf("%d", it.CostEfficiency), 2, align.Center),
			cellCol(fmt.Sprintf("%d", it.QualityScore), 2, align.Center),
			cellCol(it.LeadTimeDays.StringFixed(1), 2, align.Center),
		))
	}
	return rows
}

// footerRows: QR con el identificador de sesión + leyenda.
func footerRows(report ports.ComplianceReport) []core.Row {
	legend := "Reporte generado a partir del snapshot de inventario de la sesión. " +
		"Las acciones recomendadas requieren verificación del regente de farmacia."
	if report.SessionID == "" {
		return []core.Row{row.New(10).Add(col.New(12).Add(
			text.New(legend, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
		))}
	}
	return []core.Row{row.New(30).Add(
		col.New(3).Add(code.NewQr("sesion:"+report.SessionID, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Escanea el código QR para identificar la sesión del reporte.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New(legend, props.Text{Size: 6.5, Top: 14, Left: 3, Color: colorGray}),
		),
	)}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con separadores locales y 2 decimales. Ej: 12345.5 → "$12.345,50".
func formatMoney(d decimal.Decimal) string {
	return "$" + printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func formatNumber(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func formatPercent(d decimal.Decimal) string {
	return printer.Sprintf("%.1f%%", d.Round(1).InexactFloat64())
}
