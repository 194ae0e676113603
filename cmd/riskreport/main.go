package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-riesgo/internal/application/dto"
	appexpiry "github.com/jhoicas/farmacia-riesgo/internal/application/expiry"
	"github.com/jhoicas/farmacia-riesgo/internal/application/operations"
	appreorder "github.com/jhoicas/farmacia-riesgo/internal/application/reorder"
	domexpiry "github.com/jhoicas/farmacia-riesgo/internal/domain/expiry"
	infrapdf "github.com/jhoicas/farmacia-riesgo/internal/infrastructure/pdf"
	"github.com/jhoicas/farmacia-riesgo/internal/infrastructure/snapshot"
	"github.com/jhoicas/farmacia-riesgo/pkg/config"
	"github.com/jhoicas/farmacia-riesgo/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando reporte de riesgo")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	now, err := cfg.Report.NowOr(time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("instante del reporte")
	}

	store, err := snapshot.Load(cfg.Report.SnapshotPath, now)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Report.SnapshotPath).Msg("cargar snapshot")
	}

	session := operations.NewSession(log, now, nil)
	expiryUC := appexpiry.NewReportUseCase(store, appexpiry.Options{
		TopN:        cfg.Engine.TopN,
		MonthsAhead: cfg.Engine.MonthsAhead,
		Policy:      compliancePolicy(cfg.Compliance),
	})
	reorderUC := appreorder.NewUseCase(store, store)
	overviewUC := operations.NewOverviewUseCase(store, store, session.Alerts)

	filter := dto.ExpiryFilterDTO{
		Category:   cfg.Report.Category,
		WithinDays: cfg.Engine.ExpiryWindowDays,
	}
	reorderReq := dto.ReorderRequest{
		Mode:           cfg.Engine.OptimizationMode,
		SortBy:         cfg.Engine.SortBy,
		Desc:           true,
		Suppliers:      cfg.Report.Suppliers,
		SupplierIDs:    cfg.Report.SupplierIDs,
		SupplierSortBy: cfg.Engine.SupplierSortBy,
		SupplierDesc:   true,
	}

	// ── Tablero general ───────────────────────────────────────────────────────
	overview, err := overviewUC.GetOverview(ctx, now)
	if err != nil {
		log.Fatal().Err(err).Msg("tablero general")
	}
	log.Info().
		Int("total_skus", overview.KPIs.TotalSKUs).
		Int("out_of_stock", overview.KPIs.OutOfStock).
		Int("low_stock", overview.KPIs.LowStock).
		Int("near_expiry", overview.KPIs.NearExpiry).
		Str("total_value", overview.KPIs.TotalValue.StringFixed(2)).
		Int("pending_reorders", overview.KPIs.PendingReorders).
		Msg("kpis de inventario")
	for _, a := range overview.Alerts {
		log.Warn().
			Str("alert_id", a.ID).
			Str("type", a.Type).
			Str("priority", a.Priority).
			Msg(a.Title + ": " + a.Message)
	}

	// ── Vencimientos y cumplimiento ───────────────────────────────────────────
	report, err := expiryUC.GetReport(ctx, now, filter)
	if err != nil {
		log.Fatal().Err(err).Msg("reporte de vencimientos")
	}
	log.Info().
		Int("expiring_7_days", report.Compliance.Expiring7Days).
		Int("expiring_30_days", report.Compliance.Expiring30Days).
		Int("expired_items", report.Compliance.ExpiredItems).
		Str("compliance_score", report.Compliance.ComplianceScore.StringFixed(1)).
		Msg("métricas de cumplimiento")
	for _, p := range report.Priorities {
		log.Info().
			Int("rank", p.Rank).
			Str("product", p.ProductName).
			Str("batch", p.BatchNumber).
			Int("days", p.DaysUntilExpiry).
			Str("score", p.PriorityScore.StringFixed(2)).
			Str("action", p.RecommendedAction).
			Msg("acción prioritaria")
	}
	for _, m := range report.Timeline {
		if m.Items == 0 {
			continue
		}
		log.Debug().
			Str("month", m.Label).
			Int("items", m.Items).
			Int("critical", m.CriticalItems).
			Str("value", m.TotalValue.StringFixed(2)).
			Str("severity", m.Severity).
			Msg("línea de tiempo")
	}

	// ── Optimización de reorden ───────────────────────────────────────────────
	reorder, err := reorderUC.GetRecommendations(ctx, reorderReq)
	if err != nil {
		log.Fatal().Err(err).Msg("optimización de reorden")
	}
	for _, it := range reorder.Items {
		log.Info().
			Str("product", it.Name).
			Str("supplier", it.Supplier).
			Int64("current_rop", it.CurrentROP).
			Int64("optimized_rop", it.OptimizedROP).
			Str("risk", it.StockoutRisk).
			Str("savings", it.PotentialSavings.StringFixed(0)).
			Str("recommendation", it.Recommendation).
			Msg("recomendación de reorden")
	}
	log.Info().
		Str("mode", reorder.Mode).
		Str("total_savings", reorder.Summary.TotalSavings.StringFixed(0)).
		Int("changes_needed", reorder.Summary.ChangesNeeded).
		Int("high_risk", reorder.Summary.HighRiskCount).
		Msg("resumen de reorden")
	for _, sp := range reorder.Suppliers {
		log.Info().
			Str("supplier", sp.Name).
			Int64("reliability", sp.Reliability).
			Int64("cost_efficiency", sp.CostEfficiency).
			Int64("quality_score", sp.QualityScore).
			Str("lead_time_days", sp.LeadTimeDays.StringFixed(1)).
			Str("trend", sp.Trend).
			Str("band", sp.ScoreBand).
			Msg("desempeño de proveedor")
	}

	// ── Exportación PDF (opcional) ────────────────────────────────────────────
	if cfg.Report.PDFPath != "" {
		exportUC := operations.NewExportUseCase(
			expiryUC, reorderUC, infrapdf.NewMarotoPDFGenerator(cfg.App.Name), session, "",
		)
		data, filename, err := exportUC.Export(ctx, now, filter, reorderReq)
		if err != nil {
			log.Fatal().Err(err).Msg("exportar reporte")
		}
		if err := os.WriteFile(cfg.Report.PDFPath, data, 0o644); err != nil {
			log.Fatal().Err(err).Str("path", cfg.Report.PDFPath).Msg("escribir PDF")
		}
		log.Info().
			Str("path", cfg.Report.PDFPath).
			Str("filename", filename).
			Int("bytes", len(data)).
			Msg("reporte PDF generado")
	}

	log.Info().
		Str("session_id", session.ID).
		Int("actions", len(session.Actions.Records())).
		Msg("reporte finalizado")
}

// compliancePolicy traduce la configuración a la política del puntaje de cumplimiento.
func compliancePolicy(cfg config.ComplianceConfig) domexpiry.CompliancePolicy {
	if cfg.Policy == "ratio" {
		return domexpiry.RatioPolicy{}
	}
	return domexpiry.FixedPolicy{Value: decimal.NewFromFloat(cfg.Score)}
}
