package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	Log        LogConfig
	Engine     EngineConfig
	Compliance ComplianceConfig
	Report     ReportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nivel del logger: trace, debug, info, warn, error.
type LogConfig struct {
	Level string
}

// EngineConfig parámetros del motor de riesgo y reorden.
type EngineConfig struct {
	TopN             int    // tamaño del panel de prioridades
	MonthsAhead      int    // horizonte de la línea de tiempo
	ExpiryWindowDays int    // filtro de la tabla de vencimientos (30, 60, 90)
	OptimizationMode string // balanced, cost, availability
	SortBy           string // savings, risk, name
	SupplierSortBy   string // reliability, cost_efficiency, quality_score, lead_time
}

// ComplianceConfig política del puntaje de cumplimiento.
// Policy "fixed" usa Score; "ratio" lo calcula como proporción de lotes conformes.
type ComplianceConfig struct {
	Policy string
	Score  float64
}

// ReportConfig entrada/salida de la sesión de reporte.
type ReportConfig struct {
	SnapshotPath string   // vacío = datos de ejemplo embebidos
	PDFPath      string   // vacío = no exportar
	Now          string   // RFC3339 o YYYY-MM-DD; vacío = reloj al iniciar
	Suppliers    []string // filtro de proveedores para la tabla de reorden
	SupplierIDs  []string // proveedores de la ficha de desempeño; vacío = todos
	Category     string   // filtro de categoría de la tabla de vencimientos
}

// NowOr devuelve el instante configurado o fallback si no hay uno.
func (c ReportConfig) NowOr(fallback time.Time) (time.Time, error) {
	if c.Now == "" {
		return fallback, nil
	}
	if t, err := time.Parse(time.RFC3339, c.Now); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", c.Now, fallback.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("REPORT_NOW inválido: %w", err)
	}
	return t, nil
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, ENGINE_TOP_N, COMPLIANCE_POLICY, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "farmacia-riesgo"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Engine: EngineConfig{
			TopN:             getInt(v, "ENGINE_TOP_N", 10),
			MonthsAhead:      getInt(v, "ENGINE_MONTHS_AHEAD", 12),
			ExpiryWindowDays: getInt(v, "ENGINE_EXPIRY_WINDOW_DAYS", 30),
			OptimizationMode: getString(v, "ENGINE_OPTIMIZATION_MODE", "balanced"),
			SortBy:           getString(v, "ENGINE_SORT_BY", "savings"),
			SupplierSortBy:   getString(v, "ENGINE_SUPPLIER_SORT_BY", "reliability"),
		},
		Compliance: ComplianceConfig{
			Policy: getString(v, "COMPLIANCE_POLICY", "fixed"),
			Score:  getFloat(v, "COMPLIANCE_SCORE", 87.5),
		},
		Report: ReportConfig{
			SnapshotPath: getString(v, "SNAPSHOT_PATH", ""),
			PDFPath:      getString(v, "REPORT_PDF_PATH", ""),
			Now:          getString(v, "REPORT_NOW", ""),
			Suppliers:    getList(v, "REPORT_SUPPLIERS"),
			SupplierIDs:  getList(v, "REPORT_SUPPLIER_IDS"),
			Category:     getString(v, "REPORT_CATEGORY", "all"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Engine.TopN < 0 {
		return fmt.Errorf("config: ENGINE_TOP_N no puede ser negativo")
	}
	if c.Engine.MonthsAhead < 0 {
		return fmt.Errorf("config: ENGINE_MONTHS_AHEAD no puede ser negativo")
	}
	switch c.Engine.SupplierSortBy {
	case "reliability", "cost_efficiency", "quality_score", "lead_time":
	default:
		return fmt.Errorf("config: ENGINE_SUPPLIER_SORT_BY desconocido: %q", c.Engine.SupplierSortBy)
	}
	switch c.Compliance.Policy {
	case "fixed", "ratio":
	default:
		return fmt.Errorf("config: COMPLIANCE_POLICY desconocida: %q", c.Compliance.Policy)
	}
	if c.Compliance.Score < 0 || c.Compliance.Score > 100 {
		return fmt.Errorf("config: COMPLIANCE_SCORE fuera de rango [0,100]: %v", c.Compliance.Score)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}

// getList separa por comas; ignora elementos vacíos.
func getList(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}
	var out []string
	for _, s := range strings.Split(v.GetString(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
