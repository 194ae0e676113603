package snapshot

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/farmacia-riesgo/internal/domain"
	"github.com/jhoicas/farmacia-riesgo/internal/domain/entity"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed default_snapshot.yaml
var defaultSnapshot []byte

// Format codificación del archivo de snapshot.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath deduce el formato por extensión (.json, .yaml, .yml).
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("snapshot: extensión no soportada: %q", filepath.Ext(path))
	}
}

// Load lee el snapshot desde path. Con path vacío usa el snapshot de ejemplo embebido.
// now resuelve las fechas relativas (expires_in_days) y la zona horaria de las fechas sin hora.
func Load(path string, now time.Time) (*Store, error) {
	if path == "" {
		return Decode(defaultSnapshot, FormatYAML, now)
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: leer %s: %w", path, err)
	}
	return Decode(data, format, now)
}

// Decode decodifica, convierte y valida un snapshot. Cualquier registro inválido rechaza el snapshot completo.
func Decode(data []byte, format Format, now time.Time) (*Store, error) {
	var f fileSnapshot
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("snapshot: json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("snapshot: yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("snapshot: formato desconocido: %q", format)
	}
	if f.Batches == nil && f.Products == nil && f.Suppliers == nil {
		return nil, domain.ErrEmptySnapshot
	}

	batches := make([]entity.Batch, 0, len(f.Batches))
	for _, r := range f.Batches {
		b, err := r.toEntity(now)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	if err := entity.ValidateBatches(batches); err != nil {
		return nil, err
	}

	products := make([]entity.Product, 0, len(f.Products))
	for _, r := range f.Products {
		products = append(products, r.toEntity())
	}
	if err := entity.ValidateProducts(products); err != nil {
		return nil, err
	}

	suppliers := make([]entity.Supplier, 0, len(f.Suppliers))
	for _, r := range f.Suppliers {
		suppliers = append(suppliers, r.toEntity())
	}
	if err := entity.ValidateSuppliers(suppliers); err != nil {
		return nil, err
	}
	return NewStore(batches, products, suppliers), nil
}

type fileSnapshot struct {
	Batches   []batchRecord    `json:"batches" yaml:"batches"`
	Products  []productRecord  `json:"products" yaml:"products"`
	Suppliers []supplierRecord `json:"suppliers" yaml:"suppliers"`
}

type batchRecord struct {
	ID            string `json:"id" yaml:"id"`
	ProductName   string `json:"product_name" yaml:"product_name"`
	BatchNumber   string `json:"batch_number" yaml:"batch_number"`
	Category      string `json:"category" yaml:"category"`
	Supplier      string `json:"supplier" yaml:"supplier"`
	ExpiryDate    string `json:"expiry_date,omitempty" yaml:"expiry_date,omitempty"`
	ExpiresInDays *int   `json:"expires_in_days,omitempty" yaml:"expires_in_days,omitempty"`
	PurchaseDate  string `json:"purchase_date" yaml:"purchase_date"`
	StockQuantity int64  `json:"stock_quantity" yaml:"stock_quantity"`
	UnitCost      amount `json:"unit_cost" yaml:"unit_cost"`
}

func (r batchRecord) toEntity(now time.Time) (entity.Batch, error) {
	var expiry time.Time
	switch {
	case r.ExpiryDate != "" && r.ExpiresInDays != nil:
		return entity.Batch{}, domain.NewValidationError(r.ID, "expiryDate", "expiry_date y expires_in_days son excluyentes")
	case r.ExpiresInDays != nil:
		// días de calendario; AddDate no desborda con plazos largos
		expiry = now.AddDate(0, 0, *r.ExpiresInDays)
	case r.ExpiryDate != "":
		t, err := parseDate(r.ExpiryDate, now.Location())
		if err != nil {
			return entity.Batch{}, domain.NewValidationError(r.ID, "expiryDate", err.Error())
		}
		expiry = t
	}

	var purchase time.Time
	if r.PurchaseDate != "" {
		t, err := parseDate(r.PurchaseDate, now.Location())
		if err != nil {
			return entity.Batch{}, domain.NewValidationError(r.ID, "purchaseDate", err.Error())
		}
		purchase = t
	}

	return entity.Batch{
		ID:            r.ID,
		ProductName:   r.ProductName,
		BatchNumber:   r.BatchNumber,
		Category:      r.Category,
		Supplier:      r.Supplier,
		ExpiryDate:    expiry,
		PurchaseDate:  purchase,
		StockQuantity: r.StockQuantity,
		UnitCost:      r.UnitCost.Decimal,
	}, nil
}

type productRecord struct {
	ID               string `json:"id" yaml:"id"`
	Name             string `json:"name" yaml:"name"`
	Category         string `json:"category" yaml:"category"`
	Supplier         string `json:"supplier" yaml:"supplier"`
	CurrentStock     int64  `json:"current_stock" yaml:"current_stock"`
	MinStock         int64  `json:"min_stock" yaml:"min_stock"`
	MaxStock         int64  `json:"max_stock" yaml:"max_stock"`
	CurrentROP       int64  `json:"current_rop" yaml:"current_rop"`
	OptimizedROP     int64  `json:"optimized_rop" yaml:"optimized_rop"`
	LeadTimeDays     int    `json:"lead_time_days" yaml:"lead_time_days"`
	AnnualDemand     int64  `json:"annual_demand" yaml:"annual_demand"`
	CostPerUnit      amount `json:"cost_per_unit" yaml:"cost_per_unit"`
	HoldingCostRate  amount `json:"holding_cost_rate" yaml:"holding_cost_rate"`
	StockoutRisk     string `json:"stockout_risk,omitempty" yaml:"stockout_risk,omitempty"`
	PotentialSavings amount `json:"potential_savings" yaml:"potential_savings"`
	Recommendation   string `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
}

func (r productRecord) toEntity() entity.Product {
	return entity.Product{
		ID:                   r.ID,
		Name:                 r.Name,
		Category:             r.Category,
		Supplier:             r.Supplier,
		CurrentStock:         r.CurrentStock,
		MinStock:             r.MinStock,
		MaxStock:             r.MaxStock,
		CurrentROP:           r.CurrentROP,
		LeadTimeDays:         r.LeadTimeDays,
		AnnualDemand:         r.AnnualDemand,
		CostPerUnit:          r.CostPerUnit.Decimal,
		HoldingCostRate:      r.HoldingCostRate.Decimal,
		BaseOptimizedROP:     r.OptimizedROP,
		BasePotentialSavings: r.PotentialSavings.Decimal,
		StockoutRisk:         entity.StockoutRisk(r.StockoutRisk),
		Recommendation:       entity.Recommendation(r.Recommendation),
	}
}

type supplierRecord struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Reliability    int64  `json:"reliability" yaml:"reliability"`
	CostEfficiency int64  `json:"cost_efficiency" yaml:"cost_efficiency"`
	QualityScore   int64  `json:"quality_score" yaml:"quality_score"`
	LeadTimeDays   amount `json:"lead_time_days" yaml:"lead_time_days"`
	Trend          string `json:"trend,omitempty" yaml:"trend,omitempty"`
}

func (r supplierRecord) toEntity() entity.Supplier {
	return entity.Supplier{
		ID:             r.ID,
		Name:           r.Name,
		Reliability:    r.Reliability,
		CostEfficiency: r.CostEfficiency,
		QualityScore:   r.QualityScore,
		LeadTimeDays:   r.LeadTimeDays.Decimal,
		Trend:          entity.SupplierTrend(r.Trend),
	}
}

// amount decimal que acepta número o cadena tanto en JSON como en YAML.
type amount struct {
	decimal.Decimal
}

func (a *amount) UnmarshalJSON(b []byte) error {
	return a.Decimal.UnmarshalJSON(b)
}

func (a *amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("línea %d: se esperaba un número", node.Line)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(node.Value))
	if err != nil {
		return fmt.Errorf("línea %d: número inválido %q", node.Line, node.Value)
	}
	a.Decimal = d
	return nil
}

// parseDate acepta RFC3339 o YYYY-MM-DD (medianoche en loc).
func parseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q", s)
	}
	return t, nil
}
