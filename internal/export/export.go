//-------------------------------------------------------------------------
//
// Supply Chain Warehouse Builder
//
// Copyright (c) 2025 - 2026, Chainsight Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package export reads the warehouse and writes flat files for the external
// BI tool: the fact table enriched with late-delivery predictions, the
// three dimension tables, and a static what-if scenario lookup.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/chainsight/supplydw/internal/warehouse"
)

// Exported file names expected by the BI workspace.
const (
	FactFile      = "Fact_Shipments.csv"
	CustomersFile = "Dim_Customers.csv"
	ProductsFile  = "Dim_Products.csv"
	LocationFile  = "Dim_Location.csv"
	ScenariosFile = "Param_Scenarios.csv"
)

// factRecord is one fact row joined with the location and product
// attributes the risk model trains on. The join attributes are not written
// to the fact export; they live in the dimension files.
type factRecord struct {
	OrderID          int
	OrderItemID      int
	CustomerID       int
	ProductCardID    int
	LocationID       *int
	OrderDate        time.Time
	ShippingDate     time.Time
	ShippingMode     string
	DaysScheduled    int
	DaysReal         int
	DeliveryStatus   string
	OrderStatus      string
	BenefitPerOrder  float64
	SalesAmount      float64
	OrderQuantity    int
	LateDeliveryRisk int

	Market   *string
	Category *string
}

// Exporter produces the BI flat files from a populated warehouse.
type Exporter struct {
	pool   *pgxpool.Pool
	outDir string
	logger zerolog.Logger
}

// New builds an Exporter writing into outDir.
func New(pool *pgxpool.Pool, outDir string, logger zerolog.Logger) *Exporter {
	return &Exporter{pool: pool, outDir: outDir, logger: logger}
}

// Run reads the warehouse, trains the risk model, and writes all five flat
// files.
func (e *Exporter) Run(ctx context.Context) error {
	if err := os.MkdirAll(e.outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	facts, err := e.fetchFacts(ctx)
	if err != nil {
		return err
	}
	e.logger.Info().Int("rows", len(facts)).Msg("Loaded fact table for export")

	model := TrainRiskModel(trainingSamples(facts))

	if err := e.writeFacts(facts, model); err != nil {
		return err
	}

	dims := []struct{ table, file string }{
		{warehouse.TableCustomers, CustomersFile},
		{warehouse.TableProducts, ProductsFile},
		{warehouse.TableLocation, LocationFile},
	}
	for _, d := range dims {
		if err := e.writeDimension(ctx, d.table, d.file); err != nil {
			return err
		}
	}

	if err := e.writeScenarios(); err != nil {
		return err
	}

	e.logger.Info().Str("dir", e.outDir).Msg("Export complete")
	return nil
}

func (e *Exporter) fetchFacts(ctx context.Context) ([]factRecord, error) {
	rows, err := e.pool.Query(ctx, `
        SELECT
            f.order_id, f.order_item_id, f.customer_id, f.product_card_id,
            f.location_id, f.order_date, f.shipping_date, f.shipping_mode,
            f.days_scheduled, f.days_real, f.delivery_status, f.order_status,
            f.benefit_per_order, f.sales_amount, f.order_quantity,
            f.late_delivery_risk,
            d.market, p.category_name
        FROM fact_orders f
        LEFT JOIN dim_location d ON f.location_id = d.location_id
        LEFT JOIN dim_products p ON f.product_card_id = p.product_card_id
        ORDER BY f.order_id, f.order_item_id
    `)
	if err != nil {
		return nil, fmt.Errorf("fact export query: %w", err)
	}
	defer rows.Close()

	var out []factRecord
	for rows.Next() {
		var r factRecord
		if err := rows.Scan(
			&r.OrderID, &r.OrderItemID, &r.CustomerID, &r.ProductCardID,
			&r.LocationID, &r.OrderDate, &r.ShippingDate, &r.ShippingMode,
			&r.DaysScheduled, &r.DaysReal, &r.DeliveryStatus, &r.OrderStatus,
			&r.BenefitPerOrder, &r.SalesAmount, &r.OrderQuantity,
			&r.LateDeliveryRisk,
			&r.Market, &r.Category,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func trainingSamples(facts []factRecord) []RiskSample {
	samples := make([]RiskSample, len(facts))
	for i, f := range facts {
		samples[i] = sampleOf(f)
	}
	return samples
}

func sampleOf(f factRecord) RiskSample {
	s := RiskSample{
		ShippingMode:  f.ShippingMode,
		DaysScheduled: f.DaysScheduled,
		Market:        "Unknown",
		Category:      "Unknown",
		Late:          f.LateDeliveryRisk == 1,
	}
	if f.Market != nil {
		s.Market = *f.Market
	}
	if f.Category != nil {
		s.Category = *f.Category
	}
	return s
}

func (e *Exporter) writeFacts(facts []factRecord, model *RiskModel) error {
	header := []string{
		"order_id", "order_item_id", "customer_id", "product_card_id",
		"location_id", "order_date", "shipping_date", "shipping_mode",
		"days_scheduled", "days_real", "delivery_status", "order_status",
		"benefit_per_order", "sales_amount", "order_quantity",
		"late_delivery_risk", "predicted_late_delivery", "prediction_confidence",
	}

	records := make([][]string, 0, len(facts))
	for _, f := range facts {
		pred, conf := model.Predict(sampleOf(f))

		loc := ""
		if f.LocationID != nil {
			loc = strconv.Itoa(*f.LocationID)
		}
		records = append(records, []string{
			strconv.Itoa(f.OrderID),
			strconv.Itoa(f.OrderItemID),
			strconv.Itoa(f.CustomerID),
			strconv.Itoa(f.ProductCardID),
			loc,
			f.OrderDate.Format(time.RFC3339),
			f.ShippingDate.Format(time.RFC3339),
			f.ShippingMode,
			strconv.Itoa(f.DaysScheduled),
			strconv.Itoa(f.DaysReal),
			f.DeliveryStatus,
			f.OrderStatus,
			formatFloat(f.BenefitPerOrder),
			formatFloat(f.SalesAmount),
			strconv.Itoa(f.OrderQuantity),
			strconv.Itoa(f.LateDeliveryRisk),
			strconv.Itoa(pred),
			formatFloat(conf),
		})
	}

	if err := e.writeCSV(FactFile, header, records); err != nil {
		return err
	}
	e.logger.Info().Int("rows", len(records)).Str("file", FactFile).Msg("Fact export written")
	return nil
}

// writeDimension dumps one dimension table verbatim, using the result set's
// own column names as the header.
func (e *Exporter) writeDimension(ctx context.Context, table, file string) error {
	rows, err := e.pool.Query(ctx, "SELECT * FROM "+table)
	if err != nil {
		return fmt.Errorf("dimension export query for %s: %w", table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.Name
	}

	var records [][]string
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return err
		}
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = formatValue(v)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if err := e.writeCSV(file, header, records); err != nil {
		return err
	}
	e.logger.Info().Int("rows", len(records)).Str("file", file).Msg("Dimension export written")
	return nil
}

// writeScenarios emits the hypothetical shipping-mode cost/speed multiplier
// lookup the BI tool uses for what-if slicing.
func (e *Exporter) writeScenarios() error {
	header := []string{"Scenario_Mode", "Cost_Factor", "Speed_Factor"}
	records := [][]string{
		{"Standard Class", "1.0", "1.0"},
		{"Second Class", "1.2", "1.1"},
		{"First Class", "1.5", "1.3"},
		{"Same Day", "2.0", "1.5"},
	}
	return e.writeCSV(ScenariosFile, header, records)
}

func (e *Exporter) writeCSV(file string, header []string, records [][]string) error {
	path := filepath.Join(e.outDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	default:
		return fmt.Sprint(x)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
