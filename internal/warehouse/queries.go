//-------------------------------------------------------------------------
//
// Supply Chain Warehouse Builder
//
// Copyright (c) 2025 - 2026, Chainsight Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// KPIFilter narrows the analytic queries. Empty fields match everything.
type KPIFilter struct {
	Market       string
	ShippingMode string
}

// KPIReport holds the headline aggregates the dashboard renders. Only
// completed orders are counted, matching the dashboard's analytic view.
type KPIReport struct {
	Orders           int64
	TotalSales       float64
	LateOrders       int64
	LateRate         float64
	AvgDaysReal      float64
	AvgDaysScheduled float64
}

// MarketSales is one row of the sales-by-market breakdown.
type MarketSales struct {
	Market     string
	Orders     int64
	TotalSales float64
	LateRate   float64
}

// FetchKPIs computes the headline KPIs over fact_orders joined with
// dim_location.
func FetchKPIs(ctx context.Context, pool *pgxpool.Pool, filter KPIFilter) (*KPIReport, error) {
	where, args := filterClause(filter)

	query := fmt.Sprintf(`
        SELECT
            COUNT(*),
            COALESCE(SUM(f.sales_amount), 0),
            COALESCE(SUM(f.late_delivery_risk), 0),
            COALESCE(AVG(f.days_real), 0),
            COALESCE(AVG(f.days_scheduled), 0)
        FROM fact_orders f
        LEFT JOIN dim_location d ON f.location_id = d.location_id
        WHERE f.order_status = 'COMPLETE'%s
    `, where)

	var r KPIReport
	err := pool.QueryRow(ctx, query, args...).Scan(
		&r.Orders, &r.TotalSales, &r.LateOrders, &r.AvgDaysReal, &r.AvgDaysScheduled,
	)
	if err != nil {
		return nil, fmt.Errorf("kpi query: %w", err)
	}
	if r.Orders > 0 {
		r.LateRate = float64(r.LateOrders) / float64(r.Orders)
	}
	return &r, nil
}

// SalesByMarket aggregates completed orders per market, largest sales first.
func SalesByMarket(ctx context.Context, pool *pgxpool.Pool, filter KPIFilter) ([]MarketSales, error) {
	where, args := filterClause(filter)

	query := fmt.Sprintf(`
        SELECT
            COALESCE(d.market, 'Unknown'),
            COUNT(*),
            COALESCE(SUM(f.sales_amount), 0),
            COALESCE(AVG(f.late_delivery_risk::float), 0)
        FROM fact_orders f
        LEFT JOIN dim_location d ON f.location_id = d.location_id
        WHERE f.order_status = 'COMPLETE'%s
        GROUP BY d.market
        ORDER BY SUM(f.sales_amount) DESC
    `, where)

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales by market query: %w", err)
	}
	defer rows.Close()

	var out []MarketSales
	for rows.Next() {
		var m MarketSales
		if err := rows.Scan(&m.Market, &m.Orders, &m.TotalSales, &m.LateRate); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func filterClause(filter KPIFilter) (string, []any) {
	var clauses []string
	var args []any
	if filter.Market != "" {
		args = append(args, filter.Market)
		clauses = append(clauses, fmt.Sprintf("d.market = $%d", len(args)))
	}
	if filter.ShippingMode != "" {
		args = append(args, filter.ShippingMode)
		clauses = append(clauses, fmt.Sprintf("f.shipping_mode = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " AND " + strings.Join(clauses, " AND "), args
}
