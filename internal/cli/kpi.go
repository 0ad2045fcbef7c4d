//-------------------------------------------------------------------------
//
// Supply Chain Warehouse Builder
//
// Copyright (c) 2025 - 2026, Chainsight Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chainsight/supplydw/internal/db"
	"github.com/chainsight/supplydw/internal/warehouse"
)

var (
	kpiMarket       string
	kpiShippingMode string
)

var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "Print headline KPIs from a populated warehouse",
	Long: `Print the aggregates the operations dashboard renders: order and
sales totals, late-delivery rate, and average real vs scheduled shipping
days, over completed orders, optionally filtered by market and shipping
mode.`,
	RunE: runKPI,
}

func init() {
	kpiCmd.Flags().StringVar(&kpiMarket, "market", "",
		"restrict to one market (e.g. Europe, LATAM)")
	kpiCmd.Flags().StringVar(&kpiShippingMode, "shipping-mode", "",
		"restrict to one shipping mode (e.g. \"Standard Class\")")
}

func runKPI(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse store: %w", err)
	}
	defer pool.Close()

	filter := warehouse.KPIFilter{Market: kpiMarket, ShippingMode: kpiShippingMode}

	report, err := warehouse.FetchKPIs(ctx, pool, filter)
	if err != nil {
		return err
	}

	cmd.Println("Warehouse KPIs (completed orders)")
	if kpiMarket != "" {
		cmd.Printf("  market:          %s\n", kpiMarket)
	}
	if kpiShippingMode != "" {
		cmd.Printf("  shipping mode:   %s\n", kpiShippingMode)
	}
	cmd.Printf("  orders:          %d\n", report.Orders)
	cmd.Printf("  total sales:     %.2f\n", report.TotalSales)
	cmd.Printf("  late deliveries: %d (%.1f%%)\n", report.LateOrders, report.LateRate*100)
	cmd.Printf("  avg days real:   %.2f\n", report.AvgDaysReal)
	cmd.Printf("  avg days sched:  %.2f\n", report.AvgDaysScheduled)

	markets, err := warehouse.SalesByMarket(ctx, pool, filter)
	if err != nil {
		return err
	}

	cmd.Println()
	cmd.Println("Sales by market:")
	for _, m := range markets {
		cmd.Printf("  %-15s %8d orders  %14.2f sales  %5.1f%% late\n",
			m.Market, m.Orders, m.TotalSales, m.LateRate*100)
	}
	return nil
}
