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
	"github.com/chainsight/supplydw/internal/etl"
	"github.com/chainsight/supplydw/internal/loader"
	"github.com/chainsight/supplydw/internal/logging"
)

var runBatchSize int

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full ETL pipeline against the warehouse store",
	Long: `Run the batch pipeline: extract the raw export, build the customer,
product, and location dimensions, build the order fact table, apply the
warehouse schema, and bulk-append all tables in dependency order.

The target store must be empty (or reset) before a run; rerunning against a
store that already has the schema fails during schema application without
writing any row.

Example:
  supplydw run --input data/DataCoSupplyChainDataset.csv --connection "postgres://..."`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().IntVar(&runBatchSize, "batch-size", 0,
		"rows per bulk append batch (default from config)")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	if runBatchSize > 0 {
		cfg.Load.BatchSize = runBatchSize
	}
	if err := cfg.ValidateRun(); err != nil {
		return err
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Pretty: true})

	logger.Info().
		Str("input", cfg.Input).
		Msg("Starting warehouse build")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse store: %w", err)
	}
	defer pool.Close()

	pipeline := etl.NewPipeline(cfg.Input, loader.New(pool, cfg.Load.BatchSize, logger), logger)
	if _, err := pipeline.Run(ctx); err != nil {
		return err
	}

	cmd.Println("Pipeline executed successfully.")
	return nil
}
