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
	"github.com/chainsight/supplydw/internal/export"
	"github.com/chainsight/supplydw/internal/logging"
)

var exportOutputDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export BI flat files with late-delivery predictions",
	Long: `Read the populated warehouse, train the late-delivery risk model on
the historical fact rows, and write the flat files the external BI tool
imports: the enriched fact table, the three dimension tables, and the
what-if shipping-mode scenario lookup.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOutputDir, "output-dir", "",
		"directory the flat files are written to (default from config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportOutputDir != "" {
		cfg.Export.OutputDir = exportOutputDir
	}
	if err := cfg.ValidateExport(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse store: %w", err)
	}
	defer pool.Close()

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Pretty: true})
	exporter := export.New(pool, cfg.Export.OutputDir, logger)
	if err := exporter.Run(ctx); err != nil {
		return err
	}

	cmd.Printf("Export complete. Files are in %s\n", cfg.Export.OutputDir)
	return nil
}
