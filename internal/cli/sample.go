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
	"github.com/spf13/cobra"

	"github.com/chainsight/supplydw/internal/datagen"
	"github.com/chainsight/supplydw/internal/logging"
)

var (
	sampleOutput string
	sampleRows   int
	sampleSeed   uint64
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate a synthetic source export for demos and testing",
	Long: `Generate a synthetic supply-chain export in the same shape as the
real source file: messy human-readable headers, ISO-8859-1 encoding, one
row per order line item. With a fixed seed the output is reproducible.

Example:
  supplydw sample --rows 10000 --seed 42 --output sample.csv`,
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().StringVar(&sampleOutput, "output", "",
		"output file path (default from config)")
	sampleCmd.Flags().IntVar(&sampleRows, "rows", 0,
		"number of order lines to generate (default from config)")
	sampleCmd.Flags().Uint64Var(&sampleSeed, "seed", 0,
		"random seed; 0 derives one from the clock")
}

func runSample(cmd *cobra.Command, args []string) error {
	if sampleOutput != "" {
		cfg.Sample.Output = sampleOutput
	}
	if sampleRows > 0 {
		cfg.Sample.Rows = sampleRows
	}
	if sampleSeed != 0 {
		cfg.Sample.Seed = sampleSeed
	}
	if err := cfg.ValidateSample(); err != nil {
		return err
	}

	logging.Info().
		Str("output", cfg.Sample.Output).
		Int("rows", cfg.Sample.Rows).
		Msg("Generating sample export")

	if err := datagen.Write(cfg.Sample.Output, cfg.Sample.Rows, cfg.Sample.Seed); err != nil {
		return err
	}

	cmd.Printf("Sample export written to %s\n", cfg.Sample.Output)
	return nil
}
