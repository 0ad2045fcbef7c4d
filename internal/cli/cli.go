//-------------------------------------------------------------------------
//
// Supply Chain Warehouse Builder
//
// Copyright (c) 2025 - 2026, Chainsight Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for supplydw.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/chainsight/supplydw/internal/config"
	"github.com/chainsight/supplydw/internal/logging"
	"github.com/chainsight/supplydw/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	input      string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "supplydw",
		Short: "Supply-chain star-schema data warehouse builder",
		Long: `supplydw converts a flat, denormalized supply-chain export into a
dimensional data warehouse: one fact table referencing customer, product,
and location dimensions via surrogate keys.

The pipeline is a full-refresh batch job. Each run applies the warehouse
schema and appends all tables; the operator is expected to reset the target
store between runs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./supplydw.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string of the warehouse store")
	rootCmd.PersistentFlags().StringVar(&input, "input", "",
		"path to the raw supply-chain export (ISO-8859-1 CSV)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(kpiCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(sampleCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if input != "" {
		cfg.Input = input
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
