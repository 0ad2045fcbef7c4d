//-------------------------------------------------------------------------
//
// Supply Chain Warehouse Builder
//
// Copyright (c) 2025 - 2026, Chainsight Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for supplydw.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for supplydw.
type Config struct {
	// Connection is the PostgreSQL connection string for the warehouse store.
	Connection string `mapstructure:"connection"`

	// Input is the path to the raw supply-chain export (delimited text,
	// ISO-8859-1 encoded).
	Input string `mapstructure:"input"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Load holds configuration for the warehouse load step.
	Load LoadConfig `mapstructure:"load"`

	// Export holds configuration for the export subcommand.
	Export ExportConfig `mapstructure:"export"`

	// Sample holds configuration for the sample subcommand.
	Sample SampleConfig `mapstructure:"sample"`
}

// LoadConfig holds configuration for the warehouse load step.
type LoadConfig struct {
	// BatchSize is the number of rows per bulk append batch.
	BatchSize int `mapstructure:"batch_size"`
}

// ExportConfig holds configuration for the BI export.
type ExportConfig struct {
	// OutputDir is the directory flat files are written to.
	OutputDir string `mapstructure:"output_dir"`
}

// SampleConfig holds configuration for synthetic source generation.
type SampleConfig struct {
	// Output is the path the sample file is written to.
	Output string `mapstructure:"output"`

	// Rows is the number of order lines to generate.
	Rows int `mapstructure:"rows"`

	// Seed makes generation reproducible; 0 derives a seed from the clock.
	Seed uint64 `mapstructure:"seed"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Load: LoadConfig{
			BatchSize: 5000,
		},
		Export: ExportConfig{
			OutputDir: "powerbi_data",
		},
		Sample: SampleConfig{
			Output: "sample_supply_chain.csv",
			Rows:   1000,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./supplydw.yaml
// 3. ~/.config/supplydw/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("supplydw")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "supplydw"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateRun checks configuration required for the run command.
func (c *Config) ValidateRun() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Input == "" {
		return fmt.Errorf("input file path is required")
	}
	if c.Load.BatchSize < 1 {
		return fmt.Errorf("load batch_size must be at least 1")
	}
	return nil
}

// ValidateExport checks configuration required for the export command.
func (c *Config) ValidateExport() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Export.OutputDir == "" {
		return fmt.Errorf("export output directory is required")
	}
	return nil
}

// ValidateSample checks configuration required for the sample command.
func (c *Config) ValidateSample() error {
	if c.Sample.Output == "" {
		return fmt.Errorf("sample output path is required")
	}
	if c.Sample.Rows < 1 {
		return fmt.Errorf("sample rows must be at least 1")
	}
	return nil
}
