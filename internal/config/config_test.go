package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel 'info', got '%s'", cfg.LogLevel)
	}
	if cfg.Load.BatchSize != 5000 {
		t.Errorf("Expected Load.BatchSize 5000, got %d", cfg.Load.BatchSize)
	}
	if cfg.Export.OutputDir != "powerbi_data" {
		t.Errorf("Expected Export.OutputDir 'powerbi_data', got '%s'", cfg.Export.OutputDir)
	}
	if cfg.Sample.Rows != 1000 {
		t.Errorf("Expected Sample.Rows 1000, got %d", cfg.Sample.Rows)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	// Run from an empty directory so no stray supplydw.yaml is picked up.
	oldWd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(oldWd)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Load.BatchSize != 5000 {
		t.Errorf("Expected default batch size, got %d", cfg.Load.BatchSize)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "supplydw.yaml")
	content := []byte(`
connection: "postgres://warehouse@db:5432/dw"
input: "data/export.csv"
log_level: debug
load:
  batch_size: 250
export:
  output_dir: "out"
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Connection != "postgres://warehouse@db:5432/dw" {
		t.Errorf("Connection = %q", cfg.Connection)
	}
	if cfg.Input != "data/export.csv" {
		t.Errorf("Input = %q", cfg.Input)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.Load.BatchSize != 250 {
		t.Errorf("Load.BatchSize = %d, want 250", cfg.Load.BatchSize)
	}
	if cfg.Export.OutputDir != "out" {
		t.Errorf("Export.OutputDir = %q, want out", cfg.Export.OutputDir)
	}
	// Values absent from the file keep their defaults.
	if cfg.Sample.Rows != 1000 {
		t.Errorf("Sample.Rows = %d, want default 1000", cfg.Sample.Rows)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "supplydw.yaml")
	if err := os.WriteFile(path, []byte("{{nonsense"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid config file")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when connection is empty")
	}

	cfg.Connection = "postgres://localhost/dw"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate with connection set: %v", err)
	}
}

func TestValidateRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Connection = "postgres://localhost/dw"

	if err := cfg.ValidateRun(); err == nil {
		t.Error("expected error when input is empty")
	}

	cfg.Input = "export.csv"
	if err := cfg.ValidateRun(); err != nil {
		t.Errorf("ValidateRun: %v", err)
	}

	cfg.Load.BatchSize = 0
	if err := cfg.ValidateRun(); err == nil {
		t.Error("expected error for zero batch size")
	}
}

func TestValidateExport(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Connection = "postgres://localhost/dw"

	if err := cfg.ValidateExport(); err != nil {
		t.Errorf("ValidateExport: %v", err)
	}

	cfg.Export.OutputDir = ""
	if err := cfg.ValidateExport(); err == nil {
		t.Error("expected error for empty output dir")
	}
}

func TestValidateSample(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ValidateSample(); err != nil {
		t.Errorf("ValidateSample: %v", err)
	}

	cfg.Sample.Rows = 0
	if err := cfg.ValidateSample(); err == nil {
		t.Error("expected error for zero rows")
	}
}
