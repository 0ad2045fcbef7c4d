//-------------------------------------------------------------------------
//
// Supply Chain Warehouse Builder
//
// Copyright (c) 2025 - 2026, Chainsight Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package etl

import "fmt"

// The pipeline fails loudly with one of five error kinds, all fatal. Each
// wraps its originating cause so callers can use errors.As to identify the
// failing stage and errors.Unwrap to reach the root cause.

// ConfigurationError reports a missing or unreadable input artifact.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: input %q: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ExtractionError reports a decoding, parsing, or value-conversion failure
// while reading the source export or deriving fact rows from it.
type ExtractionError struct {
	Row int // 1-based data row number, 0 when not row-specific
	Err error
}

func (e *ExtractionError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("extraction error at row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("extraction error: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// SchemaMismatchError reports a required source column that is absent from
// the raw frame. A dimension or fact projection cannot be built without its
// full mandatory column set.
type SchemaMismatchError struct {
	Target string // the table being built
	Column string // the missing normalized source column
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch: building %s: source column %q not found", e.Target, e.Column)
}

// SchemaApplicationError reports a failure applying the warehouse DDL, for
// example rerunning against a store that was not reset.
type SchemaApplicationError struct {
	Statement string
	Err       error
}

func (e *SchemaApplicationError) Error() string {
	return fmt.Sprintf("schema application failed: %v", e.Err)
}

func (e *SchemaApplicationError) Unwrap() error { return e.Err }

// LoadError reports a bulk insert failure for a single warehouse table.
// Tables already written in the same run are not rolled back; a failed run
// requires a full store reset before retry.
type LoadError struct {
	Table string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load failed for table %s: %v", e.Table, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
