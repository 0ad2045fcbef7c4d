//-------------------------------------------------------------------------
//
// Supply Chain Warehouse Builder
//
// Copyright (c) 2025 - 2026, Chainsight Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package etl implements the batch transformation pipeline that turns the
// flat supply-chain export into a star-schema warehouse: extraction,
// dimension building, fact building, and orchestration.
package etl

import (
	"fmt"
	"strings"
)

// Frame is the raw in-memory table produced by extraction. Column names are
// normalized; rows hold the source values verbatim as strings. A Frame is
// never mutated after construction.
type Frame struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewFrame builds a Frame from normalized column names and rows. Every row
// must have exactly one value per column.
func NewFrame(columns []string, rows [][]string) (*Frame, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		index[c] = i
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i+1, len(row), len(columns))
		}
	}
	return &Frame{columns: columns, index: index, rows: rows}, nil
}

// Columns returns the normalized column names in source order.
func (f *Frame) Columns() []string { return f.columns }

// Len returns the number of data rows.
func (f *Frame) Len() int { return len(f.rows) }

// Row returns the values of row i.
func (f *Frame) Row(i int) []string { return f.rows[i] }

// Lookup returns the index of a normalized column name.
func (f *Frame) Lookup(name string) (int, bool) {
	i, ok := f.index[name]
	return i, ok
}

// Require resolves the given normalized column names to indexes, failing
// with a SchemaMismatchError naming the target table if any is absent.
func (f *Frame) Require(target string, names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		j, ok := f.index[n]
		if !ok {
			return nil, &SchemaMismatchError{Target: target, Column: n}
		}
		idx[i] = j
	}
	return idx, nil
}

// NormalizeColumn rewrites a human-readable header name to the pipeline's
// stable vocabulary: trim, spaces and hyphens to underscores, parentheses
// dropped, lowercased. "Days for shipping (real)" becomes
// "days_for_shipping_real".
func NormalizeColumn(name string) string {
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")
	return strings.ToLower(s)
}
