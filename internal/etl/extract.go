//-------------------------------------------------------------------------
//
// Supply Chain Warehouse Builder
//
// Copyright (c) 2025 - 2026, Chainsight Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package etl

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Extract reads the raw export at path into a Frame. The file is decoded as
// ISO-8859-1; the legacy export is not valid UTF-8 and a lossy fallback
// would corrupt currency and location text, so any transform failure is
// fatal. Header names are normalized with NormalizeColumn.
//
// A missing or unreadable file yields a ConfigurationError; a malformed row
// (field count differing from the header) yields an ExtractionError. There
// is no partial extraction.
func Extract(path string, logger zerolog.Logger) (*Frame, error) {
	logger.Info().Str("path", path).Msg("Starting extraction")

	f, err := os.Open(path)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Extraction failed")
		return nil, &ConfigurationError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			err = errors.New("empty input: no header row")
		}
		logger.Error().Err(err).Msg("Extraction failed")
		return nil, &ExtractionError{Err: err}
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = NormalizeColumn(h)
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.Reader enforces the header field count; a short or long
			// row surfaces here.
			logger.Error().Err(err).Msg("Extraction failed")
			return nil, &ExtractionError{Row: len(rows) + 1, Err: err}
		}
		rows = append(rows, rec)
	}

	frame, err := NewFrame(columns, rows)
	if err != nil {
		logger.Error().Err(err).Msg("Extraction failed")
		return nil, &ExtractionError{Err: fmt.Errorf("building raw frame: %w", err)}
	}

	logger.Info().
		Int("rows", frame.Len()).
		Int("columns", len(columns)).
		Msg("Extraction complete")

	return frame, nil
}
