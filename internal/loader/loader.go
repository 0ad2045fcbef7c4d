//-------------------------------------------------------------------------
//
// Supply Chain Warehouse Builder
//
// Copyright (c) 2025 - 2026, Chainsight Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package loader persists one pipeline run to the warehouse store: schema
// application inside a single transaction, then dependency-ordered bulk
// appends via the PostgreSQL COPY protocol.
package loader

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/chainsight/supplydw/internal/etl"
	"github.com/chainsight/supplydw/internal/warehouse"
)

// Loader writes a pipeline result to the target store. The store is
// append-only per run: a failed run leaves earlier tables in place and the
// operator is expected to reset the store before retrying.
type Loader struct {
	pool      *pgxpool.Pool
	batchSize int
	logger    zerolog.Logger
}

// New builds a Loader. batchSize bounds the rows per COPY call.
func New(pool *pgxpool.Pool, batchSize int, logger zerolog.Logger) *Loader {
	return &Loader{pool: pool, batchSize: batchSize, logger: logger}
}

var _ etl.Loader = (*Loader)(nil)

// Load applies the warehouse schema and appends all four tables, dimensions
// first, fact last.
func (l *Loader) Load(ctx context.Context, r *etl.Result) error {
	schema := warehouse.Schema()
	if err := warehouse.Validate(schema); err != nil {
		return &etl.SchemaApplicationError{Err: fmt.Errorf("invalid schema descriptor: %w", err)}
	}

	if err := l.applySchema(ctx, schema); err != nil {
		return err
	}

	tables := []struct {
		name    string
		columns []string
		rows    [][]any
	}{
		{warehouse.TableCustomers, schema[0].ColumnNames(), customerRows(r.Customers)},
		{warehouse.TableProducts, schema[1].ColumnNames(), productRows(r.Products)},
		{warehouse.TableLocation, schema[2].ColumnNames(), locationRows(r.Locations)},
		{warehouse.TableOrders, schema[3].ColumnNames(), orderRows(r.Orders)},
	}

	for _, t := range tables {
		if err := l.appendTable(ctx, t.name, t.columns, t.rows); err != nil {
			return err
		}
	}

	l.logger.Info().Msg("Load complete, warehouse is ready")
	return nil
}

// applySchema executes every CREATE TABLE statement inside one transaction.
// If any statement fails (for example the schema already exists from an
// unreset prior run), the transaction rolls back and no table data is
// written.
func (l *Loader) applySchema(ctx context.Context, schema []warehouse.Table) error {
	l.logger.Info().Int("tables", len(schema)).Msg("Applying warehouse schema")

	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return &etl.SchemaApplicationError{Err: err}
	}
	defer tx.Rollback(ctx)

	for _, stmt := range warehouse.Statements(schema) {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			l.logger.Error().Err(err).Msg("Schema application failed")
			return &etl.SchemaApplicationError{Statement: stmt, Err: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return &etl.SchemaApplicationError{Err: err}
	}
	return nil
}

// appendTable bulk-appends one table inside its own transaction, so a
// mid-table failure never leaves a partially written table behind.
func (l *Loader) appendTable(ctx context.Context, name string, columns []string, rows [][]any) error {
	l.logger.Info().Str("table", name).Int("rows", len(rows)).Msg("Appending table")

	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return &etl.LoadError{Table: name, Err: err}
	}
	defer tx.Rollback(ctx)

	for start := 0; start < len(rows); start += l.batchSize {
		end := min(start+l.batchSize, len(rows))
		n, err := tx.CopyFrom(ctx, pgx.Identifier{name}, columns, pgx.CopyFromRows(rows[start:end]))
		if err != nil {
			l.logger.Error().Err(err).Str("table", name).Msg("Append failed")
			return &etl.LoadError{Table: name, Err: err}
		}
		if n != int64(end-start) {
			return &etl.LoadError{
				Table: name,
				Err:   fmt.Errorf("short copy: wrote %d of %d rows", n, end-start),
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return &etl.LoadError{Table: name, Err: err}
	}

	l.logger.Info().Str("table", name).Int("rows", len(rows)).Msg("Table appended")
	return nil
}

func customerRows(cs []warehouse.Customer) [][]any {
	rows := make([][]any, len(cs))
	for i, c := range cs {
		rows[i] = c.Row()
	}
	return rows
}

func productRows(ps []warehouse.Product) [][]any {
	rows := make([][]any, len(ps))
	for i, p := range ps {
		rows[i] = p.Row()
	}
	return rows
}

func locationRows(ls []warehouse.Location) [][]any {
	rows := make([][]any, len(ls))
	for i, l := range ls {
		rows[i] = l.Row()
	}
	return rows
}

func orderRows(os []warehouse.OrderFact) [][]any {
	rows := make([][]any, len(os))
	for i, o := range os {
		rows[i] = o.Row()
	}
	return rows
}
