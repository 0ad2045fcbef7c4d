//go:build integration
// +build integration

// Integration tests for the warehouse loader.
// Run with: go test -tags=integration ./internal/loader/...
// Requires PostgreSQL to be available.
// Set SUPPLYDW_TEST_CONN environment variable to override connection string.

package loader_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/chainsight/supplydw/internal/datagen"
	"github.com/chainsight/supplydw/internal/etl"
	"github.com/chainsight/supplydw/internal/loader"
	"github.com/chainsight/supplydw/internal/testutil"
)

func TestLoaderEndToEnd(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)

	testConnStr := testutil.CreateTestDB(t, baseConnStr, "loader")
	dbName := testutil.GetDBNameFromConnStr(testConnStr)

	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	defer cleanup.Cleanup()

	pool := testutil.ConnectTestDB(t, testConnStr)
	cleanup.SetPool(pool)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	source := filepath.Join(t.TempDir(), "export.csv")
	const rows = 500
	if err := datagen.Write(source, rows, 42); err != nil {
		t.Fatalf("generating source file: %v", err)
	}

	l := loader.New(pool, 100, zerolog.Nop())
	pipeline := etl.NewPipeline(source, l, zerolog.Nop())

	result, err := pipeline.Run(ctx)
	if err != nil {
		t.Fatalf("pipeline run: %v", err)
	}

	// Row counts in the store match the built tables.
	counts := map[string]int{
		"dim_customers": len(result.Customers),
		"dim_products":  len(result.Products),
		"dim_location":  len(result.Locations),
		"fact_orders":   len(result.Orders),
	}
	for table, want := range counts {
		var got int
		if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&got); err != nil {
			t.Fatalf("counting %s: %v", table, err)
		}
		if got != want {
			t.Errorf("%s has %d rows, want %d", table, got, want)
		}
	}

	// Referential integrity: no fact row references a missing location.
	var dangling int
	err = pool.QueryRow(ctx, `
        SELECT COUNT(*) FROM fact_orders f
        WHERE f.location_id IS NOT NULL
          AND NOT EXISTS (
              SELECT 1 FROM dim_location d WHERE d.location_id = f.location_id
          )
    `).Scan(&dangling)
	if err != nil {
		t.Fatalf("dangling check: %v", err)
	}
	if dangling != 0 {
		t.Errorf("%d fact rows reference missing locations", dangling)
	}

	// Surrogate keys are dense and 1-based.
	var minKey, maxKey, keyCount int
	err = pool.QueryRow(ctx,
		"SELECT MIN(location_id), MAX(location_id), COUNT(*) FROM dim_location",
	).Scan(&minKey, &maxKey, &keyCount)
	if err != nil {
		t.Fatalf("key density check: %v", err)
	}
	if minKey != 1 || maxKey != keyCount {
		t.Errorf("location keys [%d..%d] over %d rows are not dense 1-based", minKey, maxKey, keyCount)
	}
}

func TestRerunWithoutResetFailsBeforeInserting(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)

	testConnStr := testutil.CreateTestDB(t, baseConnStr, "rerun")
	dbName := testutil.GetDBNameFromConnStr(testConnStr)

	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	defer cleanup.Cleanup()

	pool := testutil.ConnectTestDB(t, testConnStr)
	cleanup.SetPool(pool)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	source := filepath.Join(t.TempDir(), "export.csv")
	if err := datagen.Write(source, 100, 7); err != nil {
		t.Fatalf("generating source file: %v", err)
	}

	l := loader.New(pool, 100, zerolog.Nop())

	if _, err := etl.NewPipeline(source, l, zerolog.Nop()).Run(ctx); err != nil {
		t.Fatalf("first run: %v", err)
	}

	var before int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM fact_orders").Scan(&before); err != nil {
		t.Fatalf("counting fact_orders: %v", err)
	}

	// Second run against the unreset store must fail during schema
	// application and leave every table untouched.
	_, err := etl.NewPipeline(source, l, zerolog.Nop()).Run(ctx)

	var schemaErr *etl.SchemaApplicationError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaApplicationError, got %v", err)
	}

	var after int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM fact_orders").Scan(&after); err != nil {
		t.Fatalf("counting fact_orders: %v", err)
	}
	if after != before {
		t.Errorf("failed rerun changed fact_orders from %d to %d rows", before, after)
	}
}
