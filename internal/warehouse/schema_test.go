package warehouse

import (
	"strings"
	"testing"
)

func TestSchemaIsValid(t *testing.T) {
	if err := Validate(Schema()); err != nil {
		t.Fatalf("Validate(Schema()): %v", err)
	}
}

func TestSchemaDependencyOrder(t *testing.T) {
	tables := Schema()

	want := []string{TableCustomers, TableProducts, TableLocation, TableOrders}
	if len(tables) != len(want) {
		t.Fatalf("got %d tables, want %d", len(tables), len(want))
	}
	for i, name := range want {
		if tables[i].Name != name {
			t.Errorf("table %d = %s, want %s", i, tables[i].Name, name)
		}
	}
}

func TestValidateRejectsForwardReference(t *testing.T) {
	tables := []Table{
		{
			Name:       "fact",
			Columns:    []Column{{Name: "dim_id", Type: "INTEGER"}},
			PrimaryKey: []string{"dim_id"},
			ForeignKeys: []ForeignKey{
				{Column: "dim_id", RefTable: "dim", RefColumn: "id"},
			},
		},
		{
			Name:       "dim",
			Columns:    []Column{{Name: "id", Type: "INTEGER"}},
			PrimaryKey: []string{"id"},
		},
	}

	if err := Validate(tables); err == nil {
		t.Fatal("expected error for foreign key referencing a later table")
	}
}

func TestValidateRejectsUnknownColumns(t *testing.T) {
	tests := []struct {
		name   string
		tables []Table
	}{
		{
			name: "primary key column not declared",
			tables: []Table{{
				Name:       "dim",
				Columns:    []Column{{Name: "id", Type: "INTEGER"}},
				PrimaryKey: []string{"missing"},
			}},
		},
		{
			name: "foreign key references unknown column",
			tables: []Table{
				{
					Name:       "dim",
					Columns:    []Column{{Name: "id", Type: "INTEGER"}},
					PrimaryKey: []string{"id"},
				},
				{
					Name:       "fact",
					Columns:    []Column{{Name: "dim_id", Type: "INTEGER"}},
					PrimaryKey: []string{"dim_id"},
					ForeignKeys: []ForeignKey{
						{Column: "dim_id", RefTable: "dim", RefColumn: "nope"},
					},
				},
			},
		},
		{
			name: "duplicate column",
			tables: []Table{{
				Name:       "dim",
				Columns:    []Column{{Name: "id", Type: "INTEGER"}, {Name: "id", Type: "TEXT"}},
				PrimaryKey: []string{"id"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.tables); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestStatementsRenderPlainCreateTable(t *testing.T) {
	stmts := Statements(Schema())
	if len(stmts) != 4 {
		t.Fatalf("got %d statements, want 4", len(stmts))
	}

	for _, stmt := range stmts {
		if !strings.HasPrefix(stmt, "CREATE TABLE ") {
			t.Errorf("statement does not start with CREATE TABLE: %q", stmt)
		}
		// A rerun against an unreset store must fail during schema
		// application, so the statements are not idempotent.
		if strings.Contains(stmt, "IF NOT EXISTS") {
			t.Errorf("statement must not be idempotent: %q", stmt)
		}
	}

	fact := stmts[3]
	for _, want := range []string{
		"FOREIGN KEY (customer_id) REFERENCES dim_customers(customer_id)",
		"FOREIGN KEY (product_card_id) REFERENCES dim_products(product_card_id)",
		"FOREIGN KEY (location_id) REFERENCES dim_location(location_id)",
		"PRIMARY KEY (order_id, order_item_id)",
	} {
		if !strings.Contains(fact, want) {
			t.Errorf("fact statement missing %q:\n%s", want, fact)
		}
	}
}

func TestFactColumnsMatchOrderFactRow(t *testing.T) {
	fact := Schema()[3]
	row := OrderFact{}.Row()
	if len(row) != len(fact.Columns) {
		t.Errorf("OrderFact.Row() has %d values for %d columns", len(row), len(fact.Columns))
	}
}

func TestDimensionColumnsMatchRowWidths(t *testing.T) {
	schema := Schema()
	tests := []struct {
		table Table
		row   []any
	}{
		{schema[0], Customer{}.Row()},
		{schema[1], Product{}.Row()},
		{schema[2], Location{}.Row()},
	}
	for _, tt := range tests {
		if len(tt.row) != len(tt.table.Columns) {
			t.Errorf("%s: row has %d values for %d columns",
				tt.table.Name, len(tt.row), len(tt.table.Columns))
		}
	}
}

func TestDDLJoinsStatements(t *testing.T) {
	ddl := DDL(Schema())
	if got := strings.Count(ddl, "CREATE TABLE"); got != 4 {
		t.Errorf("DDL contains %d CREATE TABLE statements, want 4", got)
	}
	if !strings.HasSuffix(strings.TrimSpace(ddl), ";") {
		t.Error("DDL should end with a statement terminator")
	}
}
