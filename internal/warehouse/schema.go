//-------------------------------------------------------------------------
//
// Supply Chain Warehouse Builder
//
// Copyright (c) 2025 - 2026, Chainsight Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"fmt"
	"strings"
)

// Column describes one warehouse table column.
type Column struct {
	Name    string
	Type    string
	NotNull bool
}

// ForeignKey describes a reference from one table column to another table's
// column.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// Table is a typed description of one warehouse table. The descriptor is
// validated at build time, so the loader never depends on the internal
// ordering of a raw DDL script.
type Table struct {
	Name        string
	Columns     []Column
	PrimaryKey  []string
	ForeignKeys []ForeignKey
}

// ColumnNames returns the column names in declaration order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Schema returns the warehouse tables in dependency order: all dimensions
// before the fact table, so a constraint-enforcing store never sees a fact
// row before its referenced dimension rows.
func Schema() []Table {
	return []Table{
		{
			Name: TableCustomers,
			Columns: []Column{
				{Name: "customer_id", Type: "INTEGER", NotNull: true},
				{Name: "f_name", Type: "TEXT"},
				{Name: "l_name", Type: "TEXT"},
				{Name: "segment", Type: "TEXT"},
				{Name: "city", Type: "TEXT"},
				{Name: "state", Type: "TEXT"},
				{Name: "country", Type: "TEXT"},
			},
			PrimaryKey: []string{"customer_id"},
		},
		{
			Name: TableProducts,
			Columns: []Column{
				{Name: "product_card_id", Type: "INTEGER", NotNull: true},
				{Name: "product_name", Type: "TEXT"},
				{Name: "category_name", Type: "TEXT"},
				{Name: "department_name", Type: "TEXT"},
				{Name: "product_price", Type: "DOUBLE PRECISION"},
			},
			PrimaryKey: []string{"product_card_id"},
		},
		{
			Name: TableLocation,
			Columns: []Column{
				{Name: "location_id", Type: "INTEGER", NotNull: true},
				{Name: "market", Type: "TEXT"},
				{Name: "order_region", Type: "TEXT"},
				{Name: "order_country", Type: "TEXT"},
				{Name: "order_city", Type: "TEXT"},
			},
			PrimaryKey: []string{"location_id"},
		},
		{
			Name: TableOrders,
			Columns: []Column{
				{Name: "order_id", Type: "INTEGER", NotNull: true},
				{Name: "order_item_id", Type: "INTEGER", NotNull: true},
				{Name: "customer_id", Type: "INTEGER", NotNull: true},
				{Name: "product_card_id", Type: "INTEGER", NotNull: true},
				// Nullable: a fact row whose location tuple had no match
				// carries NULL rather than a dangling key.
				{Name: "location_id", Type: "INTEGER"},
				{Name: "order_date", Type: "TIMESTAMP", NotNull: true},
				{Name: "shipping_date", Type: "TIMESTAMP", NotNull: true},
				{Name: "shipping_mode", Type: "TEXT"},
				{Name: "days_scheduled", Type: "INTEGER"},
				{Name: "days_real", Type: "INTEGER"},
				{Name: "delivery_status", Type: "TEXT"},
				{Name: "order_status", Type: "TEXT"},
				{Name: "benefit_per_order", Type: "DOUBLE PRECISION"},
				{Name: "sales_amount", Type: "DOUBLE PRECISION"},
				{Name: "order_quantity", Type: "INTEGER"},
				{Name: "late_delivery_risk", Type: "INTEGER"},
			},
			PrimaryKey: []string{"order_id", "order_item_id"},
			ForeignKeys: []ForeignKey{
				{Column: "customer_id", RefTable: TableCustomers, RefColumn: "customer_id"},
				{Column: "product_card_id", RefTable: TableProducts, RefColumn: "product_card_id"},
				{Column: "location_id", RefTable: TableLocation, RefColumn: "location_id"},
			},
		},
	}
}

// Validate checks the descriptor's internal consistency: primary key and
// foreign key columns must exist, and every foreign key must reference a
// column of a table declared earlier in the list.
func Validate(tables []Table) error {
	declared := make(map[string]map[string]bool, len(tables))

	for _, t := range tables {
		if t.Name == "" {
			return fmt.Errorf("table with empty name")
		}
		if _, dup := declared[t.Name]; dup {
			return fmt.Errorf("table %s declared twice", t.Name)
		}
		cols := make(map[string]bool, len(t.Columns))
		for _, c := range t.Columns {
			if cols[c.Name] {
				return fmt.Errorf("table %s: duplicate column %s", t.Name, c.Name)
			}
			cols[c.Name] = true
		}
		for _, pk := range t.PrimaryKey {
			if !cols[pk] {
				return fmt.Errorf("table %s: primary key column %s not declared", t.Name, pk)
			}
		}
		for _, fk := range t.ForeignKeys {
			if !cols[fk.Column] {
				return fmt.Errorf("table %s: foreign key column %s not declared", t.Name, fk.Column)
			}
			ref, ok := declared[fk.RefTable]
			if !ok {
				return fmt.Errorf("table %s: foreign key references %s, which is not declared before it",
					t.Name, fk.RefTable)
			}
			if !ref[fk.RefColumn] {
				return fmt.Errorf("table %s: foreign key references unknown column %s.%s",
					t.Name, fk.RefTable, fk.RefColumn)
			}
		}
		declared[t.Name] = cols
	}
	return nil
}

// Statements renders one CREATE TABLE statement per table. Plain CREATE
// TABLE is intentional: rerunning against an unreset store must fail during
// schema application, before any row is written.
func Statements(tables []Table) []string {
	stmts := make([]string, len(tables))
	for i, t := range tables {
		var b strings.Builder
		fmt.Fprintf(&b, "CREATE TABLE %s (\n", t.Name)
		for _, c := range t.Columns {
			fmt.Fprintf(&b, "    %s %s", c.Name, c.Type)
			if c.NotNull {
				b.WriteString(" NOT NULL")
			}
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "    PRIMARY KEY (%s)", strings.Join(t.PrimaryKey, ", "))
		for _, fk := range t.ForeignKeys {
			fmt.Fprintf(&b, ",\n    FOREIGN KEY (%s) REFERENCES %s(%s)",
				fk.Column, fk.RefTable, fk.RefColumn)
		}
		b.WriteString("\n)")
		stmts[i] = b.String()
	}
	return stmts
}

// DDL renders the full schema script as a single text artifact, useful for
// inspection and logging.
func DDL(tables []Table) string {
	return strings.Join(Statements(tables), ";\n\n") + ";\n"
}
