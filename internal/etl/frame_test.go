package etl

import (
	"errors"
	"testing"
)

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Days for shipping (real)", "days_for_shipping_real"},
		{"Days for shipment (scheduled)", "days_for_shipment_scheduled"},
		{"order date (DateOrders)", "order_date_dateorders"},
		{"shipping date (DateOrders)", "shipping_date_dateorders"},
		{"Late_delivery_risk", "late_delivery_risk"},
		{"Customer Id", "customer_id"},
		{"  Market  ", "market"},
		{"Order-Region", "order_region"},
		{"Sales", "sales"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeColumn(tt.in); got != tt.want {
				t.Errorf("NormalizeColumn(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewFrameRejectsDuplicateColumns(t *testing.T) {
	_, err := NewFrame([]string{"a", "b", "a"}, nil)
	if err == nil {
		t.Fatal("expected error for duplicate column, got nil")
	}
}

func TestNewFrameRejectsRaggedRows(t *testing.T) {
	_, err := NewFrame([]string{"a", "b"}, [][]string{{"1", "2"}, {"3"}})
	if err == nil {
		t.Fatal("expected error for ragged row, got nil")
	}
}

func TestFrameLookup(t *testing.T) {
	f, err := NewFrame([]string{"market", "sales"}, [][]string{{"Europe", "10"}})
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}

	i, ok := f.Lookup("sales")
	if !ok || i != 1 {
		t.Errorf("Lookup(sales) = (%d, %v), want (1, true)", i, ok)
	}
	if _, ok := f.Lookup("missing"); ok {
		t.Error("Lookup(missing) should report absence")
	}
}

func TestFrameRequireMissingColumn(t *testing.T) {
	f, err := NewFrame([]string{"market"}, nil)
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}

	_, err = f.Require("dim_location", "market", "order_region")
	var mismatch *SchemaMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected SchemaMismatchError, got %v", err)
	}
	if mismatch.Column != "order_region" {
		t.Errorf("missing column = %q, want order_region", mismatch.Column)
	}
	if mismatch.Target != "dim_location" {
		t.Errorf("target = %q, want dim_location", mismatch.Target)
	}
}
