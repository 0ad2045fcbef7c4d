package etl

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func buildKeys(t *testing.T, f *Frame) LocationKeys {
	t.Helper()
	_, keys, err := BuildLocations(f, zerolog.Nop())
	if err != nil {
		t.Fatalf("BuildLocations: %v", err)
	}
	return keys
}

func TestBuildFactProjectsAndRenames(t *testing.T) {
	f := rawFrame(t, []map[string]string{
		{
			"order_id":                    "77",
			"order_item_id":               "301",
			"customer_id":                 "5",
			"product_card_id":             "101",
			"order_date_dateorders":       "1/31/2018 22:56",
			"shipping_date_dateorders":    "2/3/2018 22:56",
			"days_for_shipment_scheduled": "4",
			"days_for_shipping_real":      "3",
			"sales":                       "327.75",
			"order_item_quantity":         "5",
			"benefit_per_order":           "91.25",
			"late_delivery_risk":          "0",
		},
	})

	orders, err := BuildFact(f, buildKeys(t, f), zerolog.Nop())
	if err != nil {
		t.Fatalf("BuildFact: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("got %d fact rows, want 1", len(orders))
	}

	o := orders[0]
	if o.OrderID != 77 || o.OrderItemID != 301 || o.CustomerID != 5 || o.ProductCardID != 101 {
		t.Errorf("identifier columns wrong: %+v", o)
	}
	// The verbose source names land in the renamed target fields.
	if o.DaysScheduled != 4 {
		t.Errorf("days_scheduled = %d, want 4", o.DaysScheduled)
	}
	if o.DaysReal != 3 {
		t.Errorf("days_real = %d, want 3", o.DaysReal)
	}
	if o.SalesAmount != 327.75 {
		t.Errorf("sales_amount = %v, want 327.75", o.SalesAmount)
	}
	if o.OrderQuantity != 5 {
		t.Errorf("order_quantity = %d, want 5", o.OrderQuantity)
	}
	if o.BenefitPerOrder != 91.25 {
		t.Errorf("benefit_per_order = %v, want 91.25", o.BenefitPerOrder)
	}

	wantDate := time.Date(2018, 1, 31, 22, 56, 0, 0, time.UTC)
	if !o.OrderDate.Equal(wantDate) {
		t.Errorf("order_date = %v, want %v", o.OrderDate, wantDate)
	}

	if o.LocationID == nil || *o.LocationID != 1 {
		t.Errorf("location_id = %v, want 1", o.LocationID)
	}
}

func TestBuildFactReusesSurrogateKeyForRepeatedTuple(t *testing.T) {
	// A, B, A, C: both A rows must carry key 1.
	f := rawFrame(t, []map[string]string{
		{"order_item_id": "1", "order_city": "Bogotá"},
		{"order_item_id": "2", "order_city": "Medellín"},
		{"order_item_id": "3", "order_city": "Bogotá"},
		{"order_item_id": "4", "order_city": "Cali"},
	})

	orders, err := BuildFact(f, buildKeys(t, f), zerolog.Nop())
	if err != nil {
		t.Fatalf("BuildFact: %v", err)
	}

	wantKeys := []int{1, 2, 1, 3}
	for i, want := range wantKeys {
		if orders[i].LocationID == nil || *orders[i].LocationID != want {
			t.Errorf("row %d location_id = %v, want %d", i, orders[i].LocationID, want)
		}
	}
}

func TestBuildFactUnmatchedTupleGetsNullKey(t *testing.T) {
	f := rawFrame(t, []map[string]string{
		{"order_item_id": "1", "order_city": "Bogotá"},
		{"order_item_id": "2", "order_city": "Nowhere"},
	})

	// Keys built from a frame that never saw "Nowhere".
	keysFrame := rawFrame(t, []map[string]string{
		{"order_city": "Bogotá"},
	})

	orders, err := BuildFact(f, buildKeys(t, keysFrame), zerolog.Nop())
	if err != nil {
		t.Fatalf("BuildFact: %v", err)
	}

	if len(orders) != 2 {
		t.Fatalf("unmatched row must not be dropped: got %d rows, want 2", len(orders))
	}
	if orders[0].LocationID == nil {
		t.Error("matched row lost its location key")
	}
	if orders[1].LocationID != nil {
		t.Errorf("unmatched row location_id = %v, want nil", *orders[1].LocationID)
	}
}

func TestBuildFactReferentialIntegrity(t *testing.T) {
	f := rawFrame(t, []map[string]string{
		{"order_item_id": "1", "order_city": "Bogotá"},
		{"order_item_id": "2", "order_city": "Medellín"},
		{"order_item_id": "3", "order_city": "Cali"},
		{"order_item_id": "4", "order_city": "Bogotá"},
	})

	keys := buildKeys(t, f)
	orders, err := BuildFact(f, keys, zerolog.Nop())
	if err != nil {
		t.Fatalf("BuildFact: %v", err)
	}

	valid := make(map[int]bool, len(keys))
	for _, id := range keys {
		valid[id] = true
	}
	for i, o := range orders {
		if o.LocationID != nil && !valid[*o.LocationID] {
			t.Errorf("row %d references location %d, which is not in the dimension", i, *o.LocationID)
		}
	}
}

func TestBuildFactRowCountMatchesFrame(t *testing.T) {
	var overrides []map[string]string
	for i := 0; i < 25; i++ {
		overrides = append(overrides, map[string]string{"order_item_id": strconv.Itoa(i + 1)})
	}
	f := rawFrame(t, overrides)

	orders, err := BuildFact(f, buildKeys(t, f), zerolog.Nop())
	if err != nil {
		t.Fatalf("BuildFact: %v", err)
	}
	if len(orders) != f.Len() {
		t.Errorf("got %d fact rows for %d raw rows", len(orders), f.Len())
	}
}

func TestBuildFactBadDateIsFatal(t *testing.T) {
	f := rawFrame(t, []map[string]string{
		{"order_item_id": "1"},
		{"order_item_id": "2", "shipping_date_dateorders": "not-a-date"},
	})

	_, err := BuildFact(f, buildKeys(t, f), zerolog.Nop())
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if extErr.Row != 2 {
		t.Errorf("failing row = %d, want 2", extErr.Row)
	}
}

func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"1/31/2018 22:56", time.Date(2018, 1, 31, 22, 56, 0, 0, time.UTC)},
		{"12/1/2015 0:05", time.Date(2015, 12, 1, 0, 5, 0, 0, time.UTC)},
		{"2018-01-31 22:56:00", time.Date(2018, 1, 31, 22, 56, 0, 0, time.UTC)},
		{"2018-01-31", time.Date(2018, 1, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := parseDate(tt.in, "order_date_dateorders", 0)
		if err != nil {
			t.Errorf("parseDate(%q): %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
