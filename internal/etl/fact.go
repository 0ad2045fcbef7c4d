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
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/chainsight/supplydw/internal/warehouse"
)

// Normalized source columns the fact projection requires, beyond the
// location tuple columns.
var factColumns = []string{
	"order_id", "order_item_id", "customer_id", "product_card_id",
	"order_date_dateorders", "shipping_date_dateorders", "shipping_mode",
	"days_for_shipment_scheduled", "days_for_shipping_real",
	"delivery_status", "order_status",
	"benefit_per_order", "sales", "order_item_quantity", "late_delivery_risk",
}

// Date layouts observed in the export. The primary form is M/D/YYYY H:MM;
// the rest cover exports that round-tripped through other tooling.
var dateLayouts = []string{
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006",
}

// BuildFact derives fact_orders: one output row per raw row, enriched with
// the location surrogate key and with dates parsed. Rows whose location
// tuple is not in keys get a nil location key rather than being dropped.
// Dates are load-bearing for every time-series consumer, so a parse failure
// on any row aborts the run instead of coercing to null.
func BuildFact(f *Frame, keys LocationKeys, logger zerolog.Logger) ([]warehouse.OrderFact, error) {
	idx, err := f.Require(warehouse.TableOrders, factColumns...)
	if err != nil {
		logger.Error().Err(err).Msg("Fact build failed")
		return nil, err
	}
	locIdx, err := f.Require(warehouse.TableOrders, locationColumns...)
	if err != nil {
		logger.Error().Err(err).Msg("Fact build failed")
		return nil, err
	}

	out := make([]warehouse.OrderFact, 0, f.Len())
	unmatched := 0
	for i := 0; i < f.Len(); i++ {
		row := f.Row(i)

		fact, err := buildFactRow(row, idx, i)
		if err != nil {
			logger.Error().Err(err).Msg("Fact build failed")
			return nil, err
		}

		tuple := LocationTuple{
			Market:  row[locIdx[0]],
			Region:  row[locIdx[1]],
			Country: row[locIdx[2]],
			City:    row[locIdx[3]],
		}
		if id, ok := keys[tuple]; ok {
			fact.LocationID = &id
		} else {
			// Should be unreachable when keys was built from the same frame,
			// but a null key is still better than a dangling reference.
			unmatched++
		}

		out = append(out, fact)
	}

	ev := logger.Info().Int("rows", len(out))
	if unmatched > 0 {
		ev = ev.Int("unmatched_locations", unmatched)
	}
	ev.Msg("Fact table built")
	return out, nil
}

func buildFactRow(row []string, idx []int, i int) (warehouse.OrderFact, error) {
	var fact warehouse.OrderFact
	var err error

	if fact.OrderID, err = parseInt(row[idx[0]], "order_id", i); err != nil {
		return fact, err
	}
	if fact.OrderItemID, err = parseInt(row[idx[1]], "order_item_id", i); err != nil {
		return fact, err
	}
	if fact.CustomerID, err = parseInt(row[idx[2]], "customer_id", i); err != nil {
		return fact, err
	}
	if fact.ProductCardID, err = parseInt(row[idx[3]], "product_card_id", i); err != nil {
		return fact, err
	}
	if fact.OrderDate, err = parseDate(row[idx[4]], "order_date_dateorders", i); err != nil {
		return fact, err
	}
	if fact.ShippingDate, err = parseDate(row[idx[5]], "shipping_date_dateorders", i); err != nil {
		return fact, err
	}
	fact.ShippingMode = row[idx[6]]
	if fact.DaysScheduled, err = parseInt(row[idx[7]], "days_for_shipment_scheduled", i); err != nil {
		return fact, err
	}
	if fact.DaysReal, err = parseInt(row[idx[8]], "days_for_shipping_real", i); err != nil {
		return fact, err
	}
	fact.DeliveryStatus = row[idx[9]]
	fact.OrderStatus = row[idx[10]]
	if fact.BenefitPerOrder, err = parseFloat(row[idx[11]], "benefit_per_order", i); err != nil {
		return fact, err
	}
	if fact.SalesAmount, err = parseFloat(row[idx[12]], "sales", i); err != nil {
		return fact, err
	}
	if fact.OrderQuantity, err = parseInt(row[idx[13]], "order_item_quantity", i); err != nil {
		return fact, err
	}
	if fact.LateDeliveryRisk, err = parseInt(row[idx[14]], "late_delivery_risk", i); err != nil {
		return fact, err
	}
	return fact, nil
}

func parseDate(s, column string, row int) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ExtractionError{
		Row: row + 1,
		Err: fmt.Errorf("column %s: unparseable date %q", column, s),
	}
}
