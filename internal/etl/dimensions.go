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
	"strconv"

	"github.com/rs/zerolog"

	"github.com/chainsight/supplydw/internal/warehouse"
)

// Normalized source columns each dimension projects.
var (
	customerColumns = []string{
		"customer_id", "customer_fname", "customer_lname",
		"customer_segment", "customer_city", "customer_state", "customer_country",
	}
	productColumns = []string{
		"product_card_id", "product_name", "category_name",
		"department_name", "product_price",
	}
	locationColumns = []string{
		"market", "order_region", "order_country", "order_city",
	}
)

// LocationTuple is the natural key of dim_location.
type LocationTuple struct {
	Market  string
	Region  string
	Country string
	City    string
}

// LocationKeys maps each distinct location tuple to its surrogate key. It is
// built once per run, in first-appearance order, and passed by value into
// fact building; it is never mutated afterwards.
type LocationKeys map[LocationTuple]int

// BuildCustomers derives dim_customers from the raw frame: the fixed
// seven-column projection, deduplicated by customer identifier, keeping the
// first occurrence in source row order.
func BuildCustomers(f *Frame, logger zerolog.Logger) ([]warehouse.Customer, error) {
	idx, err := f.Require(warehouse.TableCustomers, customerColumns...)
	if err != nil {
		logger.Error().Err(err).Msg("Customer dimension failed")
		return nil, err
	}

	seen := make(map[int]bool)
	var out []warehouse.Customer
	for i := 0; i < f.Len(); i++ {
		row := f.Row(i)
		id, err := parseInt(row[idx[0]], "customer_id", i)
		if err != nil {
			logger.Error().Err(err).Msg("Customer dimension failed")
			return nil, err
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, warehouse.Customer{
			CustomerID: id,
			FirstName:  row[idx[1]],
			LastName:   row[idx[2]],
			Segment:    row[idx[3]],
			City:       row[idx[4]],
			State:      row[idx[5]],
			Country:    row[idx[6]],
		})
	}

	logger.Info().Int("rows", len(out)).Msg("Customer dimension built")
	return out, nil
}

// BuildProducts derives dim_products, deduplicated by product card
// identifier, keep-first.
func BuildProducts(f *Frame, logger zerolog.Logger) ([]warehouse.Product, error) {
	idx, err := f.Require(warehouse.TableProducts, productColumns...)
	if err != nil {
		logger.Error().Err(err).Msg("Product dimension failed")
		return nil, err
	}

	seen := make(map[int]bool)
	var out []warehouse.Product
	for i := 0; i < f.Len(); i++ {
		row := f.Row(i)
		id, err := parseInt(row[idx[0]], "product_card_id", i)
		if err != nil {
			logger.Error().Err(err).Msg("Product dimension failed")
			return nil, err
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		price, err := parseFloat(row[idx[4]], "product_price", i)
		if err != nil {
			logger.Error().Err(err).Msg("Product dimension failed")
			return nil, err
		}
		out = append(out, warehouse.Product{
			ProductCardID:  id,
			ProductName:    row[idx[1]],
			CategoryName:   row[idx[2]],
			DepartmentName: row[idx[3]],
			ProductPrice:   price,
		})
	}

	logger.Info().Int("rows", len(out)).Msg("Product dimension built")
	return out, nil
}

// BuildLocations derives dim_location: distinct (market, region, country,
// city) tuples in first-appearance order, each assigned a dense 1-based
// surrogate key. The returned LocationKeys map is the only way fact rows
// reference locations, and identical input always yields identical keys.
func BuildLocations(f *Frame, logger zerolog.Logger) ([]warehouse.Location, LocationKeys, error) {
	idx, err := f.Require(warehouse.TableLocation, locationColumns...)
	if err != nil {
		logger.Error().Err(err).Msg("Location dimension failed")
		return nil, nil, err
	}

	keys := make(LocationKeys)
	var out []warehouse.Location
	for i := 0; i < f.Len(); i++ {
		row := f.Row(i)
		tuple := LocationTuple{
			Market:  row[idx[0]],
			Region:  row[idx[1]],
			Country: row[idx[2]],
			City:    row[idx[3]],
		}
		if _, ok := keys[tuple]; ok {
			continue
		}
		id := len(out) + 1
		keys[tuple] = id
		out = append(out, warehouse.Location{
			LocationID: id,
			Market:     tuple.Market,
			Region:     tuple.Region,
			Country:    tuple.Country,
			City:       tuple.City,
		})
	}

	logger.Info().Int("rows", len(out)).Msg("Location dimension built")
	return out, keys, nil
}

func parseInt(s, column string, row int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ExtractionError{Row: row + 1, Err: fmt.Errorf("column %s: %w", column, err)}
	}
	return v, nil
}

func parseFloat(s, column string, row int) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ExtractionError{Row: row + 1, Err: fmt.Errorf("column %s: %w", column, err)}
	}
	return v, nil
}
