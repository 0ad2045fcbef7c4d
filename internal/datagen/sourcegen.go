//-------------------------------------------------------------------------
//
// Supply Chain Warehouse Builder
//
// Copyright (c) 2025 - 2026, Chainsight Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen generates a synthetic supply-chain export in the same
// shape as the real source file: human-readable headers with spaces,
// hyphens and parentheses, ISO-8859-1 encoding, one row per order line
// item. It exists for demos and end-to-end testing without the production
// dataset.
package datagen

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Header row of the synthetic export, matching the source vocabulary before
// normalization.
var header = []string{
	"Type",
	"Days for shipping (real)",
	"Days for shipment (scheduled)",
	"Benefit per order",
	"Delivery Status",
	"Late_delivery_risk",
	"Category Name",
	"Customer City",
	"Customer Country",
	"Customer Fname",
	"Customer Id",
	"Customer Lname",
	"Customer Segment",
	"Customer State",
	"Department Name",
	"Market",
	"Order City",
	"Order Country",
	"order date (DateOrders)",
	"Order Id",
	"Order Item Id",
	"Order Item Quantity",
	"Sales",
	"Order Region",
	"Order Status",
	"Product Card Id",
	"Product Name",
	"Product Price",
	"shipping date (DateOrders)",
	"Shipping Mode",
}

var (
	markets       = []string{"LATAM", "Europe", "Pacific Asia", "USCA", "Africa"}
	segments      = []string{"Consumer", "Corporate", "Home Office"}
	shippingModes = []string{"Standard Class", "Second Class", "First Class", "Same Day"}
	orderStatuses = []string{"COMPLETE", "COMPLETE", "COMPLETE", "PENDING", "CLOSED", "PROCESSING"}
	payTypes      = []string{"DEBIT", "TRANSFER", "CASH", "PAYMENT"}
	departments   = []string{"Fitness", "Apparel", "Golf", "Footwear", "Outdoors", "Fan Shop"}
)

var regionsByMarket = map[string][]string{
	"LATAM":        {"South America", "Central America", "Caribbean"},
	"Europe":       {"Western Europe", "Northern Europe", "Southern Europe", "Eastern Europe"},
	"Pacific Asia": {"Southeast Asia", "South Asia", "Oceania", "Eastern Asia"},
	"USCA":         {"West of USA", "East of USA", "US Center", "Canada"},
	"Africa":       {"West Africa", "North Africa", "East Africa"},
}

var categoriesByDept = map[string][]string{
	"Fitness":  {"Cleats", "Fitness Accessories", "Strength Training"},
	"Apparel":  {"Men's Clothing", "Women's Apparel"},
	"Golf":     {"Golf Balls", "Golf Gloves", "Golf Shoes"},
	"Footwear": {"Sporting Goods", "Shoes"},
	"Outdoors": {"Camping & Hiking", "Fishing", "Water Sports"},
	"Fan Shop": {"Electronics", "Accessories", "Video Games"},
}

type customer struct {
	id      int
	fname   string
	lname   string
	segment string
	city    string
	state   string
	country string
}

type product struct {
	id         int
	name       string
	category   string
	department string
	price      float64
}

// Write generates rows order lines and writes them to path, ISO-8859-1
// encoded. The same seed always produces the same file.
func Write(path string, rows int, seed uint64) error {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	faker := gofakeit.New(seed)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating sample file: %w", err)
	}
	defer f.Close()

	// The real export is Latin-1; the extractor insists on it, so the
	// sample must be encoded the same way.
	w := csv.NewWriter(transform.NewWriter(f, charmap.ISO8859_1.NewEncoder()))

	if err := w.Write(header); err != nil {
		return err
	}

	customers := makeCustomers(faker, max(rows/10, 1))
	products := makeProducts(faker, 40)

	for i := 0; i < rows; i++ {
		if err := w.Write(orderLine(faker, i, customers, products)); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Sync()
}

func makeCustomers(faker *gofakeit.Faker, n int) []customer {
	out := make([]customer, n)
	for i := range out {
		out[i] = customer{
			id:      1001 + i,
			fname:   faker.FirstName(),
			lname:   faker.LastName(),
			segment: pick(faker, segments),
			city:    faker.City(),
			state:   faker.StateAbr(),
			country: "EE. UU.",
		}
	}
	return out
}

func makeProducts(faker *gofakeit.Faker, n int) []product {
	out := make([]product, n)
	for i := range out {
		dept := pick(faker, departments)
		out[i] = product{
			id:         101 + i,
			name:       faker.ProductName(),
			category:   pick(faker, categoriesByDept[dept]),
			department: dept,
			price:      faker.Price(10, 500),
		}
	}
	return out
}

func orderLine(faker *gofakeit.Faker, i int, customers []customer, products []product) []string {
	c := customers[faker.IntRange(0, len(customers)-1)]
	p := products[faker.IntRange(0, len(products)-1)]

	market := pick(faker, markets)
	region := pick(faker, regionsByMarket[market])

	scheduled := faker.IntRange(1, 4)
	real := scheduled + faker.IntRange(-1, 3)
	if real < 0 {
		real = 0
	}
	late := 0
	status := "Advance shipping"
	switch {
	case real > scheduled:
		late = 1
		status = "Late delivery"
	case real == scheduled:
		status = "Shipping on time"
	}

	orderDate := time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(faker.IntRange(0, 730*24)) * time.Hour)
	shipDate := orderDate.Add(time.Duration(real*24) * time.Hour)

	qty := faker.IntRange(1, 5)
	sales := p.price * float64(qty)
	benefit := sales * (faker.Float64Range(-0.2, 0.4))

	return []string{
		pick(faker, payTypes),
		strconv.Itoa(real),
		strconv.Itoa(scheduled),
		formatMoney(benefit),
		status,
		strconv.Itoa(late),
		p.category,
		c.city,
		c.country,
		c.fname,
		strconv.Itoa(c.id),
		c.lname,
		c.segment,
		c.state,
		p.department,
		market,
		faker.City(),
		faker.Country(),
		orderDate.Format("1/2/2006 15:04"),
		strconv.Itoa(50000 + i),
		strconv.Itoa(180000 + i),
		strconv.Itoa(qty),
		formatMoney(sales),
		region,
		pick(faker, orderStatuses),
		strconv.Itoa(p.id),
		p.name,
		formatMoney(p.price),
		shipDate.Format("1/2/2006 15:04"),
		pick(faker, shippingModes),
	}
}

func pick(faker *gofakeit.Faker, values []string) string {
	return values[faker.IntRange(0, len(values)-1)]
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
