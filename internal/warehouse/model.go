//-------------------------------------------------------------------------
//
// Supply Chain Warehouse Builder
//
// Copyright (c) 2025 - 2026, Chainsight Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package warehouse defines the star-schema target model: the typed schema
// descriptor, the row types for each table, and the read-only analytic
// queries used by downstream consumers.
package warehouse

import "time"

// Warehouse table names, in dependency order.
const (
	TableCustomers = "dim_customers"
	TableProducts  = "dim_products"
	TableLocation  = "dim_location"
	TableOrders    = "fact_orders"
)

// Customer is one row of dim_customers: the first-observed attribute values
// for a distinct customer identifier.
type Customer struct {
	CustomerID int
	FirstName  string
	LastName   string
	Segment    string
	City       string
	State      string
	Country    string
}

// Row returns the column values in dim_customers column order.
func (c Customer) Row() []any {
	return []any{c.CustomerID, c.FirstName, c.LastName, c.Segment, c.City, c.State, c.Country}
}

// Product is one row of dim_products.
type Product struct {
	ProductCardID  int
	ProductName    string
	CategoryName   string
	DepartmentName string
	ProductPrice   float64
}

// Row returns the column values in dim_products column order.
func (p Product) Row() []any {
	return []any{p.ProductCardID, p.ProductName, p.CategoryName, p.DepartmentName, p.ProductPrice}
}

// Location is one row of dim_location. LocationID is a dense 1-based
// surrogate key assigned in order of first appearance in the raw frame.
type Location struct {
	LocationID int
	Market     string
	Region     string
	Country    string
	City       string
}

// Row returns the column values in dim_location column order.
func (l Location) Row() []any {
	return []any{l.LocationID, l.Market, l.Region, l.Country, l.City}
}

// OrderFact is one row of fact_orders: one source order line item with
// foreign keys into the three dimensions. LocationID is nil when the row's
// location tuple had no match, never a dangling reference.
type OrderFact struct {
	OrderID          int
	OrderItemID      int
	CustomerID       int
	ProductCardID    int
	LocationID       *int
	OrderDate        time.Time
	ShippingDate     time.Time
	ShippingMode     string
	DaysScheduled    int
	DaysReal         int
	DeliveryStatus   string
	OrderStatus      string
	BenefitPerOrder  float64
	SalesAmount      float64
	OrderQuantity    int
	LateDeliveryRisk int
}

// Row returns the column values in fact_orders column order.
func (o OrderFact) Row() []any {
	var loc any
	if o.LocationID != nil {
		loc = *o.LocationID
	}
	return []any{
		o.OrderID, o.OrderItemID, o.CustomerID, o.ProductCardID, loc,
		o.OrderDate, o.ShippingDate, o.ShippingMode,
		o.DaysScheduled, o.DaysReal, o.DeliveryStatus, o.OrderStatus,
		o.BenefitPerOrder, o.SalesAmount, o.OrderQuantity, o.LateDeliveryRisk,
	}
}
