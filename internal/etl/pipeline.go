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
	"context"

	"github.com/rs/zerolog"

	"github.com/chainsight/supplydw/internal/warehouse"
)

// State tracks pipeline progress. Failed is terminal and reachable from any
// in-progress state; there are no retries and no checkpoints, every
// invocation reprocesses the source file in full.
type State string

const (
	StateIdle        State = "idle"
	StateExtracted   State = "extracted"
	StateDimensioned State = "dimensioned"
	StateFactBuilt   State = "fact_built"
	StateLoaded      State = "loaded"
	StateFailed      State = "failed"
)

// Result holds the four derived tables of one run, ready for loading in
// dependency order.
type Result struct {
	Customers []warehouse.Customer
	Products  []warehouse.Product
	Locations []warehouse.Location
	Orders    []warehouse.OrderFact
}

// Loader persists a Result to the target store. The concrete implementation
// lives in internal/loader; the pipeline only needs this contract.
type Loader interface {
	Load(ctx context.Context, r *Result) error
}

// Pipeline sequences Extract, Build Dimensions, Build Fact, and Load. It is
// strictly sequential: each stage consumes the complete output of the
// previous one, because fact building depends on the finished location key
// assignment. A Pipeline is single-use.
type Pipeline struct {
	input  string
	loader Loader
	logger zerolog.Logger
	state  State
}

// NewPipeline builds a pipeline for one run over the export at input.
func NewPipeline(input string, loader Loader, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		input:  input,
		loader: loader,
		logger: logger,
		state:  StateIdle,
	}
}

// State returns the current pipeline state.
func (p *Pipeline) State() State { return p.state }

// Run executes the whole pipeline. On failure the pipeline enters the
// Failed state and the originating typed error is returned unwrapped, so
// the caller always knows which stage aborted the run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	frame, err := Extract(p.input, p.logger)
	if err != nil {
		p.state = StateFailed
		return nil, err
	}
	p.state = StateExtracted

	customers, err := BuildCustomers(frame, p.logger)
	if err != nil {
		p.state = StateFailed
		return nil, err
	}
	products, err := BuildProducts(frame, p.logger)
	if err != nil {
		p.state = StateFailed
		return nil, err
	}
	locations, keys, err := BuildLocations(frame, p.logger)
	if err != nil {
		p.state = StateFailed
		return nil, err
	}
	p.state = StateDimensioned

	orders, err := BuildFact(frame, keys, p.logger)
	if err != nil {
		p.state = StateFailed
		return nil, err
	}
	p.state = StateFactBuilt

	result := &Result{
		Customers: customers,
		Products:  products,
		Locations: locations,
		Orders:    orders,
	}

	if err := p.loader.Load(ctx, result); err != nil {
		p.state = StateFailed
		return nil, err
	}
	p.state = StateLoaded

	p.logger.Info().
		Int("customers", len(customers)).
		Int("products", len(products)).
		Int("locations", len(locations)).
		Int("orders", len(orders)).
		Msg("Pipeline complete")

	return result, nil
}
