// Package store defines the Table Store: five named collections of
// JSON records with wholesale read and wholesale replace as the only
// primitives. There is no row-level write; repositories rebuild a
// collection and swap it in.
package store

import (
	"context"
	"encoding/json"
)

// Table names one of the persisted collections.
type Table string

const (
	TableAccounts       Table = "accounts"
	TableListings       Table = "listings"
	TableTenancies      Table = "tenancies"
	TableTransactions   Table = "transactions"
	TableServiceTickets Table = "service_tickets"
)

// Record is one JSON-serialized entity.
type Record = json.RawMessage

// TableWrite is a pending wholesale replacement of a table's contents.
type TableWrite struct {
	Table   Table
	Records []Record
}

// Store is the persistence contract the whole ledger is built on.
type Store interface {
	// Read returns a table's records in insertion order. A table that
	// was never written is empty, not an error.
	Read(ctx context.Context, table Table) ([]Record, error)

	// Write replaces the contents of every listed table in a single
	// atomic step: no reader observes a partially applied write, and
	// either all tables are replaced or none are. The engine relies on
	// the multi-table form to flip listing occupancy together with the
	// tenancy write that caused it.
	//
	// Failures wrap domain.ErrStorageUnavailable.
	Write(ctx context.Context, writes ...TableWrite) error
}
