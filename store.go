// Package tripgraph holds the shared contracts of the hotel
// knowledge-graph data layer: graph store access, configuration, and
// the intent/entity structures handed over by the external NLU layer.
package tripgraph

import (
	"context"
	"errors"
)

// ErrNoTransactionSupport is returned when a store does not support
// explicit transactions.
var ErrNoTransactionSupport = errors.New("store does not support transactions")

// Querier executes a single parameterized graph query and returns the
// result rows as flat attribute maps.
type Querier interface {
	Execute(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}

// Store is a connection to the property-graph database.
type Store interface {
	Querier

	// Close releases any resources held by the store.
	Close() error
}

// Tx is an active graph transaction. Queries executed through a Tx are
// isolated until Commit or Rollback; either the whole transaction's
// mutation becomes visible or none of it does.
type Tx interface {
	Querier

	// Commit commits the transaction.
	Commit(ctx context.Context) error

	// Rollback aborts the transaction.
	Rollback(ctx context.Context) error
}

// TxStore is a Store that supports explicit transactions. The ingestion
// pipeline requires one: every chunk of a chunked load runs as its own
// independent Tx.
type TxStore interface {
	Store

	// Begin starts a new transaction.
	Begin(ctx context.Context) (Tx, error)
}
