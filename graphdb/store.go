// Package graphdb implements the tripgraph store contracts on Neo4j.
package graphdb

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/tripgraph/tripgraph"
)

// Store is a Neo4j-backed graph store.
type Store struct {
	driver neo4j.DriverWithContext
	db     string
}

// Open creates a Store from the given connection settings and verifies
// connectivity before returning.
func Open(ctx context.Context, cfg tripgraph.ConnConfig) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("graphdb: %w", err)
	}

	auth := neo4j.NoAuth()
	if cfg.Username != "" {
		auth = neo4j.BasicAuth(cfg.Username, cfg.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth)
	if err != nil {
		return nil, fmt.Errorf("graphdb: failed to create driver: %w", err)
	}

	err = driver.VerifyConnectivity(ctx)
	if err != nil {
		_ = driver.Close(ctx)

		return nil, fmt.Errorf("graphdb: failed to connect: %w", err)
	}

	return &Store{driver: driver, db: cfg.Database}, nil
}

func (s *Store) sessionConfig() neo4j.SessionConfig {
	cfg := neo4j.SessionConfig{
		AccessMode: neo4j.AccessModeWrite,
	}
	if s.db != "" {
		cfg.DatabaseName = s.db
	}

	return cfg
}

// Execute runs a single query in its own session and returns the
// results. Nodes and relationships are flattened so their properties
// are accessible as "alias.property" keys (e.g., "h.name" for RETURN h).
func (s *Store) Execute(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	session := s.driver.NewSession(ctx, s.sessionConfig())
	defer func() {
		_ = session.Close(ctx)
	}()

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("graphdb: query execution failed: %w", err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("graphdb: failed to collect results: %w", err)
	}

	rows := make([]map[string]any, len(records))
	for i, record := range records {
		rows[i] = flattenRecord(record.Keys, record.Values)
	}

	return rows, nil
}

// Begin starts an explicit transaction backed by its own session, so
// every Tx is isolated from every other. Commit or Rollback also
// closes the session.
func (s *Store) Begin(ctx context.Context) (tripgraph.Tx, error) { //nolint:ireturn // Interface return per TxStore contract
	session := s.driver.NewSession(ctx, s.sessionConfig())

	tx, err := session.BeginTransaction(ctx)
	if err != nil {
		_ = session.Close(ctx)

		return nil, fmt.Errorf("graphdb: failed to begin transaction: %w", err)
	}

	return &Tx{session: session, tx: tx}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	ctx := context.Background()

	if s.driver != nil {
		err := s.driver.Close(ctx)
		if err != nil {
			return fmt.Errorf("graphdb: failed to close driver: %w", err)
		}
	}

	return nil
}

// Tx wraps a Neo4j explicit transaction and its owning session.
type Tx struct {
	session neo4j.SessionWithContext
	tx      neo4j.ExplicitTransaction
}

// Execute runs a query within this transaction.
func (t *Tx) Execute(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	result, err := t.tx.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("graphdb: query execution failed: %w", err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("graphdb: failed to collect results: %w", err)
	}

	rows := make([]map[string]any, len(records))
	for i, record := range records {
		rows[i] = flattenRecord(record.Keys, record.Values)
	}

	return rows, nil
}

// Commit commits the transaction and closes its session.
func (t *Tx) Commit(ctx context.Context) error {
	defer func() {
		_ = t.session.Close(ctx)
	}()

	return t.tx.Commit(ctx)
}

// Rollback aborts the transaction and closes its session.
func (t *Tx) Rollback(ctx context.Context) error {
	defer func() {
		_ = t.session.Close(ctx)
	}()

	return t.tx.Rollback(ctx)
}

// flattenRecord converts a Neo4j record into a flat map.
// Nodes and relationships are expanded so their properties are
// accessible as "alias.property" (e.g., h.name, v.visa_type).
func flattenRecord(keys []string, values []any) map[string]any {
	result := make(map[string]any)

	for i, key := range keys {
		flattenValue(result, key, values[i])
	}

	return result
}

func flattenValue(result map[string]any, key string, value any) {
	switch v := value.(type) {
	case dbtype.Node:
		// Expand node properties: h -> h.name, h.star_rating, etc.
		for prop, propVal := range v.Props {
			result[key+"."+prop] = propVal
		}

		result[key+".labels"] = v.Labels
		result[key+".elementId"] = v.ElementId

	case dbtype.Relationship:
		for prop, propVal := range v.Props {
			result[key+"."+prop] = propVal
		}

		result[key+".type"] = v.Type
		result[key+".elementId"] = v.ElementId

	case map[string]any:
		// Nested maps: expand with dot notation
		for k, val := range v {
			result[key+"."+k] = val
		}

	default:
		// Primitives and lists: store directly
		result[key] = v
	}
}

// Ensure Store implements the store contracts.
var (
	_ tripgraph.Store   = (*Store)(nil)
	_ tripgraph.TxStore = (*Store)(nil)
	_ tripgraph.Tx      = (*Tx)(nil)
)
