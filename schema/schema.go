// Package schema declares the uniqueness constraints of the knowledge
// graph. One constraint per node label/key pair; all declarations are
// idempotent and safe to run on every startup.
package schema

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tripgraph/tripgraph"
)

// One uniqueness constraint per node label, keyed on the label's
// declared unique attribute.
var constraints = []string{
	"CREATE CONSTRAINT IF NOT EXISTS FOR (t:Traveller) REQUIRE t.user_id IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (h:Hotel) REQUIRE h.hotel_id IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (c:City) REQUIRE c.name IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (c:Country) REQUIRE c.name IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (r:Review) REQUIRE r.review_id IS UNIQUE",
}

// Manager declares the graph schema.
type Manager struct {
	store  tripgraph.Querier
	logger *zap.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// New creates a Manager over the given store.
func New(store tripgraph.Querier, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// EnsureConstraints declares every uniqueness constraint. A store-level
// failure (permissions, connectivity) is fatal to ingestion and
// surfaced immediately.
func (m *Manager) EnsureConstraints(ctx context.Context) error {
	for _, ddl := range constraints {
		_, err := m.store.Execute(ctx, ddl, nil)
		if err != nil {
			return fmt.Errorf("schema: ensure constraint: %w", err)
		}
	}

	m.logger.Info("schema constraints ensured", zap.Int("count", len(constraints)))

	return nil
}
