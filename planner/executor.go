package planner

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tripgraph/tripgraph"
)

// Executor binds plans to a store and runs them.
type Executor struct {
	store  tripgraph.Querier
	logger *zap.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) ExecutorOption {
	return func(ex *Executor) {
		ex.logger = l
	}
}

// NewExecutor creates an Executor over the given store.
func NewExecutor(store tripgraph.Querier, opts ...ExecutorOption) *Executor {
	ex := &Executor{
		store:  store,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ex)
	}

	return ex
}

// Execute plans the intent and, if a plan exists, runs it against the
// store, returning the raw result rows in store order. No plan and no
// matching rows both yield an empty sequence, never an error.
func (ex *Executor) Execute(ctx context.Context, intent tripgraph.Intent, e tripgraph.Entities) ([]map[string]any, error) {
	p := Select(intent.Category, e)
	if p == nil {
		ex.logger.Debug("no plan for intent", zap.String("category", intent.Category))

		return []map[string]any{}, nil
	}

	ex.logger.Debug("executing plan",
		zap.String("category", intent.Category),
		zap.String("template", string(p.Template)))

	rows, err := ex.store.Execute(ctx, p.Query, p.Params)
	if err != nil {
		return nil, fmt.Errorf("planner: execute %s: %w", p.Template, err)
	}

	return rows, nil
}
