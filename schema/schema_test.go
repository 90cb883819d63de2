package schema_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripgraph/tripgraph/schema"
)

type fakeStore struct {
	queries []string
	err     error
}

func (f *fakeStore) Execute(_ context.Context, query string, _ map[string]any) ([]map[string]any, error) {
	f.queries = append(f.queries, query)

	return nil, f.err
}

func TestEnsureConstraints_DeclaresEveryKey(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	m := schema.New(store)

	require.NoError(t, m.EnsureConstraints(context.Background()))
	require.Len(t, store.queries, 5)

	wants := []string{
		"(t:Traveller) REQUIRE t.user_id IS UNIQUE",
		"(h:Hotel) REQUIRE h.hotel_id IS UNIQUE",
		"(c:City) REQUIRE c.name IS UNIQUE",
		"(c:Country) REQUIRE c.name IS UNIQUE",
		"(r:Review) REQUIRE r.review_id IS UNIQUE",
	}

	joined := strings.Join(store.queries, "\n")
	for _, want := range wants {
		assert.Contains(t, joined, want)
	}

	// Safe on an empty database and on every startup.
	for _, q := range store.queries {
		assert.Contains(t, q, "IF NOT EXISTS")
	}
}

func TestEnsureConstraints_StoreErrorIsFatal(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("permission denied")
	store := &fakeStore{err: wantErr}

	err := schema.New(store).EnsureConstraints(context.Background())
	require.ErrorIs(t, err, wantErr)

	// First failure aborts, no further declarations attempted.
	assert.Len(t, store.queries, 1)
}
