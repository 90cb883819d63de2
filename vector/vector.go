// Package vector maintains the similarity index over hotel feature
// embeddings: index declaration, population, and k-nearest search.
package vector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/tripgraph/tripgraph"
)

var (
	// ErrIndexUnavailable is returned when a search reaches a store
	// whose vector index has not been created yet. Distinct from an
	// empty result set.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrBadDimension is returned when the embedder produces a vector
	// of the wrong dimensionality. Partial-dimension vectors are
	// invalid; every stored embedding has exactly the configured
	// dimension.
	ErrBadDimension = errors.New("embedding has wrong dimension")
)

// Embedder computes a fixed-dimension embedding for a piece of text.
// The embedding model itself lives outside this module.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Defaults matching the sentence-transformer family the index was
// designed around.
const (
	DefaultIndexName = "hotel_embeddings"
	DefaultDimension = 384
)

// Manager maintains the hotel embedding index.
type Manager struct {
	store     tripgraph.Querier
	embedder  Embedder
	logger    *zap.Logger
	indexName string
	dimension int
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithIndexName overrides the index name.
func WithIndexName(name string) Option {
	return func(m *Manager) {
		m.indexName = name
	}
}

// WithDimension overrides the embedding dimension.
func WithDimension(d int) Option {
	return func(m *Manager) {
		m.dimension = d
	}
}

// New creates a Manager over the given store and embedder.
func New(store tripgraph.Querier, embedder Embedder, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		embedder:  embedder,
		logger:    zap.NewNop(),
		indexName: DefaultIndexName,
		dimension: DefaultDimension,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// EnsureIndex idempotently declares the cosine-similarity vector index
// over Hotel.embedding with the configured dimension.
func (m *Manager) EnsureIndex(ctx context.Context) error {
	// Index names cannot be parameterized in DDL.
	ddl := fmt.Sprintf(`CREATE VECTOR INDEX %s IF NOT EXISTS
FOR (h:Hotel)
ON (h.embedding)
OPTIONS {indexConfig: {
  `+"`vector.dimensions`"+`: toInteger($dim),
  `+"`vector.similarity_function`"+`: 'cosine'
}}`, m.indexName)

	_, err := m.store.Execute(ctx, ddl, map[string]any{"dim": m.dimension})
	if err != nil {
		return fmt.Errorf("vector: ensure index: %w", err)
	}

	m.logger.Info("vector index ensured",
		zap.String("index", m.indexName),
		zap.Int("dimension", m.dimension))

	return nil
}

const fetchQuery = `
MATCH (h:Hotel)-[:LOCATED_IN]->(c:City)-[:LOCATED_IN]->(co:Country)
RETURN h.hotel_id AS id, h.name AS name, h.star_rating AS stars,
       h.cleanliness_base AS clean, h.comfort_base AS comfort,
       h.facilities_base AS facilities, c.name AS city, co.name AS country`

const writeEmbeddingQuery = `
MATCH (h:Hotel {hotel_id: $id})
CALL db.create.setNodeVectorProperty(h, 'embedding', $embedding)`

// Populate renders every hotel's feature text, embeds it, and writes
// the vector back onto the Hotel node. Rerunning overwrites existing
// embeddings. Returns the number of hotels embedded.
func (m *Manager) Populate(ctx context.Context) (int, error) {
	rows, err := m.store.Execute(ctx, fetchQuery, nil)
	if err != nil {
		return 0, fmt.Errorf("vector: fetch hotels: %w", err)
	}

	m.logger.Info("generating embeddings", zap.Int("hotels", len(rows)))

	for _, row := range rows {
		text := featureText(row)

		vec, err := m.embedder.Embed(ctx, text)
		if err != nil {
			return 0, fmt.Errorf("vector: embed hotel %v: %w", row["id"], err)
		}

		if len(vec) != m.dimension {
			return 0, fmt.Errorf("vector: hotel %v: %w: got %d, want %d",
				row["id"], ErrBadDimension, len(vec), m.dimension)
		}

		_, err = m.store.Execute(ctx, writeEmbeddingQuery, map[string]any{
			"id":        row["id"],
			"embedding": toFloat64(vec),
		})
		if err != nil {
			return 0, fmt.Errorf("vector: write embedding for hotel %v: %w", row["id"], err)
		}
	}

	m.logger.Info("embeddings populated", zap.Int("hotels", len(rows)))

	return len(rows), nil
}

// featureText builds the deterministic textual description a hotel is
// embedded under: name, location, star rating and the three base
// sub-scores.
func featureText(row map[string]any) string {
	return fmt.Sprintf(
		"Hotel: %v\nLocation: %v, %v.\nRating: %v Stars.\nFeatures: Cleanliness %v, Comfort %v, Facilities %v.",
		row["name"], row["city"], row["country"], row["stars"],
		row["clean"], row["comfort"], row["facilities"])
}

const searchQuery = `
CALL db.index.vector.queryNodes($index, $k, $vector)
YIELD node, score
RETURN node.name AS hotel, score, node.star_rating AS stars, node.average_reviews_score AS rating`

// Hit is one vector search result.
type Hit struct {
	Hotel  string
	Score  float64
	Stars  float64
	Rating float64
}

// Search embeds the query text and returns the k nearest hotels by
// descending similarity score. Ties are broken by the store's native
// order, which is not deterministic.
func (m *Manager) Search(ctx context.Context, queryText string, k int) ([]Hit, error) {
	vec, err := m.embedder.Embed(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("vector: embed query: %w", err)
	}

	rows, err := m.store.Execute(ctx, searchQuery, map[string]any{
		"index":  m.indexName,
		"k":      k,
		"vector": toFloat64(vec),
	})
	if err != nil {
		if isMissingIndex(err) {
			return nil, fmt.Errorf("vector: index %q: %w", m.indexName, ErrIndexUnavailable)
		}

		return nil, fmt.Errorf("vector: search: %w", err)
	}

	hits := make([]Hit, len(rows))
	for i, row := range rows {
		hits[i] = Hit{
			Hotel:  stringValue(row["hotel"]),
			Score:  floatValue(row["score"]),
			Stars:  floatValue(row["stars"]),
			Rating: floatValue(row["rating"]),
		}
	}

	return hits, nil
}

// isMissingIndex reports whether a query failure means the vector index
// does not exist yet.
func isMissingIndex(err error) bool {
	var ne *neo4j.Neo4jError
	if errors.As(err, &ne) {
		if strings.Contains(ne.Code, "Schema") {
			return true
		}
	}

	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "no such vector") ||
		strings.Contains(msg, "index does not exist")
}

func toFloat64(vec []float32) []float64 {
	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = float64(v)
	}

	return out
}

func stringValue(v any) string {
	s, _ := v.(string)

	return s
}

func floatValue(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}

	return 0
}
