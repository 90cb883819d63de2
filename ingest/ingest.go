// Package ingest builds and incrementally repairs the hotel knowledge
// graph from flat source records. Every load operation uses
// merge-or-update semantics keyed on the declared unique keys, so
// reruns against unchanged input leave the graph unchanged.
package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tripgraph/tripgraph"
)

// Default batch sizes. Review chunks are smaller than traveller chunks
// because each review row touches more entities and edges.
const (
	DefaultDeleteBatch    = 10000
	DefaultTravellerChunk = 500
	DefaultReviewChunk    = 100
)

// Ingestor transforms flat records into the knowledge graph and
// maintains it idempotently across reruns.
type Ingestor struct {
	store          tripgraph.TxStore
	logger         *zap.Logger
	deleteBatch    int
	travellerChunk int
	reviewChunk    int
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(in *Ingestor) {
		in.logger = l
	}
}

// WithDeleteBatch bounds how many nodes a single ResetAll transaction
// deletes.
func WithDeleteBatch(n int) Option {
	return func(in *Ingestor) {
		in.deleteBatch = n
	}
}

// WithTravellerChunk sets the traveller load chunk size.
func WithTravellerChunk(n int) Option {
	return func(in *Ingestor) {
		in.travellerChunk = n
	}
}

// WithReviewChunk sets the review load chunk size.
func WithReviewChunk(n int) Option {
	return func(in *Ingestor) {
		in.reviewChunk = n
	}
}

// New creates an Ingestor with the given options.
func New(store tripgraph.TxStore, opts ...Option) *Ingestor {
	in := &Ingestor{
		store:          store,
		logger:         zap.NewNop(),
		deleteBatch:    DefaultDeleteBatch,
		travellerChunk: DefaultTravellerChunk,
		reviewChunk:    DefaultReviewChunk,
	}
	for _, opt := range opts {
		opt(in)
	}

	return in
}

// Deleting an unbounded node set in one transaction risks timeouts and
// lock contention on large graphs; bounding the batch keeps each
// transaction small while guaranteeing eventual completion.
const resetQuery = `
MATCH (n)
WITH n LIMIT $batch
DETACH DELETE n
RETURN count(n) AS deleted`

// ResetAll deletes the whole graph in bounded batches and returns the
// total number of nodes deleted. It is the only destructive operation
// and must never run concurrently with a load. A failure mid-loop
// leaves a partially cleared graph; re-invoking resumes safely.
func (in *Ingestor) ResetAll(ctx context.Context) (int, error) {
	total := 0

	for {
		rows, err := in.store.Execute(ctx, resetQuery, map[string]any{"batch": in.deleteBatch})
		if err != nil {
			return total, fmt.Errorf("ingest: reset batch: %w", err)
		}

		deleted := intColumn(rows, "deleted")
		total += deleted

		in.logger.Debug("deleted batch", zap.Int("deleted", deleted))

		if deleted == 0 {
			break
		}
	}

	in.logger.Info("graph cleared", zap.Int("total_deleted", total))

	return total, nil
}

const hotelQuery = `
UNWIND $batch AS row
MERGE (c:Country {name: row.country})
MERGE (ci:City {name: row.city})
MERGE (ci)-[:LOCATED_IN]->(c)
MERGE (h:Hotel {hotel_id: row.hotel_id})
SET h.name = row.hotel_name,
    h.star_rating = row.star_rating,
    h.cleanliness_base = row.cleanliness_base,
    h.comfort_base = row.comfort_base,
    h.facilities_base = row.facilities_base
MERGE (h)-[:LOCATED_IN]->(ci)`

// LoadHotels upserts Country, City and Hotel nodes with their
// LOCATED_IN edges in a single transaction. Hotel attributes use
// overwrite semantics: last write wins, which is what makes reruns
// safe. Callers must ensure the whole file fits one transaction, or
// split it first.
func (in *Ingestor) LoadHotels(ctx context.Context, records []HotelRecord) error {
	batch := make([]map[string]any, len(records))
	for i, r := range records {
		batch[i] = map[string]any{
			"hotel_id":         r.HotelID,
			"hotel_name":       r.Name,
			"city":             r.City,
			"country":          r.Country,
			"star_rating":      r.StarRating,
			"cleanliness_base": r.CleanlinessBase,
			"comfort_base":     r.ComfortBase,
			"facilities_base":  r.FacilitiesBase,
		}
	}

	err := in.runInTx(ctx, hotelQuery, map[string]any{"batch": batch})
	if err != nil {
		return fmt.Errorf("ingest: load hotels: %w", err)
	}

	in.logger.Info("hotels loaded", zap.Int("count", len(records)))

	return nil
}

const travellerQuery = `
UNWIND $batch AS row
MERGE (c:Country {name: row.country})
MERGE (t:Traveller {user_id: row.user_id})
SET t.age = row.age_group,
    t.type = row.traveller_type,
    t.gender = row.user_gender
MERGE (t)-[:FROM_COUNTRY]->(c)`

// LoadTravellers upserts Country and Traveller nodes with FROM_COUNTRY
// edges, chunked to bound transaction size. Each chunk commits
// independently: a later chunk's failure does not roll back earlier
// chunks (at-least-once, not atomic across the file). Returns the
// number of rows loaded.
func (in *Ingestor) LoadTravellers(ctx context.Context, records []TravellerRecord) (int, error) {
	loaded := 0

	for start := 0; start < len(records); start += in.travellerChunk {
		chunk := records[start:min(start+in.travellerChunk, len(records))]

		batch := make([]map[string]any, len(chunk))
		for i, r := range chunk {
			batch[i] = map[string]any{
				"user_id":        r.UserID,
				"country":        r.Country,
				"age_group":      r.AgeGroup,
				"traveller_type": r.TravellerType,
				"user_gender":    r.Gender,
			}
		}

		err := in.runInTx(ctx, travellerQuery, map[string]any{"batch": batch})
		if err != nil {
			return loaded, fmt.Errorf("ingest: load travellers chunk at %d: %w", start, err)
		}

		loaded += len(chunk)

		in.logger.Debug("travellers loaded", zap.Int("loaded", loaded))
	}

	in.logger.Info("travellers loaded", zap.Int("count", loaded))

	return loaded, nil
}

// The review query MATCHes the referenced Traveller and Hotel rather
// than merging them: a row naming an unknown key drops out of the
// UNWIND stream and no Review or edges are created for it. The final
// count reports how many rows survived, which is what lets the caller
// account for the dropped ones.
const reviewQuery = `
UNWIND $batch AS row
MATCH (t:Traveller {user_id: row.user_id})
MATCH (h:Hotel {hotel_id: row.hotel_id})
MERGE (r:Review {review_id: row.review_id})
SET r.text = row.review_text,
    r.date = row.review_date,
    r.score_overall = row.score_overall,
    r.score_cleanliness = row.score_cleanliness,
    r.score_comfort = row.score_comfort,
    r.score_facilities = row.score_facilities,
    r.score_location = row.score_location,
    r.score_staff = row.score_staff,
    r.score_value_for_money = row.score_value_for_money
MERGE (t)-[:WROTE]->(r)
MERGE (r)-[:REVIEWED]->(h)
MERGE (t)-[:STAYED_AT]->(h)
RETURN count(r) AS merged`

// ReviewStats reports the outcome of a review load. Skipped counts the
// rows that referenced a Traveller or Hotel absent from the graph;
// those rows are expected partial failures, not corruption.
type ReviewStats struct {
	Loaded  int
	Skipped int
}

// LoadReviews upserts Review nodes and their WROTE, REVIEWED and
// STAYED_AT edges, chunked. Every chunk runs in its own isolated
// transaction, independent of anything the caller holds open: review
// volume dominates the dataset and small independent transactions keep
// lock duration and memory pressure down. A failed chunk is retryable
// in full; already-committed chunks are unaffected.
func (in *Ingestor) LoadReviews(ctx context.Context, records []ReviewRecord) (ReviewStats, error) {
	var stats ReviewStats

	for start := 0; start < len(records); start += in.reviewChunk {
		chunk := records[start:min(start+in.reviewChunk, len(records))]

		batch := make([]map[string]any, len(chunk))
		for i, r := range chunk {
			batch[i] = map[string]any{
				"review_id":             r.ReviewID,
				"user_id":               r.UserID,
				"hotel_id":              r.HotelID,
				"review_text":           r.Text,
				"review_date":           r.Date,
				"score_overall":         r.ScoreOverall,
				"score_cleanliness":     r.ScoreCleanliness,
				"score_comfort":         r.ScoreComfort,
				"score_facilities":      r.ScoreFacilities,
				"score_location":        r.ScoreLocation,
				"score_staff":           r.ScoreStaff,
				"score_value_for_money": r.ScoreValueForMoney,
			}
		}

		tx, err := in.store.Begin(ctx)
		if err != nil {
			return stats, fmt.Errorf("ingest: load reviews chunk at %d: %w", start, err)
		}

		rows, err := tx.Execute(ctx, reviewQuery, map[string]any{"batch": batch})
		if err != nil {
			_ = tx.Rollback(ctx)

			return stats, fmt.Errorf("ingest: load reviews chunk at %d: %w", start, err)
		}

		err = tx.Commit(ctx)
		if err != nil {
			return stats, fmt.Errorf("ingest: load reviews chunk at %d: %w", start, err)
		}

		merged := intColumn(rows, "merged")
		skipped := len(chunk) - merged

		stats.Loaded += merged
		stats.Skipped += skipped

		if skipped > 0 {
			in.logger.Warn("review rows skipped: unknown traveller or hotel",
				zap.Int("chunk_start", start),
				zap.Int("skipped", skipped))
		}

		in.logger.Debug("reviews loaded", zap.Int("loaded", stats.Loaded))
	}

	in.logger.Info("reviews loaded",
		zap.Int("count", stats.Loaded),
		zap.Int("skipped", stats.Skipped))

	return stats, nil
}

const visaQuery = `
UNWIND $batch AS row
MERGE (c1:Country {name: row.from})
MERGE (c2:Country {name: row.to})
MERGE (c1)-[v:NEEDS_VISA]->(c2)
SET v.visa_type = row.visa_type`

// LoadVisaRequirements upserts Country pairs and a NEEDS_VISA edge
// carrying the visa type, in a single transaction.
func (in *Ingestor) LoadVisaRequirements(ctx context.Context, records []VisaRecord) error {
	batch := make([]map[string]any, len(records))
	for i, r := range records {
		batch[i] = map[string]any{
			"from":      r.From,
			"to":        r.To,
			"visa_type": r.VisaType,
		}
	}

	err := in.runInTx(ctx, visaQuery, map[string]any{"batch": batch})
	if err != nil {
		return fmt.Errorf("ingest: load visa requirements: %w", err)
	}

	in.logger.Info("visa requirements loaded", zap.Int("count", len(records)))

	return nil
}

// Hotels with no reviews never match and keep the field unset; a
// missing average is distinct from an average of zero.
const scoreQuery = `
MATCH (h:Hotel)<-[:REVIEWED]-(r:Review)
WITH h, avg(r.score_overall) AS avg_score
SET h.average_reviews_score = avg_score`

// RecomputeHotelScores sets every reviewed hotel's
// average_reviews_score to the mean overall score of its incident
// reviews. Must run again whenever review data changes.
func (in *Ingestor) RecomputeHotelScores(ctx context.Context) error {
	_, err := in.store.Execute(ctx, scoreQuery, nil)
	if err != nil {
		return fmt.Errorf("ingest: recompute hotel scores: %w", err)
	}

	in.logger.Info("hotel scores recomputed")

	return nil
}

// runInTx executes a single statement inside its own transaction.
func (in *Ingestor) runInTx(ctx context.Context, query string, params map[string]any) error {
	tx, err := in.store.Begin(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Execute(ctx, query, params)
	if err != nil {
		_ = tx.Rollback(ctx)

		return err
	}

	return tx.Commit(ctx)
}

// intColumn reads an integer column from the first result row.
func intColumn(rows []map[string]any, key string) int {
	if len(rows) == 0 {
		return 0
	}

	switch v := rows[0][key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	}

	return 0
}
