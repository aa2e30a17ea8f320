// Package knowledge manages the vector index: embedding chunk text, storing
// records, and answering similarity queries.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

// Sentinel errors, checked with errors.Is.
var (
	// ErrEmbed indicates an embedder request failure.
	ErrEmbed = errors.New("embedding failed")

	// ErrIndex indicates a vector index read/write failure.
	ErrIndex = errors.New("vector index operation failed")

	// ErrDimensionMismatch indicates an embedding whose width does not match
	// the configured dimension. The record is rejected; a mismatched vector
	// in the index would silently poison every future query.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbedderMismatch indicates an existing index built with a different
	// embedder model or dimension than configured. Fatal at startup.
	ErrEmbedderMismatch = errors.New("index was built with a different embedder")
)

// Index is the vector storage the Store writes to and queries. Defined here,
// by the consumer, so tests can substitute fakes.
type Index interface {
	// Upsert persists records with their embeddings attached. Writing an
	// existing ID replaces the stored record.
	Upsert(ctx context.Context, records []Record, embeddings [][]float32) error

	// Query returns up to k nearest records by similarity, best first.
	// An empty index yields an empty slice, not an error.
	Query(ctx context.Context, embedding []float32, k int) ([]Result, error)

	// Has reports whether a record with the given ID exists.
	Has(ctx context.Context, id string) bool

	// Count returns the number of stored records.
	Count() int
}

// Store couples an Embedder with an Index and enforces the dimension
// invariant between them. Safe for concurrent use if its Index is.
type Store struct {
	index    Index
	embedder Embedder
	dim      int
	logger   *slog.Logger
}

// NewStore wires an embedder and index together. dim is the expected
// embedding width; every produced vector is checked against it.
func NewStore(index Index, embedder Embedder, dim int, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{index: index, embedder: embedder, dim: dim, logger: logger}
}

// Add embeds the records' text in one batch and upserts them.
func (s *Store) Add(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Text
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEmbed, err)
	}
	for i, e := range embeddings {
		if len(e) != s.dim {
			return fmt.Errorf("%w: record %q produced %d dimensions, index expects %d",
				ErrDimensionMismatch, records[i].ID, len(e), s.dim)
		}
	}

	if err := s.index.Upsert(ctx, records, embeddings); err != nil {
		return fmt.Errorf("%w: %v", ErrIndex, err)
	}

	s.logger.Debug("added records", "count", len(records))
	return nil
}

// Search embeds the query and returns the most similar records, ordered by
// decreasing similarity. Ties keep the index's insertion order (the sort is
// stable), so results are deterministic. An empty index returns an empty
// result, never an error.
func (s *Store) Search(ctx context.Context, query string, opts ...SearchOption) ([]Result, error) {
	cfg := buildSearchConfig(opts)
	if cfg.topK <= 0 {
		return nil, fmt.Errorf("top-k must be positive, got %d", cfg.topK)
	}

	if s.index.Count() == 0 {
		return nil, nil
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbed, err)
	}
	if len(embedding) != s.dim {
		return nil, fmt.Errorf("%w: query produced %d dimensions, index expects %d",
			ErrDimensionMismatch, len(embedding), s.dim)
	}

	results, err := s.index.Query(ctx, embedding, cfg.topK)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndex, err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	return results, nil
}

// Has reports whether a record ID is already indexed. Used by ingestion for
// duplicate detection.
func (s *Store) Has(ctx context.Context, id string) bool {
	return s.index.Has(ctx, id)
}

// Count returns the number of indexed records.
func (s *Store) Count() int {
	return s.index.Count()
}
