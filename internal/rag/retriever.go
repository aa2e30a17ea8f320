// Package rag turns a user question into retrieved context and assembles the
// prompt that grounds the model's answer in that context.
package rag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aitechroberts/paperchat/internal/knowledge"
)

// Searcher is the slice of the knowledge store the retriever needs.
type Searcher interface {
	Search(ctx context.Context, query string, opts ...knowledge.SearchOption) ([]knowledge.Result, error)
}

// Result is one retrieved piece of context.
type Result struct {
	Text   string
	Source string
	Score  float32
}

// Retriever answers similarity queries against the knowledge store.
type Retriever struct {
	store  Searcher
	logger *slog.Logger
}

// NewRetriever wires a retriever to its store.
func NewRetriever(store Searcher, logger *slog.Logger) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{store: store, logger: logger}
}

// Retrieve returns up to k context pieces most similar to query, best first.
// An empty index yields an empty result, never an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]Result, error) {
	if k <= 0 {
		return nil, fmt.Errorf("top-k must be positive, got %d", k)
	}

	hits, err := r.store.Search(ctx, query, knowledge.WithTopK(k))
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}

	results := make([]Result, len(hits))
	for i, h := range hits {
		results[i] = Result{
			Text:   h.Text,
			Source: h.Metadata[knowledge.MetaSource],
			Score:  h.Similarity,
		}
	}

	r.logger.Debug("retrieved context", "query_length", len(query), "results", len(results))
	return results, nil
}
