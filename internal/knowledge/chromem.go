package knowledge

import (
	"context"
	"fmt"
	"strconv"

	chromem "github.com/philippgille/chromem-go"
)

// upsertConcurrency bounds parallel embedding persistence inside chromem-go.
const upsertConcurrency = 4

// ChromemIndex implements Index on top of an embedded, persistent chromem-go
// collection. Vectors are supplied by the Store; chromem's own embedding
// function is never invoked.
type ChromemIndex struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// OpenChromem opens (or creates) the persistent database under dir and the
// named collection inside it. A manifest alongside the database records which
// embedder produced the vectors; reopening with a different model or
// dimension returns ErrEmbedderMismatch.
func OpenChromem(dir, collection, model string, dim int) (*ChromemIndex, error) {
	if err := checkManifest(dir, model, dim); err != nil {
		return nil, err
	}

	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		return nil, fmt.Errorf("open vector database at %s: %w", dir, err)
	}

	// Embeddings are always passed in explicitly, so the collection's
	// embedding function must never run.
	noEmbed := func(ctx context.Context, text string) ([]float32, error) {
		return nil, fmt.Errorf("collection %q has no embedding function; pass vectors explicitly", collection)
	}

	col, err := db.GetOrCreateCollection(collection, nil, noEmbed)
	if err != nil {
		return nil, fmt.Errorf("open collection %q: %w", collection, err)
	}

	return &ChromemIndex{db: db, collection: col}, nil
}

// Upsert implements Index.
func (c *ChromemIndex) Upsert(ctx context.Context, records []Record, embeddings [][]float32) error {
	if len(records) != len(embeddings) {
		return fmt.Errorf("got %d records but %d embeddings", len(records), len(embeddings))
	}
	if len(records) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(records))
	for i, r := range records {
		docs[i] = chromem.Document{
			ID:        r.ID,
			Content:   r.Text,
			Metadata:  r.Metadata,
			Embedding: embeddings[i],
		}
	}
	return c.collection.AddDocuments(ctx, docs, upsertConcurrency)
}

// Query implements Index. chromem rejects result counts above the collection
// size, so k is clamped before querying.
func (c *ChromemIndex) Query(ctx context.Context, embedding []float32, k int) ([]Result, error) {
	count := c.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	hits, err := c.collection.QueryEmbedding(ctx, embedding, k, nil, nil)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(hits))
	for i, h := range hits {
		results[i] = Result{
			Record: Record{
				ID:       h.ID,
				Text:     h.Content,
				Metadata: h.Metadata,
			},
			Similarity: h.Similarity,
		}
	}
	return results, nil
}

// Has implements Index.
func (c *ChromemIndex) Has(ctx context.Context, id string) bool {
	_, err := c.collection.GetByID(ctx, id)
	return err == nil
}

// Count implements Index.
func (c *ChromemIndex) Count() int {
	return c.collection.Count()
}

// ChunkID derives a stable record ID from the document hash and chunk
// position, so re-ingesting the same file writes the same IDs.
func ChunkID(docID string, index int) string {
	return docID + ":" + strconv.Itoa(index)
}
