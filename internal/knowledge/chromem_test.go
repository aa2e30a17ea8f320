package knowledge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unitVec builds a normalized 3-dimensional vector for similarity tests.
func unitVec(x, y, z float32) []float32 {
	return []float32{x, y, z}
}

func TestChromemRoundtrip(t *testing.T) {
	dir := t.TempDir()
	index, err := OpenChromem(dir, "research_collection", "test-model", 3)
	require.NoError(t, err)

	ctx := context.Background()
	records := []Record{
		{ID: "doc:0", Text: "neural attention mechanisms", Metadata: map[string]string{MetaSource: "a.pdf", MetaChunkIndex: "0"}},
		{ID: "doc:1", Text: "gradient descent optimization", Metadata: map[string]string{MetaSource: "a.pdf", MetaChunkIndex: "1"}},
	}
	embeddings := [][]float32{
		unitVec(1, 0, 0),
		unitVec(0, 1, 0),
	}
	require.NoError(t, index.Upsert(ctx, records, embeddings))
	assert.Equal(t, 2, index.Count())
	assert.True(t, index.Has(ctx, "doc:0"))
	assert.False(t, index.Has(ctx, "doc:2"))

	// Query with the first record's exact vector; it must rank first.
	results, err := index.Query(ctx, unitVec(1, 0, 0), 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "doc:0", results[0].ID)
	assert.Equal(t, "neural attention mechanisms", results[0].Text)
	assert.Equal(t, "a.pdf", results[0].Metadata[MetaSource])
	assert.Greater(t, results[0].Similarity, results[1].Similarity)
}

func TestChromemQueryClampsK(t *testing.T) {
	index, err := OpenChromem(t.TempDir(), "research_collection", "test-model", 3)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, index.Upsert(ctx,
		[]Record{{ID: "only", Text: "single record"}},
		[][]float32{unitVec(0, 0, 1)}))

	results, err := index.Query(ctx, unitVec(0, 0, 1), 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestChromemQueryEmpty(t *testing.T) {
	index, err := OpenChromem(t.TempDir(), "research_collection", "test-model", 3)
	require.NoError(t, err)

	results, err := index.Query(context.Background(), unitVec(1, 0, 0), 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestChromemUpsertReplacesByID(t *testing.T) {
	index, err := OpenChromem(t.TempDir(), "research_collection", "test-model", 3)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, index.Upsert(ctx,
		[]Record{{ID: "doc:0", Text: "original"}},
		[][]float32{unitVec(1, 0, 0)}))
	require.NoError(t, index.Upsert(ctx,
		[]Record{{ID: "doc:0", Text: "replaced"}},
		[][]float32{unitVec(1, 0, 0)}))

	assert.Equal(t, 1, index.Count())
	results, err := index.Query(ctx, unitVec(1, 0, 0), 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "replaced", results[0].Text)
}

func TestChromemUpsertLengthMismatch(t *testing.T) {
	index, err := OpenChromem(t.TempDir(), "research_collection", "test-model", 3)
	require.NoError(t, err)

	err = index.Upsert(context.Background(),
		[]Record{{ID: "a"}, {ID: "b"}},
		[][]float32{unitVec(1, 0, 0)})
	assert.Error(t, err)
}

func TestOpenChromemManifestMismatch(t *testing.T) {
	dir := t.TempDir()
	_, err := OpenChromem(dir, "research_collection", "text-embedding-004", 768)
	require.NoError(t, err)

	tests := []struct {
		name  string
		model string
		dim   int
	}{
		{"different model", "text-embedding-005", 768},
		{"different dimension", "text-embedding-004", 1536},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenChromem(dir, "research_collection", tt.model, tt.dim)
			assert.ErrorIs(t, err, ErrEmbedderMismatch)
		})
	}
}

func TestOpenChromemSameManifestReopens(t *testing.T) {
	dir := t.TempDir()
	first, err := OpenChromem(dir, "research_collection", "test-model", 3)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, first.Upsert(ctx,
		[]Record{{ID: "doc:0", Text: "persisted"}},
		[][]float32{unitVec(1, 0, 0)}))

	second, err := OpenChromem(dir, "research_collection", "test-model", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Count())
	assert.True(t, second.Has(ctx, "doc:0"))
}
