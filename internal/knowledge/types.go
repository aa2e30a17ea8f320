package knowledge

// Metadata keys attached to every indexed record.
const (
	// MetaSource is the original document identifier (file path or URL).
	MetaSource = "source"

	// MetaDocID is the content hash of the source document.
	MetaDocID = "doc_id"

	// MetaChunkIndex is the chunk's position within its document.
	MetaChunkIndex = "chunk_index"
)

// Record is one (text, metadata) pair destined for the vector index.
// The embedding is attached by the Store; callers never supply it.
type Record struct {
	ID       string
	Text     string
	Metadata map[string]string
}

// Result is a single similarity-search hit.
type Result struct {
	Record
	Similarity float32
}

// SearchOption configures Search via functional options.
type SearchOption func(*searchConfig)

type searchConfig struct {
	topK int
}

// WithTopK sets the maximum number of results. Default is 5.
func WithTopK(k int) SearchOption {
	return func(c *searchConfig) {
		c.topK = k
	}
}

func buildSearchConfig(opts []SearchOption) searchConfig {
	cfg := searchConfig{topK: 5}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
