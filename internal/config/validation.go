package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Sentinel errors for configuration validation, checked with errors.Is.
var (
	// ErrInvalidChunkGeometry indicates chunk size/overlap that would loop or
	// produce empty windows.
	ErrInvalidChunkGeometry = errors.New("invalid chunk geometry")

	// ErrInvalidTemperature indicates a temperature outside [0, 2].
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidTopK indicates a non-positive retrieval depth.
	ErrInvalidTopK = errors.New("invalid top_k")

	// ErrInvalidEmbedderDim indicates a non-positive embedding dimension.
	ErrInvalidEmbedderDim = errors.New("invalid embedder dimension")

	// ErrMissingModel indicates an empty model or embedder identifier.
	ErrMissingModel = errors.New("missing model name")

	// ErrInvalidSourceURL indicates a source URL that is not http(s).
	ErrInvalidSourceURL = errors.New("invalid source URL")

	// ErrInvalidWorkers indicates a non-positive ingest worker count.
	ErrInvalidWorkers = errors.New("invalid ingest worker count")
)

// Validate checks every field range. It is called by Load and again by tests
// that construct Config directly.
func (c *Config) Validate() error {
	if c.ModelName == "" {
		return fmt.Errorf("%w: model_name is empty", ErrMissingModel)
	}
	if c.EmbedderModel == "" {
		return fmt.Errorf("%w: embedder_model is empty", ErrMissingModel)
	}
	if c.EmbedderDim <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidEmbedderDim, c.EmbedderDim)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: %v not in [0, 2]", ErrInvalidTemperature, c.Temperature)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTopK, c.TopK)
	}
	if c.MaxContextRunes <= 0 {
		return fmt.Errorf("max_context_runes must be positive, got %d", c.MaxContextRunes)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size %d", ErrInvalidChunkGeometry, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: chunk_size %d, chunk_overlap %d",
			ErrInvalidChunkGeometry, c.ChunkSize, c.ChunkOverlap)
	}
	if c.IngestWorkers <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.IngestWorkers)
	}
	if c.DocumentsDir == "" {
		return errors.New("documents_dir is empty")
	}
	if c.StorageDir == "" {
		return errors.New("storage_dir is empty")
	}
	if c.Collection == "" {
		return errors.New("collection is empty")
	}
	for _, raw := range c.SourceURLs {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidSourceURL, raw)
		}
	}
	return nil
}
