package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const manifestFile = "index.json"

// manifest records which embedder built the index. Stored next to the vector
// database so a configuration change cannot silently query against vectors
// from a different model.
type manifest struct {
	Model     string `json:"model"`
	Dimension int    `json:"dimension"`
}

// checkManifest verifies dir's manifest against the configured embedder,
// writing a fresh manifest if none exists yet.
func checkManifest(dir, model string, dim int) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}

	path := filepath.Join(dir, manifestFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return writeManifest(path, manifest{Model: model, Dimension: dim})
	}
	if err != nil {
		return fmt.Errorf("read index manifest: %w", err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse index manifest %s: %w", path, err)
	}
	if m.Model != model || m.Dimension != dim {
		return fmt.Errorf("%w: index built with %s (dim %d), configured %s (dim %d)",
			ErrEmbedderMismatch, m.Model, m.Dimension, model, dim)
	}
	return nil
}

func writeManifest(path string, m manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode index manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write index manifest: %w", err)
	}
	return nil
}
