// Package config provides application configuration with multi-source priority.
//
// Sources, highest to lowest:
//  1. Environment variables (PAPERCHAT_* overrides; GEMINI_API_KEY is read
//     directly by Genkit, not through Viper)
//  2. Config file (~/.paperchat/config.yaml, or ./config.yaml)
//  3. Defaults
//
// The loaded Config is validated immediately and never mutated afterwards;
// every component receives it (or the fields it needs) explicitly.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Defaults mirror the values the index was originally built with. Changing the
// embedder model or dimension invalidates an existing index; see Validate and
// the knowledge package's manifest check.
const (
	DefaultModelName       = "gemini-2.5-flash"
	DefaultEmbedderModel   = "text-embedding-004"
	DefaultEmbedderDim     = 768
	DefaultTemperature     = 0.3
	DefaultTopK            = 2
	DefaultChunkSize       = 1000
	DefaultChunkOverlap    = 200
	DefaultCollection      = "research_collection"
	DefaultIngestWorkers   = 4
	DefaultMaxContextRunes = 24000
)

// Config stores application configuration. Construct via Load.
type Config struct {
	// Generation
	ModelName   string  `mapstructure:"model_name"`
	Temperature float64 `mapstructure:"temperature"`

	// Embedding
	EmbedderModel string `mapstructure:"embedder_model"`
	EmbedderDim   int    `mapstructure:"embedder_dim"`

	// Retrieval
	TopK            int `mapstructure:"top_k"`
	MaxContextRunes int `mapstructure:"max_context_runes"`

	// Chunking
	ChunkSize    int `mapstructure:"chunk_size"`
	ChunkOverlap int `mapstructure:"chunk_overlap"`

	// Document sources
	DocumentsDir string   `mapstructure:"documents_dir"`
	SourceURLs   []string `mapstructure:"source_urls"`

	// Vector index storage
	StorageDir string `mapstructure:"storage_dir"`
	Collection string `mapstructure:"collection"`

	// Ingestion
	IngestWorkers int `mapstructure:"ingest_workers"`

	// Logging
	LogLevel string `mapstructure:"log_level"`
	LogJSON  bool   `mapstructure:"log_json"`
}

// Load reads configuration from file, environment, and defaults, then
// validates it. Validation failures are fatal by design: a bad chunk geometry
// or embedder mismatch must stop the pipeline before any document is touched.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}
	configDir := filepath.Join(home, ".paperchat")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v)
	v.SetEnvPrefix("PAPERCHAT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; defaults and env carry the day.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("model_name", DefaultModelName)
	v.SetDefault("temperature", DefaultTemperature)

	v.SetDefault("embedder_model", DefaultEmbedderModel)
	v.SetDefault("embedder_dim", DefaultEmbedderDim)

	v.SetDefault("top_k", DefaultTopK)
	v.SetDefault("max_context_runes", DefaultMaxContextRunes)

	v.SetDefault("chunk_size", DefaultChunkSize)
	v.SetDefault("chunk_overlap", DefaultChunkOverlap)

	v.SetDefault("documents_dir", "documents")
	v.SetDefault("storage_dir", "db")
	v.SetDefault("collection", DefaultCollection)

	v.SetDefault("ingest_workers", DefaultIngestWorkers)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
}
