package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"golang.org/x/time/rate"

	"github.com/aitechroberts/paperchat/internal/chat"
	"github.com/aitechroberts/paperchat/internal/config"
	"github.com/aitechroberts/paperchat/internal/ingest"
	"github.com/aitechroberts/paperchat/internal/knowledge"
	"github.com/aitechroberts/paperchat/internal/log"
	"github.com/aitechroberts/paperchat/internal/rag"
)

// generationTimeout bounds a single model call, retries included per attempt.
const generationTimeout = 60 * time.Second

// Setup constructs every component from the validated configuration. Startup
// aborts on a missing API key or on an index built with a different embedder;
// both would otherwise fail later with a much less obvious symptom.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (*App, error) {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return nil, errors.New("GEMINI_API_KEY environment variable not set")
	}

	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
	if g == nil {
		return nil, errors.New("initializing genkit with googleai plugin")
	}

	aiEmbedder := googlegenai.GoogleAIEmbedder(g, cfg.EmbedderModel)
	if aiEmbedder == nil {
		return nil, fmt.Errorf("embedder %q not found", cfg.EmbedderModel)
	}
	embedder := knowledge.NewGenkitEmbedder(aiEmbedder)

	index, err := knowledge.OpenChromem(cfg.StorageDir, cfg.Collection, cfg.EmbedderModel, cfg.EmbedderDim)
	if err != nil {
		return nil, fmt.Errorf("opening vector index: %w", err)
	}

	store := knowledge.NewStore(index, embedder, cfg.EmbedderDim, logger)
	retriever := rag.NewRetriever(store, logger)

	assembler, err := rag.NewAssembler(cfg.MaxContextRunes)
	if err != nil {
		return nil, fmt.Errorf("building prompt assembler: %w", err)
	}

	generator, err := chat.NewGenkitGenerator(g, chat.GeneratorConfig{
		Model:       "googleai/" + cfg.ModelName,
		Temperature: cfg.Temperature,
		CallTimeout: generationTimeout,
		RateLimiter: rate.NewLimiter(rate.Every(time.Second), 2),
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("building generator: %w", err)
	}

	engine, err := chat.NewEngine(retriever, assembler, generator, cfg.TopK, logger)
	if err != nil {
		return nil, fmt.Errorf("building chat engine: %w", err)
	}

	pipeline, err := ingest.NewPipeline(store, ingest.Config{
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
		Workers:      cfg.IngestWorkers,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("building ingestion pipeline: %w", err)
	}

	return &App{
		Config:    cfg,
		Logger:    logger,
		Genkit:    g,
		Store:     store,
		Retriever: retriever,
		Assembler: assembler,
		Engine:    engine,
		Pipeline:  pipeline,
	}, nil
}
