// Package ingest populates the vector index from a directory of PDF files.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/aitechroberts/paperchat/internal/chunk"
	"github.com/aitechroberts/paperchat/internal/knowledge"
	"github.com/aitechroberts/paperchat/internal/pdf"
)

// Indexer is the slice of the knowledge store the pipeline writes to.
type Indexer interface {
	Add(ctx context.Context, records []knowledge.Record) error
	Has(ctx context.Context, id string) bool
}

// Config parameterizes a pipeline.
type Config struct {
	ChunkSize    int
	ChunkOverlap int
	Workers      int
}

// Pipeline turns PDF files into indexed records. Documents are processed
// concurrently; the store's write path is the only shared resource.
type Pipeline struct {
	store   Indexer
	chunker *chunk.Chunker
	workers int
	logger  *slog.Logger

	// extract is swappable in tests.
	extract func(path string) ([]string, error)
}

// NewPipeline validates the chunk geometry up front so a bad configuration
// fails before any document is touched.
func NewPipeline(store Indexer, cfg Config, logger *slog.Logger) (*Pipeline, error) {
	chunker, err := chunk.New(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, err
	}
	if cfg.Workers <= 0 {
		return nil, fmt.Errorf("workers must be positive, got %d", cfg.Workers)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		store:   store,
		chunker: chunker,
		workers: cfg.Workers,
		logger:  logger,
		extract: pdf.ExtractPages,
	}, nil
}

// Run ingests every *.pdf under dir. Per-document failures are recorded in
// the report and the batch continues; only context cancellation stops the run
// early.
func (p *Pipeline) Run(ctx context.Context, dir string) (*Report, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("list documents in %s: %w", dir, err)
	}
	p.logger.Info("starting ingestion", "dir", dir, "documents", len(paths))

	report := &Report{}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for _, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			switch chunks, err := p.ingestOne(gctx, path); {
			case errors.Is(err, errAlreadyIndexed):
				report.addSkipped()
				p.logger.Info("document already indexed, skipping", "path", path)
			case err != nil:
				report.addFailure(path, err)
				p.logger.Warn("document failed, continuing", "path", path, "error", err)
			default:
				report.addIndexed(chunks)
				p.logger.Info("document indexed", "path", path, "chunks", chunks)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}

var errAlreadyIndexed = errors.New("document already indexed")

// ingestOne processes a single file: hash, dedup, extract, chunk, index.
// Returns the number of chunks written.
func (p *Pipeline) ingestOne(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read document: %w", err)
	}

	sum := sha256.Sum256(data)
	docID := hex.EncodeToString(sum[:])

	// Chunk IDs derive from the content hash, so the first chunk's presence
	// means the whole document is already there.
	if p.store.Has(ctx, knowledge.ChunkID(docID, 0)) {
		return 0, errAlreadyIndexed
	}

	pages, err := p.extract(path)
	if err != nil {
		return 0, err
	}
	text := strings.Join(pages, "\n")

	var records []knowledge.Record
	for c := range p.chunker.Chunks(text) {
		records = append(records, knowledge.Record{
			ID:   knowledge.ChunkID(docID, c.Index),
			Text: c.Text,
			Metadata: map[string]string{
				knowledge.MetaSource:     path,
				knowledge.MetaDocID:      docID,
				knowledge.MetaChunkIndex: strconv.Itoa(c.Index),
			},
		})
	}
	if len(records) == 0 {
		return 0, pdf.ErrNoText
	}

	if err := p.store.Add(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
