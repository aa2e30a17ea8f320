package pdf

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// SourceURLProperty is the custom document property recording where a stamped
// PDF was downloaded from.
const SourceURLProperty = "SourceURL"

// Stamp copies the PDF at src to dst, adding a SourceURL document property.
// Malformed input wraps ErrStamp.
func Stamp(src, dst, sourceURL string) error {
	props := map[string]string{SourceURLProperty: sourceURL}
	if err := api.AddPropertiesFile(src, dst, props, nil); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStamp, src, err)
	}
	return nil
}

// StampResult summarizes a ProcessURLs run.
type StampResult struct {
	Stamped int
	Failed  int
}

// Stamper downloads source URLs and writes metadata-stamped copies into an
// output directory, removing each temporary download afterwards.
type Stamper struct {
	client *http.Client
	outDir string
	logger *slog.Logger
}

// NewStamper returns a Stamper writing into outDir. A nil client uses
// http.DefaultClient.
func NewStamper(client *http.Client, outDir string, logger *slog.Logger) *Stamper {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Stamper{client: client, outDir: outDir, logger: logger}
}

// ProcessURLs handles each URL independently: download to a temporary
// directory, stamp into the output directory, delete the temporary file.
// A failed download or a malformed PDF fails that URL only; the remaining
// URLs are still processed. The returned error reflects setup failures
// (unwritable directories), not per-URL ones.
func (s *Stamper) ProcessURLs(ctx context.Context, urls []string) (*StampResult, error) {
	if err := os.MkdirAll(s.outDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	tmpDir, err := os.MkdirTemp("", "paperchat-fetch-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	result := &StampResult{}
	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := s.processOne(ctx, u, tmpDir); err != nil {
			s.logger.Warn("skipping source URL", "url", u, "error", err)
			result.Failed++
			continue
		}
		result.Stamped++
	}
	return result, nil
}

func (s *Stamper) processOne(ctx context.Context, rawURL, tmpDir string) error {
	tmpPath, err := Fetch(ctx, s.client, rawURL, tmpDir)
	if err != nil {
		return err
	}
	defer os.Remove(tmpPath)

	dst := filepath.Join(s.outDir, filepath.Base(tmpPath))
	if err := Stamp(tmpPath, dst, rawURL); err != nil {
		return err
	}
	s.logger.Info("stamped document", "url", rawURL, "path", dst)
	return nil
}
