package pdf

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Fetch downloads the PDF at rawURL into dir and returns the written file
// path. The file name is derived from the last URL path segment, with a .pdf
// extension enforced (arXiv URLs have none).
//
// Network failures wrap ErrFetch; non-2xx responses wrap ErrBadStatus.
func Fetch(ctx context.Context, client *http.Client, rawURL, dir string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFetch, rawURL, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFetch, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s: %d", ErrBadStatus, rawURL, resp.StatusCode)
	}

	name, err := FileName(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFetch, rawURL, err)
	}
	dst := filepath.Join(dir, name)

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFetch, rawURL, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("%w: %s: %v", ErrFetch, rawURL, err)
	}
	return dst, nil
}

// FileName derives a safe local file name from a source URL,
// e.g. "https://arxiv.org/pdf/1706.03762" -> "1706.03762.pdf".
func FileName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	base := path.Base(u.Path)
	if base == "" || base == "." || base == "/" {
		return "", fmt.Errorf("URL %q has no usable path segment", rawURL)
	}
	if !strings.HasSuffix(strings.ToLower(base), ".pdf") {
		base += ".pdf"
	}
	return base, nil
}
