// Package pdf handles document sourcing: downloading PDFs, extracting their
// page text, and writing metadata-stamped copies.
package pdf

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPages returns the sanitized plain text of each page of the PDF at
// path, in page order. Pages that yield no text are kept as empty strings so
// page numbering stays meaningful to callers.
//
// A file the parser cannot read wraps ErrExtract. A readable file whose pages
// contain no text at all wraps ErrNoText.
func ExtractPages(path string) (pages []string, err error) {
	// The underlying parser panics on some malformed inputs instead of
	// returning an error. Corrupt documents must surface as ErrExtract.
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("%w: %s: parser panic: %v", ErrExtract, path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrExtract, path, err)
	}
	defer f.Close()

	total := r.NumPage()
	pages = make([]string, 0, total)
	any := false
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			// A single unreadable page doesn't condemn the document.
			pages = append(pages, "")
			continue
		}
		text = Sanitize(text)
		if text != "" {
			any = true
		}
		pages = append(pages, text)
	}

	if !any {
		return nil, fmt.Errorf("%w: %s", ErrNoText, path)
	}
	return pages, nil
}

// Sanitize strips control characters (keeping newlines and tabs) and trims
// surrounding whitespace. Downstream prompt assembly relies on this: the
// context delimiter is a control character, so sanitized chunk text can never
// contain it.
func Sanitize(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(cleaned)
}
