// Package chunk splits extracted document text into overlapping windows
// suitable for embedding.
//
// The splitter is lossless: concatenating the produced chunks with the
// configured overlap stripped reproduces the input text exactly. This is what
// lets retrieval tests reason about coverage, and it is why no whitespace
// trimming happens here.
package chunk

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// Sentinel errors returned by New. Both are configuration errors: the caller
// must reject them before any document is processed.
var (
	// ErrInvalidSize indicates a non-positive chunk size.
	ErrInvalidSize = errors.New("chunk size must be positive")

	// ErrOverlapTooLarge indicates overlap >= size, which would make the
	// window never advance.
	ErrOverlapTooLarge = errors.New("chunk overlap must be smaller than chunk size")
)

// Chunk is one window of a document's text.
type Chunk struct {
	// Text is the raw window content, unmodified.
	Text string

	// Index is the zero-based position of the chunk within its document.
	Index int

	// Start is the rune offset of the window within the source text.
	Start int
}

// Chunker produces overlapping fixed-size windows over rune sequences.
// The zero value is not usable; construct with New.
type Chunker struct {
	size    int
	overlap int
}

// New validates the window geometry and returns a Chunker.
// Overlap may be zero; it must be strictly smaller than size.
func New(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: size %d, overlap %d", ErrOverlapTooLarge, size, overlap)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Size returns the maximum chunk length in runes.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the overlap length in runes.
func (c *Chunker) Overlap() int { return c.overlap }

// Chunks returns a lazy sequence of windows over text. The sequence is finite
// and restartable: ranging over it twice yields the same chunks. Empty text
// yields no chunks; text shorter than the window size yields exactly one.
//
// Every rune of text appears in at least one chunk, and adjacent chunks share
// exactly the configured overlap (except possibly the final chunk, which may
// be shorter).
func (c *Chunker) Chunks(text string) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		runes := []rune(text)
		step := c.size - c.overlap

		index := 0
		for start := 0; start < len(runes); start += step {
			end := start + c.size
			if end > len(runes) {
				end = len(runes)
			}
			if !yield(Chunk{Text: string(runes[start:end]), Index: index, Start: start}) {
				return
			}
			if end == len(runes) {
				return
			}
			index++
		}
	}
}

// Split collects Chunks into a slice for callers that need random access.
func (c *Chunker) Split(text string) []Chunk {
	var out []Chunk
	for ch := range c.Chunks(text) {
		out = append(out, ch)
	}
	return out
}

// Join reconstructs the original text from chunks produced with the given
// overlap. It is the inverse of Chunks and exists so callers (and tests) can
// verify the coverage invariant.
func Join(chunks []Chunk, overlap int) string {
	var b strings.Builder
	for i, ch := range chunks {
		runes := []rune(ch.Text)
		if i == 0 {
			b.WriteString(ch.Text)
			continue
		}
		if len(runes) > overlap {
			b.WriteString(string(runes[overlap:]))
		}
		// A final chunk no longer than the overlap is entirely shared
		// with its predecessor and contributes nothing new.
	}
	return b.String()
}
