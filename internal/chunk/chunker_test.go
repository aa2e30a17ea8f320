package chunk

import (
	"errors"
	"strings"
	"testing"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		wantErr error
	}{
		{"valid", 1000, 200, nil},
		{"zero overlap", 100, 0, nil},
		{"zero size", 0, 0, ErrInvalidSize},
		{"negative size", -5, 0, ErrInvalidSize},
		{"overlap equals size", 100, 100, ErrOverlapTooLarge},
		{"overlap exceeds size", 100, 150, ErrOverlapTooLarge},
		{"negative overlap", 100, -1, ErrOverlapTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.size, tt.overlap)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New(%d, %d) error = %v, want %v", tt.size, tt.overlap, err, tt.wantErr)
			}
		})
	}
}

func TestShortTextYieldsOneChunk(t *testing.T) {
	c, err := New(100, 20)
	if err != nil {
		t.Fatal(err)
	}

	chunks := c.Split("short document")
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != "short document" {
		t.Errorf("chunk text = %q", chunks[0].Text)
	}
	if chunks[0].Index != 0 || chunks[0].Start != 0 {
		t.Errorf("chunk position = (%d, %d), want (0, 0)", chunks[0].Index, chunks[0].Start)
	}
}

func TestEmptyTextYieldsNothing(t *testing.T) {
	c, err := New(10, 2)
	if err != nil {
		t.Fatal(err)
	}
	if chunks := c.Split(""); len(chunks) != 0 {
		t.Errorf("got %d chunks for empty text, want 0", len(chunks))
	}
}

func TestWindowGeometry(t *testing.T) {
	const text = "The quick brown fox. Jumps over the lazy dog."
	c, err := New(20, 5)
	if err != nil {
		t.Fatal(err)
	}

	chunks := c.Split(text)
	for _, ch := range chunks {
		if n := len([]rune(ch.Text)); n > 20 {
			t.Errorf("chunk %d has %d runes, want <= 20", ch.Index, n)
		}
	}

	// Adjacent chunks advance by size-overlap runes.
	for i := 1; i < len(chunks); i++ {
		if got := chunks[i].Start - chunks[i-1].Start; got != 15 {
			t.Errorf("step between chunk %d and %d = %d, want 15", i-1, i, got)
		}
	}
}

func TestJoinReconstructsExactly(t *testing.T) {
	texts := []string{
		"The quick brown fox. Jumps over the lazy dog.",
		strings.Repeat("abcdefghij", 97),
		"exactly-twenty-chars",
		"ünïcode — 中文テキスト mixed with ascii and\nnewlines\tand tabs",
		"x",
	}
	geometries := []struct{ size, overlap int }{
		{20, 5},
		{1000, 200},
		{7, 3},
		{3, 1},
		{50, 0},
	}

	for _, text := range texts {
		for _, g := range geometries {
			c, err := New(g.size, g.overlap)
			if err != nil {
				t.Fatal(err)
			}
			chunks := c.Split(text)
			if got := Join(chunks, g.overlap); got != text {
				t.Errorf("size=%d overlap=%d: Join did not reconstruct input\ngot:  %q\nwant: %q",
					g.size, g.overlap, got, text)
			}
		}
	}
}

func TestChunkCountApproximation(t *testing.T) {
	// The count never exceeds ceil(len/(size-overlap)) and is short by at
	// most one.
	text := strings.Repeat("a", 1234)
	c, err := New(100, 25)
	if err != nil {
		t.Fatal(err)
	}

	got := len(c.Split(text))
	step := 100 - 25
	approx := (1234 + step - 1) / step
	if got > approx || got < approx-1 {
		t.Errorf("chunk count = %d, want within [%d, %d]", got, approx-1, approx)
	}
}

func TestSequenceIsRestartable(t *testing.T) {
	c, err := New(10, 4)
	if err != nil {
		t.Fatal(err)
	}
	seq := c.Chunks("a lazy sequence of windows over this text")

	first := make([]Chunk, 0)
	for ch := range seq {
		first = append(first, ch)
	}
	second := make([]Chunk, 0)
	for ch := range seq {
		second = append(second, ch)
	}

	if len(first) == 0 || len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestEarlyBreakStopsIteration(t *testing.T) {
	c, err := New(5, 1)
	if err != nil {
		t.Fatal(err)
	}

	count := 0
	for range c.Chunks(strings.Repeat("z", 100)) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("iterated %d chunks after break, want 2", count)
	}
}
