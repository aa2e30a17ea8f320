package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"", false},
		{"info", false},
		{"debug", false},
		{"warn", false},
		{"warning", false},
		{"error", false},
		{"  Debug ", false},
		{"verbose", true},
		{"0", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := parseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestNewWithWriterText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, Config{Level: "debug"})
	if err != nil {
		t.Fatalf("NewWithWriter: %v", err)
	}

	logger.Debug("indexing document", "source", "a.pdf")
	out := buf.String()
	if !strings.Contains(out, "indexing document") || !strings.Contains(out, "a.pdf") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, Config{JSON: true})
	if err != nil {
		t.Fatalf("NewWithWriter: %v", err)
	}

	logger.Info("turn complete", "chunks", 3)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["msg"] != "turn complete" {
		t.Errorf("msg = %v, want %q", record["msg"], "turn complete")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, Config{Level: "warn"})
	if err != nil {
		t.Fatalf("NewWithWriter: %v", err)
	}

	logger.Info("should be dropped")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Error("info record leaked through warn level")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("warn record missing")
	}
}

func TestNopDiscards(t *testing.T) {
	// Must not panic and must not write anywhere observable.
	Nop().Error("ignored")
}
