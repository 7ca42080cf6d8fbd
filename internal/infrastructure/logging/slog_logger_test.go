package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for input, expected := range tests {
		if got := ParseLevel(input); got != expected {
			t.Errorf("ParseLevel(%q): esperava %v, obteve %v", input, expected, got)
		}
	}
}

func TestSlogLogger_WithAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLoggerWithWriter(&buf, "warn").With("component", "test")

	logger.Info("ignored")
	logger.Warn("kept", "user_id", 7)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("esperava 1 linha de log, obteve %d", len(lines))
	}

	var entry map[string]any
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("log não é JSON: %v", err)
	}

	if entry["msg"] != "kept" || entry["component"] != "test" || entry["user_id"] != float64(7) {
		t.Errorf("entrada inesperada: %v", entry)
	}
}
