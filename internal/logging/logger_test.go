package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestPrettyHandlerFoldsComponentIntoPrefix(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)
	logger := slog.New(newPrettyHandler(&buf, lvl, false))

	NewComponentLogger(logger, "lifecycle").Info("finalised artwork", String("sku", "RJC-0001"))

	line := buf.String()
	if !strings.Contains(line, "lifecycle: finalised artwork") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, "sku=RJC-0001") {
		t.Fatalf("expected sku attribute, got %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component attribute should be folded into prefix: %q", line)
	}
}

func TestPrettyHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)
	logger := slog.New(newPrettyHandler(&buf, lvl, false))

	logger.Info("msg", String("title", "Outback Sunrise"))

	if !strings.Contains(buf.String(), `title="Outback Sunrise"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should report disabled at every level")
	}
}
