package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := fmt.Errorf("exit status 1")
	err := Wrap(ErrExternalTool, "analyze", "run analyzer", "analyzer failed", cause)

	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "analyze: run analyzer: analyzer failed") {
		t.Fatalf("unexpected detail: %v", err)
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := Wrap(ErrLocked, "edit", "", "artwork is locked", nil)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked marker, got %v", err)
	}
	if strings.Contains(err.Error(), "%!") {
		t.Fatalf("malformed error string: %v", err)
	}
}

func TestWrapNilMarkerDefaultsToIO(t *testing.T) {
	err := Wrap(nil, "", "", "", errors.New("boom"))
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO fallback, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected default detail, got %v", err)
	}
}
