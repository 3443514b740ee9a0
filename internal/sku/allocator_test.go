package sku

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestAllocator(t *testing.T) *Allocator {
	t.Helper()
	return NewAllocator(filepath.Join(t.TempDir(), "sku_tracker.json"))
}

func TestFreshTrackerAssignsFirstSKU(t *testing.T) {
	a := newTestAllocator(t)

	got, err := a.AssignNext()
	if err != nil {
		t.Fatalf("AssignNext: %v", err)
	}
	if got != "RJC-0001" {
		t.Fatalf("expected RJC-0001 from fresh tracker, got %s", got)
	}
}

func TestPeekDoesNotMutate(t *testing.T) {
	a := newTestAllocator(t)

	for i := 0; i < 3; i++ {
		got, err := a.PeekNext()
		if err != nil {
			t.Fatalf("PeekNext: %v", err)
		}
		if got != "RJC-0001" {
			t.Fatalf("peek %d: expected RJC-0001, got %s", i, got)
		}
	}

	assigned, err := a.AssignNext()
	if err != nil {
		t.Fatalf("AssignNext: %v", err)
	}
	if assigned != "RJC-0001" {
		t.Fatalf("expected first assignment RJC-0001, got %s", assigned)
	}
}

func TestAssignNextIncrements(t *testing.T) {
	a := newTestAllocator(t)

	want := []string{"RJC-0001", "RJC-0002", "RJC-0003"}
	for _, expected := range want {
		got, err := a.AssignNext()
		if err != nil {
			t.Fatalf("AssignNext: %v", err)
		}
		if got != expected {
			t.Fatalf("expected %s, got %s", expected, got)
		}
	}
}

func TestAssignNextPersistsTracker(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sku_tracker.json")

	a := NewAllocator(path)
	if _, err := a.AssignNext(); err != nil {
		t.Fatalf("AssignNext: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read tracker: %v", err)
	}
	if !strings.Contains(string(data), `"last_sku": 1`) {
		t.Fatalf("unexpected tracker contents: %s", data)
	}

	// A new allocator over the same file continues the sequence.
	b := NewAllocator(path)
	got, err := b.AssignNext()
	if err != nil {
		t.Fatalf("AssignNext: %v", err)
	}
	if got != "RJC-0002" {
		t.Fatalf("expected RJC-0002, got %s", got)
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		sku string
		n   int
		ok  bool
	}{
		{"RJC-0001", 1, true},
		{"RJC-0456", 456, true},
		{"RJC-12345", 12345, true},
		{"RJC-12", 0, false},
		{"rjc-0001", 0, false},
		{"RJC-0001.jpg", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		n, ok := Parse(tc.sku)
		if ok != tc.ok || n != tc.n {
			t.Errorf("Parse(%q) = (%d, %v), want (%d, %v)", tc.sku, n, ok, tc.n, tc.ok)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format(7); got != "RJC-0007" {
		t.Fatalf("Format(7) = %s", got)
	}
	if got := Format(10234); got != "RJC-10234" {
		t.Fatalf("Format(10234) = %s", got)
	}
}
