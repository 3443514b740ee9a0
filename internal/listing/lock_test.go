package listing

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestListing(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "sunrise-listing.json")
	if err := Write(path, &Listing{Filename: "sunrise.jpg", SKU: "RJC-0001"}); err != nil {
		t.Fatalf("write listing: %v", err)
	}
	return path
}

func TestLockInfoUnlocked(t *testing.T) {
	path := writeTestListing(t, t.TempDir())

	state, err := LockInfo(path)
	if err != nil {
		t.Fatalf("LockInfo: %v", err)
	}
	if state.Locked {
		t.Fatal("expected unlocked state")
	}
}

func TestUpdateLockSetsFieldsAndMarker(t *testing.T) {
	dir := t.TempDir()
	path := writeTestListing(t, dir)

	if err := UpdateLock(path, true, "robin", "sold"); err != nil {
		t.Fatalf("UpdateLock: %v", err)
	}

	state, err := LockInfo(path)
	if err != nil {
		t.Fatalf("LockInfo: %v", err)
	}
	if !state.Locked || !state.FieldLocked || !state.MarkerPresent {
		t.Fatalf("expected both lock signals set, got %+v", state)
	}
	if state.By != "robin" || state.Reason != "sold" {
		t.Fatalf("unexpected lock attribution: %+v", state)
	}
	if state.At == "" {
		t.Fatal("expected lock timestamp")
	}
}

func TestUpdateLockUnlockClearsEverything(t *testing.T) {
	dir := t.TempDir()
	path := writeTestListing(t, dir)

	if err := UpdateLock(path, true, "robin", "sold"); err != nil {
		t.Fatalf("lock: %v", err)
	}
	if err := UpdateLock(path, false, "", ""); err != nil {
		t.Fatalf("unlock: %v", err)
	}

	state, err := LockInfo(path)
	if err != nil {
		t.Fatalf("LockInfo: %v", err)
	}
	if state.Locked || state.MarkerPresent || state.FieldLocked {
		t.Fatalf("expected fully cleared lock, got %+v", state)
	}
	l, err := Read(path)
	if err != nil {
		t.Fatalf("read listing: %v", err)
	}
	if l.LockedBy != "" || l.LockedAt != "" || l.LockReason != "" {
		t.Fatalf("expected cleared lock fields, got %+v", l)
	}
}

func TestLockMarkerAloneWins(t *testing.T) {
	dir := t.TempDir()
	path := writeTestListing(t, dir)

	// Marker present but JSON fields say unlocked: locked wins.
	if err := os.WriteFile(filepath.Join(dir, LockMarkerName), nil, 0o644); err != nil {
		t.Fatalf("write marker: %v", err)
	}

	state, err := LockInfo(path)
	if err != nil {
		t.Fatalf("LockInfo: %v", err)
	}
	if !state.Locked {
		t.Fatal("expected marker alone to lock the listing")
	}
	if state.FieldLocked {
		t.Fatal("field signal should be unset")
	}
}

func TestLockFieldsAloneWin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sunrise-listing.json")
	if err := Write(path, &Listing{Filename: "sunrise.jpg", Locked: true, LockedBy: "robin"}); err != nil {
		t.Fatalf("write listing: %v", err)
	}

	state, err := LockInfo(path)
	if err != nil {
		t.Fatalf("LockInfo: %v", err)
	}
	if !state.Locked || state.MarkerPresent {
		t.Fatalf("expected field-only lock, got %+v", state)
	}
}

func TestLockInfoMissingListingUsesMarker(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing-listing.json")
	if err := os.WriteFile(filepath.Join(dir, LockMarkerName), nil, 0o644); err != nil {
		t.Fatalf("write marker: %v", err)
	}

	state, err := LockInfo(path)
	if err != nil {
		t.Fatalf("LockInfo: %v", err)
	}
	if !state.Locked {
		t.Fatal("expected locked from marker despite missing listing")
	}
}
