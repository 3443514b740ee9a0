package events

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestUploadEventLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.RecordUpload(ctx, "up-1", "sunrise.jpg", "robin", "sess-1"); err != nil {
		t.Fatalf("RecordUpload: %v", err)
	}
	if err := store.MarkUploaded(ctx, "up-1"); err != nil {
		t.Fatalf("MarkUploaded: %v", err)
	}
	if err := store.MarkAnalysisStarted(ctx, "up-1"); err != nil {
		t.Fatalf("MarkAnalysisStarted: %v", err)
	}
	if err := store.MarkAnalysisFinished(ctx, "up-1"); err != nil {
		t.Fatalf("MarkAnalysisFinished: %v", err)
	}

	event, err := store.LatestUploadEvent(ctx, "up-1")
	if err != nil {
		t.Fatalf("LatestUploadEvent: %v", err)
	}
	if event == nil {
		t.Fatal("expected event")
	}
	if event.Status != StatusAnalysed {
		t.Fatalf("expected analysed status, got %s", event.Status)
	}
	if event.UploadedAt == "" || event.AnalysisStartedAt == "" || event.AnalysisFinishedAt == "" {
		t.Fatalf("expected all timestamps set: %+v", event)
	}
	if event.User != "robin" || event.SessionID != "sess-1" {
		t.Fatalf("unexpected attribution: %+v", event)
	}
}

func TestMarkAnalysisFailed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.RecordUpload(ctx, "up-2", "dust.jpg", "", ""); err != nil {
		t.Fatalf("RecordUpload: %v", err)
	}
	if err := store.MarkAnalysisFailed(ctx, "up-2", "analyzer exited 1"); err != nil {
		t.Fatalf("MarkAnalysisFailed: %v", err)
	}

	event, err := store.LatestUploadEvent(ctx, "up-2")
	if err != nil {
		t.Fatalf("LatestUploadEvent: %v", err)
	}
	if event.Status != StatusError || event.ErrorMsg != "analyzer exited 1" {
		t.Fatalf("unexpected failure record: %+v", event)
	}
}

func TestLatestUploadEventMissing(t *testing.T) {
	store := newTestStore(t)
	event, err := store.LatestUploadEvent(context.Background(), "absent")
	if err != nil {
		t.Fatalf("LatestUploadEvent: %v", err)
	}
	if event != nil {
		t.Fatalf("expected nil for unknown upload, got %+v", event)
	}
}

func TestDuplicateUploadIDRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.RecordUpload(ctx, "up-3", "a.jpg", "", ""); err != nil {
		t.Fatalf("RecordUpload: %v", err)
	}
	if err := store.RecordUpload(ctx, "up-3", "b.jpg", "", ""); err == nil {
		t.Fatal("expected unique constraint violation")
	}
}

func TestLogAndRecentEntries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i, msg := range []string{"first", "second", "third"} {
		level := "info"
		if i == 2 {
			level = "error"
		}
		if err := store.Log(ctx, level, "upload", msg, "", "robin", ""); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	entries, err := store.RecentEntries(ctx, 2)
	if err != nil {
		t.Fatalf("RecentEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected two entries, got %d", len(entries))
	}
	if entries[0].Message != "third" || entries[0].Level != "error" {
		t.Fatalf("expected newest first, got %+v", entries[0])
	}
	if entries[1].Message != "second" {
		t.Fatalf("unexpected second entry %+v", entries[1])
	}
}
