package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ezygallery/internal/config"
	"ezygallery/internal/listing"
	"ezygallery/internal/logging"
	"ezygallery/internal/services"
	"ezygallery/internal/sku"
)

func newTestStore(t *testing.T) (*Store, *config.Config) {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.ProcessedDir = filepath.Join(base, "processed")
	cfg.Paths.FinalisedDir = filepath.Join(base, "finalised")
	cfg.Paths.GenericTextsDir = filepath.Join(base, "generic")
	cfg.Paths.InputDir = filepath.Join(base, "input")
	cfg.Paths.UploadsTempDir = filepath.Join(base, "uploads")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.SKUTracker = filepath.Join(base, "data", "sku_tracker.json")
	for _, dir := range []string{cfg.Paths.ProcessedDir, cfg.Paths.FinalisedDir, cfg.Paths.GenericTextsDir, cfg.Paths.DataDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	return New(&cfg, logging.NewNop()), &cfg
}

func seedArtwork(t *testing.T, root, folder string, l *listing.Listing) string {
	t.Helper()
	dir := filepath.Join(root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, ListingFilename(folder))
	if err := listing.Write(path, l); err != nil {
		t.Fatalf("write listing: %v", err)
	}
	return dir
}

func TestResolveByFolderName(t *testing.T) {
	s, cfg := newTestStore(t)
	seedArtwork(t, cfg.Paths.ProcessedDir, "outback-sunrise", &listing.Listing{
		Filename:    "Outback Sunrise.jpg",
		AspectRatio: "2x3",
	})

	loc, err := s.Resolve("2x3", "outback-sunrise.jpg")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if loc.Folder != "outback-sunrise" || loc.Finalised {
		t.Fatalf("unexpected location %+v", loc)
	}
}

func TestResolveBySlugifiedStem(t *testing.T) {
	s, cfg := newTestStore(t)
	seedArtwork(t, cfg.Paths.ProcessedDir, "outback-sunrise", &listing.Listing{AspectRatio: "2x3"})

	loc, err := s.Resolve("2x3", "Outback Sunrise!.jpg")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if loc.Folder != "outback-sunrise" {
		t.Fatalf("unexpected folder %q", loc.Folder)
	}
}

func TestResolveBySeoFilename(t *testing.T) {
	s, cfg := newTestStore(t)
	seedArtwork(t, cfg.Paths.FinalisedDir, "some-folder", &listing.Listing{
		AspectRatio: "4x5",
		SeoFilename: "red-dust-Artwork-by-Robin-Custance-RJC-0007.jpg",
	})

	loc, err := s.Resolve("4x5", "red-dust-Artwork-by-Robin-Custance-RJC-0007.jpg")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if loc.Folder != "some-folder" || !loc.Finalised {
		t.Fatalf("unexpected location %+v", loc)
	}
}

func TestResolveMissingIsNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Resolve("2x3", "nope.jpg")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveTieBreakPrefersNewestListing(t *testing.T) {
	s, cfg := newTestStore(t)

	// Same artwork present in both roots; the fresher listing wins.
	oldDir := seedArtwork(t, cfg.Paths.ProcessedDir, "outback-sunrise", &listing.Listing{AspectRatio: "2x3"})
	newDir := seedArtwork(t, cfg.Paths.FinalisedDir, "outback-sunrise", &listing.Listing{AspectRatio: "2x3"})

	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(filepath.Join(oldDir, ListingFilename("outback-sunrise")), past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	future := time.Now().Add(time.Minute)
	if err := os.Chtimes(filepath.Join(newDir, ListingFilename("outback-sunrise")), future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	loc, err := s.Resolve("2x3", "outback-sunrise.jpg")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !loc.Finalised {
		t.Fatalf("expected finalised copy to win, got %+v", loc)
	}
}

func TestGenericText(t *testing.T) {
	s, cfg := newTestStore(t)
	if err := os.WriteFile(filepath.Join(cfg.Paths.GenericTextsDir, "2x3.txt"), []byte("Generic block.\n"), 0o644); err != nil {
		t.Fatalf("write generic text: %v", err)
	}

	if got := s.GenericText("2x3"); got != "Generic block." {
		t.Fatalf("GenericText = %q", got)
	}
	if got := s.GenericText("9x16"); got != "" {
		t.Fatalf("expected empty for missing aspect, got %q", got)
	}
}

func TestListProcessedAndFinalised(t *testing.T) {
	s, cfg := newTestStore(t)
	seedArtwork(t, cfg.Paths.ProcessedDir, "b-art", &listing.Listing{Title: "B", SKU: "RJC-0002", AspectRatio: "2x3"})
	seedArtwork(t, cfg.Paths.ProcessedDir, "a-art", &listing.Listing{Title: "A", SKU: "RJC-0001", AspectRatio: "4x5"})
	seedArtwork(t, cfg.Paths.FinalisedDir, "c-art", &listing.Listing{Title: "C", SKU: "RJC-0003", AspectRatio: "1x1"})

	processed, err := s.ListProcessed()
	if err != nil {
		t.Fatalf("ListProcessed: %v", err)
	}
	if len(processed) != 2 || processed[0].Folder != "a-art" || processed[1].Folder != "b-art" {
		t.Fatalf("unexpected processed entries %+v", processed)
	}

	finalised, err := s.ListFinalised()
	if err != nil {
		t.Fatalf("ListFinalised: %v", err)
	}
	if len(finalised) != 1 || finalised[0].Folder != "c-art" || !finalised[0].Finalised {
		t.Fatalf("unexpected finalised entries %+v", finalised)
	}
}

func TestListReadyRequiresMainImage(t *testing.T) {
	s, cfg := newTestStore(t)
	readyDir := seedArtwork(t, cfg.Paths.ProcessedDir, "ready-art", &listing.Listing{Title: "R"})
	seedArtwork(t, cfg.Paths.ProcessedDir, "half-art", &listing.Listing{Title: "H"})
	if err := os.WriteFile(filepath.Join(readyDir, MainImageName("ready-art")), []byte("jpg"), 0o644); err != nil {
		t.Fatalf("write main image: %v", err)
	}

	ready, err := s.ListReady()
	if err != nil {
		t.Fatalf("ListReady: %v", err)
	}
	if len(ready) != 1 || ready[0].Folder != "ready-art" {
		t.Fatalf("unexpected ready entries %+v", ready)
	}
}

func TestListFinalisedExtended(t *testing.T) {
	s, cfg := newTestStore(t)
	dir := seedArtwork(t, cfg.Paths.FinalisedDir, "f-art", &listing.Listing{
		Title:  "F",
		Images: []string{filepath.Join(cfg.Paths.FinalisedDir, "f-art", "present.jpg"), "/gone/absent.jpg"},
	})
	if err := os.WriteFile(filepath.Join(dir, "present.jpg"), []byte("jpg"), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}
	if err := listing.UpdateLock(filepath.Join(dir, ListingFilename("f-art")), true, "robin", "sold"); err != nil {
		t.Fatalf("lock: %v", err)
	}

	entries, err := s.ListFinalisedExtended()
	if err != nil {
		t.Fatalf("ListFinalisedExtended: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	entry := entries[0]
	if !entry.Locked || entry.LockedBy != "robin" {
		t.Fatalf("expected lock state, got %+v", entry)
	}
	if len(entry.Images) != 1 || filepath.Base(entry.Images[0]) != "present.jpg" {
		t.Fatalf("expected only on-disk images, got %v", entry.Images)
	}
}

func TestUpdateImageLinks(t *testing.T) {
	s, cfg := newTestStore(t)
	dir := seedArtwork(t, cfg.Paths.ProcessedDir, "art", &listing.Listing{Images: []string{"/stale/path.jpg"}})
	for _, name := range []string{"art.jpg", "art-THUMB.jpg", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	loc, err := s.Resolve("", "art.jpg")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	l, err := s.UpdateImageLinks(loc)
	if err != nil {
		t.Fatalf("UpdateImageLinks: %v", err)
	}
	if len(l.Images) != 2 {
		t.Fatalf("expected two images, got %v", l.Images)
	}
	for _, image := range l.Images {
		if filepath.Ext(image) == ".txt" {
			t.Fatalf("non-image file leaked into images: %v", l.Images)
		}
	}
}

func TestAssignOrGetSKU(t *testing.T) {
	_, cfg := newTestStore(t)
	alloc := sku.NewAllocator(cfg.Paths.SKUTracker)

	l := &listing.Listing{SeoFilename: "art-Artwork-by-Robin-Custance-RJC-9999.jpg", SKU: "RJC-9999"}
	if err := AssignOrGetSKU(l, alloc, false); err != nil {
		t.Fatalf("AssignOrGetSKU: %v", err)
	}
	if l.SKU != "RJC-9999" {
		t.Fatalf("valid SKU should be kept, got %s", l.SKU)
	}

	if err := AssignOrGetSKU(l, alloc, true); err != nil {
		t.Fatalf("AssignOrGetSKU force: %v", err)
	}
	if l.SKU != "RJC-0001" {
		t.Fatalf("expected forced reassignment to RJC-0001, got %s", l.SKU)
	}
	if l.SeoFilename != "art-Artwork-by-Robin-Custance-RJC-0001.jpg" {
		t.Fatalf("expected SEO filename resync, got %s", l.SeoFilename)
	}
}

type stubGenerator struct {
	targets []string
	err     error
}

func (g *stubGenerator) Generate(_ context.Context, target, _ string) error {
	g.targets = append(g.targets, target)
	return g.err
}

func TestRegenerateMockup(t *testing.T) {
	s, cfg := newTestStore(t)
	seedArtwork(t, cfg.Paths.ProcessedDir, "art", &listing.Listing{
		Mockups: []listing.Mockup{{Category: "bedroom", Source: "/m/bg.jpg"}},
	})
	loc, err := s.Resolve("", "art.jpg")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	gen := &stubGenerator{}
	if err := s.RegenerateMockup(context.Background(), loc, 0, gen, ""); err != nil {
		t.Fatalf("RegenerateMockup: %v", err)
	}
	if len(gen.targets) != 1 {
		t.Fatalf("expected one composite render, got %v", gen.targets)
	}

	l, err := s.ReadListing(loc)
	if err != nil {
		t.Fatalf("read listing: %v", err)
	}
	if l.Mockups[0].Composite == "" {
		t.Fatal("expected composite path recorded")
	}
}

func TestSwapMockupOutOfRange(t *testing.T) {
	s, cfg := newTestStore(t)
	seedArtwork(t, cfg.Paths.ProcessedDir, "art", &listing.Listing{})
	loc, err := s.Resolve("", "art.jpg")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	err = s.SwapMockup(context.Background(), loc, 2, "hall", "/m/bg.jpg", &stubGenerator{}, "")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for bad slot, got %v", err)
	}
}

func TestSwapMockup(t *testing.T) {
	s, cfg := newTestStore(t)
	seedArtwork(t, cfg.Paths.ProcessedDir, "art", &listing.Listing{
		Mockups: []listing.Mockup{{Category: "bedroom", Source: "/m/old.jpg", Composite: "/art/c.jpg"}},
	})
	loc, err := s.Resolve("", "art.jpg")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	gen := &stubGenerator{}
	if err := s.SwapMockup(context.Background(), loc, 0, "hallway", "/m/new.jpg", gen, ""); err != nil {
		t.Fatalf("SwapMockup: %v", err)
	}

	l, err := s.ReadListing(loc)
	if err != nil {
		t.Fatalf("read listing: %v", err)
	}
	slot := l.Mockups[0]
	if slot.Category != "hallway" || slot.Source != "/m/new.jpg" {
		t.Fatalf("unexpected slot %+v", slot)
	}
	if len(gen.targets) != 1 || gen.targets[0] != "/art/c.jpg" {
		t.Fatalf("expected regeneration of existing composite, got %v", gen.targets)
	}
}
