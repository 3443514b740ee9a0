package lifecycle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ezygallery/internal/fileutil"
	"ezygallery/internal/listing"
	"ezygallery/internal/logging"
	"ezygallery/internal/services"
	"ezygallery/internal/store"
)

// Finalise moves an artwork folder from the processed root into the
// finalised root, forces a tracker-backed SKU, renames SKU-bearing files
// to match, and rewrites the listing's paths. Finalising twice is a
// conflict, as is a leftover destination folder.
func (m *Manager) Finalise(ctx context.Context, aspect, filename string) (*listing.Listing, error) {
	loc, err := m.store.Resolve(aspect, filename)
	if err != nil {
		return nil, err
	}
	if loc.Finalised {
		return nil, services.Wrap(services.ErrConflict, "finalise", loc.Folder, "artwork is already finalised", nil)
	}
	if err := m.requireUnlocked("finalise", loc.ListingPath); err != nil {
		return nil, err
	}

	dest := filepath.Join(m.cfg.Paths.FinalisedDir, loc.Folder)
	if _, err := os.Stat(dest); err == nil {
		return nil, services.Wrap(services.ErrConflict, "finalise", loc.Folder, "destination folder already exists", nil)
	}

	if err := fileutil.MoveDir(loc.Dir, dest); err != nil {
		return nil, services.Wrap(services.ErrIO, "finalise", "move folder", dest, err)
	}

	finalLoc := store.Location{
		Folder:      loc.Folder,
		Dir:         dest,
		ListingPath: filepath.Join(dest, filepath.Base(loc.ListingPath)),
		Finalised:   true,
	}

	l, err := m.store.ReadListing(finalLoc)
	if err != nil {
		return nil, err
	}

	marker := filepath.Join(dest, store.FinalisedMarker)
	stamp := time.Now().UTC().Format(time.RFC3339)
	if err := os.WriteFile(marker, []byte(stamp+"\n"), 0o644); err != nil {
		return nil, services.Wrap(services.ErrIO, "finalise", "write marker", marker, err)
	}

	m.removeInputOriginal(l)

	if err := store.AssignOrGetSKU(l, m.sku, true); err != nil {
		return nil, err
	}
	if err := renameSKUFiles(dest, l.SKU); err != nil {
		return nil, err
	}

	rebase := func(path string) string {
		return swapRoot(path, m.cfg.Paths.ProcessedDir, m.cfg.Paths.FinalisedDir)
	}
	l.MainJPGPath = rebase(l.MainJPGPath)
	l.OrigJPGPath = rebase(l.OrigJPGPath)
	l.ThumbJPGPath = rebase(l.ThumbJPGPath)
	l.ProcessedFolder = rebase(l.ProcessedFolder)

	finalLoc.ListingPath = listingPathInDir(dest, finalLoc.ListingPath)
	if images, err := store.ImageFilesIn(dest); err == nil {
		l.Images = images
	}
	if err := m.store.WriteListing(finalLoc, l); err != nil {
		return nil, err
	}

	m.appendFinaliseLog(loc.Folder, l.SKU)
	m.logger.Info("artwork finalised",
		logging.String("folder", loc.Folder),
		logging.String("sku", l.SKU))
	return l, nil
}

// removeInputOriginal deletes the source file from the input directory
// once the artwork is finalised. Removal is best-effort; the original may
// already be gone.
func (m *Manager) removeInputOriginal(l *listing.Listing) {
	if l.Filename == "" {
		return
	}
	original := filepath.Join(m.cfg.Paths.InputDir, l.Filename)
	if err := os.Remove(original); err != nil && !os.IsNotExist(err) {
		m.logger.Warn("failed to remove input original",
			logging.String("path", original),
			logging.Error(err))
	}
}

// renameSKUFiles renames every file in dir whose name carries a SKU
// segment so the embedded SKU matches sku.
func renameSKUFiles(dir, sku string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return services.Wrap(services.ErrIO, "finalise", "read folder", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		synced := listing.SyncFilenameWithSKU(name, sku)
		if synced == name {
			continue
		}
		if err := os.Rename(filepath.Join(dir, name), filepath.Join(dir, synced)); err != nil {
			return services.Wrap(services.ErrIO, "finalise", "rename file", synced, err)
		}
	}
	return nil
}

// swapRoot rewrites path so that a prefix of oldRoot becomes newRoot.
// Paths outside oldRoot pass through unchanged.
func swapRoot(path, oldRoot, newRoot string) string {
	if path == "" {
		return path
	}
	cleaned := filepath.Clean(path)
	prefix := filepath.Clean(oldRoot) + string(filepath.Separator)
	if !strings.HasPrefix(cleaned, prefix) {
		return path
	}
	return filepath.Join(newRoot, strings.TrimPrefix(cleaned, prefix))
}

// listingPathInDir re-resolves the listing path after SKU-driven renames
// may have moved it.
func listingPathInDir(dir, previous string) string {
	if _, err := os.Stat(previous); err == nil {
		return previous
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "*-listing.json"))
	if len(matches) > 0 {
		return matches[0]
	}
	return previous
}

func (m *Manager) appendFinaliseLog(folder, sku string) {
	if err := os.MkdirAll(m.cfg.Paths.LogDir, 0o755); err != nil {
		m.logger.Warn("failed to create log directory", logging.Error(err))
		return
	}
	path := filepath.Join(m.cfg.Paths.LogDir, "finalise.log")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		m.logger.Warn("failed to open finalise log", logging.Error(err))
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s %s %s\n", time.Now().UTC().Format(time.RFC3339), folder, sku)
}
