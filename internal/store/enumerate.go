package store

import (
	"os"
	"path/filepath"
	"sort"

	"ezygallery/internal/listing"
)

// Entry is a gallery listing summary used by enumeration and the CLI.
type Entry struct {
	Folder      string
	Aspect      string
	Title       string
	SKU         string
	ListingPath string
	Finalised   bool
	Locked      bool
	LockedBy    string
	Images      []string
}

// ListProcessed enumerates every artwork folder under the processed root
// that carries a listing document.
func (s *Store) ListProcessed() ([]Entry, error) {
	return s.listRoot(s.cfg.Paths.ProcessedDir, false)
}

// ListReady enumerates processed artworks whose core artifacts (main
// image and listing) are present, the set eligible for finalisation.
func (s *Store) ListReady() ([]Entry, error) {
	entries, err := s.ListProcessed()
	if err != nil {
		return nil, err
	}
	ready := entries[:0]
	for _, entry := range entries {
		main := filepath.Join(filepath.Dir(entry.ListingPath), MainImageName(entry.Folder))
		if _, err := os.Stat(main); err != nil {
			continue
		}
		ready = append(ready, entry)
	}
	return ready, nil
}

// ListFinalised enumerates every artwork folder under the finalised root
// that carries a listing document.
func (s *Store) ListFinalised() ([]Entry, error) {
	return s.listRoot(s.cfg.Paths.FinalisedDir, true)
}

// ListFinalisedExtended is ListFinalised with lock state attached and the
// image list filtered to files actually on disk.
func (s *Store) ListFinalisedExtended() ([]Entry, error) {
	entries, err := s.ListFinalised()
	if err != nil {
		return nil, err
	}
	for i := range entries {
		state, err := listing.LockInfo(entries[i].ListingPath)
		if err == nil {
			entries[i].Locked = state.Locked
			entries[i].LockedBy = state.By
		}
		present := entries[i].Images[:0]
		for _, image := range entries[i].Images {
			if _, err := os.Stat(image); err == nil {
				present = append(present, image)
			}
		}
		entries[i].Images = present
	}
	return entries, nil
}

func (s *Store) listRoot(root string, finalised bool) ([]Entry, error) {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	for _, dirEntry := range dirEntries {
		if !dirEntry.IsDir() {
			continue
		}
		folder := dirEntry.Name()
		dir := filepath.Join(root, folder)
		listingPath := listingPathIn(dir, folder)
		l, err := listing.Read(listingPath)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Folder:      folder,
			Aspect:      l.AspectRatio,
			Title:       l.Title,
			SKU:         l.SKU,
			ListingPath: listingPath,
			Finalised:   finalised,
			Locked:      l.Locked,
			LockedBy:    l.LockedBy,
			Images:      append([]string(nil), l.Images...),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Folder < entries[j].Folder })
	return entries, nil
}
