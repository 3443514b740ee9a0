package store

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ezygallery/internal/config"
	"ezygallery/internal/listing"
	"ezygallery/internal/logging"
	"ezygallery/internal/services"
)

// Store resolves artwork folders under the processed and finalised roots
// and reads and writes their listing documents.
type Store struct {
	cfg    *config.Config
	logger *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) *Store {
	return &Store{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "store"),
	}
}

// Location identifies one artwork folder on disk.
type Location struct {
	Folder      string
	Dir         string
	ListingPath string
	Finalised   bool
}

// ReadListing decodes the listing document for loc.
func (s *Store) ReadListing(loc Location) (*listing.Listing, error) {
	return listing.Read(loc.ListingPath)
}

// WriteListing persists the listing document for loc.
func (s *Store) WriteListing(loc Location, l *listing.Listing) error {
	if err := os.MkdirAll(loc.Dir, 0o755); err != nil {
		return services.Wrap(services.ErrIO, "store", "ensure folder", loc.Dir, err)
	}
	return listing.Write(loc.ListingPath, l)
}

// GenericText returns the per-aspect disclosure block, or "" when no text
// file exists for the aspect.
func (s *Store) GenericText(aspect string) string {
	if strings.TrimSpace(aspect) == "" {
		return ""
	}
	path := filepath.Join(s.cfg.Paths.GenericTextsDir, aspect+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// AspectFilenameForFolder reads the aspect ratio and original filename
// recorded in a folder's listing.
func (s *Store) AspectFilenameForFolder(folder string) (aspect, filename string, err error) {
	loc, err := s.locate(folder)
	if err != nil {
		return "", "", err
	}
	l, err := s.ReadListing(loc)
	if err != nil {
		return "", "", err
	}
	return l.AspectRatio, l.Filename, nil
}

// locate finds a folder by exact name in either root.
func (s *Store) locate(folder string) (Location, error) {
	for _, root := range []struct {
		dir       string
		finalised bool
	}{
		{s.cfg.Paths.ProcessedDir, false},
		{s.cfg.Paths.FinalisedDir, true},
	} {
		dir := filepath.Join(root.dir, folder)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return Location{
				Folder:      folder,
				Dir:         dir,
				ListingPath: listingPathIn(dir, folder),
				Finalised:   root.finalised,
			}, nil
		}
	}
	return Location{}, services.Wrap(services.ErrNotFound, "store", "locate folder", folder, nil)
}

// listingPathIn returns the listing path for a folder, falling back to the
// first "*-listing.json" present when the canonical name is absent.
func listingPathIn(dir, folder string) string {
	canonical := filepath.Join(dir, ListingFilename(folder))
	if _, err := os.Stat(canonical); err == nil {
		return canonical
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "*"+listingSuffix))
	if len(matches) > 0 {
		sort.Strings(matches)
		return matches[0]
	}
	return canonical
}

// ImageFilesIn lists the image files directly inside dir, sorted by name.
// The analyse copy and thumbnails count as images; sidecars do not.
func ImageFilesIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "store", "read folder", dir, err)
	}
	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png":
			images = append(images, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(images)
	return images, nil
}

// UpdateImageLinks recomputes the listing's image list from the files
// actually present in the folder and persists the document.
func (s *Store) UpdateImageLinks(loc Location) (*listing.Listing, error) {
	l, err := s.ReadListing(loc)
	if err != nil {
		return nil, err
	}
	images, err := ImageFilesIn(loc.Dir)
	if err != nil {
		return nil, err
	}
	l.Images = images
	if err := s.WriteListing(loc, l); err != nil {
		return nil, err
	}
	s.logger.Info("updated image links",
		logging.String("folder", loc.Folder),
		logging.Int("images", len(images)))
	return l, nil
}
