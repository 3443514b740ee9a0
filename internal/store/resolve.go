package store

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"ezygallery/internal/listing"
	"ezygallery/internal/logging"
	"ezygallery/internal/services"
)

// Resolve finds the artwork folder for a filename, searching the processed
// root first and then the finalised root. Matching is permissive: the raw
// filename stem, its slug, the folder name, the folder slug, and the
// listing's SEO filename stem are all compared case-insensitively. When
// several folders match, the one with the most recently modified listing
// wins.
func (s *Store) Resolve(aspect, filename string) (Location, error) {
	stem := stemOf(filename)
	candidates := map[string]struct{}{}
	for _, c := range []string{stem, listing.Slugify(stem)} {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			candidates[c] = struct{}{}
		}
	}
	if len(candidates) == 0 {
		return Location{}, services.Wrap(services.ErrNotFound, "store", "resolve", "empty filename", nil)
	}

	type match struct {
		loc     Location
		modTime time.Time
	}
	var matches []match

	for _, root := range []struct {
		dir       string
		finalised bool
	}{
		{s.cfg.Paths.ProcessedDir, false},
		{s.cfg.Paths.FinalisedDir, true},
	} {
		entries, err := os.ReadDir(root.dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Location{}, services.Wrap(services.ErrIO, "store", "resolve", root.dir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			folder := entry.Name()
			dir := filepath.Join(root.dir, folder)
			listingPath := listingPathIn(dir, folder)

			if !folderMatches(candidates, folder, listingPath) {
				continue
			}

			mod := time.Time{}
			if info, err := os.Stat(listingPath); err == nil {
				mod = info.ModTime()
			} else if info, err := entry.Info(); err == nil {
				mod = info.ModTime()
			}
			matches = append(matches, match{
				loc: Location{
					Folder:      folder,
					Dir:         dir,
					ListingPath: listingPath,
					Finalised:   root.finalised,
				},
				modTime: mod,
			})
		}
	}

	if len(matches) == 0 {
		return Location{}, services.Wrap(services.ErrNotFound, "store", "resolve", filename, nil)
	}
	best := matches[0]
	for _, m := range matches[1:] {
		if m.modTime.After(best.modTime) {
			best = m
		}
	}
	if len(matches) > 1 {
		s.logger.Debug("multiple folders matched, picked most recent",
			logging.String("filename", filename),
			logging.String("aspect", aspect),
			logging.Int("matches", len(matches)),
			logging.String("folder", best.loc.Folder))
	}
	return best.loc, nil
}

func folderMatches(candidates map[string]struct{}, folder, listingPath string) bool {
	names := []string{
		strings.ToLower(folder),
		listing.Slugify(folder),
	}
	if l, err := listing.Read(listingPath); err == nil && l.SeoFilename != "" {
		seoStem := strings.ToLower(stemOf(l.SeoFilename))
		names = append(names, seoStem, listing.Slugify(seoStem))
	}
	for _, name := range names {
		if _, ok := candidates[name]; ok {
			return true
		}
	}
	return false
}

func stemOf(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
