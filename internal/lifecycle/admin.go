package lifecycle

import (
	"context"
	"os"
	"path/filepath"

	"ezygallery/internal/listing"
	"ezygallery/internal/logging"
	"ezygallery/internal/services"
	"ezygallery/internal/store"
)

// Delete removes an artwork entirely: its folder in whichever root holds
// it and the original file in the input directory. Locked artworks
// cannot be deleted.
func (m *Manager) Delete(ctx context.Context, aspect, filename string) error {
	loc, err := m.store.Resolve(aspect, filename)
	if err != nil {
		return err
	}
	if err := m.requireUnlocked("delete", loc.ListingPath); err != nil {
		return err
	}

	l, err := m.store.ReadListing(loc)
	if err == nil {
		m.removeInputOriginal(l)
	}

	if err := os.RemoveAll(loc.Dir); err != nil {
		return services.Wrap(services.ErrIO, "lifecycle", "delete", loc.Dir, err)
	}

	// The folder may exist in both roots after a partial finalise.
	other := filepath.Join(m.cfg.Paths.FinalisedDir, loc.Folder)
	if loc.Finalised {
		other = filepath.Join(m.cfg.Paths.ProcessedDir, loc.Folder)
	}
	if other != loc.Dir {
		if err := os.RemoveAll(other); err != nil {
			return services.Wrap(services.ErrIO, "lifecycle", "delete", other, err)
		}
	}

	m.logger.Info("artwork deleted", logging.String("folder", loc.Folder))
	return nil
}

// Lock locks a finalised artwork against edits. Only finalised artworks
// can be locked.
func (m *Manager) Lock(ctx context.Context, aspect, filename, user, reason string) error {
	loc, err := m.store.Resolve(aspect, filename)
	if err != nil {
		return err
	}
	if !loc.Finalised {
		return services.Wrap(services.ErrConflict, "lifecycle", "lock", "only finalised artworks can be locked", nil)
	}
	if err := listing.UpdateLock(loc.ListingPath, true, user, reason); err != nil {
		return err
	}
	m.logger.Info("artwork locked",
		logging.String("folder", loc.Folder),
		logging.String("user", user))
	return nil
}

// Unlock clears both lock signals on an artwork.
func (m *Manager) Unlock(ctx context.Context, aspect, filename string) error {
	loc, err := m.store.Resolve(aspect, filename)
	if err != nil {
		return err
	}
	if err := listing.UpdateLock(loc.ListingPath, false, "", ""); err != nil {
		return err
	}
	m.logger.Info("artwork unlocked", logging.String("folder", loc.Folder))
	return nil
}

// ResetSKU force-assigns a fresh tracker SKU to an artwork and syncs the
// SEO filename with it.
func (m *Manager) ResetSKU(ctx context.Context, aspect, filename string) (*listing.Listing, error) {
	loc, err := m.store.Resolve(aspect, filename)
	if err != nil {
		return nil, err
	}
	if err := m.requireUnlocked("reset sku", loc.ListingPath); err != nil {
		return nil, err
	}

	l, err := m.store.ReadListing(loc)
	if err != nil {
		return nil, err
	}
	if err := store.AssignOrGetSKU(l, m.sku, true); err != nil {
		return nil, err
	}
	if err := m.store.WriteListing(loc, l); err != nil {
		return nil, err
	}
	m.logger.Info("sku reset",
		logging.String("folder", loc.Folder),
		logging.String("sku", l.SKU))
	return l, nil
}

// UpdateLinks recomputes the listing's image list from the files present
// in its folder.
func (m *Manager) UpdateLinks(ctx context.Context, aspect, filename string) (*listing.Listing, error) {
	loc, err := m.store.Resolve(aspect, filename)
	if err != nil {
		return nil, err
	}
	if err := m.requireUnlocked("update links", loc.ListingPath); err != nil {
		return nil, err
	}
	return m.store.UpdateImageLinks(loc)
}
