package store

import (
	"context"
	"fmt"
	"path/filepath"

	"ezygallery/internal/listing"
	"ezygallery/internal/logging"
	"ezygallery/internal/services"
)

// CompositeGenerator renders a mockup composite at target. The default
// implementation shells out to the configured compositor.
type CompositeGenerator interface {
	Generate(ctx context.Context, target, logPath string) error
}

// RegenerateMockup re-renders the composite for one mockup slot and
// persists the updated listing.
func (s *Store) RegenerateMockup(ctx context.Context, loc Location, index int, gen CompositeGenerator, logPath string) error {
	l, err := s.ReadListing(loc)
	if err != nil {
		return err
	}
	slot, err := mockupSlot(l, index)
	if err != nil {
		return err
	}

	if slot.Composite == "" {
		slot.Composite = filepath.Join(loc.Dir, fmt.Sprintf("%s-mockup-%02d.jpg", loc.Folder, index+1))
	}
	if err := gen.Generate(ctx, slot.Composite, logPath); err != nil {
		return err
	}
	if err := s.WriteListing(loc, l); err != nil {
		return err
	}
	s.logger.Info("regenerated mockup",
		logging.String("folder", loc.Folder),
		logging.Int("slot", index),
		logging.String("composite", slot.Composite))
	return nil
}

// SwapMockup replaces the background of one mockup slot and re-renders
// its composite.
func (s *Store) SwapMockup(ctx context.Context, loc Location, index int, category, source string, gen CompositeGenerator, logPath string) error {
	l, err := s.ReadListing(loc)
	if err != nil {
		return err
	}
	slot, err := mockupSlot(l, index)
	if err != nil {
		return err
	}

	slot.Category = category
	slot.Source = source
	if slot.Composite == "" {
		slot.Composite = filepath.Join(loc.Dir, fmt.Sprintf("%s-mockup-%02d.jpg", loc.Folder, index+1))
	}
	if err := gen.Generate(ctx, slot.Composite, logPath); err != nil {
		return err
	}
	if err := s.WriteListing(loc, l); err != nil {
		return err
	}
	s.logger.Info("swapped mockup",
		logging.String("folder", loc.Folder),
		logging.Int("slot", index),
		logging.String("category", category))
	return nil
}

func mockupSlot(l *listing.Listing, index int) (*listing.Mockup, error) {
	if index < 0 || index >= len(l.Mockups) {
		return nil, services.Wrap(services.ErrNotFound, "store", "mockup slot",
			fmt.Sprintf("slot %d out of range (have %d)", index, len(l.Mockups)), nil)
	}
	return &l.Mockups[index], nil
}
