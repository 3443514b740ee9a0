package lifecycle

import (
	"context"

	"ezygallery/internal/listing"
	"ezygallery/internal/logging"
	"ezygallery/internal/store"
)

// EditForm carries the editable listing fields. Nil pointers and nil
// slices mean "leave unchanged"; the SKU is read-only and always follows
// the SEO filename.
type EditForm struct {
	Title           *string
	Description     *string
	Tags            []string
	Materials       []string
	PrimaryColour   *string
	SecondaryColour *string
	SeoFilename     *string
	Price           *float64
}

// Edit applies form to an artwork's listing after full validation. On
// rejection the document on disk is untouched and the error carries
// every validation message.
func (m *Manager) Edit(ctx context.Context, aspect, filename string, form EditForm) (*listing.Listing, error) {
	loc, err := m.store.Resolve(aspect, filename)
	if err != nil {
		return nil, err
	}
	if err := m.requireUnlocked("edit", loc.ListingPath); err != nil {
		return nil, err
	}

	l, err := m.store.ReadListing(loc)
	if err != nil {
		return nil, err
	}

	if form.Title != nil {
		l.Title = *form.Title
	}
	if form.Description != nil {
		l.Description = *form.Description
	}
	if form.Tags != nil {
		l.Tags = listing.CleanTerms(form.Tags)
	}
	if form.Materials != nil {
		l.Materials = listing.CleanTerms(form.Materials)
	}
	if form.PrimaryColour != nil {
		l.PrimaryColour = *form.PrimaryColour
	}
	if form.SecondaryColour != nil {
		l.SecondaryColour = *form.SecondaryColour
	}
	if form.SeoFilename != nil {
		l.SeoFilename = *form.SeoFilename
	}
	if form.Price != nil {
		l.Price = *form.Price
	}

	// The SKU always mirrors the one embedded in the SEO filename.
	if inferred := listing.InferSKUFromFilename(l.SeoFilename); inferred != "" && inferred != l.SKU {
		l.SKU = inferred
	}

	if images, err := store.ImageFilesIn(loc.Dir); err == nil {
		l.Images = images
	}

	generic := m.store.GenericText(aspect)
	root := m.cfg.Paths.ProcessedDir
	if loc.Finalised {
		root = m.cfg.Paths.FinalisedDir
	}
	if msgs := listing.Validate(l, root); len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	l.Description = listing.CombineDescription(l.Description, generic)
	l.GenericText = generic

	if err := m.store.WriteListing(loc, l); err != nil {
		return nil, err
	}
	m.logger.Info("listing edited",
		logging.String("folder", loc.Folder),
		logging.String("sku", l.SKU))
	return l, nil
}
