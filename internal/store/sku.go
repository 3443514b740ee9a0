package store

import (
	"ezygallery/internal/listing"
	"ezygallery/internal/sku"
)

// AssignOrGetSKU ensures the listing carries a valid sequential SKU. A
// valid existing SKU is kept unless force is set; assignment always keeps
// the SEO filename in sync with the new SKU.
func AssignOrGetSKU(l *listing.Listing, alloc *sku.Allocator, force bool) error {
	if !force {
		if _, ok := sku.Parse(l.SKU); ok {
			return nil
		}
	}
	assigned, err := alloc.AssignNext()
	if err != nil {
		return err
	}
	l.SKU = assigned
	l.SeoFilename = listing.SyncFilenameWithSKU(l.SeoFilename, assigned)
	return nil
}

// AuditEntries converts gallery entries into SKU audit input.
func AuditEntries(entries []Entry) []sku.AuditEntry {
	out := make([]sku.AuditEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, sku.AuditEntry{Source: entry.Folder, SKU: entry.SKU})
	}
	return out
}
