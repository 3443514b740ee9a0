package listing

import (
	"path/filepath"
	"regexp"
)

var (
	skuInFilename = regexp.MustCompile(`(RJC-[A-Za-z0-9-]+?)(?:\.jpg)?$`)
	skuJPGSegment = regexp.MustCompile(`RJC-[A-Za-z0-9-]+\.jpg$`)
)

// InferSKUFromFilename extracts the SKU embedded at the end of a filename
// such as "sunrise-Artwork-by-Robin-Custance-RJC-0042.jpg". Returns the
// empty string when no SKU is present.
func InferSKUFromFilename(name string) string {
	base := filepath.Base(name)
	m := skuInFilename.FindStringSubmatch(base)
	if m == nil {
		return ""
	}
	return m[1]
}

// SyncFilenameWithSKU rewrites the SKU segment of a ".jpg" filename to
// match sku. Filenames without a trailing SKU segment are returned
// unchanged.
func SyncFilenameWithSKU(filename, sku string) string {
	if sku == "" {
		return filename
	}
	return skuJPGSegment.ReplaceAllString(filename, sku+".jpg")
}
