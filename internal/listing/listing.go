package listing

import (
	"encoding/json"
	"fmt"
	"os"

	"ezygallery/internal/fileutil"
	"ezygallery/internal/services"
)

// ArtistMarker is the section heading every finished description must
// contain. The dash is U+2013, matching the published listings.
const ArtistMarker = "About the Artist – Robin Custance"

// TargetPrice is the fixed listing price. Stored values are accepted
// within PriceTolerance of it.
const (
	TargetPrice    = 17.88
	PriceTolerance = 0.01
)

// Mockup is one mockup slot on a listing: the background category, the
// source background image, and the rendered composite.
type Mockup struct {
	Category  string `json:"category"`
	Source    string `json:"source"`
	Composite string `json:"composite"`
}

// UnmarshalJSON accepts both the tagged object form and the legacy bare
// string form, where the string is the composite path.
func (m *Mockup) UnmarshalJSON(data []byte) error {
	var legacy string
	if err := json.Unmarshal(data, &legacy); err == nil {
		*m = Mockup{Composite: legacy}
		return nil
	}
	type alias Mockup
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("mockup slot: %w", err)
	}
	*m = Mockup(decoded)
	return nil
}

// Listing is the persisted artwork document. Field names mirror the
// on-disk JSON layout.
type Listing struct {
	Filename        string          `json:"filename"`
	AspectRatio     string          `json:"aspect_ratio"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Tags            []string        `json:"tags"`
	Materials       []string        `json:"materials"`
	PrimaryColour   string          `json:"primary_colour"`
	SecondaryColour string          `json:"secondary_colour"`
	Price           float64         `json:"price"`
	SKU             string          `json:"sku"`
	SeoFilename     string          `json:"seo_filename"`
	MainJPGPath     string          `json:"main_jpg_path,omitempty"`
	OrigJPGPath     string          `json:"orig_jpg_path,omitempty"`
	ThumbJPGPath    string          `json:"thumb_jpg_path,omitempty"`
	ProcessedFolder string          `json:"processed_folder,omitempty"`
	Images          []string        `json:"images"`
	Mockups         []Mockup        `json:"mockups,omitempty"`
	Locked          bool            `json:"locked"`
	LockedBy        string          `json:"locked_by,omitempty"`
	LockedAt        string          `json:"locked_at,omitempty"`
	LockReason      string          `json:"lock_reason,omitempty"`
	GenericText     string          `json:"generic_text,omitempty"`
	AIListing       json.RawMessage `json:"ai_listing,omitempty"`
}

// Read decodes the listing document at path.
func Read(path string) (*Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, services.Wrap(services.ErrNotFound, "listing", "read", path, err)
		}
		return nil, services.Wrap(services.ErrIO, "listing", "read", path, err)
	}
	var l Listing
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, services.Wrap(services.ErrIO, "listing", "parse", path, err)
	}
	return &l, nil
}

// Write encodes the listing as indented JSON and atomically replaces the
// document at path.
func Write(path string, l *Listing) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return services.Wrap(services.ErrIO, "listing", "encode", path, err)
	}
	if err := fileutil.WriteFileAtomic(path, append(data, '\n'), 0o644); err != nil {
		return services.Wrap(services.ErrIO, "listing", "write", path, err)
	}
	return nil
}
