package listing

import (
	"path/filepath"
	"strings"
	"testing"
)

func validDescription() string {
	words := strings.Repeat("word ", 420)
	return words + "\n\n" + ArtistMarker + "\nRobin paints from Country."
}

func validListing(root string) *Listing {
	return &Listing{
		Filename:        "sunrise.jpg",
		AspectRatio:     "2x3",
		Title:           "Outback Sunrise",
		Description:     validDescription(),
		Tags:            []string{"dot painting", "aboriginal art"},
		Materials:       []string{"Archival ink", "Cotton rag paper"},
		PrimaryColour:   "Red",
		SecondaryColour: "Gold",
		Price:           17.88,
		SKU:             "RJC-0042",
		SeoFilename:     "outback-sunrise-Artwork-by-Robin-Custance-RJC-0042.jpg",
		Images: []string{
			filepath.Join(root, "outback-sunrise", "outback-sunrise-Artwork-by-Robin-Custance-RJC-0042.jpg"),
		},
	}
}

func TestValidateAcceptsCompleteListing(t *testing.T) {
	root := t.TempDir()
	errs := Validate(validListing(root), root)
	if len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	root := t.TempDir()
	l := validListing(root)
	l.Title = ""
	l.Price = 20.00
	l.PrimaryColour = "Magenta"
	l.SKU = "RJC-0001"

	errs := Validate(l, root)
	if len(errs) < 4 {
		t.Fatalf("expected all errors collected, got %v", errs)
	}

	joined := strings.Join(errs, "\n")
	for _, want := range []string{
		"Title is required.",
		"Price must be 17.88.",
		"Primary colour 'Magenta' is not an allowed colour.",
		"SKU 'RJC-0001' does not match SEO filename SKU 'RJC-0042'.",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in:\n%s", want, joined)
		}
	}
}

func TestValidateTagRules(t *testing.T) {
	root := t.TempDir()
	l := validListing(root)
	l.Tags = []string{"fine-art", "Dot Painting", "dot painting", "this tag is definitely far too long"}

	errs := Validate(l, root)
	joined := strings.Join(errs, "\n")
	for _, want := range []string{
		"Tag 'fine-art' contains invalid characters",
		"Duplicate tag 'dot painting'.",
		"Tag 'this tag is definitely far too long' exceeds 20 characters.",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in:\n%s", want, joined)
		}
	}
}

func TestValidateTooManyTags(t *testing.T) {
	root := t.TempDir()
	l := validListing(root)
	l.Tags = nil
	for i := 0; i < maxTags+1; i++ {
		l.Tags = append(l.Tags, "tag"+strings.Repeat("x", i%5)+string(rune('a'+i)))
	}

	errs := Validate(l, root)
	if !strings.Contains(strings.Join(errs, "\n"), "Too many tags") {
		t.Fatalf("expected tag count error, got %v", errs)
	}
}

func TestValidateSeoFilenameRules(t *testing.T) {
	root := t.TempDir()

	l := validListing(root)
	l.SeoFilename = "has space-Artwork-by-Robin-Custance-RJC-0042.jpg"
	errs := Validate(l, root)
	if !strings.Contains(strings.Join(errs, "\n"), "must not contain spaces") {
		t.Fatalf("expected space error, got %v", errs)
	}

	l = validListing(root)
	l.SeoFilename = "wrong-suffix-RJC-0042.jpg"
	errs = Validate(l, root)
	if !strings.Contains(strings.Join(errs, "\n"), "must end with 'Artwork-by-Robin-Custance-RJC-XXXX.jpg'") {
		t.Fatalf("expected suffix error, got %v", errs)
	}
}

func TestValidateImagesOutsideRoot(t *testing.T) {
	root := t.TempDir()
	l := validListing(root)
	l.Images = []string{"/elsewhere/picture.jpg"}

	errs := Validate(l, root)
	if !strings.Contains(strings.Join(errs, "\n"), "outside the finalised artwork folder") {
		t.Fatalf("expected image root error, got %v", errs)
	}
}

func TestValidateNoImages(t *testing.T) {
	root := t.TempDir()
	l := validListing(root)
	l.Images = nil

	errs := Validate(l, root)
	if !strings.Contains(strings.Join(errs, "\n"), "At least one image is required.") {
		t.Fatalf("expected image presence error, got %v", errs)
	}
}

func TestValidateDescriptionRules(t *testing.T) {
	root := t.TempDir()

	l := validListing(root)
	l.Description = "Too short. " + ArtistMarker
	errs := Validate(l, root)
	if !strings.Contains(strings.Join(errs, "\n"), "at least 400 words") {
		t.Fatalf("expected word count error, got %v", errs)
	}

	l = validListing(root)
	l.Description = strings.Repeat("word ", 450)
	errs = Validate(l, root)
	if !strings.Contains(strings.Join(errs, "\n"), "About the Artist") {
		t.Fatalf("expected marker error, got %v", errs)
	}

	l = validListing(root)
	l.Description = validDescription() + " <b>bold</b>"
	errs = Validate(l, root)
	if !strings.Contains(strings.Join(errs, "\n"), "HTML") {
		t.Fatalf("expected markup error, got %v", errs)
	}
}

func TestValidateChecksStoredDescription(t *testing.T) {
	root := t.TempDir()

	// A short marker-free description fails both checks even though the
	// generic disclosure block would supply the missing words and marker
	// once appended on save.
	l := validListing(root)
	l.Description = "Hand painted acrylic on canvas."
	errs := Validate(l, root)
	joined := strings.Join(errs, "\n")
	if !strings.Contains(joined, "at least 400 words") {
		t.Errorf("missing word count error in:\n%s", joined)
	}
	if !strings.Contains(joined, "About the Artist") {
		t.Errorf("missing marker error in:\n%s", joined)
	}

	// A description that already embeds the disclosure block, as one does
	// after an earlier save, validates clean.
	l = validListing(root)
	l.Description = CombineDescription(validDescription(), "Printed on archival paper.")
	if errs := Validate(l, root); len(errs) != 0 {
		t.Fatalf("expected embedded disclosure to validate, got %v", errs)
	}
}

func TestValidateMissingMarkerAddsOneMessage(t *testing.T) {
	root := t.TempDir()
	l := validListing(root)
	l.Description = strings.Repeat("word ", 450)

	errs := Validate(l, root)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if !strings.Contains(errs[0], "About the Artist") {
		t.Fatalf("expected marker error, got %q", errs[0])
	}
}
