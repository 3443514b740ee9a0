package listing

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	maxTitleLen       = 140
	maxTags           = 13
	maxTagLen         = 20
	maxMaterials      = 13
	maxMaterialLen    = 45
	maxSeoFilenameLen = 70
	maxSKULen         = 32
	minDescWords      = 400
)

var (
	tagCharset      = regexp.MustCompile(`^[A-Za-z0-9 ]+$`)
	materialCharset = regexp.MustCompile(`^[A-Za-z0-9 ,]+$`)
	seoCharset      = regexp.MustCompile(`^[A-Za-z0-9.-]+$`)
	skuCharset      = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	seoSuffix       = regexp.MustCompile(`Artwork-by-Robin-Custance-RJC-[A-Za-z0-9-]+\.jpg$`)
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// Validate checks every field of the listing and returns the full ordered
// list of problems. An empty slice means the listing is publishable.
// The description checks run on the stored description itself; a
// disclosure block appended on an earlier save counts toward them.
// finalisedRoot, when non-empty, is the directory every image must live
// under.
func Validate(l *Listing, finalisedRoot string) []string {
	var errs []string

	errs = append(errs, validateTitle(l.Title)...)
	errs = append(errs, validateTags(l.Tags)...)
	errs = append(errs, validateMaterials(l.Materials)...)
	errs = append(errs, validateSeoFilename(l.SeoFilename)...)
	errs = append(errs, validateSKU(l.SKU, l.SeoFilename)...)
	errs = append(errs, validatePrice(l.Price)...)
	errs = append(errs, validateColours(l.PrimaryColour, l.SecondaryColour)...)
	errs = append(errs, validateImages(l.Images, finalisedRoot)...)
	errs = append(errs, validateDescription(l.Description)...)

	return errs
}

func validateTitle(title string) []string {
	var errs []string
	if strings.TrimSpace(title) == "" {
		errs = append(errs, "Title is required.")
	}
	if len(title) > maxTitleLen {
		errs = append(errs, fmt.Sprintf("Title exceeds %d characters.", maxTitleLen))
	}
	return errs
}

func validateTags(tags []string) []string {
	var errs []string
	if len(tags) > maxTags {
		errs = append(errs, fmt.Sprintf("Too many tags (maximum %d).", maxTags))
	}
	seen := map[string]struct{}{}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			errs = append(errs, "Empty tag.")
			continue
		}
		if len(tag) > maxTagLen {
			errs = append(errs, fmt.Sprintf("Tag '%s' exceeds %d characters.", tag, maxTagLen))
		}
		if !tagCharset.MatchString(tag) {
			errs = append(errs, fmt.Sprintf("Tag '%s' contains invalid characters (letters, numbers and spaces only).", tag))
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			errs = append(errs, fmt.Sprintf("Duplicate tag '%s'.", tag))
		}
		seen[key] = struct{}{}
	}
	return errs
}

func validateMaterials(materials []string) []string {
	var errs []string
	if len(materials) > maxMaterials {
		errs = append(errs, fmt.Sprintf("Too many materials (maximum %d).", maxMaterials))
	}
	seen := map[string]struct{}{}
	for _, material := range materials {
		if strings.TrimSpace(material) == "" {
			errs = append(errs, "Empty material.")
			continue
		}
		if len(material) > maxMaterialLen {
			errs = append(errs, fmt.Sprintf("Material '%s' exceeds %d characters.", material, maxMaterialLen))
		}
		if !materialCharset.MatchString(material) {
			errs = append(errs, fmt.Sprintf("Material '%s' contains invalid characters.", material))
		}
		key := strings.ToLower(material)
		if _, dup := seen[key]; dup {
			errs = append(errs, fmt.Sprintf("Duplicate material '%s'.", material))
		}
		seen[key] = struct{}{}
	}
	return errs
}

func validateSeoFilename(seo string) []string {
	var errs []string
	if strings.TrimSpace(seo) == "" {
		errs = append(errs, "SEO filename is required.")
		return errs
	}
	if len(seo) > maxSeoFilenameLen {
		errs = append(errs, fmt.Sprintf("SEO filename exceeds %d characters.", maxSeoFilenameLen))
	}
	if strings.Contains(seo, " ") {
		errs = append(errs, "SEO filename must not contain spaces.")
	} else if !seoCharset.MatchString(seo) {
		errs = append(errs, "SEO filename contains invalid characters (letters, numbers, dots and hyphens only).")
	}
	if !seoSuffix.MatchString(seo) {
		errs = append(errs, "SEO filename must end with 'Artwork-by-Robin-Custance-RJC-XXXX.jpg'.")
	}
	return errs
}

func validateSKU(sku, seo string) []string {
	var errs []string
	if strings.TrimSpace(sku) == "" {
		errs = append(errs, "SKU is required.")
		return errs
	}
	if len(sku) > maxSKULen {
		errs = append(errs, fmt.Sprintf("SKU exceeds %d characters.", maxSKULen))
	}
	if !skuCharset.MatchString(sku) {
		errs = append(errs, "SKU contains invalid characters (letters, numbers and hyphens only).")
	}
	if !strings.HasPrefix(sku, "RJC-") {
		errs = append(errs, "SKU must start with 'RJC-'.")
	}
	if embedded := InferSKUFromFilename(seo); embedded != "" && embedded != sku {
		errs = append(errs, fmt.Sprintf("SKU '%s' does not match SEO filename SKU '%s'.", sku, embedded))
	}
	return errs
}

func validatePrice(price float64) []string {
	if math.Abs(price-TargetPrice) > PriceTolerance {
		return []string{fmt.Sprintf("Price must be %.2f.", TargetPrice)}
	}
	return nil
}

func validateColours(primary, secondary string) []string {
	var errs []string
	if strings.TrimSpace(primary) == "" {
		errs = append(errs, "Primary colour is required.")
	} else if !IsAllowedColour(primary) {
		errs = append(errs, fmt.Sprintf("Primary colour '%s' is not an allowed colour.", primary))
	}
	if strings.TrimSpace(secondary) == "" {
		errs = append(errs, "Secondary colour is required.")
	} else if !IsAllowedColour(secondary) {
		errs = append(errs, fmt.Sprintf("Secondary colour '%s' is not an allowed colour.", secondary))
	}
	return errs
}

func validateImages(images []string, finalisedRoot string) []string {
	var errs []string
	if len(images) == 0 {
		errs = append(errs, "At least one image is required.")
		return errs
	}
	root := filepath.Clean(finalisedRoot)
	for _, image := range images {
		if strings.Contains(image, " ") {
			errs = append(errs, fmt.Sprintf("Image path '%s' contains spaces.", image))
		}
		ext := strings.ToLower(filepath.Ext(image))
		if _, ok := imageExtensions[ext]; !ok {
			errs = append(errs, fmt.Sprintf("Image '%s' has an unsupported extension.", image))
		}
		if finalisedRoot != "" {
			cleaned := filepath.Clean(image)
			if !strings.HasPrefix(cleaned, root+string(filepath.Separator)) {
				errs = append(errs, fmt.Sprintf("Image '%s' is outside the finalised artwork folder.", image))
			}
		}
	}
	return errs
}

func validateDescription(description string) []string {
	var errs []string
	if words := len(strings.Fields(description)); words < minDescWords {
		errs = append(errs, fmt.Sprintf("Description must be at least %d words (currently %d).", minDescWords, words))
	}
	if !strings.Contains(description, ArtistMarker) {
		errs = append(errs, fmt.Sprintf("Description must include the '%s' section.", ArtistMarker))
	}
	if strings.ContainsAny(description, "<>") {
		errs = append(errs, "Description must not contain HTML markup.")
	}
	return errs
}
