package listing

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	nonAlnumRun   = regexp.MustCompile(`[^a-z0-9]+`)
	termDisallow  = regexp.MustCompile(`[^A-Za-z0-9 -]+`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Slugify lowercases value and collapses every non-alphanumeric run into a
// single hyphen.
func Slugify(value string) string {
	slug := nonAlnumRun.ReplaceAllString(strings.ToLower(value), "-")
	return strings.Trim(slug, "-")
}

// PrettifySlug turns a slug or filename stem back into display text.
func PrettifySlug(slug string) string {
	text := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	text = whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " ")
	return cases.Title(language.English).String(text)
}

// CleanTerms normalizes a list of tags or materials: disallowed characters
// are stripped, whitespace is collapsed, and empty results are dropped.
// Duplicates are preserved so validation can report them.
func CleanTerms(terms []string) []string {
	cleaned := make([]string, 0, len(terms))
	for _, term := range terms {
		term = termDisallow.ReplaceAllString(term, "")
		term = whitespaceRun.ReplaceAllString(strings.TrimSpace(term), " ")
		if term == "" {
			continue
		}
		cleaned = append(cleaned, term)
	}
	return cleaned
}

// ParseCSVList splits a comma-separated field into trimmed entries.
func ParseCSVList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// JoinCSVList renders entries as a comma-separated field.
func JoinCSVList(items []string) string {
	return strings.Join(items, ", ")
}

// BuildFullListingText joins the AI-generated description and the generic
// text block, skipping empty parts.
func BuildFullListingText(ai, generic string) string {
	parts := make([]string, 0, 2)
	if trimmed := strings.TrimSpace(ai); trimmed != "" {
		parts = append(parts, trimmed)
	}
	if trimmed := strings.TrimSpace(generic); trimmed != "" {
		parts = append(parts, trimmed)
	}
	return strings.Join(parts, "\n\n")
}

// CombineDescription appends the generic disclosure to the description
// unless the description already ends with it.
func CombineDescription(description, generic string) string {
	desc := strings.TrimRight(description, " \t\r\n")
	gen := strings.TrimSpace(generic)
	if gen == "" {
		return desc
	}
	if strings.HasSuffix(desc, gen) {
		return desc
	}
	if desc == "" {
		return gen
	}
	return desc + "\n\n" + gen
}
