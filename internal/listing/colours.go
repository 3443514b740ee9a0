package listing

import "strings"

// AllowedColours is the closed colour vocabulary for primary and
// secondary colour fields.
var AllowedColours = []string{
	"Beige",
	"Black",
	"Blue",
	"Bronze",
	"Brown",
	"Clear",
	"Copper",
	"Gold",
	"Grey",
	"Green",
	"Orange",
	"Pink",
	"Purple",
	"Rainbow",
	"Red",
	"Rose gold",
	"Silver",
	"White",
	"Yellow",
}

var allowedColourSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(AllowedColours))
	for _, c := range AllowedColours {
		set[strings.ToLower(c)] = struct{}{}
	}
	return set
}()

// IsAllowedColour reports whether value is in the colour vocabulary.
// Matching is case-insensitive; the AI tool is not consistent about
// capitalisation.
func IsAllowedColour(value string) bool {
	_, ok := allowedColourSet[strings.ToLower(value)]
	return ok
}
