package listing

import "testing"

func TestIsAllowedColourCaseInsensitive(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"Blue", true},
		{"blue", true},
		{"BLUE", true},
		{"Rose gold", true},
		{"rose gold", true},
		{"ROSE GOLD", true},
		{"Magenta", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsAllowedColour(tc.value); got != tc.want {
			t.Errorf("IsAllowedColour(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestValidateAcceptsLowercaseColours(t *testing.T) {
	root := t.TempDir()
	l := validListing(root)
	l.PrimaryColour = "red"
	l.SecondaryColour = "gold"

	if errs := Validate(l, root); len(errs) != 0 {
		t.Fatalf("expected lowercase colours to validate, got %v", errs)
	}
}
