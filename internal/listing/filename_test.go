package listing

import "testing"

func TestInferSKUFromFilename(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"sunrise-Artwork-by-Robin-Custance-RJC-0042.jpg", "RJC-0042"},
		{"RJC-0001.jpg", "RJC-0001"},
		{"RJC-0001", "RJC-0001"},
		{"/tmp/a/RJC-0009.jpg", "RJC-0009"},
		{"no-sku-here.jpg", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := InferSKUFromFilename(tc.name); got != tc.want {
			t.Errorf("InferSKUFromFilename(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestSyncFilenameWithSKU(t *testing.T) {
	got := SyncFilenameWithSKU("sunrise-Artwork-by-Robin-Custance-RJC-0042.jpg", "RJC-0100")
	want := "sunrise-Artwork-by-Robin-Custance-RJC-0100.jpg"
	if got != want {
		t.Fatalf("SyncFilenameWithSKU = %q, want %q", got, want)
	}

	// No SKU segment: unchanged.
	if got := SyncFilenameWithSKU("plain.jpg", "RJC-0100"); got != "plain.jpg" {
		t.Fatalf("expected unchanged filename, got %q", got)
	}

	// Empty SKU: unchanged.
	if got := SyncFilenameWithSKU("a-RJC-0001.jpg", ""); got != "a-RJC-0001.jpg" {
		t.Fatalf("expected unchanged filename, got %q", got)
	}
}
