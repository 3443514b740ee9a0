package store

// File naming inside an artwork folder. The slug is the SEO filename stem,
// which is also the folder name.
const (
	thumbSuffix     = "-THUMB.jpg"
	analyseSuffix   = "-ANALYSE.jpg"
	listingSuffix   = "-listing.json"
	FinalisedMarker = "finalised.txt"
	qcSidecarSuffix = ".qc.json"
	mainImageExt    = ".jpg"
)

func MainImageName(slug string) string { return slug + mainImageExt }

func ThumbImageName(slug string) string { return slug + thumbSuffix }

func AnalyseImageName(slug string) string { return slug + analyseSuffix }

func ListingFilename(slug string) string { return slug + listingSuffix }

func QCSidecarName(base string) string { return base + qcSidecarSuffix }
