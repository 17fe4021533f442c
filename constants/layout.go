package constants

// Receipt entry image display bounds (pixels). The slider in the form UI is
// clamped to the same range.
const (
	MinImageHeight     = 120
	MaxImageHeight     = 320
	DefaultImageHeight = 160
)

// PrintImageScale is the fixed factor applied to an entry's display height
// when projecting the printable page.
const PrintImageScale = 1.4

// RecognitionLanguage is the tesseract language hint for receipt photos.
const RecognitionLanguage = "chi_tra+eng"

// SearchMinQueryLength is the minimum number of characters before a customer
// search is issued.
const SearchMinQueryLength = 2
