package htmldoc

// ImageFormat classifies an image by its file extension
type ImageFormat string

const (
	// FormatNextGen marks compression-efficient formats (webp, avif, svg, jpeg2000)
	FormatNextGen ImageFormat = "next-gen"
	// FormatLegacy marks jpg, jpeg, png, and gif
	FormatLegacy ImageFormat = "legacy"
	// FormatUnknown marks images whose extension is missing or unrecognized
	FormatUnknown ImageFormat = "unknown"
)

// Heading is one heading element in document order
type Heading struct {
	// Level is 1 through 6
	Level int
	// Text is the collapsed text content
	Text string
}

// Image is one img element in document order
type Image struct {
	Src    string
	Alt    string
	Format ImageFormat
}

// Link is one anchor element whose href survived the dangerous-scheme filter
type Link struct {
	Href string
	// Internal is true when the link resolves to the same registrable domain
	Internal bool
}

// ScriptBlock is the raw text of one script element. Script content is
// inspected, never executed, and never contributes to BodyText.
type ScriptBlock struct {
	// Type is the script element's type attribute
	Type string
	// Text is the raw script content
	Text string
}

// Document is the read-only structured view of a fetched page that the
// check battery consumes. It is created per analysis request and
// discarded after scoring.
type Document struct {
	Title           string
	MetaDescription string
	// OpenGraph maps og:* property names to their content values
	OpenGraph map[string]string
	Headings  []Heading
	Images    []Image
	Links     []Link
	// BodyText is the concatenated visible text of the page
	BodyText string
	// FirstParagraph is the text of the first non-empty paragraph
	FirstParagraph string
	// WordCount counts whitespace-separated words in BodyText
	WordCount int
	// ScriptBlocks holds raw script text for inspection only
	ScriptBlocks []ScriptBlock
}

// HasJSONLD reports whether the page carries a non-empty
// application/ld+json structured data block
func (d *Document) HasJSONLD() bool {
	for _, s := range d.ScriptBlocks {
		if s.Type == "application/ld+json" && s.Text != "" {
			return true
		}
	}

	return false
}
