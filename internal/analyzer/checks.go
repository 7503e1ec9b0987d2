package analyzer

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"

	"github.com/die-Manufaktur/seo-copilot-api/internal/htmldoc"
	"github.com/die-Manufaktur/seo-copilot-api/internal/types"
)

const (
	// minContentWords is the minimum word count for the content length check
	minContentWords = 300
	// minKeyphraseDensity and maxKeyphraseDensity bound the healthy
	// keyphrase density window, in percent
	minKeyphraseDensity = 0.5
	maxKeyphraseDensity = 2.5
	// nextGenPassThreshold is the share of next-gen images needed to pass.
	// Policy constant, not an invariant of the algorithm.
	nextGenPassThreshold = 0.70
	// noImagesMessage is the fixed pass message for image checks on pages
	// without images
	noImagesMessage = "No images found on the page"
	// learnMoreBase is the documentation root for per-check guidance
	learnMoreBase = "https://ai-seo-copilot.gitbook.io/ai-seo-copilot/seo-checks/"
)

// CheckInput is the immutable view one check evaluates
type CheckInput struct {
	// Doc is the extracted document model
	Doc *htmldoc.Document
	// URL is the normalized page URL
	URL *url.URL
	// Keyphrase is the sanitized focus keyphrase, possibly empty
	Keyphrase string
}

// checkFunc is a pure, deterministic evaluator over the extracted
// document. Checks never perform I/O and never fail the batch: a signal
// that cannot be evaluated reports passed=false with an explanation.
type checkFunc func(in CheckInput) types.CheckResult

// checkRegistry is the fixed check battery. Output order always follows
// registry order, regardless of how checks are scheduled.
var checkRegistry = []checkFunc{
	checkKeyphraseInTitle,
	checkKeyphraseInMetaDescription,
	checkKeyphraseInURL,
	checkContentLength,
	checkKeyphraseDensity,
	checkKeyphraseInIntroduction,
	checkImageAltText,
	checkInternalLinks,
	checkOutboundLinks,
	checkNextGenImageFormats,
	checkOpenGraphTitleDescription,
	checkOpenGraphImage,
	checkKeyphraseInH1,
	checkKeyphraseInH2,
	checkHeadingHierarchy,
	checkSchemaMarkup,
}

// newResult builds a CheckResult with the shared fields filled in
func newResult(title, description string, priority types.Priority, slug string) types.CheckResult {
	return types.CheckResult{
		Title:         title,
		Description:   description,
		Priority:      priority,
		LearnMoreLink: learnMoreBase + slug,
	}
}

// pass marks a result passed with the given outcome text
func pass(r types.CheckResult, format string, args ...any) types.CheckResult {
	r.Passed = true
	r.Result = fmt.Sprintf(format, args...)

	return r
}

// fail marks a result failed with the given outcome text
func fail(r types.CheckResult, format string, args ...any) types.CheckResult {
	r.Passed = false
	r.Result = fmt.Sprintf(format, args...)

	return r
}

// containsPhrase reports whether haystack contains the keyphrase,
// case-insensitively
func containsPhrase(haystack, phrase string) bool {
	return phrase != "" && strings.Contains(strings.ToLower(haystack), strings.ToLower(phrase))
}

func checkKeyphraseInTitle(in CheckInput) types.CheckResult {
	r := newResult(
		"Keyphrase in Title",
		"The focus keyphrase should appear in the page title",
		types.PriorityHigh,
		"keyphrase-in-title",
	)

	switch {
	case in.Doc.Title == "":
		return fail(r, "The page has no title tag, so the keyphrase cannot appear in it")
	case in.Keyphrase == "":
		return fail(r, "No focus keyphrase was provided")
	case containsPhrase(in.Doc.Title, in.Keyphrase):
		return pass(r, "Your focus keyphrase appears in the page title")
	default:
		return fail(r, "Your focus keyphrase %q is missing from the title %q", in.Keyphrase, in.Doc.Title)
	}
}

func checkKeyphraseInMetaDescription(in CheckInput) types.CheckResult {
	r := newResult(
		"Keyphrase in Meta Description",
		"The focus keyphrase should appear in the meta description",
		types.PriorityHigh,
		"keyphrase-in-meta-description",
	)

	switch {
	case in.Doc.MetaDescription == "":
		return fail(r, "The page has no meta description")
	case in.Keyphrase == "":
		return fail(r, "No focus keyphrase was provided")
	case containsPhrase(in.Doc.MetaDescription, in.Keyphrase):
		return pass(r, "Your focus keyphrase appears in the meta description")
	default:
		return fail(r, "Add your focus keyphrase to the meta description")
	}
}

func checkKeyphraseInURL(in CheckInput) types.CheckResult {
	r := newResult(
		"Keyphrase in URL",
		"The focus keyphrase should appear in the page URL slug",
		types.PriorityMedium,
		"keyphrase-in-url",
	)

	if in.Keyphrase == "" {
		return fail(r, "No focus keyphrase was provided")
	}

	urlText := strings.ToLower(in.URL.Hostname() + in.URL.Path)
	phrase := strings.ToLower(in.Keyphrase)

	// slugs usually join words with hyphens or underscores, or drop
	// separators entirely
	candidates := []string{
		strings.ReplaceAll(phrase, " ", "-"),
		strings.ReplaceAll(phrase, " ", "_"),
		strings.ReplaceAll(phrase, " ", ""),
		phrase,
	}

	for _, candidate := range candidates {
		if strings.Contains(urlText, candidate) {
			return pass(r, "Your focus keyphrase appears in the URL")
		}
	}

	return fail(r, "Your focus keyphrase is missing from the URL")
}

func checkContentLength(in CheckInput) types.CheckResult {
	r := newResult(
		"Content Length",
		"Pages should carry enough textual content to rank",
		types.PriorityHigh,
		"content-length",
	)

	if in.Doc.WordCount >= minContentWords {
		return pass(r, "The page has %d words, above the %d word minimum", in.Doc.WordCount, minContentWords)
	}

	return fail(r, "The page has only %d words; aim for at least %d", in.Doc.WordCount, minContentWords)
}

func checkKeyphraseDensity(in CheckInput) types.CheckResult {
	r := newResult(
		"Keyphrase Density",
		"The focus keyphrase should appear with healthy frequency, neither stuffed nor absent",
		types.PriorityMedium,
		"keyphrase-density",
	)

	if in.Keyphrase == "" {
		return fail(r, "No focus keyphrase was provided")
	}

	if in.Doc.WordCount == 0 {
		return fail(r, "The page has no visible text to measure density against")
	}

	occurrences := strings.Count(
		strings.ToLower(in.Doc.BodyText),
		strings.ToLower(in.Keyphrase),
	)
	phraseWords := len(strings.Fields(in.Keyphrase))
	density := float64(occurrences*phraseWords) / float64(in.Doc.WordCount) * 100

	if density >= minKeyphraseDensity && density <= maxKeyphraseDensity {
		return pass(r, "Keyphrase density is %.1f%% (%d occurrences), within the %.1f%%-%.1f%% range",
			density, occurrences, minKeyphraseDensity, maxKeyphraseDensity)
	}

	if density < minKeyphraseDensity {
		return fail(r, "Keyphrase density is %.1f%% (%d occurrences); use the keyphrase more often",
			density, occurrences)
	}

	return fail(r, "Keyphrase density is %.1f%% (%d occurrences); this looks like keyword stuffing",
		density, occurrences)
}

func checkKeyphraseInIntroduction(in CheckInput) types.CheckResult {
	r := newResult(
		"Keyphrase in Introduction",
		"The focus keyphrase should appear in the first paragraph",
		types.PriorityMedium,
		"keyphrase-in-introduction",
	)

	switch {
	case in.Keyphrase == "":
		return fail(r, "No focus keyphrase was provided")
	case in.Doc.FirstParagraph == "":
		return fail(r, "The page has no introductory paragraph")
	case containsPhrase(in.Doc.FirstParagraph, in.Keyphrase):
		return pass(r, "Your focus keyphrase appears in the introduction")
	default:
		return fail(r, "Mention your focus keyphrase in the first paragraph")
	}
}

func checkImageAltText(in CheckInput) types.CheckResult {
	r := newResult(
		"Image Alt Attributes",
		"Every image should carry descriptive alt text",
		types.PriorityLow,
		"image-alt-attributes",
	)

	if len(in.Doc.Images) == 0 {
		return pass(r, noImagesMessage)
	}

	missing := lo.CountBy(in.Doc.Images, func(img htmldoc.Image) bool {
		return strings.TrimSpace(img.Alt) == ""
	})

	if missing == 0 {
		return pass(r, "All %d images have alt text", len(in.Doc.Images))
	}

	return fail(r, "%d of %d images are missing alt text", missing, len(in.Doc.Images))
}

func checkInternalLinks(in CheckInput) types.CheckResult {
	r := newResult(
		"Internal Links",
		"Pages should link to other pages on the same site",
		types.PriorityMedium,
		"internal-links",
	)

	internal := lo.CountBy(in.Doc.Links, func(l htmldoc.Link) bool { return l.Internal })

	if internal > 0 {
		return pass(r, "The page has %d internal links", internal)
	}

	return fail(r, "The page has no internal links; add links to related pages on your site")
}

func checkOutboundLinks(in CheckInput) types.CheckResult {
	r := newResult(
		"Outbound Links",
		"Linking to relevant external sources supports credibility",
		types.PriorityLow,
		"outbound-links",
	)

	outbound := lo.CountBy(in.Doc.Links, func(l htmldoc.Link) bool { return !l.Internal })

	if outbound > 0 {
		return pass(r, "The page has %d outbound links", outbound)
	}

	return fail(r, "The page has no outbound links; consider citing external sources")
}

func checkNextGenImageFormats(in CheckInput) types.CheckResult {
	r := newResult(
		"Next-Gen Image Formats",
		"Most images should use WebP, AVIF, SVG, or JPEG2000 for compression efficiency",
		types.PriorityLow,
		"next-gen-image-formats",
	)

	total := len(in.Doc.Images)
	if total == 0 {
		return pass(r, noImagesMessage)
	}

	nextGen := lo.CountBy(in.Doc.Images, func(img htmldoc.Image) bool {
		return img.Format == htmldoc.FormatNextGen
	})

	ratio := float64(nextGen) / float64(total)
	percent := int(ratio * 100)

	if ratio >= nextGenPassThreshold {
		return pass(r, "%d%% of images use next-gen formats (%d/%d)", percent, nextGen, total)
	}

	return fail(r, "Convert more images to next-gen formats. Only %d%% use them (%d/%d)", percent, nextGen, total)
}

func checkOpenGraphTitleDescription(in CheckInput) types.CheckResult {
	r := newResult(
		"Open Graph Title & Description",
		"Pages should declare og:title and og:description for link sharing",
		types.PriorityMedium,
		"open-graph-title-and-description",
	)

	hasTitle := in.Doc.OpenGraph["og:title"] != ""
	hasDescription := in.Doc.OpenGraph["og:description"] != ""

	switch {
	case hasTitle && hasDescription:
		return pass(r, "Open Graph title and description are both set")
	case hasTitle:
		return fail(r, "og:description is missing")
	case hasDescription:
		return fail(r, "og:title is missing")
	default:
		return fail(r, "og:title and og:description are both missing")
	}
}

func checkOpenGraphImage(in CheckInput) types.CheckResult {
	r := newResult(
		"Open Graph Image",
		"Pages should declare an og:image for link previews",
		types.PriorityMedium,
		"open-graph-image",
	)

	if in.Doc.OpenGraph["og:image"] != "" {
		return pass(r, "An Open Graph image is set")
	}

	return fail(r, "No og:image is set; shared links will render without a preview image")
}

func checkKeyphraseInH1(in CheckInput) types.CheckResult {
	r := newResult(
		"Keyphrase in H1 Heading",
		"The focus keyphrase should appear in the main heading",
		types.PriorityHigh,
		"keyphrase-in-h1",
	)

	h1s := lo.Filter(in.Doc.Headings, func(h htmldoc.Heading, _ int) bool { return h.Level == 1 })

	switch {
	case len(h1s) == 0:
		return fail(r, "The page has no H1 heading")
	case in.Keyphrase == "":
		return fail(r, "No focus keyphrase was provided")
	}

	for _, h := range h1s {
		if containsPhrase(h.Text, in.Keyphrase) {
			return pass(r, "Your focus keyphrase appears in the H1 heading")
		}
	}

	return fail(r, "Your focus keyphrase is missing from the H1 heading")
}

func checkKeyphraseInH2(in CheckInput) types.CheckResult {
	r := newResult(
		"Keyphrase in H2 Headings",
		"At least one H2 heading should mention the focus keyphrase",
		types.PriorityLow,
		"keyphrase-in-h2",
	)

	h2s := lo.Filter(in.Doc.Headings, func(h htmldoc.Heading, _ int) bool { return h.Level == 2 })

	switch {
	case len(h2s) == 0:
		return fail(r, "The page has no H2 headings")
	case in.Keyphrase == "":
		return fail(r, "No focus keyphrase was provided")
	}

	for _, h := range h2s {
		if containsPhrase(h.Text, in.Keyphrase) {
			return pass(r, "Your focus keyphrase appears in an H2 heading")
		}
	}

	return fail(r, "None of the %d H2 headings mention your focus keyphrase", len(h2s))
}

func checkHeadingHierarchy(in CheckInput) types.CheckResult {
	r := newResult(
		"Heading Hierarchy",
		"Pages should have exactly one H1 and no skipped heading levels",
		types.PriorityMedium,
		"heading-hierarchy",
	)

	if len(in.Doc.Headings) == 0 {
		return fail(r, "The page has no headings")
	}

	h1Count := lo.CountBy(in.Doc.Headings, func(h htmldoc.Heading) bool { return h.Level == 1 })

	switch {
	case h1Count == 0:
		return fail(r, "The page has no H1 heading")
	case h1Count > 1:
		return fail(r, "The page has %d H1 headings; use exactly one", h1Count)
	}

	for i := 1; i < len(in.Doc.Headings); i++ {
		prev, cur := in.Doc.Headings[i-1], in.Doc.Headings[i]
		if cur.Level > prev.Level+1 {
			return fail(r, "Heading levels skip from H%d to H%d", prev.Level, cur.Level)
		}
	}

	return pass(r, "Heading structure is well-formed")
}

func checkSchemaMarkup(in CheckInput) types.CheckResult {
	r := newResult(
		"Schema Markup",
		"Structured data (JSON-LD) helps search engines understand the page",
		types.PriorityMedium,
		"schema-markup",
	)

	if in.Doc.HasJSONLD() {
		return pass(r, "The page carries JSON-LD structured data")
	}

	return fail(r, "No JSON-LD structured data was found")
}
