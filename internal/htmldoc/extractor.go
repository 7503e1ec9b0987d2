// Package htmldoc parses fetched HTML into a structured document model
// without executing embedded scripts and extracts the fields the check
// battery needs. Malformed HTML degrades to partial or empty fields
// rather than failing extraction.
package htmldoc

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/publicsuffix"

	"github.com/die-Manufaktur/seo-copilot-api/internal/urlcheck"
)

// nextGenExtensions are extensions favored for compression efficiency
var nextGenExtensions = map[string]struct{}{
	"webp": {}, "avif": {}, "svg": {}, "jp2": {}, "jpx": {},
}

// legacyExtensions are the classic raster formats
var legacyExtensions = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {},
}

// skippedTextParents are elements whose text is never visible body text
var skippedTextParents = map[string]struct{}{
	"script": {}, "style": {}, "noscript": {}, "template": {}, "head": {}, "title": {},
}

// Extract parses raw HTML into a Document. The base URL is used to
// resolve relative hrefs and classify links as internal or outbound. The
// parser builds a structural tree only; no script engine is attached and
// inline event handlers are never evaluated.
func Extract(rawHTML string, base *url.URL) (*Document, error) {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	doc := &Document{OpenGraph: make(map[string]string)}

	var bodyText strings.Builder

	walk(root, doc, base, &bodyText, false)

	doc.BodyText = collapseWhitespace(bodyText.String())
	doc.WordCount = len(strings.Fields(doc.BodyText))

	return doc, nil
}

// walk traverses the parse tree collecting document fields. skipText is
// set while inside elements whose text must not reach BodyText.
func walk(n *html.Node, doc *Document, base *url.URL, bodyText *strings.Builder, skipText bool) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "title":
			if doc.Title == "" {
				doc.Title = collapseWhitespace(textContent(n))
			}

		case "meta":
			extractMeta(n, doc)

		case "h1", "h2", "h3", "h4", "h5", "h6":
			doc.Headings = append(doc.Headings, Heading{
				Level: int(n.Data[1] - '0'),
				Text:  collapseWhitespace(textContent(n)),
			})

		case "img":
			if src := attr(n, "src"); src != "" {
				doc.Images = append(doc.Images, Image{
					Src:    src,
					Alt:    attr(n, "alt"),
					Format: classifyFormat(src),
				})
			}

		case "a":
			if href := attr(n, "href"); href != "" && !urlcheck.HasDangerousScheme(href) {
				doc.Links = append(doc.Links, Link{
					Href:     href,
					Internal: isInternal(href, base),
				})
			}

		case "script":
			doc.ScriptBlocks = append(doc.ScriptBlocks, ScriptBlock{
				Type: strings.ToLower(strings.TrimSpace(attr(n, "type"))),
				Text: strings.TrimSpace(textContent(n)),
			})

		case "p":
			if doc.FirstParagraph == "" {
				doc.FirstParagraph = collapseWhitespace(textContent(n))
			}
		}

		if _, skip := skippedTextParents[n.Data]; skip {
			skipText = true
		}
	}

	if n.Type == html.TextNode && !skipText {
		bodyText.WriteString(n.Data)
		bodyText.WriteByte(' ')
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, doc, base, bodyText, skipText)
	}
}

// extractMeta pulls the description and og:* properties off a meta element
func extractMeta(n *html.Node, doc *Document) {
	content := attr(n, "content")

	if strings.EqualFold(attr(n, "name"), "description") && doc.MetaDescription == "" {
		doc.MetaDescription = strings.TrimSpace(content)
	}

	if prop := strings.ToLower(attr(n, "property")); strings.HasPrefix(prop, "og:") {
		if _, exists := doc.OpenGraph[prop]; !exists {
			doc.OpenGraph[prop] = strings.TrimSpace(content)
		}
	}
}

// classifyFormat infers the image format from the src file extension,
// ignoring query strings and fragments
func classifyFormat(src string) ImageFormat {
	cleaned := src
	if idx := strings.IndexAny(cleaned, "?#"); idx != -1 {
		cleaned = cleaned[:idx]
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(cleaned), "."))

	if _, ok := nextGenExtensions[ext]; ok {
		return FormatNextGen
	}

	if _, ok := legacyExtensions[ext]; ok {
		return FormatLegacy
	}

	return FormatUnknown
}

// isInternal reports whether href resolves to the same registrable domain
// as the base URL. Fragment-only and relative links are internal.
func isInternal(href string, base *url.URL) bool {
	if base == nil {
		return false
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return false
	}

	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return false
	}

	baseHost := base.Hostname()
	linkHost := resolved.Hostname()

	if strings.EqualFold(baseHost, linkHost) {
		return true
	}

	baseDomain, err1 := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(baseHost))
	linkDomain, err2 := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(linkHost))

	return err1 == nil && err2 == nil && baseDomain == linkDomain
}

// attr returns the value of the named attribute, or ""
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}

	return ""
}

// textContent concatenates all descendant text nodes
func textContent(n *html.Node) string {
	var b strings.Builder

	var visit func(*html.Node)
	visit = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}

		for c := node.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)

	return b.String()
}

// collapseWhitespace trims and folds runs of whitespace into single spaces
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
