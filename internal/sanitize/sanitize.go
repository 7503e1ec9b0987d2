// Package sanitize neutralizes HTML structure in user-supplied keyword
// input before it is used in matching or echoed back. Stripping runs to a
// fixed point so inputs designed to regenerate tags after one pass (for
// example <<script>... or &lt;script&gt;) cannot survive.
package sanitize

import (
	"regexp"
	"strings"
)

const (
	// maxKeywordLength caps sanitized keyword output
	maxKeywordLength = 500
	// maxStripIterations bounds the fixed-point loop against adversarial input
	maxStripIterations = 10
)

// tagPattern matches anything shaped like an HTML tag
var tagPattern = regexp.MustCompile(`<[^<>]*>`)

// entityReplacer decodes the common named and numeric entities that can
// obfuscate tag delimiters. &amp; is intentionally absent; see DecodeEntities.
var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&LT;", "<",
	"&gt;", ">",
	"&GT;", ">",
	"&quot;", `"`,
	"&#34;", `"`,
	"&#39;", "'",
	"&#x27;", "'",
	"&#x2F;", "/",
	"&#x2f;", "/",
	"&#47;", "/",
	"&#x3D;", "=",
	"&#x3d;", "=",
	"&#60;", "<",
	"&#62;", ">",
	"&nbsp;", " ",
)

// Keywords strips HTML structure from a keyword or keyphrase. Tag
// delimiters and entity-encoded delimiters are removed repeatedly until
// the input stops changing, bounded by an iteration cap. The result never
// contains < or >, is trimmed, and is truncated to 500 characters.
// Multilingual text with no markup passes through unchanged.
func Keywords(input string) string {
	if input == "" {
		return ""
	}

	cleaned := input
	for range maxStripIterations {
		next := entityReplacer.Replace(cleaned)
		next = strings.ReplaceAll(next, "&amp;", "&")
		next = tagPattern.ReplaceAllString(next, "")

		if next == cleaned {
			break
		}

		cleaned = next
	}

	// unmatched delimiters survive the tag pattern; drop them outright
	cleaned = strings.ReplaceAll(cleaned, "<", "")
	cleaned = strings.ReplaceAll(cleaned, ">", "")

	cleaned = strings.TrimSpace(cleaned)

	if runes := []rune(cleaned); len(runes) > maxKeywordLength {
		cleaned = string(runes[:maxKeywordLength])
	}

	return cleaned
}

// DecodeEntities decodes common HTML entities into their literal
// characters. The &amp; entity is decoded last, after every other entity,
// so &amp;lt; becomes the literal text &lt; rather than recursively
// decoding into <. Double-unescaping is a distinct vulnerability class
// from simple non-decoding.
func DecodeEntities(input string) string {
	decoded := entityReplacer.Replace(input)

	return strings.ReplaceAll(decoded, "&amp;", "&")
}
