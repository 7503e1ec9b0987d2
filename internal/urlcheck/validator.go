// Package urlcheck classifies and normalizes untrusted URL strings into
// safe, fetchable HTTPS URLs. Every gate is ordered and hard: failing one
// rejects the input immediately with no fallback.
package urlcheck

import (
	"fmt"
	"net/url"
	"strings"
)

// dangerousSchemes can execute code or embed arbitrary content rather than
// reference a network resource. Checked case-insensitively, both before
// and after protocol normalization.
var dangerousSchemes = []string{"javascript:", "data:", "vbscript:"}

// Validate normalizes raw into an HTTPS URL or rejects it.
//
// Gate order: dangerous-scheme prefix (pre-normalization), https
// auto-prefix / http rewrite, dangerous-scheme re-check, path-traversal
// rejection pre- and post-parse, URL parse, exact https protocol.
func Validate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmptyInput
	}

	if scheme, ok := matchDangerousScheme(trimmed); ok {
		return "", fmt.Errorf("%w: %s", ErrDangerousScheme, scheme)
	}

	normalized := normalizeProtocol(trimmed)

	// the rewrite step must not be able to uncover a hidden scheme
	if scheme, ok := matchDangerousScheme(normalized); ok {
		return "", fmt.Errorf("%w: %s", ErrDangerousScheme, scheme)
	}

	if containsTraversal(normalized) {
		return "", ErrPathTraversal
	}

	parsed, err := url.Parse(normalized)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	// parse-time unescaping can reveal traversal sequences hidden behind
	// percent-encoding, so the path is checked again after parsing
	if containsTraversal(parsed.Path) || containsTraversal(parsed.EscapedPath()) {
		return "", ErrPathTraversal
	}

	if parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, parsed.Scheme)
	}

	if parsed.Host == "" {
		return "", ErrMissingHost
	}

	return parsed.String(), nil
}

// HasDangerousScheme reports whether s begins with a scheme that can
// execute code. Used at extraction time to filter hrefs with the same
// gate the validator applies.
func HasDangerousScheme(s string) bool {
	_, ok := matchDangerousScheme(s)
	return ok
}

// matchDangerousScheme reports whether s begins with a dangerous scheme,
// ignoring case and leading whitespace.
func matchDangerousScheme(s string) (string, bool) {
	lowered := strings.ToLower(strings.TrimSpace(s))
	for _, scheme := range dangerousSchemes {
		if strings.HasPrefix(lowered, scheme) {
			return scheme, true
		}
	}

	return "", false
}

// normalizeProtocol forces https transport: bare hosts get an https://
// prefix and plaintext http:// is rewritten. No http page is ever fetched.
func normalizeProtocol(s string) string {
	lowered := strings.ToLower(s)

	switch {
	case strings.HasPrefix(lowered, "https://"):
		return s
	case strings.HasPrefix(lowered, "http://"):
		return "https://" + s[len("http://"):]
	case hasExplicitScheme(lowered):
		// an explicit non-http(s) scheme must reach the https-only gate
		// untouched; prefixing would disguise it as an https URL with
		// the original scheme smuggled into the host
		return s
	default:
		return "https://" + s
	}
}

// hasExplicitScheme reports whether s begins with a `scheme://` prefix,
// where scheme follows the RFC 3986 alphabet. Expects lowercased input.
func hasExplicitScheme(s string) bool {
	idx := strings.Index(s, "://")
	if idx <= 0 {
		return false
	}

	for i, r := range s[:idx] {
		switch {
		case r >= 'a' && r <= 'z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}

	return true
}

// containsTraversal reports whether s carries a path-traversal sequence
func containsTraversal(s string) bool {
	return strings.Contains(s, "../") || strings.Contains(s, "/..")
}
