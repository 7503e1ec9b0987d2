// Package origin compiles a static allow-list of origin patterns into
// anchored matchers for inbound CORS authorization. The compiled set is
// immutable and safe for concurrent use without locking.
package origin

import (
	"fmt"
	"regexp"
	"strings"
)

// wildcardPrefix marks an allow-list entry matching exactly one subdomain label
const wildcardPrefix = "*."

// Matcher holds the compiled origin allow-list
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher compiles the configured origin strings. Entries are either
// exact origins (optionally carrying a scheme) or *.domain.tld wildcards
// matching exactly one subdomain label. Every literal character that is a
// regexp metacharacter is escaped before pattern construction; an
// unescaped dot would let any character substitute for it and open a
// bypass.
func NewMatcher(origins []string) (*Matcher, error) {
	patterns := make([]*regexp.Regexp, 0, len(origins))

	for _, entry := range origins {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			return nil, ErrEmptyPattern
		}

		compiled, err := compileEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, entry, err)
		}

		patterns = append(patterns, compiled)
	}

	return &Matcher{patterns: patterns}, nil
}

// compileEntry builds one anchored matcher from an allow-list entry
func compileEntry(entry string) (*regexp.Regexp, error) {
	scheme, host := splitScheme(entry)

	var hostExpr string

	if suffix, ok := strings.CutPrefix(host, wildcardPrefix); ok {
		// exactly one DNS label, then a literal dot and the escaped
		// suffix; the bare base domain and nested subdomains must not match
		hostExpr = `[A-Za-z0-9-]+\.` + regexp.QuoteMeta(suffix)
	} else {
		hostExpr = regexp.QuoteMeta(host)
	}

	var schemeExpr string
	if scheme != "" {
		schemeExpr = `(` + regexp.QuoteMeta(scheme+"://") + `)?`
	} else {
		schemeExpr = `(https?://)?`
	}

	return regexp.Compile(`^` + schemeExpr + hostExpr + `$`)
}

// splitScheme separates an optional scheme prefix from an allow-list entry
func splitScheme(entry string) (scheme, host string) {
	if idx := strings.Index(entry, "://"); idx != -1 {
		return entry[:idx], entry[idx+len("://"):]
	}

	return "", entry
}

// IsAllowed reports whether the given Origin header value matches the
// allow-list. A missing origin is always rejected. The value is matched
// anchored, both as sent and with its scheme stripped, so a trusted
// suffix cannot be smuggled inside a longer hostname, query, or fragment.
func (m *Matcher) IsAllowed(originHeader string) bool {
	origin := strings.TrimSpace(originHeader)
	if origin == "" {
		return false
	}

	stripped := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		stripped = origin[idx+len("://"):]
	}

	for _, p := range m.patterns {
		if p.MatchString(origin) || p.MatchString(stripped) {
			return true
		}
	}

	return false
}
