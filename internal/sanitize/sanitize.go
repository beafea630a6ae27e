// Package sanitize normalizes untrusted client strings before they enter game
// state or get echoed back to other clients.
package sanitize

import (
	"strings"
	"unicode"
)

const (
	// MaxNameLen bounds player display names.
	MaxNameLen = 20
	// MaxTextLen bounds chat messages and custom task text.
	MaxTextLen = 280
)

var htmlEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#39;",
)

// clean trims, strips control characters, escapes HTML metacharacters, and
// truncates to max runes.
func clean(s string, max int) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	s = htmlEscaper.Replace(s)
	runes := []rune(s)
	if len(runes) > max {
		s = string(runes[:max])
	}
	return s
}

// Name sanitizes a player display name. An empty result means the name was
// unusable and the join must be rejected.
func Name(raw string) string {
	return clean(raw, MaxNameLen)
}

// Text sanitizes free-form text such as chat messages and custom task text.
func Text(raw string) string {
	return clean(raw, MaxTextLen)
}
