// Package database
package database

import (
	"strings"
	"unicode"

	"github.com/flybg-dev/flyingsites/internal/interfaces/operation"
)

// FallbackSlug is used when a title produces an empty slug.
const FallbackSlug = "site"

func slugRune(r rune) bool {
	return unicode.Is(unicode.Cyrillic, r) ||
		(r >= 'a' && r <= 'z') ||
		(r >= '0' && r <= '9')
}

// Slugify derives the url slug of a site from its Bulgarian title, falling
// back to the English one: lowercase, whitespace runs become single hyphens,
// anything outside Cyrillic, Latin, digits and hyphens is stripped, repeated
// hyphens collapse, and leading/trailing hyphens are trimmed.
func Slugify(title operation.LocalizedText) string {
	source := title.Bg
	if source == "" {
		source = title.En
	}

	var sb strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(source) {
		switch {
		case slugRune(r):
			if pendingHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingHyphen = false
			sb.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			pendingHyphen = true
		default:
			// stripped
		}
	}

	slug := sb.String()
	if slug == "" {
		return FallbackSlug
	}
	return slug
}
