package importer

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy = bluemonday.StrictPolicy()

	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// ExtractText reduces an HTML fragment to the plain text used for
// full-text indexing. Sanitizer-based stripping is the primary path;
// if it yields nothing for a non-empty input the cruder regex strip
// takes over.
func ExtractText(htmlBody string) string {
	if strings.TrimSpace(htmlBody) == "" {
		return ""
	}

	// Pad tag openings so adjacent text nodes don't fuse into one word
	// when the tags are stripped.
	text := stripPolicy.Sanitize(strings.ReplaceAll(htmlBody, "<", " <"))
	text = html.UnescapeString(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	if text != "" {
		return text
	}

	text = tagPattern.ReplaceAllString(htmlBody, " ")
	text = html.UnescapeString(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
