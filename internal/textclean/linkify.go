package textclean

import (
	"fmt"
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`(https?://[^\s<>"')]+)`)

// LinkifyURLs converts bare http(s) URLs into anchor-tag markup.
// Trailing punctuation is left outside the link. Text without bare URLs
// passes through unchanged.
func LinkifyURLs(text string) string {
	if text == "" {
		return ""
	}

	return urlPattern.ReplaceAllStringFunc(text, func(match string) string {
		url := strings.TrimRight(match, ".,;:!?)")
		trailer := match[len(url):]
		return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener">%s</a>%s`, url, url, trailer)
	})
}
