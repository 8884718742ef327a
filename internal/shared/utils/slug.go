package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"supportarchive/internal/shared/constants"
	"supportarchive/internal/shared/errors"
)

var (
	slugStripPattern = regexp.MustCompile(`[^\w\-]`)
	slugIDPattern    = regexp.MustCompile(`-(\d+)$`)
)

// SanitizeSlugPart makes one breadcrumb segment URL-safe: spaces become
// underscores, path separators become hyphens, everything else outside
// word characters is stripped.
func SanitizeSlugPart(part string) string {
	part = strings.ReplaceAll(part, " ", "_")
	part = strings.ReplaceAll(part, "/", "-")
	part = strings.ReplaceAll(part, "\\", "-")
	return slugStripPattern.ReplaceAllString(part, "")
}

// ArticleSlug renders the canonical help-article path: the sanitized
// breadcrumb segments after the root label joined by slashes, with the
// numeric ID as the trailing suffix.
func ArticleSlug(breadcrumbs string, id int64) string {
	var segments []string
	for _, part := range strings.Split(breadcrumbs, ">") {
		part = strings.TrimSpace(part)
		if part == "" || part == constants.HelpRootLabel {
			continue
		}
		if sanitized := SanitizeSlugPart(part); sanitized != "" {
			segments = append(segments, sanitized)
		}
	}
	if len(segments) == 0 {
		segments = []string{"article"}
	}
	return fmt.Sprintf("%s-%d", strings.Join(segments, "/"), id)
}

// ParseSlugID extracts the trailing numeric ID from an article slug.
// Everything before the suffix is decorative and ignored, so renamed
// articles keep working links.
func ParseSlugID(slug string) (int64, error) {
	match := slugIDPattern.FindStringSubmatch(slug)
	if match == nil {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid article slug %q", slug))
	}
	id, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid article slug %q", slug))
	}
	return id, nil
}
