// Package textclean normalizes raw ticket-action message bodies. All
// functions are pure and total: malformed input yields best-effort
// cleaned text, never an error.
package textclean

import (
	"regexp"
	"strings"
)

// bccHeaderPattern matches the block header the mail-to-ticket bridge
// inserts. It spans lines, so it is stripped before the per-line
// boilerplate patterns run.
var bccHeaderPattern = regexp.MustCompile(`(?is)Ticket created via e-mail \(BCC line\)\. Sender:.*?responding to requests\.\s*`)

// boilerplatePatterns are known noise lines, matched case-insensitively
// one line at a time. Order is not significant within this set.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^(Action added via e-mail|Ticket created via e-mail)\..*\n?`),
	regexp.MustCompile(`(?im)These people were on the To line of the email:[^\n]*\n?`),
	regexp.MustCompile(`(?im)These people were on the CC line of the email:[^\n]*\n?`),
	regexp.MustCompile(`(?im)You don't often get email from[^\n]*\n?`),
	regexp.MustCompile(`(?im)Learn why this is important\s*\n?`),
	regexp.MustCompile(`(?im)External Sender - Use caution opening files[^\n]*\n?`),
	regexp.MustCompile(`(?im)^Hello iLab Support,.*\n`),
}

var multiSpacePattern = regexp.MustCompile(` {2,}`)

// portalPattern recognizes the structured support-portal submission
// template: an "issue" prompt followed by a "location" prompt, tolerant
// of punctuation and whitespace variation, with an optional trailing
// recording notice.
var portalPattern = regexp.MustCompile(`(?is)Please\s+explain\s+the\s+issue\s+you(?:'|’)re\s+experiencing\s*\(with\s+as\s+much\s+detail\s+as\s+possible\)\s*:\s*(?P<issue>.*?)Location\s+where\s+issue\s+occurred\s*\(e\.g\.?\s*link,\s*name\s+of\s+core,\s*etc\.?\)\s*:\s*(?P<location>.*?)(?:\*{2}Please\s+feel\s+free\s+to\s+record.*)?$`)

// Clean normalizes one message body. Steps run in a fixed order: strip
// the BCC bridge header, strip boilerplate lines, normalize whitespace,
// left-trim each line, then reformat portal submissions.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}

	text := bccHeaderPattern.ReplaceAllString(raw, "")

	for _, p := range boilerplatePatterns {
		text = p.ReplaceAllString(text, "")
	}

	text = normalizeWhitespace(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimLeft(line, " \t")
	}
	text = strings.Join(lines, "\n")

	text = parsePortalSubmission(text)

	return strings.TrimSpace(text)
}

// normalizeWhitespace converts tabs, non-breaking spaces, and the
// mis-encoded "¬†" artifact to single spaces, collapses runs of spaces,
// and trims the ends.
func normalizeWhitespace(text string) string {
	if text == "" {
		return text
	}
	text = strings.ReplaceAll(text, "\t", " ")
	text = strings.ReplaceAll(text, " ", " ")
	text = strings.ReplaceAll(text, "¬†", " ")
	text = multiSpacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// parsePortalSubmission re-emits a matching portal template as labeled
// Issue/Location sections. Empty captures drop their section; text that
// does not match the template is returned unchanged.
func parsePortalSubmission(text string) string {
	m := portalPattern.FindStringSubmatch(text)
	if m == nil {
		return text
	}

	issue := strings.TrimSpace(m[portalPattern.SubexpIndex("issue")])
	location := strings.TrimSpace(m[portalPattern.SubexpIndex("location")])

	var parts []string
	if issue != "" {
		parts = append(parts, "Issue:\n"+issue)
	}
	if location != "" {
		parts = append(parts, "Location:\n"+location)
	}
	if len(parts) == 0 {
		return text
	}
	return strings.Join(parts, "\n\n")
}
