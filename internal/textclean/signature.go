package textclean

import (
	"regexp"
	"strings"
)

// agentNames is the roster of support agents whose signatures are
// recognized. Short forms follow full names so either matches.
var agentNames = []string{
	"Nadia Clark", "Nadia",
	"Vinod Rajendran", "Vinod",
	"Sook-Theng Chow", "Sook",
	"William Lai", "William",
	"Elvira Carrera", "Elvira",
	"Sophie Katsarova", "Sophie",
	"Guilherme Vieira Machado", "Guilherme Vieira-Machado", "Guilherme",
}

var (
	signaturePattern     *regexp.Regexp
	nadiaBlockPattern    = regexp.MustCompile(`(?is)(.*?)(\nNadia\s*\n\n?Nadia\s+D\.?\s+Clark.+)$`)
	closingPhraseClasses = `Thanks|Thank\s*you|Regards|Best|Best\s*regards|Cheers|Sincerely|Warm\s*regards|Kind\s*regards|Many\s*thanks`
)

func init() {
	quoted := make([]string, len(agentNames))
	for i, name := range agentNames {
		quoted[i] = regexp.QuoteMeta(name)
	}
	signaturePattern = regexp.MustCompile(
		`(?is)(.*?)((?:` + closingPhraseClasses + `)[,!]?\s*\n(?:` + strings.Join(quoted, "|") + `).*)$`)
}

// SplitSignature separates a message body from a trailing agent
// signature. It first tries a closing phrase ("Thanks", "Regards", ...)
// followed on the next line by a known agent name; failing that, a
// narrower two-line block one agent uses. When neither matches the full
// text is returned with an empty signature.
func SplitSignature(text string) (body, signature string) {
	if text == "" {
		return text, ""
	}

	if m := signaturePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}

	if m := nadiaBlockPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}

	return text, ""
}
