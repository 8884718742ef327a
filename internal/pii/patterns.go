// Package pii detects and masks sensitive values in text and delimited
// files, producing a reversible mapping artifact. A Masker accumulates
// session state (token counters, seen values) across calls so repeated
// values mask consistently within one document; state must be reset
// between unrelated documents.
package pii

import "regexp"

// Pattern defines one detection rule. Rules are applied in declaration
// order over the current (possibly already masked) text.
type Pattern struct {
	Name        string
	Regexp      *regexp.Regexp
	MaskPrefix  string
	Description string
}

const (
	categoryEmail       = "EMAIL_MASKED"
	categoryEmailSystem = "EMAIL_SYSTEM_MASKED"
	categoryName        = "NAME_MASKED"
)

var defaultPatterns = []Pattern{
	{
		Name:        "email",
		Regexp:      regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		MaskPrefix:  categoryEmail,
		Description: "Email addresses",
	},
	{
		Name:        "phone_us",
		Regexp:      regexp.MustCompile(`\b(?:\+?1[-.\s]?)?(?:\(?\d{3}\)?[-.\s]?)?\d{3}[-.\s]?\d{4}\b`),
		MaskPrefix:  "PHONE_MASKED",
		Description: "US phone numbers",
	},
	{
		Name:        "phone_intl",
		Regexp:      regexp.MustCompile(`\b\+\d{1,3}[-.\s]?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,9}\b`),
		MaskPrefix:  "PHONE_INTL_MASKED",
		Description: "International phone numbers",
	},
	{
		Name:        "ssn",
		Regexp:      regexp.MustCompile(`\b\d{3}[-\s]?\d{2}[-\s]?\d{4}\b`),
		MaskPrefix:  "SSN_MASKED",
		Description: "Social Security Numbers",
	},
	{
		Name:        "credit_card",
		Regexp:      regexp.MustCompile(`\b(?:\d{4}[-\s]?){3}\d{4}\b`),
		MaskPrefix:  "CC_MASKED",
		Description: "Credit card numbers",
	},
	{
		Name:        "ip_address",
		Regexp:      regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
		MaskPrefix:  "IP_MASKED",
		Description: "IP addresses",
	},
	{
		Name:        "uuid",
		Regexp:      regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\b`),
		MaskPrefix:  "UUID_MASKED",
		Description: "UUIDs/GUIDs",
	},
	{
		Name:        "student_id",
		Regexp:      regexp.MustCompile(`(?i)\bStudent\s*ID[:\s]*\d{6,12}\b`),
		MaskPrefix:  "STUDENT_ID_MASKED",
		Description: "Labeled student IDs",
	},
	{
		Name:        "profile_url",
		Regexp:      regexp.MustCompile(`(?i)https?://[^\s<>"]+/(?:profile|user|account|show_profile)/\d+[^\s<>"]*`),
		MaskPrefix:  "PROFILE_URL_MASKED",
		Description: "Profile URLs with numeric IDs",
	},
}

// greetingPatterns catch personal names following common salutations
// and sign-offs. Group 1 is the name token.
var greetingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bHi\s+([A-Z][a-z]+)`),
	regexp.MustCompile(`\bHello\s+([A-Z][a-z]+)`),
	regexp.MustCompile(`\bDear\s+([A-Z][a-z]+)`),
	regexp.MustCompile(`\bThanks?,?\s+([A-Z][a-z]+)`),
	regexp.MustCompile(`\bRegards,?\s+([A-Z][a-z]+)`),
}
