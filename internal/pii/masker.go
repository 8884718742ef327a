package pii

import (
	"fmt"
	"strings"

	"supportarchive/internal/shared/config"
)

// Masker replaces detected sensitive values with [CATEGORY_n] tokens.
// Token numbering and value dedup are session state: the same value
// (case-insensitive) always yields the same token within a session.
type Masker struct {
	patterns          []Pattern
	systemDomains     []string
	maskStaffEmails   bool
	maskGreetingNames bool

	mappings map[string]map[string]string
	counters map[string]int
	seen     map[string]string
}

// MaskerOption customizes a Masker.
type MaskerOption func(*Masker)

// WithStaffEmailMasking controls whether system/staff-domain addresses
// are masked (into their own category) or left untouched.
func WithStaffEmailMasking(enabled bool) MaskerOption {
	return func(m *Masker) { m.maskStaffEmails = enabled }
}

// WithGreetingNameMasking controls the secondary greeting-name pass.
func WithGreetingNameMasking(enabled bool) MaskerOption {
	return func(m *Masker) { m.maskGreetingNames = enabled }
}

// WithSystemDomains replaces the staff-domain allow-list.
func WithSystemDomains(domains []string) MaskerOption {
	return func(m *Masker) { m.systemDomains = domains }
}

// WithExtraPatterns appends custom detection rules after the defaults.
func WithExtraPatterns(patterns ...Pattern) MaskerOption {
	return func(m *Masker) { m.patterns = append(m.patterns, patterns...) }
}

// NewMasker builds a Masker with the default rule set. Greeting-name
// masking defaults on, staff-email masking defaults off.
func NewMasker(opts ...MaskerOption) *Masker {
	m := &Masker{
		patterns:          append([]Pattern(nil), defaultPatterns...),
		systemDomains:     []string{"agilent.com", "ilabsolutions.com"},
		maskGreetingNames: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.Reset()
	return m
}

// NewMaskerFromConfig builds a Masker from the application PII config.
func NewMaskerFromConfig(cfg *config.PIIConfig) *Masker {
	opts := []MaskerOption{
		WithStaffEmailMasking(cfg.MaskStaffEmails),
		WithGreetingNameMasking(cfg.MaskGreetingNames),
	}
	if len(cfg.SystemDomains) > 0 {
		opts = append(opts, WithSystemDomains(cfg.SystemDomains))
	}
	return NewMasker(opts...)
}

// Reset clears all session state. Call between unrelated documents,
// otherwise token numbering continues from the previous document.
func (m *Masker) Reset() {
	m.mappings = make(map[string]map[string]string)
	m.counters = make(map[string]int)
	m.seen = make(map[string]string)
}

// Mappings returns the accumulated category → token → original map.
func (m *Masker) Mappings() map[string]map[string]string {
	return m.mappings
}

// getOrCreateToken returns the stable token for a value within this
// session, allocating the next sequential number for the category on
// first sight. Values dedup on their lowercased, trimmed form.
func (m *Masker) getOrCreateToken(category, value string) string {
	key := category + ":" + strings.ToLower(strings.TrimSpace(value))
	if token, ok := m.seen[key]; ok {
		return token
	}

	m.counters[category]++
	token := fmt.Sprintf("[%s_%d]", category, m.counters[category])
	m.seen[key] = token

	if m.mappings[category] == nil {
		m.mappings[category] = make(map[string]string)
	}
	m.mappings[category][strings.Trim(token, "[]")] = value

	return token
}

func (m *Masker) isSystemEmail(email string) bool {
	lower := strings.ToLower(email)
	for _, domain := range m.systemDomains {
		if strings.Contains(lower, domain) {
			return true
		}
	}
	return false
}

// Mask replaces every detected sensitive value in text with its token.
// Patterns run in order over the current text; within one pattern all
// matches are collected first and replaced back to front so earlier
// replacements cannot shift later offsets.
func (m *Masker) Mask(text string) string {
	if text == "" {
		return text
	}

	masked := text

	type replacement struct {
		start, end int
		token      string
	}

	for _, p := range m.patterns {
		matches := p.Regexp.FindAllStringIndex(masked, -1)

		// Allocate tokens in document order so numbering follows first
		// appearance, then apply the edits back to front so earlier
		// replacements cannot shift later offsets.
		replacements := make([]replacement, 0, len(matches))
		for _, match := range matches {
			start, end := match[0], match[1]
			value := masked[start:end]

			category := p.MaskPrefix
			if p.Name == "email" {
				if m.isSystemEmail(value) {
					if !m.maskStaffEmails {
						continue
					}
					category = categoryEmailSystem
				}
			}

			replacements = append(replacements, replacement{
				start: start,
				end:   end,
				token: m.getOrCreateToken(category, value),
			})
		}

		for i := len(replacements) - 1; i >= 0; i-- {
			r := replacements[i]
			masked = masked[:r.start] + r.token + masked[r.end:]
		}
	}

	if m.maskGreetingNames {
		masked = m.maskGreetings(masked)
	}

	return masked
}

func (m *Masker) maskGreetings(text string) string {
	type replacement struct {
		start, end int
		token      string
	}

	masked := text
	for _, p := range greetingPatterns {
		matches := p.FindAllStringSubmatchIndex(masked, -1)

		replacements := make([]replacement, 0, len(matches))
		for _, loc := range matches {
			nameStart, nameEnd := loc[2], loc[3]
			if nameStart < 0 {
				continue
			}
			name := masked[nameStart:nameEnd]
			// Skip tokens from the primary pass and very short words.
			if strings.HasPrefix(name, "[") || len(name) <= 2 {
				continue
			}
			replacements = append(replacements, replacement{
				start: nameStart,
				end:   nameEnd,
				token: m.getOrCreateToken(categoryName, name),
			})
		}

		for i := len(replacements) - 1; i >= 0; i-- {
			r := replacements[i]
			masked = masked[:r.start] + r.token + masked[r.end:]
		}
	}
	return masked
}
