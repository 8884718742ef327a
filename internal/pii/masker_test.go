package pii

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskEmailAndPhone(t *testing.T) {
	m := NewMasker(WithGreetingNameMasking(false))

	masked := m.Mask("Contact me at jane.doe@example.com or 555-123-4567")

	assert.NotContains(t, masked, "jane.doe@example.com")
	assert.NotContains(t, masked, "555-123-4567")
	assert.Contains(t, masked, "[EMAIL_MASKED_1]")
	assert.Contains(t, masked, "[PHONE_MASKED_1]")
}

func TestMaskTokensStableWithinSession(t *testing.T) {
	m := NewMasker(WithGreetingNameMasking(false))
	text := "Contact me at jane.doe@example.com or 555-123-4567"

	first := m.Mask(text)
	second := m.Mask(text)

	assert.Equal(t, first, second)

	mappings := m.Mappings()
	require.Len(t, mappings["EMAIL_MASKED"], 1)
	require.Len(t, mappings["PHONE_MASKED"], 1)
	assert.Equal(t, "jane.doe@example.com", mappings["EMAIL_MASKED"]["EMAIL_MASKED_1"])
	assert.Equal(t, "555-123-4567", mappings["PHONE_MASKED"]["PHONE_MASKED_1"])
}

func TestMaskDedupIsCaseInsensitive(t *testing.T) {
	m := NewMasker(WithGreetingNameMasking(false))

	masked := m.Mask("Jane.Doe@Example.com wrote to jane.doe@example.com")

	assert.Equal(t, "[EMAIL_MASKED_1] wrote to [EMAIL_MASKED_1]", masked)
	assert.Len(t, m.Mappings()["EMAIL_MASKED"], 1)
}

func TestMaskDistinctValuesGetSequentialTokens(t *testing.T) {
	m := NewMasker(WithGreetingNameMasking(false))

	masked := m.Mask("From a@example.com to b@example.com")

	assert.Contains(t, masked, "[EMAIL_MASKED_1]")
	assert.Contains(t, masked, "[EMAIL_MASKED_2]")
}

func TestMaskSystemEmailSkippedByDefault(t *testing.T) {
	m := NewMasker(WithGreetingNameMasking(false))

	masked := m.Mask("support.agent@agilent.com and jane@example.com")

	assert.Contains(t, masked, "support.agent@agilent.com")
	assert.NotContains(t, masked, "jane@example.com")
	assert.Empty(t, m.Mappings()["EMAIL_SYSTEM_MASKED"])
}

func TestMaskSystemEmailMaskedWhenEnabled(t *testing.T) {
	m := NewMasker(WithGreetingNameMasking(false), WithStaffEmailMasking(true))

	masked := m.Mask("support.agent@agilent.com and jane@example.com")

	assert.Contains(t, masked, "[EMAIL_SYSTEM_MASKED_1]")
	assert.Contains(t, masked, "[EMAIL_MASKED_1]")
}

func TestMaskGreetingNames(t *testing.T) {
	m := NewMasker()

	masked := m.Mask("Hi Jonathan,\n\nYour request is done.\n\nRegards, Melissa")

	assert.NotContains(t, masked, "Jonathan")
	assert.NotContains(t, masked, "Melissa")
	assert.Contains(t, masked, "[NAME_MASKED_1]")
	assert.Contains(t, masked, "[NAME_MASKED_2]")
}

func TestMaskGreetingSkipsExistingTokens(t *testing.T) {
	m := NewMasker()

	masked := m.Mask("Hi jane.doe@example.com")

	// The email pass wins; the greeting pass must not re-mask its token.
	assert.Equal(t, "Hi [EMAIL_MASKED_1]", masked)
	assert.Empty(t, m.Mappings()["NAME_MASKED"])
}

func TestMaskIPAndUUID(t *testing.T) {
	m := NewMasker(WithGreetingNameMasking(false))

	masked := m.Mask("host 10.0.12.34 session 6f1e0a4c-9b2d-4e7f-8a1b-3c5d7e9f0a2b")

	assert.Contains(t, masked, "[IP_MASKED_1]")
	assert.Contains(t, masked, "[UUID_MASKED_1]")
}

func TestMaskEmptyText(t *testing.T) {
	m := NewMasker()
	assert.Equal(t, "", m.Mask(""))
}

func TestResetClearsSessionState(t *testing.T) {
	m := NewMasker(WithGreetingNameMasking(false))

	m.Mask("a@example.com b@example.com")
	m.Reset()
	masked := m.Mask("c@example.com")

	assert.Equal(t, "[EMAIL_MASKED_1]", masked)
	assert.Len(t, m.Mappings()["EMAIL_MASKED"], 1)
}

func TestMaskThenUnmaskRoundTrip(t *testing.T) {
	m := NewMasker()

	original := strings.Join([]string{
		"Hi Jonathan,",
		"",
		"Please reach me at jane.doe@example.com or 555-123-4567.",
		"The affected host is 192.168.1.50.",
		"",
		"Regards, Melissa",
	}, "\n")

	masked := m.Mask(original)
	require.NotEqual(t, original, masked)

	u := NewUnmasker(&Mapping{Categories: m.Mappings()})
	assert.Equal(t, original, u.UnmaskText(masked))
}

func TestUnmaskLeavesUnknownTokens(t *testing.T) {
	u := NewUnmasker(&Mapping{Categories: map[string]map[string]string{
		"EMAIL_MASKED": {"EMAIL_MASKED_1": "jane@example.com"},
	}})

	out := u.UnmaskText("[EMAIL_MASKED_1] and [PHONE_MASKED_9]")

	assert.Equal(t, "jane@example.com and [PHONE_MASKED_9]", out)
	assert.Equal(t, 1, u.TokenCount())
}
