package pii

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	return records
}

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    rune
	}{
		{"comma", "a,b,c\n1,2,3\n", ','},
		{"tab", "a\tb\tc\n1\t2\t3\n", '\t'},
		{"semicolon", "a;b;c\n1;2;3\n", ';'},
		{"pipe", "a|b|c\n1|2|3\n", '|'},
		{"empty defaults to comma", "", ','},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "sample.txt", tt.content)
			got, err := sniffDelimiter(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaskFileWritesMaskedCopyAndMapping(t *testing.T) {
	input := writeTemp(t, "tickets.csv", strings.Join([]string{
		`Ticket,Message`,
		`T-1,"Contact me at jane.doe@example.com or 555-123-4567"`,
		`T-2,"Follow-up from jane.doe@example.com"`,
	}, "\n")+"\n")
	dir := filepath.Dir(input)
	output := filepath.Join(dir, "tickets_masked.csv")
	mappingPath := filepath.Join(dir, "tickets_mapping.json")

	m := NewMasker(WithGreetingNameMasking(false))
	result, err := m.MaskFile(input, output, mappingPath)
	require.NoError(t, err)

	assert.Equal(t, 3, result.RowsProcessed)
	assert.Equal(t, 2, result.TotalFound)
	assert.Equal(t, 1, result.ByCategory["EMAIL_MASKED"])
	assert.Equal(t, 1, result.ByCategory["PHONE_MASKED"])

	records := readCSV(t, output)
	require.Len(t, records, 3)
	assert.Contains(t, records[1][1], "[EMAIL_MASKED_1]")
	assert.Contains(t, records[1][1], "[PHONE_MASKED_1]")
	// Same address in a later row reuses the same token.
	assert.Contains(t, records[2][1], "[EMAIL_MASKED_1]")

	mapping, err := LoadMapping(mappingPath)
	require.NoError(t, err)
	assert.Equal(t, input, mapping.Metadata.SourceFile)
	assert.Equal(t, output, mapping.Metadata.MaskedFile)
	assert.NotEmpty(t, mapping.Metadata.RunID)
	assert.Equal(t, 3, mapping.Metadata.Statistics["rows_processed"])
	assert.Equal(t, 2, mapping.Metadata.Statistics["total_pii_found"])
	require.Len(t, mapping.Categories["EMAIL_MASKED"], 1)
	require.Len(t, mapping.Categories["PHONE_MASKED"], 1)
	assert.Equal(t, "jane.doe@example.com", mapping.Categories["EMAIL_MASKED"]["EMAIL_MASKED_1"])
}

func TestMaskFileSniffsTabDelimiter(t *testing.T) {
	input := writeTemp(t, "tickets.tsv",
		"Ticket\tMessage\nT-1\tReach me at jane@example.com\n")
	dir := filepath.Dir(input)
	output := filepath.Join(dir, "masked.csv")
	mappingPath := filepath.Join(dir, "mapping.json")

	m := NewMasker(WithGreetingNameMasking(false))
	result, err := m.MaskFile(input, output, mappingPath)
	require.NoError(t, err)

	assert.Equal(t, 2, result.RowsProcessed)
	records := readCSV(t, output)
	require.Len(t, records, 2)
	require.Len(t, records[1], 2)
	assert.Equal(t, "Reach me at [EMAIL_MASKED_1]", records[1][1])
}

func TestMaskFileMissingInput(t *testing.T) {
	m := NewMasker()
	_, err := m.MaskFile(filepath.Join(t.TempDir(), "absent.csv"), "out.csv", "map.json")
	assert.Error(t, err)
}

func TestMaskUnmaskFileRoundTrip(t *testing.T) {
	original := [][]string{
		{"Ticket", "Message"},
		{"T-1", "Contact jane.doe@example.com or 555-123-4567"},
		{"T-2", "Server 192.168.1.50 is down, ping ops@example.com"},
	}
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	require.NoError(t, w.WriteAll(original))
	input := writeTemp(t, "input.csv", sb.String())
	dir := filepath.Dir(input)
	maskedPath := filepath.Join(dir, "masked.csv")
	mappingPath := filepath.Join(dir, "mapping.json")
	restoredPath := filepath.Join(dir, "restored.csv")

	m := NewMasker(WithGreetingNameMasking(false))
	_, err := m.MaskFile(input, maskedPath, mappingPath)
	require.NoError(t, err)

	u, err := NewUnmaskerFromFile(mappingPath)
	require.NoError(t, err)
	rows, err := u.UnmaskFile(maskedPath, restoredPath)
	require.NoError(t, err)
	assert.Equal(t, 3, rows)

	assert.Equal(t, original, readCSV(t, restoredPath))
}
