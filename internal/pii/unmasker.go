package pii

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Unmasker restores original PII values from a mapping artifact.
type Unmasker struct {
	// replacements maps bracketed tokens ("[EMAIL_MASKED_1]") to the
	// original value. The mapping file stores keys without brackets.
	replacements map[string]string
}

// NewUnmasker flattens a mapping's categories into one token table.
func NewUnmasker(m *Mapping) *Unmasker {
	replacements := make(map[string]string)
	for _, entries := range m.Categories {
		for token, original := range entries {
			replacements["["+token+"]"] = original
		}
	}
	return &Unmasker{replacements: replacements}
}

// NewUnmaskerFromFile loads the mapping artifact at path.
func NewUnmaskerFromFile(path string) (*Unmasker, error) {
	m, err := LoadMapping(path)
	if err != nil {
		return nil, err
	}
	return NewUnmasker(m), nil
}

// UnmaskText replaces every known token occurrence in text. Tokens not
// present in the mapping are left untouched.
func (u *Unmasker) UnmaskText(text string) string {
	for token, original := range u.replacements {
		text = strings.ReplaceAll(text, token, original)
	}
	return text
}

// TokenCount reports how many distinct tokens the unmasker knows.
func (u *Unmasker) TokenCount() int {
	return len(u.replacements)
}

// UnmaskFile reads a masked CSV and writes a restored copy. Every cell
// is passed through token replacement; structure and ordering are
// preserved.
func (u *Unmasker) UnmaskFile(inputPath, outputPath string) (int, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open input file %s: %w", inputPath, err)
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
	}
	defer out.Close()

	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	writer := csv.NewWriter(out)
	defer writer.Flush()

	rows := 0
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return rows, fmt.Errorf("failed to read input row: %w", err)
		}
		for i, cell := range record {
			record[i] = u.UnmaskText(cell)
		}
		if err := writer.Write(record); err != nil {
			return rows, fmt.Errorf("failed to write output row: %w", err)
		}
		rows++
	}
	if err := writer.Error(); err != nil {
		return rows, fmt.Errorf("failed to flush output: %w", err)
	}
	return rows, nil
}
