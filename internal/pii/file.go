package pii

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

const mappingDescription = "PII mapping for reversibility - CONFIDENTIAL"

// candidate delimiters for sniffing, in preference order.
var candidateDelimiters = []rune{',', '\t', ';', '|'}

// sniffDelimiter inspects the first 4KB of the file and picks the
// candidate delimiter that occurs most often. Comma wins ties.
func sniffDelimiter(path string) (rune, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, 4096)
	n, err := f.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	sample := string(buf[:n])

	best := ','
	bestCount := 0
	for _, d := range candidateDelimiters {
		count := 0
		for _, r := range sample {
			if r == d {
				count++
			}
		}
		if count > bestCount {
			best = d
			bestCount = count
		}
	}
	return best, nil
}

// MaskFileResult summarizes one file masking run.
type MaskFileResult struct {
	RowsProcessed int
	TotalFound    int
	ByCategory    map[string]int
	MappingPath   string
}

// MaskFile masks every cell of a delimited text file, writes the masked
// copy as CSV to outputPath, and writes the reversible mapping artifact
// to mappingPath. The input delimiter is sniffed from the file's first
// 4KB; output is always comma-delimited. The masker's session state
// accumulates across rows so repeated values share one token.
func (m *Masker) MaskFile(inputPath, outputPath, mappingPath string) (*MaskFileResult, error) {
	delimiter, err := sniffDelimiter(inputPath)
	if err != nil {
		return nil, err
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file %s: %w", inputPath, err)
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
	}
	defer out.Close()

	reader := csv.NewReader(in)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	writer := csv.NewWriter(out)
	defer writer.Flush()

	m.Reset()

	rows := 0
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read input row %d: %w", rows+1, err)
		}
		for i, cell := range record {
			record[i] = m.Mask(cell)
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write output row %d: %w", rows+1, err)
		}
		rows++
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush output: %w", err)
	}

	byCategory := make(map[string]int)
	total := 0
	for category, count := range m.counters {
		byCategory[category] = count
		total += count
	}

	statistics := map[string]int{
		"rows_processed":  rows,
		"total_pii_found": total,
	}
	for category, count := range byCategory {
		statistics[category] = count
	}

	mapping := Mapping{
		Metadata: MappingMetadata{
			SourceFile:  inputPath,
			MaskedFile:  outputPath,
			CreatedAt:   nowTimestamp(),
			RunID:       uuid.New().String(),
			Description: mappingDescription,
			Statistics:  statistics,
		},
		Categories: m.Mappings(),
	}
	if err := mapping.Save(mappingPath); err != nil {
		return nil, err
	}

	return &MaskFileResult{
		RowsProcessed: rows,
		TotalFound:    total,
		ByCategory:    byCategory,
		MappingPath:   mappingPath,
	}, nil
}
