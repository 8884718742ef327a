package pii

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// MappingMetadata records the provenance of one masking run.
type MappingMetadata struct {
	SourceFile  string         `json:"source_file"`
	MaskedFile  string         `json:"masked_file"`
	CreatedAt   string         `json:"created_at"`
	RunID       string         `json:"run_id"`
	Description string         `json:"description"`
	Statistics  map[string]int `json:"statistics"`
}

// Mapping is the reversible masking artifact: run metadata plus one
// token → original-value map per category. On disk the categories sit
// beside the metadata key at the top level of the JSON document.
type Mapping struct {
	Metadata   MappingMetadata
	Categories map[string]map[string]string
}

// MarshalJSON flattens categories to top-level keys next to "metadata".
func (m Mapping) MarshalJSON() ([]byte, error) {
	doc := make(map[string]interface{}, len(m.Categories)+1)
	doc["metadata"] = m.Metadata
	for category, entries := range m.Categories {
		doc[category] = entries
	}
	return json.Marshal(doc)
}

// UnmarshalJSON splits the metadata key from the category maps.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.Categories = make(map[string]map[string]string)
	for key, value := range raw {
		if key == "metadata" {
			if err := json.Unmarshal(value, &m.Metadata); err != nil {
				return fmt.Errorf("invalid mapping metadata: %w", err)
			}
			continue
		}
		var entries map[string]string
		if err := json.Unmarshal(value, &entries); err != nil {
			return fmt.Errorf("invalid mapping category %q: %w", key, err)
		}
		m.Categories[key] = entries
	}
	return nil
}

// Save writes the mapping artifact as indented JSON.
func (m Mapping) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode mapping: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write mapping file: %w", err)
	}
	return nil
}

// LoadMapping reads a mapping artifact. A missing file is a fatal load
// error for the caller.
func LoadMapping(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}
	var m Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse mapping file %s: %w", path, err)
	}
	return &m, nil
}

func nowTimestamp() string {
	return time.Now().Format(time.RFC3339)
}
