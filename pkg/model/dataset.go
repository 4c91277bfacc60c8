package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

// =============================================================================
// Dataset Serialization API
// =============================================================================

// MarshalDataset converts a dataset to JSON bytes.
func MarshalDataset(d *Dataset) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDatasetFile writes a dataset to a JSON file.
// The file is created with 0644 permissions.
func WriteDatasetFile(d *Dataset, path string) error {
	data, err := MarshalDataset(d)
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ReadDatasetFile reads a JSON file and returns the decoded, normalized
// dataset. See Normalize for what normalization entails.
func ReadDatasetFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDataset(f)
}

// ReadDataset decodes a JSON dataset from an io.Reader and normalizes it.
// Use ReadDatasetFile for files or pass bytes.NewReader for in-memory data.
func ReadDataset(r io.Reader) (*Dataset, error) {
	var d Dataset
	dec := json.NewDecoder(r)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	d.Normalize()
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	return &d, nil
}

// Normalize repairs a freshly loaded dataset in place:
//   - records with an empty id get a generated uuid, so position persistence
//     has a stable key for the rest of the session
//   - importance values are clamped to [MinImportance, MaxImportance]
//   - the CrossCategory flag on links is recomputed from endpoint categories
func (d *Dataset) Normalize() {
	byID := make(map[string]string, len(d.Records))
	for i := range d.Records {
		rec := &d.Records[i]
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		if rec.Importance < MinImportance {
			rec.Importance = MinImportance
		}
		if rec.Importance > MaxImportance {
			rec.Importance = MaxImportance
		}
		byID[rec.ID] = rec.Category
	}
	for i := range d.Links {
		l := &d.Links[i]
		srcCat, srcOK := byID[l.Source]
		dstCat, dstOK := byID[l.Target]
		l.CrossCategory = srcOK && dstOK && srcCat != dstCat
	}
}
