// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package input loads lists of profile URLs from disk. CSV files are read by
// column name; YAML files hold an identifier list and can be written back so
// a batch can be re-run later.
package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// DefaultColumn is the CSV column read when none is configured.
const DefaultColumn = "Google Scholar"

// IdentifierFile is the YAML form of an input list.
type IdentifierFile struct {
	Identifiers []string  `yaml:"identifiers"`
	Source      string    `yaml:"source,omitempty"`
	Created     time.Time `yaml:"created,omitempty"`
}

// Load reads identifiers from path. Files ending in .yaml or .yml are read
// as an IdentifierFile; anything else as CSV using column.
func Load(path, column string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		f, err := ReadIdentifierFile(path)
		if err != nil {
			return nil, err
		}
		return nonBlank(f.Identifiers), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	defer f.Close()
	ids, err := ReadColumn(f, column)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ids, nil
}

// ReadColumn returns the non-blank cells of the named column. The first
// record is the header; column names match case-insensitively after
// trimming. A leading UTF-8 byte order mark is ignored.
func ReadColumn(r io.Reader, column string) ([]string, error) {
	if column == "" {
		column = DefaultColumn
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty CSV: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	idx := -1
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
		if strings.EqualFold(h, strings.TrimSpace(column)) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found in header %q", column, header)
	}

	var ids []string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		if idx >= len(rec) {
			continue
		}
		if v := strings.TrimSpace(rec[idx]); v != "" {
			ids = append(ids, v)
		}
	}
	return ids, nil
}

// WriteIdentifierFile saves identifiers to a YAML file.
func WriteIdentifierFile(path, source string, identifiers []string) error {
	f := IdentifierFile{
		Identifiers: identifiers,
		Source:      source,
		Created:     time.Now().UTC().Truncate(time.Second),
	}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("marshaling identifier file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadIdentifierFile loads a YAML identifier file.
func ReadIdentifierFile(path string) (*IdentifierFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading identifier file: %w", err)
	}
	var f IdentifierFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing identifier file: %w", err)
	}
	return &f, nil
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
