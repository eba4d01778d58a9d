// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// WriteJSON writes people as an indented JSON array.
func WriteJSON(w io.Writer, people []types.PersonRecord) error {
	if people == nil {
		people = []types.PersonRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(people); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// WriteYAML writes people as a YAML sequence.
func WriteYAML(w io.Writer, people []types.PersonRecord) error {
	if people == nil {
		people = []types.PersonRecord{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(people); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// Write sends the collected people to the sink named by cfg. JSON and YAML
// go to cfg.Path, or to stdout when the path is empty or "-". SQLite needs
// a path.
func Write(ctx context.Context, cfg types.OutputConfig, result types.BatchResult, stdout io.Writer) error {
	switch cfg.Format {
	case types.OutputSQLite:
		if cfg.Path == "" || cfg.Path == "-" {
			return fmt.Errorf("sqlite output needs a file path")
		}
		s, err := OpenSQLite(cfg.Path)
		if err != nil {
			return err
		}
		defer s.Close()
		return s.SaveBatch(ctx, result)

	case types.OutputJSON, types.OutputYAML, "":
		write := WriteJSON
		if cfg.Format == types.OutputYAML {
			write = WriteYAML
		}
		if cfg.Path == "" || cfg.Path == "-" {
			return write(stdout, result.People)
		}
		f, err := os.Create(cfg.Path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", cfg.Path, err)
		}
		if err := write(f, result.People); err != nil {
			f.Close()
			return err
		}
		return f.Close()

	default:
		return fmt.Errorf("unknown output format %q", cfg.Format)
	}
}
