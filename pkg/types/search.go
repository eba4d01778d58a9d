// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the records produced by the scholar-scraper pipeline:
// work stubs and records (paper.go), person records and batch results
// (this file), and stage configuration (config.go).
package types

// PersonRecord is the assembled result for one profile URL. It is built only
// after every listing and detail page of the person has been fetched and
// merged; it is never handed out partially filled.
type PersonRecord struct {
	// Name is the display name from the profile header.
	Name string `json:"name" yaml:"name"`

	// ScholarID is the value of the profile URL's "user" query parameter.
	ScholarID string `json:"scholar_id" yaml:"scholar_id"`

	// Publications holds the works in profile listing order.
	Publications []WorkRecord `json:"publications" yaml:"publications"`
}

// SkipKind classifies why an identifier produced no PersonRecord.
type SkipKind string

const (
	// SkipInvalid marks a malformed or excluded identifier.
	SkipInvalid SkipKind = "invalid_identifier"

	// SkipFailed marks an identifier whose collection failed.
	SkipFailed SkipKind = "collection_failed"
)

// SkipRecord notes one identifier that was skipped and why.
type SkipRecord struct {
	Identifier string   `json:"identifier" yaml:"identifier"`
	Kind       SkipKind `json:"kind" yaml:"kind"`
	Reason     string   `json:"reason" yaml:"reason"`
}

// BatchResult holds the outcome of a batch run: one PersonRecord per
// successfully processed identifier, in input order, plus the skipped ones.
type BatchResult struct {
	People  []PersonRecord `json:"people" yaml:"people"`
	Skipped []SkipRecord   `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Total returns the number of identifiers processed.
func (r BatchResult) Total() int {
	return len(r.People) + len(r.Skipped)
}

// Failed returns the number of identifiers whose collection failed.
// Invalid identifiers are not failures.
func (r BatchResult) Failed() int {
	n := 0
	for _, s := range r.Skipped {
		if s.Kind == SkipFailed {
			n++
		}
	}
	return n
}

// HasFailures reports whether any identifier failed during collection.
func (r BatchResult) HasFailures() bool {
	return r.Failed() > 0
}

// Publications returns the total number of works across all people.
func (r BatchResult) Publications() int {
	n := 0
	for _, p := range r.People {
		n += len(p.Publications)
	}
	return n
}
