// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "fmt"

// StructureError reports that an element the scraper depends on is missing
// from a parsed page. It usually means the page layout changed or the server
// returned an error or CAPTCHA page instead of the expected content.
type StructureError struct {
	// Element is the selector that matched nothing (e.g. "#gsc_a_b").
	Element string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("page structure mismatch: %s not found", e.Element)
}

// DateParseError reports a publication date that could not be normalized.
type DateParseError struct {
	Text string
	Err  error
}

func (e *DateParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing date %q: %v", e.Text, e.Err)
	}
	return fmt.Sprintf("parsing date %q: not a date", e.Text)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// CitationParseError reports a total-citations value without the expected
// nested "Cited by N" anchor.
type CitationParseError struct {
	Text string
	Err  error
}

func (e *CitationParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing citations %q: %v", e.Text, e.Err)
	}
	return fmt.Sprintf("parsing citations %q: no %q anchor", e.Text, citedByPrefix)
}

func (e *CitationParseError) Unwrap() error { return e.Err }

// FieldError ties a field-level parse failure to the field it came from.
type FieldError struct {
	Field FieldKind
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
