// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns parsed Google Scholar pages into records: the works
// table of a profile into WorkStubs, and a work's detail page into the
// recognized fields of a WorkRecord. Every function here is a pure
// transformation over an already-fetched document.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"

	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// FieldKind is one of the recognized detail-page fields.
type FieldKind int

const (
	FieldUnknown FieldKind = iota
	FieldAuthors
	FieldPublicationDate
	FieldConference
	FieldPages
	FieldPublisher
	FieldDescription
	FieldTotalCitations
)

// fieldNames maps each recognized kind to the name derived from its label.
var fieldNames = map[FieldKind]string{
	FieldAuthors:         "authors",
	FieldPublicationDate: "publication_date",
	FieldConference:      "conference",
	FieldPages:           "pages",
	FieldPublisher:       "publisher",
	FieldDescription:     "description",
	FieldTotalCitations:  "total_citations",
}

func (k FieldKind) String() string {
	if name, ok := fieldNames[k]; ok {
		return name
	}
	return "unknown"
}

// FieldKinds returns the recognized kinds in declaration order.
func FieldKinds() []FieldKind {
	return []FieldKind{
		FieldAuthors, FieldPublicationDate, FieldConference, FieldPages,
		FieldPublisher, FieldDescription, FieldTotalCitations,
	}
}

// ParseFieldKind maps a field name such as "publication_date" to its kind.
func ParseFieldKind(name string) (FieldKind, bool) {
	for _, k := range FieldKinds() {
		if fieldNames[k] == name {
			return k, true
		}
	}
	return FieldUnknown, false
}

// FieldName derives a field name from a detail-page label:
// "Publication date" becomes "publication_date".
func FieldName(label string) string {
	return strings.ReplaceAll(strings.ToLower(label), " ", "_")
}

// fieldRules holds the parsing rule of every kind that is not plain text.
var fieldRules = map[FieldKind]func(*goquery.Selection) (any, error){
	FieldAuthors: func(sel *goquery.Selection) (any, error) {
		return ProcessAuthors(sel), nil
	},
	FieldPublicationDate: func(sel *goquery.Selection) (any, error) {
		return ProcessDate(sel.Text())
	},
	FieldTotalCitations: func(sel *goquery.Selection) (any, error) {
		return ProcessCitations(sel)
	},
}

// ExtractField applies the parsing rule for the named field to sel. The
// result is a []string for authors, an int for total_citations and a
// string otherwise. Unrecognized names fall back to the plain text of sel.
func ExtractField(name string, sel *goquery.Selection) (any, error) {
	kind, _ := ParseFieldKind(name)
	if rule, ok := fieldRules[kind]; ok {
		return rule(sel)
	}
	return ProcessText(sel), nil
}

// apply extracts sel as field k and stores the result on rec. On error rec
// is left untouched.
func (k FieldKind) apply(rec *types.WorkRecord, sel *goquery.Selection) error {
	if k == FieldUnknown {
		return fmt.Errorf("no field for unknown kind")
	}
	v, err := ExtractField(k.String(), sel)
	if err != nil {
		return err
	}
	switch k {
	case FieldAuthors:
		rec.Authors = v.([]string)
	case FieldPublicationDate:
		rec.PublicationDate = v.(string)
	case FieldTotalCitations:
		n := v.(int)
		rec.TotalCitations = &n
	case FieldConference:
		rec.Conference = v.(string)
	case FieldPages:
		rec.Pages = v.(string)
	case FieldPublisher:
		rec.Publisher = v.(string)
	case FieldDescription:
		rec.Description = v.(string)
	}
	return nil
}

// ProcessText returns the text content of sel as the document tree reports it.
func ProcessText(sel *goquery.Selection) string {
	return sel.Text()
}

// ProcessAuthors splits a comma-separated author list, trimming each name.
// Order is preserved and duplicates are kept.
func ProcessAuthors(sel *goquery.Selection) []string {
	parts := strings.Split(sel.Text(), ",")
	authors := make([]string, len(parts))
	for i, p := range parts {
		authors[i] = strings.TrimSpace(p)
	}
	return authors
}

const dateLayout = "2006-01-02"

var (
	// yearFirstRe matches Scholar's usual "2020/1/3", "2020/1" and "2020".
	yearFirstRe = regexp.MustCompile(`^(\d{4})(?:[/.\-](\d{1,2})(?:[/.\-](\d{1,2}))?)?$`)

	// yearLastRe matches "1/3/2020", read month before day.
	yearLastRe = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4})$`)

	digitRe = regexp.MustCompile(`\d`)
)

// textLayouts are tried before the generic parser for dates with month names.
var textLayouts = []string{
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"January 2 2006",
	"Jan 2006",
	"January 2006",
	"2006 Jan 2",
	"2006 January 2",
}

// ProcessDate normalizes a free-text date to YYYY-MM-DD. Ambiguous numeric
// dates are read year first, then month before day. A missing month or day
// defaults to 1.
func ProcessDate(text string) (string, error) {
	s := strings.TrimSpace(text)
	if s == "" || !digitRe.MatchString(s) {
		return "", &DateParseError{Text: text}
	}

	if m := yearFirstRe.FindStringSubmatch(s); m != nil {
		return civilDate(text, m[1], m[2], m[3])
	}
	if m := yearLastRe.FindStringSubmatch(s); m != nil {
		return civilDate(text, m[3], m[1], m[2])
	}

	for _, layout := range textLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateLayout), nil
		}
	}

	t, err := dateparse.ParseAny(s, dateparse.PreferMonthFirst(true))
	if err != nil {
		return "", &DateParseError{Text: text, Err: err}
	}
	return t.Format(dateLayout), nil
}

// civilDate validates year/month/day strings and formats them. Empty month
// or day default to 1.
func civilDate(text, year, month, day string) (string, error) {
	y, _ := strconv.Atoi(year)
	m, d := 1, 1
	if month != "" {
		m, _ = strconv.Atoi(month)
	}
	if day != "" {
		d, _ = strconv.Atoi(day)
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if m < 1 || m > 12 || t.Day() != d {
		return "", &DateParseError{Text: text, Err: fmt.Errorf("month %d day %d out of range", m, d)}
	}
	return t.Format(dateLayout), nil
}

const citedByPrefix = "Cited by "

// ProcessCitations reads the count from the "Cited by N" anchor nested in
// the first div of sel.
func ProcessCitations(sel *goquery.Selection) (int, error) {
	anchor := sel.Find("div").First().Find("a").First()
	if anchor.Length() == 0 {
		return 0, &CitationParseError{Text: strings.TrimSpace(sel.Text())}
	}
	text := anchor.Text()
	if !strings.HasPrefix(text, citedByPrefix) {
		return 0, &CitationParseError{Text: text}
	}
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(text, citedByPrefix)))
	if err != nil {
		return 0, &CitationParseError{Text: text, Err: err}
	}
	if n < 0 {
		return 0, &CitationParseError{Text: text, Err: fmt.Errorf("negative count %d", n)}
	}
	return n, nil
}
