// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// parseHTML parses markup and returns the document root selection.
func parseHTML(t *testing.T, markup string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc.Selection
}

// valueOf wraps inner in a field value div and returns that div.
func valueOf(t *testing.T, inner string) *goquery.Selection {
	t.Helper()
	return parseHTML(t, `<div class="gsc_oci_value" id="v">`+inner+`</div>`).Find("#v")
}

func TestFieldName(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Authors", "authors"},
		{"Publication date", "publication_date"},
		{"Total citations", "total_citations"},
		{"Scholar articles", "scholar_articles"},
		{"Conference", "conference"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, FieldName(tt.label))
		})
	}
}

func TestParseFieldKind(t *testing.T) {
	for _, k := range FieldKinds() {
		got, ok := ParseFieldKind(k.String())
		assert.True(t, ok, "kind %s should round-trip", k)
		assert.Equal(t, k, got)
	}

	got, ok := ParseFieldKind("journal")
	assert.False(t, ok)
	assert.Equal(t, FieldUnknown, got)
	assert.Equal(t, "unknown", FieldUnknown.String())
}

func TestProcessAuthors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"two authors", "Alice Lee, Bob Kim", []string{"Alice Lee", "Bob Kim"}},
		{"single author", "Alice Lee", []string{"Alice Lee"}},
		{"extra whitespace", "  Alice Lee ,Bob Kim  ,  Carol Wu", []string{"Alice Lee", "Bob Kim", "Carol Wu"}},
		{"duplicates kept", "Bob Kim, Alice Lee, Bob Kim", []string{"Bob Kim", "Alice Lee", "Bob Kim"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProcessAuthors(valueOf(t, tt.text)))
		})
	}
}

func TestProcessDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"scholar full", "2020/1/3", "2020-01-03"},
		{"scholar padded", "2019/11/28", "2019-11-28"},
		{"year month", "2018/6", "2018-06-01"},
		{"year only", "2017", "2017-01-01"},
		{"iso", "2021-02-14", "2021-02-14"},
		{"day month name year", "3 Jan 2020", "2020-01-03"},
		{"full month name", "14 February 2016", "2016-02-14"},
		{"month name first", "March 5, 2015", "2015-03-05"},
		{"month before day", "1/3/2020", "2020-01-03"},
		{"surrounding whitespace", "  2020/1/3\n", "2020-01-03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProcessDate(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProcessDateErrors(t *testing.T) {
	for _, text := range []string{"", "not a date", "   ", "2020/13/1", "2021/2/30"} {
		t.Run(text, func(t *testing.T) {
			_, err := ProcessDate(text)
			var dateErr *DateParseError
			require.ErrorAs(t, err, &dateErr)
			assert.Equal(t, text, dateErr.Text)
		})
	}
}

func TestProcessCitations(t *testing.T) {
	sel := valueOf(t, `<div style="margin-bottom:1em"><a href="/scholar?cites=123">Cited by 42</a></div><div><a href="/scholar?cluster=9">All 3 versions</a></div>`)
	n, err := ProcessCitations(sel)
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestProcessCitationsErrors(t *testing.T) {
	tests := []struct {
		name  string
		inner string
	}{
		{"no nested div", `<a href="/scholar?cites=1">Cited by 1</a>`},
		{"div without anchor", `<div>No citations</div>`},
		{"missing prefix", `<div><a href="/scholar?cluster=9">All 3 versions</a></div>`},
		{"non-numeric count", `<div><a href="/scholar?cites=1">Cited by many</a></div>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ProcessCitations(valueOf(t, tt.inner))
			var citeErr *CitationParseError
			assert.ErrorAs(t, err, &citeErr)
		})
	}
}

func TestExtractField(t *testing.T) {
	t.Run("authors", func(t *testing.T) {
		v, err := ExtractField("authors", valueOf(t, "A, B"))
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, v)
	})
	t.Run("publication date", func(t *testing.T) {
		v, err := ExtractField("publication_date", valueOf(t, "2020/1/3"))
		require.NoError(t, err)
		assert.Equal(t, "2020-01-03", v)
	})
	t.Run("total citations", func(t *testing.T) {
		v, err := ExtractField("total_citations", valueOf(t, `<div><a>Cited by 7</a></div>`))
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	})
	t.Run("recognized text field", func(t *testing.T) {
		v, err := ExtractField("publisher", valueOf(t, "ACM"))
		require.NoError(t, err)
		assert.Equal(t, "ACM", v)
	})
	t.Run("unknown falls back to text", func(t *testing.T) {
		v, err := ExtractField("journal", valueOf(t, `Nature <b>Physics</b>`))
		require.NoError(t, err)
		assert.Equal(t, "Nature Physics", v)
	})
}

func TestApplyStoresExtractedValue(t *testing.T) {
	values := map[FieldKind]string{
		FieldAuthors:         "A, B",
		FieldPublicationDate: "2020/1/3",
		FieldConference:      "NeurIPS",
		FieldPages:           "1-10",
		FieldPublisher:       "ACM",
		FieldDescription:     "Abstract",
		FieldTotalCitations:  `<div><a>Cited by 7</a></div>`,
	}
	for _, k := range FieldKinds() {
		t.Run(k.String(), func(t *testing.T) {
			sel := valueOf(t, values[k])
			want, err := ExtractField(k.String(), sel)
			require.NoError(t, err)

			var rec types.WorkRecord
			require.NoError(t, k.apply(&rec, sel))

			var got any
			switch k {
			case FieldAuthors:
				got = rec.Authors
			case FieldPublicationDate:
				got = rec.PublicationDate
			case FieldConference:
				got = rec.Conference
			case FieldPages:
				got = rec.Pages
			case FieldPublisher:
				got = rec.Publisher
			case FieldDescription:
				got = rec.Description
			case FieldTotalCitations:
				require.NotNil(t, rec.TotalCitations)
				got = *rec.TotalCitations
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestApplyLeavesRecordOnError(t *testing.T) {
	rec := types.WorkRecord{PublicationDate: "1999-01-01"}
	err := FieldPublicationDate.apply(&rec, valueOf(t, "sometime"))
	var dateErr *DateParseError
	require.ErrorAs(t, err, &dateErr)
	assert.Equal(t, "1999-01-01", rec.PublicationDate)

	assert.Error(t, FieldUnknown.apply(&rec, valueOf(t, "x")))
}
