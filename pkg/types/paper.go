// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// WorkStub is the minimal identity of a work as it appears in one row of a
// profile's works table: its title and the relative link to its detail page.
type WorkStub struct {
	// Title is the anchor text of the work row.
	Title string `json:"title" yaml:"title"`

	// Link is the path-and-query of the detail page (e.g.
	// "/citations?view_op=view_citation&user=abc&citation_for_view=abc:xyz").
	Link string `json:"link" yaml:"link"`
}

// IsEmpty reports whether the stub came from a row with no work info cell.
func (s WorkStub) IsEmpty() bool {
	return s.Title == "" && s.Link == ""
}

// WorkRecord is a WorkStub enriched with the recognized fields of its
// detail page. Fields absent from the page are left at their zero value and
// omitted on output; TotalCitations is a pointer so that a parsed count is
// distinguishable from a missing one.
type WorkRecord struct {
	WorkStub `yaml:",inline"`

	// Authors lists the authors in source order, without deduplication.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// PublicationDate is normalized to YYYY-MM-DD.
	PublicationDate string `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`

	Conference  string `json:"conference,omitempty" yaml:"conference,omitempty"`
	Pages       string `json:"pages,omitempty" yaml:"pages,omitempty"`
	Publisher   string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// TotalCitations is the "Cited by N" count of the work.
	TotalCitations *int `json:"total_citations,omitempty" yaml:"total_citations,omitempty"`
}

// NewWorkRecord returns a record holding a copy of stub and no extended fields.
func NewWorkRecord(stub WorkStub) WorkRecord {
	return WorkRecord{WorkStub: stub}
}
