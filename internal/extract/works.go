// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// Layout markers of Scholar profile and detail pages.
const (
	ProfileNameID   = "gsc_prf_in"
	WorksTableID    = "gsc_a_b"
	WorkInfoClass   = "gsc_a_t"
	DetailTableID   = "gsc_oci_table"
	FieldLabelClass = "gsc_oci_field"
	FieldValueClass = "gsc_oci_value"
)

// ListWorks returns one stub per immediate row of the works table, in
// document order. A row without a work info cell yields an empty stub.
// A page without the works table is a *StructureError.
func ListWorks(doc *goquery.Selection) ([]types.WorkStub, error) {
	table := doc.Find("#" + WorksTableID).First()
	if table.Length() == 0 {
		return nil, &StructureError{Element: "#" + WorksTableID}
	}

	rows := table.ChildrenFiltered("tr")
	works := make([]types.WorkStub, 0, rows.Length())
	rows.Each(func(_ int, row *goquery.Selection) {
		works = append(works, stubFromRow(row))
	})
	return works, nil
}

func stubFromRow(row *goquery.Selection) types.WorkStub {
	var stub types.WorkStub
	row.ChildrenFiltered("td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		if !cell.HasClass(WorkInfoClass) {
			return true
		}
		a := cell.Find("a").First()
		stub.Title = a.Text()
		stub.Link = a.AttrOr("href", "")
		return false
	})
	return stub
}

// ProfileName returns the display name from a profile page header.
func ProfileName(doc *goquery.Selection) (string, error) {
	name := doc.Find("#" + ProfileNameID).First()
	if name.Length() == 0 {
		return "", &StructureError{Element: "#" + ProfileNameID}
	}
	return strings.TrimSpace(name.Text()), nil
}
