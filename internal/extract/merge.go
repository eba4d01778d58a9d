// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// Merge returns a copy of stub enriched with every recognized field of the
// detail page doc. Field groups with unrecognized labels or without a
// value element are ignored.
//
// A field whose value cannot be parsed is left unset and reported in
// fieldErrs as a *FieldError; the other fields of the record are unaffected.
// err is a *StructureError when the page has no detail table.
func Merge(stub types.WorkStub, doc *goquery.Selection) (rec types.WorkRecord, fieldErrs []error, err error) {
	table := doc.Find("#" + DetailTableID).First()
	if table.Length() == 0 {
		return types.WorkRecord{}, nil, &StructureError{Element: "#" + DetailTableID}
	}

	rec = types.NewWorkRecord(stub)
	table.ChildrenFiltered("div").Each(func(_ int, group *goquery.Selection) {
		label := group.Find("." + FieldLabelClass).First()
		if label.Length() == 0 {
			return
		}
		kind, ok := ParseFieldKind(FieldName(label.Text()))
		if !ok {
			return
		}
		value := group.Find("." + FieldValueClass).First()
		if value.Length() == 0 {
			return
		}
		if err := kind.apply(&rec, value); err != nil {
			fieldErrs = append(fieldErrs, &FieldError{Field: kind, Err: err})
		}
	})
	return rec, fieldErrs, nil
}
