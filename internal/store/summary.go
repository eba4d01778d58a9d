// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// WriteSummary renders one row per input identifier: collected people with
// their publication counts, then skipped identifiers with the reason.
func WriteSummary(w io.Writer, result types.BatchResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Scholar ID", "Name", "Publications", "Status"})
	for _, p := range result.People {
		t.AppendRow(table.Row{p.ScholarID, p.Name, len(p.Publications), "collected"})
	}
	for _, s := range result.Skipped {
		t.AppendRow(table.Row{s.Identifier, "", "", string(s.Kind) + ": " + s.Reason})
	}
	t.AppendFooter(table.Row{"", "Total " + strconv.Itoa(result.Total()), result.Publications(), ""})
	t.Render()
}

// WritePeople renders a stored people listing.
func WritePeople(w io.Writer, people []PersonSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Scholar ID", "Name", "Publications", "Citations", "Collected"})
	for _, p := range people {
		collected := ""
		if !p.CollectedAt.IsZero() {
			collected = p.CollectedAt.Format("2006-01-02 15:04")
		}
		t.AppendRow(table.Row{p.ScholarID, p.Name, p.Publications, p.Citations, collected})
	}
	t.Render()
}

// WriteMatches renders full-text search hits.
func WriteMatches(w io.Writer, matches []Match) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Name", "Title", "Date"})
	for _, m := range matches {
		t.AppendRow(table.Row{m.Name, m.Title, m.Date})
	}
	t.Render()
}
