// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const roster = `Name,Department,Google Scholar
Ada Lovelace,Math,https://scholar.google.com/citations?user=ada
Charles Babbage,Engineering,
Grace Hopper,CS,  https://scholar.google.com/citations?user=gh
"Smith, J",Physics,https://www.scopus.com/authid/detail.uri?authorId=1
`

func TestReadColumn(t *testing.T) {
	tests := []struct {
		name   string
		csv    string
		column string
		want   []string
		errMsg string
	}{
		{
			name:   "skips blank cells and keeps order",
			csv:    roster,
			column: "Google Scholar",
			want: []string{
				"https://scholar.google.com/citations?user=ada",
				"https://scholar.google.com/citations?user=gh",
				"https://www.scopus.com/authid/detail.uri?authorId=1",
			},
		},
		{
			name:   "default column",
			csv:    roster,
			column: "",
			want: []string{
				"https://scholar.google.com/citations?user=ada",
				"https://scholar.google.com/citations?user=gh",
				"https://www.scopus.com/authid/detail.uri?authorId=1",
			},
		},
		{
			name:   "case-insensitive header",
			csv:    roster,
			column: "name",
			want:   []string{"Ada Lovelace", "Charles Babbage", "Grace Hopper", "Smith, J"},
		},
		{
			name:   "byte order mark",
			csv:    "\uFEFFurl\nhttps://a/?user=x\n",
			column: "url",
			want:   []string{"https://a/?user=x"},
		},
		{
			name:   "short rows",
			csv:    "a,url\n1\n2,https://a/?user=y\n",
			column: "url",
			want:   []string{"https://a/?user=y"},
		},
		{
			name:   "missing column",
			csv:    roster,
			column: "ORCID",
			errMsg: `column "ORCID" not found`,
		},
		{
			name:   "empty input",
			csv:    "",
			column: "url",
			errMsg: "no header row",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadColumn(strings.NewReader(tt.csv), tt.column)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte(roster), 0o644))

	got, err := Load(path, "Google Scholar")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"), "x")
	assert.Error(t, err)
}

func TestIdentifierFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	ids := []string{"https://scholar.google.com/citations?user=ada", "https://scholar.google.com/citations?user=gh"}
	require.NoError(t, WriteIdentifierFile(path, "roster.csv", ids))

	f, err := ReadIdentifierFile(path)
	require.NoError(t, err)
	assert.Equal(t, ids, f.Identifiers)
	assert.Equal(t, "roster.csv", f.Source)
	assert.False(t, f.Created.IsZero())

	got, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, ids, got)
}

func TestLoadYAMLDropsBlankEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yml")
	require.NoError(t, os.WriteFile(path, []byte("identifiers:\n  - ' https://a/?user=x '\n  - ''\n"), 0o644))

	got, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a/?user=x"}, got)
}
