// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/purell"
)

// DefaultExcludedDomains lists citation indexes whose links show up in the
// same spreadsheets as Scholar profiles but must not be probed.
var DefaultExcludedDomains = []string{"scopus.com"}

// InvalidIdentifierError reports an input that is not a usable profile URL.
type InvalidIdentifierError struct {
	Identifier string
	Reason     string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Identifier, e.Reason)
}

// Identifier is a validated profile URL.
type Identifier struct {
	// URL is the normalized profile URL that is fetched.
	URL string

	// ScholarID is the "user" query parameter of URL.
	ScholarID string
}

// ParseIdentifier validates raw as an absolute http(s) profile URL with a
// non-empty "user" parameter whose host is not in excluded (subdomains
// included). Existing cstart and pagesize parameters are removed from the
// returned URL.
func ParseIdentifier(raw string, excluded []string) (Identifier, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Identifier{}, &InvalidIdentifierError{Identifier: raw, Reason: "empty"}
	}

	normalized, err := purell.NormalizeURLString(s, purell.FlagsSafe|purell.FlagRemoveFragment)
	if err != nil {
		return Identifier{}, &InvalidIdentifierError{Identifier: raw, Reason: err.Error()}
	}
	u, err := url.Parse(normalized)
	if err != nil {
		return Identifier{}, &InvalidIdentifierError{Identifier: raw, Reason: err.Error()}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Identifier{}, &InvalidIdentifierError{Identifier: raw, Reason: "not an absolute http(s) URL"}
	}

	host := strings.ToLower(u.Hostname())
	for _, d := range excluded {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" && (host == d || strings.HasSuffix(host, "."+d)) {
			return Identifier{}, &InvalidIdentifierError{Identifier: raw, Reason: "excluded domain " + d}
		}
	}

	id := u.Query().Get("user")
	if id == "" {
		return Identifier{}, &InvalidIdentifierError{Identifier: raw, Reason: `missing "user" query parameter`}
	}
	if q := stripPaging(u.RawQuery); q != u.RawQuery {
		u.RawQuery = q
		normalized = u.String()
	}
	return Identifier{URL: normalized, ScholarID: id}, nil
}

// pagingParams are listing parameters a copied profile URL may already
// carry. The paginator sets them itself.
var pagingParams = map[string]bool{"cstart": true, "pagesize": true}

// stripPaging drops pagingParams from a raw query, keeping the order of the
// remaining pairs.
func stripPaging(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}
	pairs := strings.Split(rawQuery, "&")
	kept := pairs[:0]
	for _, p := range pairs {
		key, _, _ := strings.Cut(p, "=")
		if !pagingParams[strings.ToLower(key)] {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "&")
}
