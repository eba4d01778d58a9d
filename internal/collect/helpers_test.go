// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// fakeProfile serves a synthetic profile with a fixed number of works. It
// routes by query string so the same pages work for any host.
type fakeProfile struct {
	name  string
	works int

	// failDetail makes the detail page of this work index fail (1-based).
	failDetail int
}

func (p fakeProfile) page(rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()

	switch {
	case q.Get("view_op") == "view_citation":
		id := q.Get("citation_for_view")
		n, _ := strconv.Atoi(id[strings.LastIndex(id, ":")+1:])
		if n == p.failDetail {
			return nil, errors.New("connection reset")
		}
		return []byte(detailHTML(n)), nil
	case q.Has("cstart"):
		offset, _ := strconv.Atoi(q.Get("cstart"))
		size, _ := strconv.Atoi(q.Get("pagesize"))
		var rows []string
		for i := offset + 1; i <= min(offset+size, p.works); i++ {
			rows = append(rows, rowHTML(q.Get("user"), i))
		}
		return []byte(profileHTML(p.name, rows...)), nil
	default:
		return []byte(profileHTML(p.name)), nil
	}
}

func rowHTML(user string, n int) string {
	return fmt.Sprintf(`<tr class="gsc_a_tr"><td class="gsc_a_t"><a href="/citations?view_op=view_citation&amp;user=%s&amp;citation_for_view=%s:%d" class="gsc_a_at">Paper %d</a><div class="gs_gray">A Lee</div></td><td class="gsc_a_c"></td></tr>`,
		user, user, n, n)
}

func profileHTML(name string, rows ...string) string {
	return `<html><body><div id="gsc_prf_in">` + name + `</div>
<table id="gsc_a_t"><tbody id="gsc_a_b">` + strings.Join(rows, "") + `</tbody></table></body></html>`
}

func detailHTML(n int) string {
	return fmt.Sprintf(`<html><body><div id="gsc_oci_table">
<div class="gs_scl"><div class="gsc_oci_field">Authors</div><div class="gsc_oci_value">Alice Lee, Bob Kim</div></div>
<div class="gs_scl"><div class="gsc_oci_field">Publication date</div><div class="gsc_oci_value">2019/5/%d</div></div>
<div class="gs_scl"><div class="gsc_oci_field">Total citations</div><div class="gsc_oci_value"><div><a href="/scholar?cites=1">Cited by %d</a></div></div></div>
</div></body></html>`, n%28+1, n)
}

// fakeFetcher routes each URL to a profile by its "user" parameter and
// records the order of requests.
type fakeFetcher struct {
	profiles map[string]fakeProfile
	visited  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL string) ([]byte, error) {
	f.visited = append(f.visited, rawURL)
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	p, ok := f.profiles[u.Query().Get("user")]
	if !ok {
		return nil, fmt.Errorf("GET %s: status 404", rawURL)
	}
	return p.page(rawURL)
}

// fetcherFunc adapts a function to Fetcher.
type fetcherFunc func(ctx context.Context, rawURL string) ([]byte, error)

func (f fetcherFunc) Fetch(ctx context.Context, rawURL string) ([]byte, error) { return f(ctx, rawURL) }

// countingLimiter counts Wait calls without sleeping.
type countingLimiter struct {
	calls int
}

func (l *countingLimiter) Wait(context.Context) error {
	l.calls++
	return nil
}

// sleepRecorder is a ratelimit.Sleeper that records requested delays.
type sleepRecorder struct {
	delays []time.Duration
}

func (r *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return nil
}

func testConfig() types.ScrapeConfig {
	return types.ScrapeConfig{
		PageSize:        DefaultPageSize,
		ExcludedDomains: DefaultExcludedDomains,
	}
}
