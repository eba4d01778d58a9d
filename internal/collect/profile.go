// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collect walks Scholar profiles: it pages through a person's works,
// merges each work's detail page, and runs that over a batch of profile URLs.
// All fetches go through one Fetcher and one rate limiter, strictly in order.
package collect

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/scholar-scraper/internal/extract"
	"github.com/pdiddy/scholar-scraper/internal/ratelimit"
	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// DefaultBaseURL is the origin that work detail links are resolved against.
const DefaultBaseURL = "https://scholar.google.com/"

// Fetcher returns the raw body of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Collector assembles PersonRecords. It is not safe for concurrent use.
type Collector struct {
	fetcher    Fetcher
	limiter    ratelimit.Limiter
	logger     *slog.Logger
	baseURL    *url.URL
	pageSize   int
	limitWorks int
	excluded   []string
	failFast   bool
}

// Option configures a Collector.
type Option func(*Collector)

// WithLimiter replaces the limiter built from the config's RateLimitConfig.
func WithLimiter(l ratelimit.Limiter) Option {
	return func(c *Collector) { c.limiter = l }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Collector) { c.logger = l }
}

// New returns a Collector fetching through f. Zero values in cfg take the
// package defaults; ExcludedDomains is used as given.
func New(f Fetcher, cfg types.ScrapeConfig, opts ...Option) (*Collector, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", base, err)
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	c := &Collector{
		fetcher:    f,
		logger:     slog.Default(),
		baseURL:    baseURL,
		pageSize:   pageSize,
		limitWorks: cfg.LimitWorks,
		excluded:   cfg.ExcludedDomains,
		failFast:   cfg.FailFast,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.limiter == nil {
		c.limiter = ratelimit.NewJittered(cfg.RateLimitConfig)
	}
	return c, nil
}

// DetailURL resolves a work's relative link against the base origin.
func (c *Collector) DetailURL(link string) (string, error) {
	ref, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parsing work link %q: %w", link, err)
	}
	return c.baseURL.ResolveReference(ref).String(), nil
}

// Collect fetches the profile at identifierURL, lists all of its works and
// merges every work's detail page. Publications keep listing order. Any
// fetch or structure error discards the whole person.
func (c *Collector) Collect(ctx context.Context, identifierURL string) (types.PersonRecord, error) {
	id, err := ParseIdentifier(identifierURL, c.excluded)
	if err != nil {
		return types.PersonRecord{}, err
	}
	return c.collect(ctx, id)
}

func (c *Collector) collect(ctx context.Context, id Identifier) (types.PersonRecord, error) {
	logger := c.logger.With("scholar_id", id.ScholarID)
	logger.InfoContext(ctx, "collecting profile", "url", id.URL)

	doc, err := c.fetchDocument(ctx, id.URL)
	if err != nil {
		return types.PersonRecord{}, fmt.Errorf("profile page: %w", err)
	}
	name, err := extract.ProfileName(doc.Selection)
	if err != nil {
		return types.PersonRecord{}, fmt.Errorf("profile page: %w", err)
	}

	listed, err := c.ListAllWorks(ctx, id.URL, c.pageSize)
	if err != nil {
		return types.PersonRecord{}, err
	}
	stubs := make([]types.WorkStub, 0, len(listed))
	for _, s := range listed {
		if s.IsEmpty() {
			continue
		}
		stubs = append(stubs, s)
	}
	if c.limitWorks > 0 && len(stubs) > c.limitWorks {
		stubs = stubs[:c.limitWorks]
	}
	logger.InfoContext(ctx, "listed works", "name", name, "works", len(stubs), "rows", len(listed))

	pubs := make([]types.WorkRecord, len(stubs))
	for i, stub := range stubs {
		rec, err := c.mergeDetail(ctx, logger, stub)
		if err != nil {
			return types.PersonRecord{}, fmt.Errorf("work %d of %d (%q): %w", i+1, len(stubs), stub.Title, err)
		}
		pubs[i] = rec
	}

	return types.PersonRecord{
		Name:         name,
		ScholarID:    id.ScholarID,
		Publications: pubs,
	}, nil
}

func (c *Collector) mergeDetail(ctx context.Context, logger *slog.Logger, stub types.WorkStub) (types.WorkRecord, error) {
	detailURL, err := c.DetailURL(stub.Link)
	if err != nil {
		return types.WorkRecord{}, err
	}
	doc, err := c.fetchDocument(ctx, detailURL)
	if err != nil {
		return types.WorkRecord{}, err
	}
	rec, fieldErrs, err := extract.Merge(stub, doc.Selection)
	if err != nil {
		return types.WorkRecord{}, err
	}
	for _, fe := range fieldErrs {
		logger.WarnContext(ctx, "dropping unparsable field", "title", stub.Title, "err", fe)
	}
	logger.DebugContext(ctx, "work merged", "title", stub.Title)
	return rec, nil
}

// fetchDocument waits on the limiter, fetches rawURL and parses it.
func (c *Collector) fetchDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	body, err := c.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", rawURL, err)
	}
	return doc, nil
}
