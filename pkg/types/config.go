// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds the settings of the shared HTTP session.
type HTTPConfig struct {
	// Timeout is the per-request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is sent with every request. Scholar blocks obvious bots, so
	// the default is a desktop browser string.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// ProxyURL routes all requests through an HTTP proxy when set.
	ProxyURL string `json:"proxy_url,omitempty" yaml:"proxy_url,omitempty"`

	// BrowserTransport wraps the transport with browser-like TLS and headers.
	BrowserTransport bool `json:"browser_transport" yaml:"browser_transport"`
}

// RateLimitConfig holds the politeness delay applied before every fetch
// except the first one of a run.
type RateLimitConfig struct {
	// Delay is the fixed base interval (default 3s).
	Delay time.Duration `json:"delay" yaml:"delay"`

	// Jitter is the standard deviation of the zero-mean Gaussian added to
	// Delay on each call (default 500ms). The sum is floored at zero.
	Jitter time.Duration `json:"jitter" yaml:"jitter"`
}

// ScrapeConfig holds settings for collecting profiles.
type ScrapeConfig struct {
	HTTPConfig      `yaml:",inline"`
	RateLimitConfig `yaml:",inline"`

	// BaseURL is the origin detail links are resolved against
	// (default https://scholar.google.com/).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// PageSize is the number of works requested per listing page (default 100).
	PageSize int `json:"page_size" yaml:"page_size"`

	// ExcludedDomains lists hosts whose URLs are rejected as identifiers.
	ExcludedDomains []string `json:"excluded_domains" yaml:"excluded_domains"`

	// FailFast aborts the batch on the first collection failure instead of
	// recording it and moving to the next identifier.
	FailFast bool `json:"fail_fast" yaml:"fail_fast"`

	// LimitWorks caps how many works per person get their detail page
	// fetched. Zero means all of them.
	LimitWorks int `json:"limit_works" yaml:"limit_works"`
}

// OutputFormat selects how a BatchResult is written.
type OutputFormat string

const (
	OutputJSON   OutputFormat = "json"
	OutputYAML   OutputFormat = "yaml"
	OutputSQLite OutputFormat = "sqlite"
)

// OutputConfig holds settings for writing the batch result.
type OutputConfig struct {
	// Format selects json, yaml, or sqlite.
	Format OutputFormat `json:"format" yaml:"format"`

	// Path is the destination file. Empty means stdout (json and yaml only).
	Path string `json:"path" yaml:"path"`
}
