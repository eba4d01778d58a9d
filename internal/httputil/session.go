// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP session shared by every fetch of a run.
package httputil

import (
	"context"
	"fmt"
	"log/slog"
	"net/http/cookiejar"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"

	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// DefaultUserAgent is a desktop browser identification string. Scholar
// rejects requests with library default agents outright.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// FetchError reports a transport failure or a non-2xx response.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: HTTP %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Session fetches pages over one resty client, so connections and cookies
// are reused across every profile of a run.
type Session struct {
	http   *resty.Client
	logger *slog.Logger
}

// NewSession builds a session from cfg. logger may be nil to use
// slog.Default().
func NewSession(cfg types.HTTPConfig, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	client.SetCookieJar(jar)

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept-Language", "en-US,en;q=0.9")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	// SetProxy needs the bare *http.Transport, so it runs before wrapping.
	if cfg.ProxyURL != "" {
		client.SetProxy(cfg.ProxyURL)
	}
	if cfg.BrowserTransport {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		logger.DebugContext(req.Context(), "request", "method", req.Method, "url", req.URL)
		return nil
	})
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		logger.DebugContext(res.Request.Context(), "response",
			"url", res.Request.URL,
			"status", res.StatusCode(),
			"bytes", len(res.Body()),
			"elapsed", res.Time(),
		)
		return nil
	})

	return &Session{http: client, logger: logger}, nil
}

// Fetch GETs rawURL and returns the response body. Any transport failure or
// non-2xx status is a *FetchError. Nothing is retried.
func (s *Session) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	res, err := s.http.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	if !res.IsSuccess() {
		return nil, &FetchError{URL: rawURL, StatusCode: res.StatusCode()}
	}
	return res.Body(), nil
}
