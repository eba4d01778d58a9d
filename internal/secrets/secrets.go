// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads session credentials from a directory of plain-text
// files. Each file is one secret: the filename is the key and the trimmed
// contents are the value.
//
// Recognized keys: proxy-url, user-agent.
package secrets

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// DefaultDir is the secrets directory relative to the working directory.
const DefaultDir = ".secrets"

const (
	KeyProxyURL  = "proxy-url"
	KeyUserAgent = "user-agent"
)

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory yields an empty map. Unreadable files are
// logged and skipped.
func Load(dir string, logger *slog.Logger) (map[string]string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", "name", name, "err", err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}
	return secrets, nil
}

// Apply fills the session settings of cfg that are still unset from s. A
// proxy URL that does not parse as an absolute URL is an error.
func Apply(s map[string]string, cfg *types.HTTPConfig) error {
	if v, ok := s[KeyProxyURL]; ok && cfg.ProxyURL == "" {
		u, err := url.Parse(v)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("secret %s is not an absolute URL", KeyProxyURL)
		}
		cfg.ProxyURL = v
	}
	if v, ok := s[KeyUserAgent]; ok && cfg.UserAgent == "" {
		cfg.UserAgent = v
	}
	return nil
}
