// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-scraper/pkg/types"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeyProxyURL, "  http://user:pw@proxy.local:3128  \n")
				writeFile(t, dir, KeyUserAgent, "Mozilla/5.0 (X11; Linux x86_64)\n")
				return dir
			},
			want: map[string]string{
				KeyProxyURL:  "http://user:pw@proxy.local:3128",
				KeyUserAgent: "Mozilla/5.0 (X11; Linux x86_64)",
			},
		},
		{
			name: "missing directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files, dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeyUserAgent, "ua")
				writeFile(t, dir, "empty", "   \n\t")
				writeFile(t, dir, ".gitkeep", "x")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
				return dir
			},
			want: map[string]string{KeyUserAgent: "ua"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read any file")
	}
	dir := t.TempDir()
	writeFile(t, dir, KeyUserAgent, "ua")
	bad := filepath.Join(dir, KeyProxyURL)
	require.NoError(t, os.WriteFile(bad, []byte("http://p:1"), 0o000))
	t.Cleanup(func() { os.Chmod(bad, 0o644) })

	var logs bytes.Buffer
	got, err := Load(dir, slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{KeyUserAgent: "ua"}, got)
	assert.Contains(t, logs.String(), "could not read secret")
}

func TestApply(t *testing.T) {
	s := map[string]string{KeyProxyURL: "http://proxy.local:3128", KeyUserAgent: "custom-ua"}

	var cfg types.HTTPConfig
	require.NoError(t, Apply(s, &cfg))
	assert.Equal(t, "http://proxy.local:3128", cfg.ProxyURL)
	assert.Equal(t, "custom-ua", cfg.UserAgent)

	cfg = types.HTTPConfig{UserAgent: "from-flag"}
	require.NoError(t, Apply(s, &cfg))
	assert.Equal(t, "from-flag", cfg.UserAgent)

	require.NoError(t, Apply(map[string]string{}, &cfg))
}

func TestApplyRejectsBadProxy(t *testing.T) {
	var cfg types.HTTPConfig
	err := Apply(map[string]string{KeyProxyURL: "proxy.local"}, &cfg)
	require.Error(t, err)
	assert.Empty(t, cfg.ProxyURL)
	assert.NotContains(t, err.Error(), "proxy.local")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
