package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnoutzw/Anenji-smartess/internal/transport"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("empty path yields defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, transport.DefaultBaseURL, cfg.BaseURL)
		assert.Equal(t, "en", cfg.Language)
		assert.Equal(t, transport.DefaultTimeout, cfg.Timeout)
		assert.Nil(t, cfg.Retries)
		assert.Equal(t, transport.DefaultRetryDelay, cfg.RetryDelay)
	})

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, transport.DefaultBaseURL, cfg.BaseURL)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
baseUrl: http://web.shinemonitor.com/public/
language: de
timeout: 10s
retries: 5
retryDelay: 500ms
credentialsDir: /tmp/creds
cacheDir: /tmp/cache
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://web.shinemonitor.com/public/", cfg.BaseURL)
		assert.Equal(t, "de", cfg.Language)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
		require.NotNil(t, cfg.Retries)
		assert.Equal(t, uint(5), *cfg.Retries)
		assert.Equal(t, 500*time.Millisecond, cfg.RetryDelay)
		assert.Equal(t, "/tmp/creds", cfg.CredentialsDir)
		assert.Equal(t, "/tmp/cache", cfg.CacheDir)
	})

	t.Run("partial file keeps remaining defaults", func(t *testing.T) {
		path := writeConfig(t, "language: fr\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "fr", cfg.Language)
		assert.Equal(t, transport.DefaultBaseURL, cfg.BaseURL)
		assert.Equal(t, transport.DefaultTimeout, cfg.Timeout)
	})

	t.Run("explicit zero retries survives the merge", func(t *testing.T) {
		path := writeConfig(t, "retries: 0\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		require.NotNil(t, cfg.Retries)
		assert.Equal(t, uint(0), *cfg.Retries)

		tc := cfg.Transport()
		require.NotNil(t, tc.Retries)
		assert.Equal(t, uint(0), *tc.Retries)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := writeConfig(t, "baseUrl: [unclosed\n")
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("negative timeout rejected", func(t *testing.T) {
		path := writeConfig(t, "timeout: -3s\n")
		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestTransport(t *testing.T) {
	cfg := Default()
	cfg.Timeout = 7 * time.Second

	tc := cfg.Transport()
	assert.Equal(t, cfg.BaseURL, tc.BaseURL)
	assert.Equal(t, 7*time.Second, tc.Timeout)
	assert.Equal(t, cfg.Retries, tc.Retries)
	assert.Equal(t, cfg.RetryDelay, tc.RetryDelay)
}
