package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("OLAP_SERVER_URL", "https://api.oec.world/tesseract/")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://api.oec.world/tesseract/", cfg.Server.URL)
	assert.Equal(t, DialectTesseract, cfg.Server.Dialect)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, "jsonrecords", cfg.Server.Format)
	assert.Equal(t, 2, cfg.Retry.MaxRetries)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "olap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  url: https://olap.example.com/mondrian-rest/
  dialect: mondrian
  timeout_seconds: 10
  locale: es
retry:
  max_retries: 5
  initial_delay_ms: 100
  max_delay_ms: 2000
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DialectMondrian, cfg.Server.Dialect)
	assert.Equal(t, "es", cfg.Server.Locale)
	assert.Equal(t, 10*time.Second, cfg.Timeout())

	policy := cfg.RetryPolicy()
	assert.Equal(t, 5, policy.MaxRetries)
	assert.Equal(t, 100*time.Millisecond, policy.InitialDelay)
	assert.Equal(t, 2*time.Second, policy.MaxDelay)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "olap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  url: https://olap.example.com/
  locale: es
`), 0o600))
	t.Setenv("OLAP_LOCALE", "fr")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fr", cfg.Server.Locale)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{Server: ServerConfig{
			URL:            "https://olap.example.com/",
			Dialect:        DialectTesseract,
			TimeoutSeconds: 30,
		}}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.Server.URL = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Server.Dialect = "xmla"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Server.TimeoutSeconds = 0
	assert.Error(t, cfg.Validate())
}
