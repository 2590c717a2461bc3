package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
database = "/tmp/parems.db"

[web]
port = "9090"
default_results_per_page = 25

[web.rate_limit]
requests_per_second = 2.5
burst = 4

[cache]
enabled = false
ttl = "30s"
`))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/parems.db", cfg.Database)
	assert.Equal(t, "localhost:9090", cfg.Addr())
	assert.Equal(t, 25, cfg.Web.DefaultResultsPerPage)
	assert.Equal(t, 15*time.Second, cfg.Web.ReadTimeout.Duration)
	assert.True(t, cfg.Web.RateLimit.Enabled())
	assert.Equal(t, 2.5, cfg.Web.RateLimit.RequestsPerSecond)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL.Duration)
	assert.Zero(t, cfg.Cache.CountTTL(), "disabled cache")
}

func TestParseDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := Parse([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(os.Getenv("XDG_DATA_HOME"), "parems", "parems.db"), cfg.Database)
	assert.Equal(t, 10, cfg.Web.DefaultResultsPerPage)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL.Duration)
	assert.Equal(t, 10*time.Minute, cfg.Cache.CountTTL())
	assert.False(t, cfg.Web.RateLimit.Enabled())
}

func TestParseInvalidDuration(t *testing.T) {
	_, err := Parse([]byte(`[cache]
ttl = "soon"`))
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", cfg.Addr())
	assert.Equal(t, 10, cfg.Web.DefaultResultsPerPage)
}

func TestSaveTemplateConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf", "config.toml")

	cfg := &Config{Database: filepath.Join(dir, "catalog.db")}
	require.NoError(t, cfg.SaveTemplateConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Database, loaded.Database)
	assert.Equal(t, 5.0, loaded.Web.RateLimit.RequestsPerSecond)
	assert.Equal(t, 20, loaded.Web.RateLimit.Burst)
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := &Config{Database: "/data/p.db"}
	cfg.Web.Port = "1234"
	cfg.Cache.TTL = Duration{time.Minute}
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost:1234", loaded.Addr())
	assert.Equal(t, time.Minute, loaded.Cache.TTL.Duration)
}
