package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
service_name = "storefront"

[upstream]
base_url = "http://localhost:8081/api/v1"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "storefront", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 300, cfg.Search.DebounceMs)
	assert.Equal(t, 12, cfg.Search.DefaultPageSize)
	assert.Equal(t, 5, cfg.Upstream.RecommendCount)
	assert.Equal(t, "storefront.search.executed", cfg.Kafka.SearchTopic)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
service_name = "storefront"

[http]
port = 9000

[upstream]
base_url = "http://catalog:8081/api/v1"
timeout = 3

[search]
debounce_ms = 150
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, 3, cfg.Upstream.Timeout)
	assert.Equal(t, 150, cfg.Search.DebounceMs)
}

func TestLoadRequiresServiceName(t *testing.T) {
	path := writeConfig(t, `
[upstream]
base_url = "http://localhost:8081/api/v1"
`)

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "service_name")
}

func TestLoadRequiresUpstreamBaseURL(t *testing.T) {
	path := writeConfig(t, `
service_name = "storefront"
`)

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
