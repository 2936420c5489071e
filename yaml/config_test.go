package yaml_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/psd2scout/apiscout"
	"github.com/psd2scout/apiscout/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_applies_defaults_for_omitted_fields(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
urls:
  - https://bank.example
`)

	config, err := yaml.Load(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://bank.example"}, config.URLs)
	assert.Equal(t, apiscout.DefaultMaxDepth, config.Options.MaxDepth)
	assert.Equal(t, apiscout.DefaultMaxPagesPerSite, config.Options.MaxPagesPerSite)
	assert.Equal(t, apiscout.DefaultTimeout, config.Options.Timeout)
	assert.Equal(t, apiscout.DefaultWaitTime, config.Options.WaitTime)
	assert.NotEmpty(t, config.Keywords[apiscout.CategoryAIS])
}

func TestLoad_overrides_budgets(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
urls:
  - https://bank.example
options:
  maxDepth: 3
  maxPagesPerSite: 10
  timeoutSeconds: 2.5
  waitSeconds: 0
`)

	config, err := yaml.Load(path)

	require.NoError(t, err)
	assert.Equal(t, 3, config.Options.MaxDepth)
	assert.Equal(t, 10, config.Options.MaxPagesPerSite)
	assert.Equal(t, 2500*time.Millisecond, config.Options.Timeout)
	assert.Equal(t, time.Duration(0), config.Options.WaitTime)
}

func TestLoad_replaces_only_named_keyword_categories(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
urls:
  - https://bank.example
keywords:
  ais:
    - kontoinformation
`)

	config, err := yaml.Load(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"kontoinformation"}, config.Keywords[apiscout.CategoryAIS])
	assert.NotEmpty(t, config.Keywords[apiscout.CategoryPIS], "other categories keep defaults")
}

func TestLoad_rejects_malformed_yaml(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "urls: [unclosed")

	_, err := yaml.Load(path)

	assert.Equal(t, apiscout.EINVALID, apiscout.ErrorCode(err))
}

func TestLoad_missing_file(t *testing.T) {
	t.Parallel()

	_, err := yaml.Load(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}
