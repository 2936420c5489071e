package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/psd2scout/apiscout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanCmd_resolveConfig(t *testing.T) {
	t.Parallel()

	t.Run("normalizes positional URLs", func(t *testing.T) {
		t.Parallel()

		cmd := &ScanCmd{
			URLs: []string{"bank.example", "https://other.example/developer"},
			Depth: -1, Pages: -1, Timeout: -1, Wait: -1,
		}

		config, err := cmd.resolveConfig()

		require.NoError(t, err)
		assert.Equal(t, []string{"https://bank.example", "https://other.example/developer"}, config.URLs)
		assert.Equal(t, apiscout.DefaultMaxDepth, config.Options.MaxDepth)
	})

	t.Run("flags override config file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
urls:
  - https://bank.example
options:
  maxDepth: 1
  maxPagesPerSite: 5
`), 0644))

		cmd := &ScanCmd{
			Config: path,
			Depth:  3, Pages: -1, Timeout: 2, Wait: 0.5,
		}

		config, err := cmd.resolveConfig()

		require.NoError(t, err)
		assert.Equal(t, 3, config.Options.MaxDepth)
		assert.Equal(t, 5, config.Options.MaxPagesPerSite)
		assert.Equal(t, 2*time.Second, config.Options.Timeout)
		assert.Equal(t, 500*time.Millisecond, config.Options.WaitTime)
	})

	t.Run("rejects empty seed list", func(t *testing.T) {
		t.Parallel()

		cmd := &ScanCmd{Depth: -1, Pages: -1, Timeout: -1, Wait: -1}

		_, err := cmd.resolveConfig()

		assert.Equal(t, apiscout.EINVALID, apiscout.ErrorCode(err))
	})

	t.Run("rejects unusable URL", func(t *testing.T) {
		t.Parallel()

		cmd := &ScanCmd{URLs: []string{"   "}, Depth: -1, Pages: -1, Timeout: -1, Wait: -1}

		_, err := cmd.resolveConfig()

		assert.Equal(t, apiscout.EINVALID, apiscout.ErrorCode(err))
	})
}
