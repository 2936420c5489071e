// Package yaml loads apiscout configuration files.
package yaml

import (
	"fmt"
	"os"
	"time"

	"github.com/psd2scout/apiscout"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk configuration schema. Durations are plain
// seconds, pointer fields distinguish "absent" from zero.
type fileConfig struct {
	URLs     []string            `yaml:"urls"`
	Keywords map[string][]string `yaml:"keywords"`
	Options  struct {
		MaxDepth        *int     `yaml:"maxDepth"`
		MaxPagesPerSite *int     `yaml:"maxPagesPerSite"`
		TimeoutSeconds  *float64 `yaml:"timeoutSeconds"`
		WaitSeconds     *float64 `yaml:"waitSeconds"`
	} `yaml:"options"`
}

// Load reads a YAML configuration file. Omitted fields keep their
// defaults; keyword categories named in the file replace the built-in
// lists for those categories only. Validation is left to the caller,
// which may still merge in command-line seed URLs.
func Load(path string) (*apiscout.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, apiscout.Errorf(apiscout.EINVALID, "parsing config %s: %v", path, err)
	}

	config := apiscout.DefaultConfig()
	config.URLs = file.URLs
	for category, words := range file.Keywords {
		config.Keywords[category] = words
	}
	if file.Options.MaxDepth != nil {
		config.Options.MaxDepth = *file.Options.MaxDepth
	}
	if file.Options.MaxPagesPerSite != nil {
		config.Options.MaxPagesPerSite = *file.Options.MaxPagesPerSite
	}
	if file.Options.TimeoutSeconds != nil {
		config.Options.Timeout = time.Duration(*file.Options.TimeoutSeconds * float64(time.Second))
	}
	if file.Options.WaitSeconds != nil {
		config.Options.WaitTime = time.Duration(*file.Options.WaitSeconds * float64(time.Second))
	}
	return config, nil
}
