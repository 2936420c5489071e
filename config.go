package apiscout

import (
	"net/url"
	"strings"
	"time"
)

// Default crawl options, matching the original discovery defaults.
const (
	DefaultMaxDepth        = 2
	DefaultMaxPagesPerSite = 50
	DefaultTimeout         = 10 * time.Second
	DefaultWaitTime        = time.Second
)

// Options holds the per-site crawl budgets and pacing.
type Options struct {
	// MaxDepth is the maximum link distance from the seed URL.
	MaxDepth int

	// MaxPagesPerSite bounds the number of pages fetched per site.
	MaxPagesPerSite int

	// Timeout bounds a single page fetch.
	Timeout time.Duration

	// WaitTime is the minimum delay between requests to one domain.
	WaitTime time.Duration
}

// Config is the operator-supplied scan configuration.
type Config struct {
	// URLs are the seed portal URLs to scan.
	URLs []string

	// Keywords overrides the built-in taxonomy per category.
	// Categories left out keep their defaults.
	Keywords Keywords

	// Options are the crawl budgets.
	Options Options
}

// DefaultConfig returns a Config with default budgets and the built-in
// keyword taxonomy.
func DefaultConfig() *Config {
	return &Config{
		Keywords: DefaultKeywords(),
		Options: Options{
			MaxDepth:        DefaultMaxDepth,
			MaxPagesPerSite: DefaultMaxPagesPerSite,
			Timeout:         DefaultTimeout,
			WaitTime:        DefaultWaitTime,
		},
	}
}

// Validate returns an error if the configuration is unusable.
func (c *Config) Validate() error {
	if len(c.URLs) == 0 {
		return Errorf(EINVALID, "at least one URL required")
	}
	if c.Options.MaxDepth < 0 {
		return Errorf(EINVALID, "maxDepth must be >= 0")
	}
	if c.Options.MaxPagesPerSite <= 0 {
		return Errorf(EINVALID, "maxPagesPerSite must be > 0")
	}
	return nil
}

// NormalizeURL prepares an operator-supplied URL for scanning: it trims
// whitespace, prepends https:// when no scheme is present, and verifies
// the result parses to an absolute URL with a host.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", Errorf(EINVALID, "empty URL")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", Errorf(EINVALID, "invalid URL %q", raw)
	}
	return u.String(), nil
}

// SiteOrigin returns the scheme://host origin of a URL, used as the
// site identity on API records.
func SiteOrigin(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", Errorf(EINVALID, "invalid URL %q", raw)
	}
	return u.Scheme + "://" + u.Host, nil
}
