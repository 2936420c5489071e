package http

import (
	"context"

	"github.com/psd2scout/apiscout"
)

// Ensure ChainFetcher implements apiscout.Fetcher at compile time.
var _ apiscout.Fetcher = (*ChainFetcher)(nil)

// ChainFetcher tries a sequence of fetchers in order and returns the
// first successful result. The usual chain is a plain HTTP fetcher
// followed by a browser-based one, so that cheap requests are tried
// before spinning the browser.
type ChainFetcher struct {
	fetchers []apiscout.Fetcher
}

// NewChainFetcher creates a ChainFetcher over the given fetchers.
func NewChainFetcher(fetchers ...apiscout.Fetcher) *ChainFetcher {
	return &ChainFetcher{fetchers: fetchers}
}

// Fetch tries each fetcher in order until one succeeds. The last error
// is returned when all of them fail.
func (c *ChainFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if len(c.fetchers) == 0 {
		return "", apiscout.Errorf(apiscout.EINTERNAL, "no fetchers configured")
	}

	var lastErr error
	for _, f := range c.fetchers {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		html, err := f.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// Close closes every fetcher in the chain and returns the first error.
func (c *ChainFetcher) Close() error {
	var firstErr error
	for _, f := range c.fetchers {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
