// Package crawl provides the crawl scheduler: breadth-first portal
// traversal under depth and page budgets, with API-looking links
// scanned first. It coordinates fetching, content extraction, scoring,
// link discovery, and record assembly.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/psd2scout/apiscout"
	"github.com/psd2scout/apiscout/score"
	"golang.org/x/sync/errgroup"
)

// Frontier sizing for one site crawl.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types.
const (
	ProgressSiteStarted ProgressType = iota
	ProgressPageScanned
	ProgressPageFailed
	ProgressSiteCompleted
	ProgressFinished
)

// ProgressEvent reports progress during a scan.
type ProgressEvent struct {
	Type ProgressType
	URL  string
	Err  error
}

// ProgressFunc is a callback for reporting scan progress.
type ProgressFunc func(event ProgressEvent)

// Crawler scans bank developer portals for PSD2 API offerings.
//
// One Crawler may scan several sites; each site's own traversal is
// strictly sequential, which bounds load on the portal and keeps the
// frontier ordering meaningful.
type Crawler struct {
	Fetcher   apiscout.Fetcher
	Extractor apiscout.Extractor
	Analyzer  apiscout.Analyzer
	Links     apiscout.LinkExtractor
	Docs      apiscout.DocLinkFinder  // optional
	Sitemaps  apiscout.SitemapService // optional frontier seeding
	Limiter   apiscout.DomainLimiter  // optional request pacing
	Logger    *slog.Logger            // optional

	// MaxDepth is the maximum link distance from the seed URL.
	MaxDepth int

	// MaxPages bounds the number of pages fetched per site.
	MaxPages int

	// Timeout bounds a single page fetch, retries included.
	Timeout time.Duration

	// RetryDelays configures fetch retry backoff; nil uses defaults.
	RetryDelays []time.Duration
}

// ScanAll scans the seed URLs and assembles the run report.
// Sites are scanned concurrently up to the given limit (minimum 1),
// while the report preserves input order. ScanAll never fails: per-site
// problems surface in the corresponding SiteResult.
func (c *Crawler) ScanAll(ctx context.Context, urls []string, concurrency int, progress ProgressFunc) *apiscout.Report {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]*apiscout.SiteResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, u := range urls {
		g.Go(func() error {
			if progress != nil {
				progress(ProgressEvent{Type: ProgressSiteStarted, URL: u})
			}
			results[i] = c.ScanSite(gctx, u)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressSiteCompleted, URL: u})
			}
			return nil
		})
	}
	_ = g.Wait()

	var all []*apiscout.API
	for _, r := range results {
		all = append(all, r.APIs...)
	}
	merged := apiscout.MergeAPIs(nil, all)
	apiscout.SortByConfidence(merged)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished})
	}

	return &apiscout.Report{
		LastUpdated: time.Now().UTC(),
		TotalAPIs:   len(merged),
		ScanResults: results,
		APIs:        merged,
	}
}

// ScanSite crawls one portal breadth-first and returns its result.
// It never returns an error: an unusable seed URL yields a result with
// Status "error", and per-page failures are logged and skipped. A
// canceled context also yields Status "error", with the partial API
// list preserved.
func (c *Crawler) ScanSite(ctx context.Context, startURL string) *apiscout.SiteResult {
	result := &apiscout.SiteResult{
		URL:    startURL,
		Status: apiscout.ScanStatusSuccess,
		APIs:   []*apiscout.API{},
	}

	seed, err := url.Parse(startURL)
	if err != nil || seed.Host == "" || (seed.Scheme != "http" && seed.Scheme != "https") {
		result.Status = apiscout.ScanStatusError
		result.Error = fmt.Sprintf("invalid start URL %q", startURL)
		return result
	}
	origin := seed.Scheme + "://" + seed.Host
	domain := seed.Hostname()

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(apiscout.DiscoveredLink{
		URL:      startURL,
		Depth:    0,
		Priority: apiscout.PriorityAPIPattern,
	})
	c.seedFromSitemap(ctx, origin, frontier)

	var collected []*apiscout.API

	for result.PagesScanned < c.MaxPages {
		link, ok := frontier.Pop()
		if !ok {
			break
		}
		if ctx.Err() != nil {
			break
		}
		// Stale entries past the depth budget are dropped without
		// counting against the page budget.
		if link.Depth > c.MaxDepth {
			continue
		}

		result.PagesScanned++

		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx, domain); err != nil {
				break
			}
		}

		html, err := c.fetch(ctx, link.URL)
		if err != nil {
			c.log().Warn("page fetch failed", "url", link.URL, "err", err)
			continue
		}

		content, err := c.Extractor.Extract(html)
		if err != nil {
			c.log().Warn("page extraction failed", "url", link.URL, "err", err)
			continue
		}

		analysis := c.Analyzer.Analyze(content.Text, link.URL, content.Title)
		if analysis.APIRelated {
			result.APIPages = append(result.APIPages, apiscout.PageMatch{
				URL:         link.URL,
				Relevance:   analysis.Relevance,
				Keywords:    analysis.Keywords,
				ContentHash: contentHash(html),
			})
			collected = append(collected, c.buildRecords(origin, domain, link.URL, html, content, analysis)...)
			c.log().Info("api-related page",
				"url", link.URL,
				"score", analysis.Relevance,
				"types", analysis.Types,
			)
		}

		if link.Depth < c.MaxDepth {
			c.enqueueLinks(html, link, frontier)
		}
	}

	if err := ctx.Err(); err != nil {
		result.Status = apiscout.ScanStatusError
		result.Error = fmt.Sprintf("scan interrupted: %v", err)
	}

	result.APIs = apiscout.MergeAPIs(nil, collected)
	apiscout.SortByConfidence(result.APIs)
	return result
}

// seedFromSitemap pushes API-looking sitemap URLs into the frontier at
// depth 1. Sites without a sitemap are seeded from the start URL only;
// discovery failures are not errors.
func (c *Crawler) seedFromSitemap(ctx context.Context, origin string, frontier *Frontier) {
	if c.Sitemaps == nil {
		return
	}
	urls, err := c.Sitemaps.DiscoverURLs(ctx, origin)
	if err != nil {
		c.log().Debug("sitemap discovery failed", "url", origin, "err", err)
		return
	}
	seeded := 0
	for _, u := range urls {
		if !score.IsAPIURL(u) {
			continue
		}
		if frontier.Push(apiscout.DiscoveredLink{URL: u, Depth: 1, Priority: apiscout.PriorityAPIPattern}) {
			seeded++
		}
	}
	if seeded > 0 {
		c.log().Info("sitemap seeding", "url", origin, "seeded", seeded)
	}
}

// fetch retrieves one page within the configured timeout, with retries.
func (c *Crawler) fetch(ctx context.Context, pageURL string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, pageURL, c.Fetcher.Fetch, delays)
}

// enqueueLinks extracts outbound links and pushes unseen ones at the
// next depth. Extraction failures only cost the page its outlinks.
func (c *Crawler) enqueueLinks(html string, from apiscout.DiscoveredLink, frontier *Frontier) {
	links, err := c.Links.ExtractLinks(html, from.URL)
	if err != nil {
		c.log().Warn("link extraction failed", "url", from.URL, "err", err)
		return
	}
	for _, l := range links {
		l.Depth = from.Depth + 1
		frontier.Push(l)
	}
}

// buildRecords assembles one API record per detected type on a
// qualifying page.
func (c *Crawler) buildRecords(origin, provider, pageURL, html string, content *apiscout.PageContent, analysis *apiscout.Analysis) []*apiscout.API {
	var docURL, swaggerURL string
	if c.Docs != nil {
		if docs := c.Docs.DocLinks(html, pageURL); len(docs) > 0 {
			docURL = docs[0]
		}
		if specs := c.Docs.SwaggerURLs(html, pageURL); len(specs) > 0 {
			swaggerURL = specs[0]
		}
	}

	now := time.Now().UTC()
	apis := make([]*apiscout.API, 0, len(analysis.Types))
	for _, apiType := range analysis.Types {
		apis = append(apis, &apiscout.API{
			Name:             provider + " - " + string(apiType),
			Type:             apiType,
			URL:              origin,
			SourcePage:       pageURL,
			Description:      score.Describe(content, apiType, provider),
			DocumentationURL: docURL,
			SwaggerURL:       swaggerURL,
			DiscoveredAt:     now,
			Confidence:       analysis.Relevance,
			Keywords:         analysis.Keywords,
		})
	}
	return apis
}

func (c *Crawler) log() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// contentHash hashes page markup with xxhash; stored with qualifying
// pages so later runs can tell whether a page changed.
func contentHash(html string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(html))
}
