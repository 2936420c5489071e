package apiscout

import "context"

// LinkPriority represents crawl priority (higher = more important).
type LinkPriority int

// Link priority levels for crawl ordering. Links whose URL matches an
// API path pattern always outrank links that don't; the hint levels
// order the rest.
const (
	PriorityOther         LinkPriority = 0
	PriorityDocumentation LinkPriority = 20
	PriorityDetail        LinkPriority = 30
	PriorityListing       LinkPriority = 40
	PriorityAPIPattern    LinkPriority = 100
)

// DiscoveredLink represents a URL discovered on a page, with the
// metadata the frontier needs to order it.
type DiscoveredLink struct {
	URL      string
	Depth    int
	Priority LinkPriority
	Text     string
}

// LinkExtractor extracts prioritized same-site links from markup.
type LinkExtractor interface {
	// ExtractLinks parses markup and returns discovered links,
	// deduplicated and in a deterministic order. The baseURL is used
	// to resolve relative URLs and to decide site membership.
	ExtractLinks(html string, baseURL string) ([]DiscoveredLink, error)
}

// DocLinkFinder locates documentation and Swagger/OpenAPI spec URLs
// referenced by a page. Absent matches yield empty results, never an
// error.
type DocLinkFinder interface {
	// DocLinks returns documentation URLs found on the page.
	DocLinks(html, pageURL string) []string

	// SwaggerURLs returns Swagger/OpenAPI spec URLs found on the page.
	SwaggerURLs(html, pageURL string) []string
}

// URLFrontier manages a crawl work list with deduplication.
type URLFrontier interface {
	// Push adds a link to the frontier.
	// Returns false if the URL has already been seen.
	Push(link DiscoveredLink) bool

	// Pop returns the next link by priority.
	// Returns false if the frontier is empty.
	Pop() (DiscoveredLink, bool)

	// Len returns the number of links in the queue.
	Len() int

	// Seen returns true if the URL has been queued or processed.
	Seen(url string) bool
}

// DomainLimiter provides per-domain request pacing.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// SitemapService discovers URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs finds URLs from a site's sitemap. It checks
	// robots.txt for sitemap directives, then falls back to
	// /sitemap.xml. Sitemap indexes are resolved recursively.
	// Returns an empty slice if the site publishes no sitemap.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
