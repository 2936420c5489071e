package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/psd2scout/apiscout"
)

// Ensure SitemapService implements apiscout.SitemapService.
var _ apiscout.SitemapService = (*SitemapService)(nil)

// SitemapService discovers portal URLs from sitemaps via HTTP. Sitemap
// locations come from robots.txt Sitemap directives, with /sitemap.xml
// as the fallback.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs finds all URLs advertised by a site's sitemaps.
// Returns an empty slice (not nil) when the site has no sitemap.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, apiscout.Errorf(apiscout.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	sitemaps := s.sitemapLocations(ctx, base)

	urls := []string{}
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	for _, sm := range sitemaps {
		found, err := s.readSitemap(ctx, sm, seenSitemaps)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// A broken sitemap should not abort seeding.
			continue
		}
		for _, u := range found {
			if !seenURLs[u] {
				seenURLs[u] = true
				urls = append(urls, u)
			}
		}
	}

	return urls, nil
}

// sitemapLocations returns the sitemap URLs to read: robots.txt
// directives when present, /sitemap.xml otherwise.
func (s *SitemapService) sitemapLocations(ctx context.Context, base *url.URL) []string {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if sitemaps := s.robotsSitemaps(ctx, robotsURL); len(sitemaps) > 0 {
		return sitemaps
	}
	return []string{base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()}
}

// robotsSitemaps extracts Sitemap: directives from robots.txt.
func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) []string {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			continue
		}
		if loc := strings.TrimSpace(line[len("sitemap:"):]); loc != "" {
			sitemaps = append(sitemaps, loc)
		}
	}
	return sitemaps
}

// readSitemap fetches and parses one sitemap, following <sitemapindex>
// entries recursively. The seen set guards against reference cycles.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, apiscout.Errorf(apiscout.EINTERNAL, "parsing sitemap XML at %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, apiscout.Errorf(apiscout.EINTERNAL, "empty sitemap XML at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, child := range locations(root, "sitemap") {
			found, err := s.readSitemap(ctx, child, seen)
			if err != nil {
				if ctx.Err() != nil {
					return nil, err
				}
				continue
			}
			urls = append(urls, found...)
		}
		return urls, nil
	}

	return locations(root, "url"), nil
}

// locations collects the <loc> text of the named child elements.
func locations(root *etree.Element, tag string) []string {
	var urls []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// get fetches a URL and returns the response body.
func (s *SitemapService) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, apiscout.Errorf(apiscout.EINVALID, "creating request for %s: %v", targetURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, apiscout.Errorf(apiscout.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}
