package goquery

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/psd2scout/apiscout"
	"github.com/psd2scout/apiscout/score"
)

// Compile-time interface verification.
var _ apiscout.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor extracts prioritized same-site links from markup.
//
// Site membership uses hostname equality with a leading "www." stripped
// from both sides; this policy is applied consistently for the whole
// crawl. Fragments are stripped, queries are kept, and links to
// non-document resources (images, archives, scripts) are dropped.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// resourceExtensions are file extensions that never hold crawlable
// documentation.
var resourceExtensions = map[string]bool{
	".pdf": true, ".zip": true, ".tar": true, ".gz": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".ico": true, ".webp": true,
	".css": true, ".js": true,
	".woff": true, ".woff2": true, ".ttf": true,
	".mp4": true, ".webm": true, ".mp3": true,
	".doc": true, ".docx": true, ".xls": true, ".xlsx": true, ".ppt": true,
}

// ExtractLinks parses markup and returns absolute same-site URLs in a
// deterministic order: API-pattern links keep the highest priority,
// then listing, detail, and documentation hints from the link text;
// equal priorities preserve document discovery order (the frontier
// sort is stable).
func (e *LinkExtractor) ExtractLinks(rawHTML string, baseURL string) ([]apiscout.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, apiscout.Errorf(apiscout.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, apiscout.Errorf(apiscout.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []apiscout.DiscoveredLink

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		if !isSameSite(base, resolved) {
			return
		}
		if isResourceURL(resolved) {
			return
		}

		text := strings.TrimSpace(sel.Text())
		seen[resolved] = true
		links = append(links, apiscout.DiscoveredLink{
			URL:      resolved,
			Priority: linkPriority(resolved, text),
			Text:     text,
		})
	})

	return links, nil
}

// linkPriority ranks a link by its API-likelihood: URL pattern match
// first, then hints from the anchor text.
func linkPriority(rawURL, text string) apiscout.LinkPriority {
	if score.IsAPIURL(rawURL) {
		return apiscout.PriorityAPIPattern
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "api") &&
		(strings.Contains(lower, "catalog") || strings.Contains(lower, "list") || strings.Contains(lower, "product")):
		return apiscout.PriorityListing
	case strings.Contains(lower, "api") || strings.Contains(lower, "developer") ||
		strings.Contains(lower, "sandbox") || strings.Contains(lower, "open banking"):
		return apiscout.PriorityDetail
	case strings.Contains(lower, "documentation") || strings.Contains(lower, "docs") ||
		strings.Contains(lower, "reference") || strings.Contains(lower, "guide"):
		return apiscout.PriorityDocumentation
	default:
		return apiscout.PriorityOther
	}
}

// resolveURL resolves a relative URL against a base URL, stripping the
// fragment. Returns empty string for unparsable hrefs and links that
// resolve back to the base page itself.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if resolved.String() == baseNoFragment.String() {
		return ""
	}
	return resolved.String()
}

// isSameSite checks site membership: hostnames must match after a
// leading "www." is stripped from both sides.
func isSameSite(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return normalizeHost(u.Hostname()) == normalizeHost(base.Hostname())
}

func normalizeHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}

// isResourceURL reports whether the URL path ends in a non-document
// resource extension.
func isResourceURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	return resourceExtensions[strings.ToLower(path.Ext(u.Path))]
}

// isNonHTTPLink checks if a href uses a scheme that cannot be crawled.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
