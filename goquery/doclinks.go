package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DocLinks implements apiscout.DocLinkFinder.
func (e *LinkExtractor) DocLinks(rawHTML string, pageURL string) []string {
	return DocLinks(rawHTML, pageURL)
}

// SwaggerURLs implements apiscout.DocLinkFinder.
func (e *LinkExtractor) SwaggerURLs(rawHTML string, pageURL string) []string {
	return SwaggerURLs(rawHTML, pageURL)
}

// docKeywords identify anchors that point at API documentation.
var docKeywords = []string{
	"documentation", "docs", "api reference", "getting started",
	"quickstart", "guide", "tutorial", "specification",
}

// swaggerQuotedPatterns find Swagger/OpenAPI spec URLs inside quoted
// strings in raw markup, where they are often referenced from scripts
// rather than anchors.
var swaggerQuotedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)["']([^"']*swagger[.-]?ui[^"']*)["']`),
	regexp.MustCompile(`(?i)["']([^"']*openapi[^"']*)["']`),
	regexp.MustCompile(`(?i)["']([^"']*api-?docs[^"']*)["']`),
	regexp.MustCompile(`(?i)["']([^"']*swagger\.json[^"']*)["']`),
	regexp.MustCompile(`(?i)["']([^"']*openapi\.(?:json|yaml)[^"']*)["']`),
}

// DocLinks returns documentation URLs found on the page: anchors whose
// text or href contains a documentation keyword, resolved against the
// page URL. Results are deduplicated preserving discovery order.
// An unparsable page yields no links, never an error.
func DocLinks(rawHTML string, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var out []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" || isNonHTTPLink(href) {
			return
		}
		text := strings.ToLower(strings.TrimSpace(sel.Text()))
		lowerHref := strings.ToLower(href)

		for _, kw := range docKeywords {
			if !strings.Contains(text, kw) && !strings.Contains(lowerHref, kw) {
				continue
			}
			if resolved := resolveRef(base, href); resolved != "" && !seen[resolved] {
				seen[resolved] = true
				out = append(out, resolved)
			}
			break
		}
	})

	return out
}

// SwaggerURLs returns Swagger/OpenAPI spec URLs found on the page, both
// from quoted strings in the raw markup and from anchors mentioning
// swagger or openapi. Results are deduplicated preserving discovery
// order. Never fails; absent matches yield nil.
func SwaggerURLs(rawHTML string, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var out []string

	add := func(candidate string) {
		if candidate == "" || isNonHTTPLink(candidate) {
			return
		}
		if resolved := resolveRef(base, candidate); resolved != "" && !seen[resolved] {
			seen[resolved] = true
			out = append(out, resolved)
		}
	}

	for _, re := range swaggerQuotedPatterns {
		for _, m := range re.FindAllStringSubmatch(rawHTML, -1) {
			add(m[1])
		}
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML)); err == nil {
		doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			href, ok := sel.Attr("href")
			if !ok {
				return
			}
			text := strings.ToLower(sel.Text())
			lowerHref := strings.ToLower(href)
			if strings.Contains(text, "swagger") || strings.Contains(lowerHref, "swagger") ||
				strings.Contains(text, "openapi") || strings.Contains(lowerHref, "openapi") {
				add(href)
			}
		})
	}

	return out
}

// resolveRef resolves a candidate href against the page URL, keeping
// the fragment (spec viewers use fragment routing).
func resolveRef(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
