package goquery_test

import (
	"testing"

	"github.com/psd2scout/apiscout"
	"github.com/psd2scout/apiscout/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractURLs(t *testing.T, html, base string) []string {
	t.Helper()

	links, err := goquery.NewLinkExtractor().ExtractLinks(html, base)
	require.NoError(t, err)

	urls := make([]string, len(links))
	for i, l := range links {
		urls[i] = l.URL
	}
	return urls
}

func TestLinkExtractor_resolves_relative_hrefs(t *testing.T) {
	t.Parallel()

	html := `<a href="/api/v1/accounts">Accounts API</a>`

	urls := extractURLs(t, html, "https://bank.example/developer/")

	assert.Equal(t, []string{"https://bank.example/api/v1/accounts"}, urls)
}

func TestLinkExtractor_strips_fragments(t *testing.T) {
	t.Parallel()

	html := `<a href="https://bank.example/docs/overview#section">Overview</a>`

	urls := extractURLs(t, html, "https://bank.example/")

	assert.Equal(t, []string{"https://bank.example/docs/overview"}, urls)
}

func TestLinkExtractor_filters_external_hosts(t *testing.T) {
	t.Parallel()

	html := `
<a href="https://other.example/api">External</a>
<a href="https://www.bank.example/api">Same site via www</a>
<a href="https://sub.bank.example/api">Subdomain</a>`

	urls := extractURLs(t, html, "https://bank.example/")

	assert.Equal(t, []string{"https://www.bank.example/api"}, urls)
}

func TestLinkExtractor_skips_resources_and_non_http_schemes(t *testing.T) {
	t.Parallel()

	html := `
<a href="/whitepaper.pdf">PDF</a>
<a href="/logo.png">Logo</a>
<a href="/theme.css">Style</a>
<a href="mailto:dev@bank.example">Mail</a>
<a href="javascript:void(0)">JS</a>
<a href="/developer">Developers</a>`

	urls := extractURLs(t, html, "https://bank.example/")

	assert.Equal(t, []string{"https://bank.example/developer"}, urls)
}

func TestLinkExtractor_deduplicates_preserving_order(t *testing.T) {
	t.Parallel()

	html := `
<a href="/a">First</a>
<a href="/b">Second</a>
<a href="/a">First again</a>`

	urls := extractURLs(t, html, "https://bank.example/")

	assert.Equal(t, []string{"https://bank.example/a", "https://bank.example/b"}, urls)
}

func TestLinkExtractor_prioritizes_api_pattern_urls(t *testing.T) {
	t.Parallel()

	html := `
<a href="/press">Press</a>
<a href="/developer/apis">Our APIs</a>
<a href="/help">Guide to branches</a>`

	links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://bank.example/")
	require.NoError(t, err)

	require.Len(t, links, 3)
	assert.Equal(t, apiscout.PriorityOther, links[0].Priority)
	assert.Equal(t, apiscout.PriorityAPIPattern, links[1].Priority)
	assert.Equal(t, apiscout.PriorityDocumentation, links[2].Priority)
}

func TestLinkExtractor_skips_self_links(t *testing.T) {
	t.Parallel()

	html := `<a href="#top">Top</a><a href="/page">Self</a>`

	urls := extractURLs(t, html, "https://bank.example/page")

	assert.Empty(t, urls)
}

func TestLinkExtractor_invalid_base_url(t *testing.T) {
	t.Parallel()

	_, err := goquery.NewLinkExtractor().ExtractLinks("<a href='/x'>x</a>", "://not-a-url")

	assert.Equal(t, apiscout.EINVALID, apiscout.ErrorCode(err))
}
