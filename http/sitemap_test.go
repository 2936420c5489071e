package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	scouthttp "github.com/psd2scout/apiscout/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapService_DiscoverURLs_reads_robots_directives(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "User-agent: *\nDisallow: /private\nSitemap: %s/portal-sitemap.xml\n", srv.URL)
	})
	mux.HandleFunc("/portal-sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%[1]s/developer/apis</loc></url>
  <url><loc>%[1]s/press</loc></url>
</urlset>`, srv.URL)
	})

	s := scouthttp.NewSitemapService(nil)
	urls, err := s.DiscoverURLs(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/developer/apis", srv.URL + "/press"}, urls)
}

func TestSitemapService_DiscoverURLs_falls_back_to_sitemap_xml(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<urlset><url><loc>%s/openbanking</loc></url></urlset>`, srv.URL)
	})

	s := scouthttp.NewSitemapService(nil)
	urls, err := s.DiscoverURLs(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/openbanking"}, urls)
}

func TestSitemapService_DiscoverURLs_follows_sitemap_index(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<sitemapindex>
  <sitemap><loc>%[1]s/sitemap-a.xml</loc></sitemap>
  <sitemap><loc>%[1]s/sitemap-b.xml</loc></sitemap>
  <sitemap><loc>%[1]s/sitemap.xml</loc></sitemap>
</sitemapindex>`, srv.URL)
	})
	mux.HandleFunc("/sitemap-a.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<urlset><url><loc>%s/api/docs</loc></url></urlset>`, srv.URL)
	})
	mux.HandleFunc("/sitemap-b.xml", func(w http.ResponseWriter, r *http.Request) {
		// duplicate of an already-collected URL
		fmt.Fprintf(w, `<urlset><url><loc>%[1]s/api/docs</loc></url><url><loc>%[1]s/sandbox</loc></url></urlset>`, srv.URL)
	})

	s := scouthttp.NewSitemapService(nil)
	urls, err := s.DiscoverURLs(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/api/docs", srv.URL + "/sandbox"}, urls)
}

func TestSitemapService_DiscoverURLs_no_sitemap_is_not_an_error(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	s := scouthttp.NewSitemapService(nil)
	urls, err := s.DiscoverURLs(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Empty(t, urls)
	assert.NotNil(t, urls)
}

func TestSitemapService_DiscoverURLs_skips_malformed_sitemap(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "this is not xml <<<<")
	})

	s := scouthttp.NewSitemapService(nil)
	urls, err := s.DiscoverURLs(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestSitemapService_DiscoverURLs_respects_cancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := scouthttp.NewSitemapService(nil)
	_, err := s.DiscoverURLs(ctx, "https://bank.example")

	assert.ErrorIs(t, err, context.Canceled)
}
