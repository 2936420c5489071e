// Package mock provides hand-written mocks for the apiscout domain
// interfaces, used in unit tests.
package mock

import (
	"context"

	"github.com/psd2scout/apiscout"
)

var _ apiscout.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of apiscout.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ apiscout.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of apiscout.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*apiscout.PageContent, error)
}

func (e *Extractor) Extract(html string) (*apiscout.PageContent, error) {
	return e.ExtractFn(html)
}

var _ apiscout.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of apiscout.Analyzer.
type Analyzer struct {
	AnalyzeFn func(text, url, title string) *apiscout.Analysis
}

func (a *Analyzer) Analyze(text, url, title string) *apiscout.Analysis {
	return a.AnalyzeFn(text, url, title)
}

var _ apiscout.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of apiscout.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]apiscout.DiscoveredLink, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]apiscout.DiscoveredLink, error) {
	return e.ExtractLinksFn(html, baseURL)
}

var _ apiscout.DocLinkFinder = (*DocLinkFinder)(nil)

// DocLinkFinder is a mock implementation of apiscout.DocLinkFinder.
type DocLinkFinder struct {
	DocLinksFn    func(html, pageURL string) []string
	SwaggerURLsFn func(html, pageURL string) []string
}

func (f *DocLinkFinder) DocLinks(html, pageURL string) []string {
	return f.DocLinksFn(html, pageURL)
}

func (f *DocLinkFinder) SwaggerURLs(html, pageURL string) []string {
	return f.SwaggerURLsFn(html, pageURL)
}

var _ apiscout.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of apiscout.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL)
}

var _ apiscout.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of apiscout.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ apiscout.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of apiscout.URLFrontier.
type URLFrontier struct {
	PushFn func(link apiscout.DiscoveredLink) bool
	PopFn  func() (apiscout.DiscoveredLink, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *URLFrontier) Push(link apiscout.DiscoveredLink) bool {
	return f.PushFn(link)
}

func (f *URLFrontier) Pop() (apiscout.DiscoveredLink, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ apiscout.InventoryService = (*InventoryService)(nil)

// InventoryService is a mock implementation of apiscout.InventoryService.
type InventoryService struct {
	MergeAPIsFn      func(ctx context.Context, incoming []*apiscout.API) (int, error)
	SaveScanResultFn func(ctx context.Context, result *apiscout.SiteResult) error
	FindAPIsFn       func(ctx context.Context, filter apiscout.APIFilter) ([]*apiscout.API, error)
	BuildReportFn    func(ctx context.Context) (*apiscout.Report, error)
}

func (s *InventoryService) MergeAPIs(ctx context.Context, incoming []*apiscout.API) (int, error) {
	return s.MergeAPIsFn(ctx, incoming)
}

func (s *InventoryService) SaveScanResult(ctx context.Context, result *apiscout.SiteResult) error {
	return s.SaveScanResultFn(ctx, result)
}

func (s *InventoryService) FindAPIs(ctx context.Context, filter apiscout.APIFilter) ([]*apiscout.API, error) {
	return s.FindAPIsFn(ctx, filter)
}

func (s *InventoryService) BuildReport(ctx context.Context) (*apiscout.Report, error) {
	return s.BuildReportFn(ctx)
}
