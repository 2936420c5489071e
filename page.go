package apiscout

import "context"

// PageContent holds the content extracted from a fetched page.
type PageContent struct {
	// Title is the page title from the <title> element.
	Title string

	// MetaDescription is the content of the meta description tag, if any.
	MetaDescription string

	// Text is the visible text of the whole page, whitespace-normalized
	// and lowercase-scannable. Navigation and footer text are included
	// on purpose: developer portals often advertise their API offering
	// there.
	Text string

	// Paragraphs are the individual paragraph texts in document order.
	Paragraphs []string
}

// Fetcher retrieves raw markup from URLs.
// Implementations may use plain HTTP requests or browser automation to
// handle JavaScript-rendered portals.
type Fetcher interface {
	// Fetch retrieves the markup for the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// Extractor extracts title, description, and visible text from raw markup.
type Extractor interface {
	Extract(html string) (*PageContent, error)
}
