// Package goquery provides HTML parsing implementations of the
// apiscout content and link extraction interfaces.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/psd2scout/apiscout"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var _ apiscout.Extractor = (*Extractor)(nil)

// Extractor extracts title, meta description, and visible text from
// raw markup using goquery.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the markup and returns the page content.
// Script and style text is excluded; everything else, including
// navigation and footer text, is kept for keyword scanning.
func (e *Extractor) Extract(rawHTML string) (*apiscout.PageContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, apiscout.Errorf(apiscout.EINVALID, "failed to parse HTML: %v", err)
	}

	content := &apiscout.PageContent{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	if meta, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		content.MetaDescription = strings.TrimSpace(meta)
	}

	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		p := strings.Join(strings.Fields(sel.Text()), " ")
		if p != "" {
			content.Paragraphs = append(content.Paragraphs, p)
		}
	})

	var b strings.Builder
	doc.Find("body").Each(func(_ int, sel *goquery.Selection) {
		for _, node := range sel.Nodes {
			collectText(node, &b)
		}
	})
	if b.Len() == 0 {
		// No body element; fall back to the whole document.
		for _, node := range doc.Nodes {
			collectText(node, &b)
		}
	}
	content.Text = strings.Join(strings.Fields(b.String()), " ")

	return content, nil
}

// collectText walks the node tree appending text content, separated by
// spaces, skipping script and style subtrees.
func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
