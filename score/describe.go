package score

import (
	"fmt"
	"strings"

	"github.com/psd2scout/apiscout"
)

// Description length window for paragraph candidates.
const (
	minParagraphLen = 50
	maxParagraphLen = 500
)

// maxSentenceScan bounds how many leading sentences are examined.
const maxSentenceScan = 20

// maxSentenceLen truncates a sentence-derived description.
const maxSentenceLen = 300

// descriptionKeywords is the small relevance set used when scanning
// paragraphs and sentences for a usable description.
var descriptionKeywords = []string{"api", "psd2", "banking", "payment"}

// describeStrategy produces a description candidate, or "" to fall
// through to the next strategy.
type describeStrategy func(content *apiscout.PageContent) string

// Describe extracts a short description for an API record from page
// content. Strategies are tried in order, first non-empty result wins:
// meta description, keyword paragraph within the length window,
// keyword sentence among the leading sentences, page title, and
// finally a templated string built from the type and provider.
func Describe(content *apiscout.PageContent, apiType apiscout.APIType, provider string) string {
	strategies := []describeStrategy{
		fromMeta,
		fromParagraph,
		fromSentence,
		fromTitle,
	}
	for _, strategy := range strategies {
		if s := strategy(content); s != "" {
			return s
		}
	}
	return fmt.Sprintf("%s API from %s - PSD2 compliant banking API", apiType, provider)
}

func fromMeta(content *apiscout.PageContent) string {
	return strings.TrimSpace(content.MetaDescription)
}

func fromParagraph(content *apiscout.PageContent) string {
	for _, p := range content.Paragraphs {
		p = strings.Join(strings.Fields(p), " ")
		if len(p) < minParagraphLen || len(p) > maxParagraphLen {
			continue
		}
		if containsAny(strings.ToLower(p), descriptionKeywords) {
			return p
		}
	}
	return ""
}

func fromSentence(content *apiscout.PageContent) string {
	sentences := strings.FieldsFunc(content.Text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	if len(sentences) > maxSentenceScan {
		sentences = sentences[:maxSentenceScan]
	}
	for _, sentence := range sentences {
		if !containsAny(strings.ToLower(sentence), descriptionKeywords) {
			continue
		}
		clean := strings.Join(strings.Fields(sentence), " ")
		if len(clean) > maxSentenceLen {
			clean = clean[:maxSentenceLen]
		}
		if len(clean) > 20 {
			return clean + "..."
		}
	}
	return ""
}

func fromTitle(content *apiscout.PageContent) string {
	return strings.TrimSpace(content.Title)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
