// Package score implements relevance scoring and API-type
// classification for crawled portal pages. The intelligence layer is a
// plain substring heuristic over a fixed keyword taxonomy; the
// thresholds below are validated against the default taxonomy and must
// not be silently retuned.
package score

import (
	"regexp"
	"sort"
	"strings"

	"github.com/psd2scout/apiscout"
)

// Threshold is the published qualifying relevance score: a page is
// API-related iff its score is strictly greater than Threshold.
const Threshold = 0.2

// Per-category score weights. Each category contributes its weight
// once when it has at least one keyword match; the total is clamped
// to [0,1].
var categoryWeights = map[string]float64{
	apiscout.CategoryGeneral:   0.30,
	apiscout.CategoryAIS:       0.25,
	apiscout.CategoryPIS:       0.25,
	apiscout.CategoryCAF:       0.20,
	apiscout.CategoryTechnical: 0.20,
}

// urlBonus is added when the page URL itself looks API-related.
const urlBonus = 0.2

// apiURLPattern matches path segments that typically indicate API
// documentation.
var apiURLPattern = regexp.MustCompile(`(?i)/(api|developer|openbanking|psd2|portal|documentation|docs|swagger|sandbox|tpp|xs2a|oauth)`)

// IsAPIURL reports whether a URL looks like it points at API
// documentation, based on its path patterns.
func IsAPIURL(url string) bool {
	return apiURLPattern.MatchString(url)
}

// Compile-time interface verification.
var _ apiscout.Analyzer = (*Analyzer)(nil)

// Analyzer scores pages against a keyword taxonomy.
// The zero value is not usable; use NewAnalyzer.
type Analyzer struct {
	keywords apiscout.Keywords
	order    []string
}

// NewAnalyzer creates an Analyzer for the given taxonomy.
// A nil taxonomy uses the built-in defaults. Categories are scanned in
// a fixed order (the known categories first, extras sorted by name) so
// the keyword tag list is deterministic.
func NewAnalyzer(keywords apiscout.Keywords) *Analyzer {
	if keywords == nil {
		keywords = apiscout.DefaultKeywords()
	}

	known := []string{
		apiscout.CategoryGeneral,
		apiscout.CategoryAIS,
		apiscout.CategoryPIS,
		apiscout.CategoryCAF,
		apiscout.CategoryTechnical,
	}
	order := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))
	for _, category := range known {
		if _, ok := keywords[category]; ok {
			order = append(order, category)
			seen[category] = true
		}
	}
	var extras []string
	for category := range keywords {
		if !seen[category] {
			extras = append(extras, category)
		}
	}
	sort.Strings(extras)
	order = append(order, extras...)

	return &Analyzer{keywords: keywords, order: order}
}

// Analyze scans the page text for taxonomy keywords and computes the
// relevance score and API-type classification.
func (a *Analyzer) Analyze(text, url, title string) *apiscout.Analysis {
	lower := strings.ToLower(text)

	analysis := &apiscout.Analysis{
		URL:     url,
		Title:   title,
		Matches: make(map[string]int),
	}

	for _, category := range a.order {
		for _, keyword := range a.keywords[category] {
			n := strings.Count(lower, strings.ToLower(keyword))
			if n == 0 {
				continue
			}
			analysis.Matches[category] += n
			analysis.Keywords = append(analysis.Keywords, category+":"+keyword)
		}
	}

	analysis.Relevance = a.relevance(analysis.Matches, url)
	analysis.APIRelated = analysis.Relevance > Threshold
	analysis.Types = classify(analysis.Matches)

	return analysis
}

// relevance computes the additive-category score, clamped to [0,1].
func (a *Analyzer) relevance(matches map[string]int, url string) float64 {
	var s float64
	for category, weight := range categoryWeights {
		if matches[category] > 0 {
			s += weight
		}
	}
	if IsAPIURL(url) {
		s += urlBonus
	}
	if s > 1 {
		s = 1
	}
	return s
}

// classify maps keyword evidence to API types. A page can evidence
// several specific types at once; pages with only general PSD2
// evidence classify as generic PSD2, and pages with no evidence at all
// as Unknown.
func classify(matches map[string]int) []apiscout.APIType {
	var types []apiscout.APIType
	if matches[apiscout.CategoryAIS] > 0 {
		types = append(types, apiscout.APITypeAIS)
	}
	if matches[apiscout.CategoryPIS] > 0 {
		types = append(types, apiscout.APITypePIS)
	}
	if matches[apiscout.CategoryCAF] > 0 {
		types = append(types, apiscout.APITypeCAF)
	}
	if len(types) == 0 && matches[apiscout.CategoryGeneral] > 0 {
		types = append(types, apiscout.APITypePSD2)
	}
	if len(types) == 0 {
		types = append(types, apiscout.APITypeUnknown)
	}
	return types
}
