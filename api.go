package apiscout

import (
	"sort"
	"time"
)

// APIType identifies a PSD2 API category.
type APIType string

// PSD2 API types.
const (
	APITypeAIS     APIType = "AIS"     // Account Information Service
	APITypePIS     APIType = "PIS"     // Payment Initiation Service
	APITypeCAF     APIType = "CAF"     // Confirmation of Funds
	APITypePSD2    APIType = "PSD2"    // generic PSD2 evidence, no specific type
	APITypeUnknown APIType = "Unknown" // no usable evidence
)

// API represents a discovered API offering on a bank developer portal.
// A record is immutable after creation; merging replaces whole records
// rather than mutating fields.
type API struct {
	Name             string    `json:"name"`
	Type             APIType   `json:"api_type"`
	URL              string    `json:"url"` // site origin
	SourcePage       string    `json:"source_page"`
	Description      string    `json:"description,omitempty"`
	Version          string    `json:"version,omitempty"`
	DocumentationURL string    `json:"documentation_url,omitempty"`
	SwaggerURL       string    `json:"swagger_url,omitempty"`
	SandboxURL       string    `json:"sandbox_url,omitempty"`
	ProductionURL    string    `json:"production_url,omitempty"`
	Authentication   string    `json:"authentication,omitempty"`
	DiscoveredAt     time.Time `json:"discovered_at"`
	Confidence       float64   `json:"confidence_score"`
	Keywords         []string  `json:"keywords_found"`
}

// Validate returns an error if the record is missing required fields.
func (a *API) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "api record site URL required")
	}
	if a.Type == "" {
		return Errorf(EINVALID, "api record type required")
	}
	return nil
}

// DedupKey identifies "the same API" across pages and across runs.
// The key must stay stable for the lifetime of a dataset.
type DedupKey struct {
	URL  string
	Type APIType
}

// Key returns the record's deduplication key.
func (a *API) Key() DedupKey {
	return DedupKey{URL: a.URL, Type: a.Type}
}

// MergeAPIs collapses duplicate records between existing and incoming.
// When two records share a key, the one with the higher confidence
// wins; at equal confidence the incoming record wins, since it reflects
// the newer scan. Order: surviving existing records first (in their
// original order), then new incoming keys in their order.
func MergeAPIs(existing, incoming []*API) []*API {
	index := make(map[DedupKey]int, len(existing))
	merged := make([]*API, 0, len(existing)+len(incoming))

	for _, a := range existing {
		key := a.Key()
		if i, ok := index[key]; ok {
			// Duplicate within existing: keep the higher confidence.
			if a.Confidence > merged[i].Confidence {
				merged[i] = a
			}
			continue
		}
		index[key] = len(merged)
		merged = append(merged, a)
	}

	for _, a := range incoming {
		key := a.Key()
		if i, ok := index[key]; ok {
			if a.Confidence >= merged[i].Confidence {
				merged[i] = a
			}
			continue
		}
		index[key] = len(merged)
		merged = append(merged, a)
	}

	return merged
}

// SortByConfidence sorts records by confidence descending, in place.
// Ties preserve the existing order.
func SortByConfidence(apis []*API) {
	sort.SliceStable(apis, func(i, j int) bool {
		return apis[i].Confidence > apis[j].Confidence
	})
}
