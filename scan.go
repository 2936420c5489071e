package apiscout

import (
	"context"
	"time"
)

// Scan statuses for SiteResult.
const (
	ScanStatusSuccess = "success"
	ScanStatusError   = "error"
)

// PageMatch records a page that qualified as API-related during a scan.
type PageMatch struct {
	URL         string   `json:"url"`
	Relevance   float64  `json:"relevanceScore"`
	Keywords    []string `json:"keywords"`
	ContentHash string   `json:"contentHash,omitempty"`
}

// SiteResult is the outcome of scanning one seed URL.
type SiteResult struct {
	URL          string      `json:"url"`
	Status       string      `json:"status"`
	Error        string      `json:"error,omitempty"`
	PagesScanned int         `json:"pagesScanned"`
	APIPages     []PageMatch `json:"apiRelatedPages"`
	APIs         []*API      `json:"apis"`
}

// Report aggregates the results of a multi-site run. It is also the
// shape of the persisted inventory file.
type Report struct {
	LastUpdated time.Time     `json:"lastUpdated"`
	TotalAPIs   int           `json:"totalApis"`
	ScanResults []*SiteResult `json:"scanResults"`
	APIs        []*API        `json:"apis"`
}

// LogEntry is a single timestamped scan-log message.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
}

// ScanLog is the shape of the scan log file.
type ScanLog struct {
	ScanDate       time.Time  `json:"scanDate"`
	URLsScanned    int        `json:"urlsScanned"`
	TotalAPIsFound int        `json:"totalApisFound"`
	Logs           []LogEntry `json:"logs"`
}

// APIFilter represents a filter for FindAPIs.
type APIFilter struct {
	Type          *APIType `json:"type"`
	SiteURL       *string  `json:"siteUrl"`
	MinConfidence float64  `json:"minConfidence"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// InventoryService persists the API inventory across runs.
type InventoryService interface {
	// MergeAPIs merges incoming records into the stored inventory
	// using the (url, api_type) key: the higher-confidence record
	// wins, the incoming record wins ties. Returns the number of
	// records inserted or replaced.
	MergeAPIs(ctx context.Context, incoming []*API) (int, error)

	// SaveScanResult records the outcome of one site scan.
	SaveScanResult(ctx context.Context, result *SiteResult) error

	// FindAPIs retrieves stored records matching the filter, sorted
	// by confidence descending.
	FindAPIs(ctx context.Context, filter APIFilter) ([]*API, error)

	// BuildReport assembles the full inventory document from storage.
	BuildReport(ctx context.Context) (*Report, error)
}
