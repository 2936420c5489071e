package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/psd2scout/apiscout"
)

// Compile-time interface verification.
var _ apiscout.InventoryService = (*InventoryService)(nil)

// InventoryService implements apiscout.InventoryService using SQLite.
type InventoryService struct {
	db *DB
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(db *DB) *InventoryService {
	return &InventoryService{db: db}
}

// MergeAPIs merges incoming records into the stored inventory. The
// conflict rule matches the in-memory merge: per (url, api_type) the
// higher-confidence record wins and the incoming record wins ties.
// Returns the number of records inserted or replaced.
func (s *InventoryService) MergeAPIs(ctx context.Context, incoming []*apiscout.API) (int, error) {
	updated := 0
	for _, api := range incoming {
		if err := api.Validate(); err != nil {
			return updated, err
		}

		keywords, err := json.Marshal(api.Keywords)
		if err != nil {
			return updated, fmt.Errorf("failed to encode keywords: %w", err)
		}

		res, err := s.db.ExecContext(ctx, `
			INSERT INTO apis (id, name, api_type, url, source_page, description, version,
				documentation_url, swagger_url, sandbox_url, production_url, authentication,
				confidence_score, keywords, discovered_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(url, api_type) DO UPDATE SET
				name = excluded.name,
				source_page = excluded.source_page,
				description = excluded.description,
				version = excluded.version,
				documentation_url = excluded.documentation_url,
				swagger_url = excluded.swagger_url,
				sandbox_url = excluded.sandbox_url,
				production_url = excluded.production_url,
				authentication = excluded.authentication,
				confidence_score = excluded.confidence_score,
				keywords = excluded.keywords,
				discovered_at = excluded.discovered_at
			WHERE excluded.confidence_score >= apis.confidence_score
		`, uuid.New().String(), api.Name, string(api.Type), api.URL, api.SourcePage,
			api.Description, api.Version, api.DocumentationURL, api.SwaggerURL,
			api.SandboxURL, api.ProductionURL, api.Authentication,
			api.Confidence, string(keywords), api.DiscoveredAt.UTC().Format(time.RFC3339))
		if err != nil {
			return updated, err
		}

		n, err := res.RowsAffected()
		if err != nil {
			return updated, err
		}
		updated += int(n)
	}
	return updated, nil
}

// SaveScanResult records the outcome of one site scan. Every scan is
// kept; BuildReport reads the most recent scan per site.
func (s *InventoryService) SaveScanResult(ctx context.Context, result *apiscout.SiteResult) error {
	pages, err := json.Marshal(result.APIPages)
	if err != nil {
		return fmt.Errorf("failed to encode api pages: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO scan_results (id, url, status, error, pages_scanned, api_pages, scanned_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), result.URL, result.Status, result.Error,
		result.PagesScanned, string(pages), time.Now().UTC().Format(time.RFC3339))
	return err
}

// FindAPIs retrieves stored records matching the filter, sorted by
// confidence descending.
func (s *InventoryService) FindAPIs(ctx context.Context, filter apiscout.APIFilter) ([]*apiscout.API, error) {
	var query strings.Builder
	var args []any

	query.WriteString(selectAPIColumns + " FROM apis WHERE 1=1")

	if filter.Type != nil {
		query.WriteString(" AND api_type = ?")
		args = append(args, string(*filter.Type))
	}
	if filter.SiteURL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.SiteURL)
	}
	if filter.MinConfidence > 0 {
		query.WriteString(" AND confidence_score >= ?")
		args = append(args, filter.MinConfidence)
	}

	query.WriteString(" ORDER BY confidence_score DESC, url ASC, api_type ASC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apis []*apiscout.API
	for rows.Next() {
		api, err := scanAPI(rows)
		if err != nil {
			return nil, err
		}
		apis = append(apis, api)
	}
	return apis, rows.Err()
}

// BuildReport assembles the inventory document: all stored records
// sorted by confidence plus the most recent scan result per site.
func (s *InventoryService) BuildReport(ctx context.Context) (*apiscout.Report, error) {
	apis, err := s.FindAPIs(ctx, apiscout.APIFilter{})
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT url, status, error, pages_scanned, api_pages, scanned_at
		FROM scan_results sr
		WHERE sr.rowid = (
			SELECT rowid FROM scan_results
			WHERE url = sr.url
			ORDER BY scanned_at DESC, rowid DESC
			LIMIT 1
		)
		ORDER BY scanned_at ASC, rowid ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := &apiscout.Report{
		LastUpdated: time.Now().UTC(),
		TotalAPIs:   len(apis),
		ScanResults: []*apiscout.SiteResult{},
		APIs:        apis,
	}

	for rows.Next() {
		var result apiscout.SiteResult
		var pages, scannedAt string
		if err := rows.Scan(&result.URL, &result.Status, &result.Error,
			&result.PagesScanned, &pages, &scannedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(pages), &result.APIPages); err != nil {
			return nil, fmt.Errorf("failed to decode api pages: %w", err)
		}

		// Attach the site's stored records by origin.
		origin, err := apiscout.SiteOrigin(result.URL)
		if err == nil {
			for _, api := range apis {
				if api.URL == origin {
					result.APIs = append(result.APIs, api)
				}
			}
		}
		if result.APIs == nil {
			result.APIs = []*apiscout.API{}
		}

		report.ScanResults = append(report.ScanResults, &result)
	}
	return report, rows.Err()
}

const selectAPIColumns = `SELECT name, api_type, url, source_page, description, version,
	documentation_url, swagger_url, sandbox_url, production_url, authentication,
	confidence_score, keywords, discovered_at`

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAPI(row rowScanner) (*apiscout.API, error) {
	var api apiscout.API
	var apiType, keywords, discoveredAt string

	if err := row.Scan(&api.Name, &apiType, &api.URL, &api.SourcePage, &api.Description,
		&api.Version, &api.DocumentationURL, &api.SwaggerURL, &api.SandboxURL,
		&api.ProductionURL, &api.Authentication, &api.Confidence, &keywords, &discoveredAt); err != nil {
		return nil, err
	}

	api.Type = apiscout.APIType(apiType)
	if err := json.Unmarshal([]byte(keywords), &api.Keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keywords: %w", err)
	}

	t, err := time.Parse(time.RFC3339, discoveredAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse discovered_at: %w", err)
	}
	api.DiscoveredAt = t

	return &api, nil
}
