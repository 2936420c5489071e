// Package fs writes scan output files: JSON and CSV exports of
// discovered APIs, the inventory document, and the scan log.
package fs

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/psd2scout/apiscout"
)

// csvHeader is the column layout of CSV exports. Exports keep this
// layout stable so downstream spreadsheets don't break.
var csvHeader = []string{
	"name",
	"api_type",
	"url",
	"source_page",
	"description",
	"documentation_url",
	"swagger_url",
	"confidence_score",
	"discovered_at",
	"keywords_found",
}

// WriteJSON writes discovered APIs as a pretty-printed JSON array.
func WriteJSON(path string, apis []*apiscout.API) error {
	if apis == nil {
		apis = []*apiscout.API{}
	}
	data, err := json.MarshalIndent(apis, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding api export: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// WriteCSV writes discovered APIs as CSV. List fields are joined with
// "; " so each record stays on one row.
func WriteCSV(path string, apis []*apiscout.API) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, api := range apis {
		record := []string{
			api.Name,
			string(api.Type),
			api.URL,
			api.SourcePage,
			api.Description,
			api.DocumentationURL,
			api.SwaggerURL,
			strconv.FormatFloat(api.Confidence, 'f', -1, 64),
			api.DiscoveredAt.UTC().Format(time.RFC3339),
			strings.Join(api.Keywords, "; "),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteReport writes the inventory document as indented JSON.
func WriteReport(path string, report *apiscout.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// WriteScanLog writes the scan log document as indented JSON.
func WriteScanLog(path string, log *apiscout.ScanLog) error {
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding scan log: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
