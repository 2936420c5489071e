package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/psd2scout/apiscout"
)

// Ensure LoggingInventoryService implements apiscout.InventoryService.
var _ apiscout.InventoryService = (*LoggingInventoryService)(nil)

// LoggingInventoryService wraps an InventoryService with logging of
// merge and query activity.
type LoggingInventoryService struct {
	next   apiscout.InventoryService
	logger *slog.Logger
}

// NewLoggingInventoryService creates a new LoggingInventoryService.
func NewLoggingInventoryService(next apiscout.InventoryService, logger *slog.Logger) *LoggingInventoryService {
	return &LoggingInventoryService{next: next, logger: logger}
}

// MergeAPIs logs the merge outcome and delegates to the wrapped service.
func (s *LoggingInventoryService) MergeAPIs(ctx context.Context, incoming []*apiscout.API) (updated int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("inventory merge",
			"incoming", len(incoming),
			"updated", updated,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.MergeAPIs(ctx, incoming)
}

// SaveScanResult delegates to the wrapped service.
func (s *LoggingInventoryService) SaveScanResult(ctx context.Context, result *apiscout.SiteResult) error {
	err := s.next.SaveScanResult(ctx, result)
	s.logger.Info("scan result saved",
		"url", result.URL,
		"status", result.Status,
		"pages", result.PagesScanned,
		"apis", len(result.APIs),
		"err", err,
	)
	return err
}

// FindAPIs delegates to the wrapped service.
func (s *LoggingInventoryService) FindAPIs(ctx context.Context, filter apiscout.APIFilter) (apis []*apiscout.API, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("inventory query",
			"found", len(apis),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindAPIs(ctx, filter)
}

// BuildReport delegates to the wrapped service.
func (s *LoggingInventoryService) BuildReport(ctx context.Context) (*apiscout.Report, error) {
	return s.next.BuildReport(ctx)
}
