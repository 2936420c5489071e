package slog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/psd2scout/apiscout"
)

// Ensure CaptureHandler implements slog.Handler.
var _ slog.Handler = (*CaptureHandler)(nil)

// CaptureHandler is a slog.Handler that records every log line as an
// apiscout.LogEntry, so a scan run can persist its own activity log.
// It can optionally forward records to another handler.
type CaptureHandler struct {
	next  slog.Handler // optional passthrough
	attrs []slog.Attr

	state *captureState
}

type captureState struct {
	mu      sync.Mutex
	entries []apiscout.LogEntry
}

// NewCaptureHandler creates a CaptureHandler. When next is non-nil,
// records are forwarded to it after being captured.
func NewCaptureHandler(next slog.Handler) *CaptureHandler {
	return &CaptureHandler{next: next, state: &captureState{}}
}

// Enabled reports whether the level should be captured. Everything at
// Info and above is captured regardless of the passthrough handler.
func (h *CaptureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level >= slog.LevelInfo {
		return true
	}
	return h.next != nil && h.next.Enabled(ctx, level)
}

// Handle captures the record and forwards it to the next handler.
func (h *CaptureHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelInfo {
		var b strings.Builder
		b.WriteString(r.Message)
		for _, a := range h.attrs {
			fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		}
		r.Attrs(func(a slog.Attr) bool {
			fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
			return true
		})

		h.state.mu.Lock()
		h.state.entries = append(h.state.entries, apiscout.LogEntry{
			Timestamp: r.Time.UTC(),
			Message:   b.String(),
			Type:      entryType(r.Level),
		})
		h.state.mu.Unlock()
	}

	if h.next != nil && h.next.Enabled(ctx, r.Level) {
		return h.next.Handle(ctx, r)
	}
	return nil
}

// WithAttrs returns a handler that prefixes captured messages with the
// given attributes. Captured entries still accumulate in one place.
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	if h.next != nil {
		clone.next = h.next.WithAttrs(attrs)
	}
	return &clone
}

// WithGroup is not meaningful for the flat scan log; group names are
// dropped from captured entries but honored by the passthrough handler.
func (h *CaptureHandler) WithGroup(name string) slog.Handler {
	if h.next == nil {
		return h
	}
	clone := *h
	clone.next = h.next.WithGroup(name)
	return &clone
}

// Entries returns a copy of the captured log entries.
func (h *CaptureHandler) Entries() []apiscout.LogEntry {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	return append([]apiscout.LogEntry{}, h.state.entries...)
}

// ScanLog assembles the scan log document from the captured entries.
func (h *CaptureHandler) ScanLog(urlsScanned, totalAPIs int) *apiscout.ScanLog {
	return &apiscout.ScanLog{
		ScanDate:       time.Now().UTC(),
		URLsScanned:    urlsScanned,
		TotalAPIsFound: totalAPIs,
		Logs:           h.Entries(),
	}
}

func entryType(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warning"
	default:
		return "info"
	}
}
