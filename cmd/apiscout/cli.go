package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/psd2scout/apiscout"
	"github.com/psd2scout/apiscout/crawl"
	scoutslog "github.com/psd2scout/apiscout/slog"
	"github.com/psd2scout/apiscout/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Inventory apiscout.InventoryService
	Crawler   *crawl.Crawler
	Config    *apiscout.Config
	Logger    *slog.Logger
	Capture   *scoutslog.CaptureHandler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scan   ScanCmd   `cmd:"" help:"Scan bank developer portals for PSD2 APIs"`
	List   ListCmd   `cmd:"" help:"List discovered APIs from the inventory"`
	Export ExportCmd `cmd:"" help:"Export the stored inventory to a file"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	URLs        []string `arg:"" optional:"" help:"Seed portal URLs (https:// is assumed when no scheme is given)"`
	Config      string   `short:"c" type:"path" help:"YAML configuration file"`
	Depth       int      `default:"-1" help:"Maximum link depth from the seed (overrides config)"`
	Pages       int      `default:"-1" help:"Maximum pages per site (overrides config)"`
	Timeout     float64  `default:"-1" help:"Page fetch timeout in seconds (overrides config)"`
	Wait        float64  `default:"-1" help:"Minimum seconds between requests to one domain (overrides config)"`
	Concurrency int      `default:"2" help:"Concurrent site scans"`
	Browser     bool     `help:"Fall back to headless Chrome for JavaScript-rendered portals"`
	Out         string   `default:"." type:"path" help:"Output directory for export files"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Type          string  `help:"Filter by API type (AIS, PIS, CAF, PSD2, Unknown)"`
	Site          string  `help:"Filter by site origin, e.g. https://bank.example"`
	MinConfidence float64 `help:"Minimum confidence score"`
	Limit         int     `help:"Maximum number of rows"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Output string `arg:"" optional:"" help:"Output file path (defaults to apis.json or apis.csv)"`
	Format string `enum:"json,csv" default:"json" help:"Export format"`
}
