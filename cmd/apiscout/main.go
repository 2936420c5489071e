// Command apiscout scans bank developer portals for PSD2 API offerings
// and maintains a persistent inventory of what it finds.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/psd2scout/apiscout"
	"github.com/psd2scout/apiscout/crawl"
	"github.com/psd2scout/apiscout/goquery"
	scouthttp "github.com/psd2scout/apiscout/http"
	"github.com/psd2scout/apiscout/rod"
	"github.com/psd2scout/apiscout/score"
	scoutslog "github.com/psd2scout/apiscout/slog"
	"github.com/psd2scout/apiscout/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database backing the inventory.
	DB *sqlite.DB

	// Inventory service, exposed for end-to-end testing.
	Inventory apiscout.InventoryService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	capture := scoutslog.NewCaptureHandler(
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	logger := slog.New(capture)

	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Logger:  logger,
		Capture: capture,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("apiscout"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'apiscout --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set APISCOUT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.Inventory = scoutslog.NewLoggingInventoryService(sqlite.NewInventoryService(m.DB), logger)
	deps.DB = m.DB
	deps.Inventory = m.Inventory

	if cmd == "scan" {
		config, err := cli.Scan.resolveConfig()
		if err != nil {
			return err
		}
		deps.Config = config

		fetcher := apiscout.Fetcher(scouthttp.NewFetcher(
			scouthttp.WithTimeout(config.Options.Timeout)))
		if cli.Scan.Browser {
			browser, err := rod.NewFetcher(rod.WithRenderWait(config.Options.WaitTime))
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = scouthttp.NewChainFetcher(fetcher, browser)
		}
		fetcher = scoutslog.NewLoggingFetcher(fetcher, logger)
		defer fetcher.Close()

		links := goquery.NewLinkExtractor()
		deps.Crawler = &crawl.Crawler{
			Fetcher:   fetcher,
			Extractor: goquery.NewExtractor(),
			Analyzer:  score.NewAnalyzer(config.Keywords),
			Links:     links,
			Docs:      links,
			Sitemaps:  scouthttp.NewSitemapService(nil),
			Limiter:   crawl.NewDomainLimiter(config.Options.WaitTime),
			Logger:    logger,
			MaxDepth:  config.Options.MaxDepth,
			MaxPages:  config.Options.MaxPagesPerSite,
			Timeout:   config.Options.Timeout,
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("APISCOUT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "apiscout.db"
	}
	dir := filepath.Join(home, ".apiscout")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "apiscout.db")
}
