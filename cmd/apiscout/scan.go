package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/psd2scout/apiscout"
	"github.com/psd2scout/apiscout/crawl"
	"github.com/psd2scout/apiscout/fs"
	"github.com/psd2scout/apiscout/yaml"
)

// resolveConfig assembles the scan configuration from the config file,
// positional URLs, and flag overrides, in increasing precedence.
func (c *ScanCmd) resolveConfig() (*apiscout.Config, error) {
	config := apiscout.DefaultConfig()
	if c.Config != "" {
		loaded, err := yaml.Load(c.Config)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	for _, raw := range c.URLs {
		normalized, err := apiscout.NormalizeURL(raw)
		if err != nil {
			return nil, err
		}
		config.URLs = append(config.URLs, normalized)
	}

	if c.Depth >= 0 {
		config.Options.MaxDepth = c.Depth
	}
	if c.Pages > 0 {
		config.Options.MaxPagesPerSite = c.Pages
	}
	if c.Timeout >= 0 {
		config.Options.Timeout = time.Duration(c.Timeout * float64(time.Second))
	}
	if c.Wait >= 0 {
		config.Options.WaitTime = time.Duration(c.Wait * float64(time.Second))
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	config := deps.Config
	deps.Logger.Info("scan started", "sites", len(config.URLs))

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressSiteStarted:
			fmt.Fprintf(deps.Stdout, "Scanning %s\n", event.URL)
		case crawl.ProgressSiteCompleted:
			fmt.Fprintf(deps.Stdout, "  done %s\n", event.URL)
		}
	}

	report := deps.Crawler.ScanAll(deps.Ctx, config.URLs, c.Concurrency, progress)

	for _, result := range report.ScanResults {
		if result.Status == apiscout.ScanStatusError {
			fmt.Fprintf(deps.Stderr, "scan failed for %s: %s\n", result.URL, result.Error)
		}
		if err := deps.Inventory.SaveScanResult(deps.Ctx, result); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", apiscout.ErrorMessage(err))
			return err
		}
	}

	updated, err := deps.Inventory.MergeAPIs(deps.Ctx, report.APIs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apiscout.ErrorMessage(err))
		return err
	}

	inventory, err := deps.Inventory.BuildReport(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apiscout.ErrorMessage(err))
		return err
	}

	deps.Logger.Info("scan finished",
		"sites", len(config.URLs),
		"apis", report.TotalAPIs,
		"inventory", inventory.TotalAPIs,
	)

	outputs := []struct {
		name  string
		write func(string) error
	}{
		{"apis.json", func(p string) error { return fs.WriteJSON(p, report.APIs) }},
		{"apis.csv", func(p string) error { return fs.WriteCSV(p, report.APIs) }},
		{"inventory.json", func(p string) error { return fs.WriteReport(p, inventory) }},
		{"scan_log.json", func(p string) error {
			return fs.WriteScanLog(p, deps.Capture.ScanLog(len(config.URLs), report.TotalAPIs))
		}},
	}
	for _, out := range outputs {
		path := filepath.Join(c.Out, out.name)
		if err := out.write(path); err != nil {
			fmt.Fprintf(deps.Stderr, "error writing %s: %v\n", path, err)
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Found %d APIs across %d sites (%d inventory records updated)\n",
		report.TotalAPIs, len(config.URLs), updated)
	return nil
}
