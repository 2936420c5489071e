package main

import (
	"fmt"

	"github.com/psd2scout/apiscout"
	"github.com/psd2scout/apiscout/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	apis, err := deps.Inventory.FindAPIs(deps.Ctx, apiscout.APIFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apiscout.ErrorMessage(err))
		return err
	}

	path := c.Output
	if path == "" {
		path = "apis." + c.Format
	}

	switch c.Format {
	case "csv":
		err = fs.WriteCSV(path, apis)
	default:
		err = fs.WriteJSON(path, apis)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error writing %s: %v\n", path, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d APIs to %s\n", len(apis), path)
	return nil
}
