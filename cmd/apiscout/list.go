package main

import (
	"fmt"

	"github.com/psd2scout/apiscout"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := apiscout.APIFilter{
		MinConfidence: c.MinConfidence,
		Limit:         c.Limit,
	}
	if c.Type != "" {
		apiType := apiscout.APIType(c.Type)
		filter.Type = &apiType
	}
	if c.Site != "" {
		origin, err := apiscout.SiteOrigin(c.Site)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", apiscout.ErrorMessage(err))
			return err
		}
		filter.SiteURL = &origin
	}

	apis, err := deps.Inventory.FindAPIs(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apiscout.ErrorMessage(err))
		return err
	}

	if len(apis) == 0 {
		fmt.Fprintln(deps.Stdout, "No APIs found. Use 'apiscout scan' to discover some.")
		return nil
	}

	for _, api := range apis {
		fmt.Fprintf(deps.Stdout, "%-7s %.2f  %s  %s\n", api.Type, api.Confidence, api.URL, api.Name)
	}

	return nil
}
