package report

import (
	"context"
	"fmt"

	"github.com/opsforge/snowassets/internal/cmd/base"
	"github.com/opsforge/snowassets/pkg/reports"
)

type CostsCommand struct {
	*base.Command

	flagDepartment    string
	flagModelCategory string
	flagLimit         int
}

func (c *CostsCommand) Synopsis() string {
	return "Calculate total cost of ownership for hardware assets"
}

func (c *CostsCommand) Help() string {
	return `Usage: snowassets report costs [options]

  Totals purchase cost plus estimated annual maintenance for the matching
  hardware assets.

` + c.flags().Help()
}

func (c *CostsCommand) flags() *base.FlagSet {
	f := c.NewFlagSet("report costs")
	f.StringVar(&c.flagDepartment, "department", "", "Filter by department")
	f.StringVar(&c.flagModelCategory, "model-category", "", "Filter by model category")
	f.IntVar(&c.flagLimit, "limit", 200, "Maximum records to scan")
	return f
}

func (c *CostsCommand) Run(args []string) int {
	f := c.flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client(f.ConfigPath)
	if err != nil {
		return c.Fail(err)
	}

	result, err := reports.AssetCosts(context.Background(), client, reports.CostOptions{
		Department:    c.flagDepartment,
		ModelCategory: c.flagModelCategory,
		Limit:         c.flagLimit,
	})
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(result)
}
