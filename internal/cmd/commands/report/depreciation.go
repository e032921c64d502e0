package report

import (
	"context"
	"fmt"

	"github.com/opsforge/snowassets/internal/cmd/base"
	"github.com/opsforge/snowassets/pkg/reports"
)

type DepreciationCommand struct {
	*base.Command

	flagModelCategory string
	flagUsefulLife    int
	flagLimit         int
}

func (c *DepreciationCommand) Synopsis() string {
	return "Calculate straight-line depreciation for hardware assets"
}

func (c *DepreciationCommand) Help() string {
	return `Usage: snowassets report depreciation [options]

  Computes per-asset straight-line depreciation from purchase date and
  cost, using category-specific useful-life defaults.

` + c.flags().Help()
}

func (c *DepreciationCommand) flags() *base.FlagSet {
	f := c.NewFlagSet("report depreciation")
	f.StringVar(&c.flagModelCategory, "model-category", "", "Filter by model category")
	f.IntVar(&c.flagUsefulLife, "useful-life", 0, "Override useful life in years for all assets")
	f.IntVar(&c.flagLimit, "limit", 100, "Maximum records to scan")
	return f
}

func (c *DepreciationCommand) Run(args []string) int {
	f := c.flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client(f.ConfigPath)
	if err != nil {
		return c.Fail(err)
	}

	result, err := reports.Depreciation(context.Background(), client, reports.DepreciationOptions{
		ModelCategory:   c.flagModelCategory,
		UsefulLifeYears: c.flagUsefulLife,
		Limit:           c.flagLimit,
	})
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(result)
}
