package report

import (
	"context"
	"fmt"

	"github.com/opsforge/snowassets/internal/cmd/base"
	"github.com/opsforge/snowassets/pkg/reports"
)

type HealthCommand struct {
	*base.Command

	flagLocation      string
	flagModelCategory string
}

func (c *HealthCommand) Synopsis() string {
	return "Show aggregate asset health metrics"
}

func (c *HealthCommand) Help() string {
	return `Usage: snowassets report health [options]

  Prints the asset health dashboard: counts by status, total asset value,
  and contracts expiring within 30 days.

` + c.flags().Help()
}

func (c *HealthCommand) flags() *base.FlagSet {
	f := c.NewFlagSet("report health")
	f.StringVar(&c.flagLocation, "location", "", "Scope to a location (substring match)")
	f.StringVar(&c.flagModelCategory, "model-category", "", "Scope to a model category")
	return f
}

func (c *HealthCommand) Run(args []string) int {
	f := c.flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client(f.ConfigPath)
	if err != nil {
		return c.Fail(err)
	}

	result, err := reports.HealthMetrics(context.Background(), client, reports.HealthOptions{
		Location:      c.flagLocation,
		ModelCategory: c.flagModelCategory,
	})
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(result)
}
