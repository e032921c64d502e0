package report

import (
	"context"
	"fmt"

	"github.com/opsforge/snowassets/internal/cmd/base"
	"github.com/opsforge/snowassets/pkg/reports"
)

type UtilizationCommand struct {
	*base.Command

	flagProduct string
	flagVendor  string
	flagLimit   int
}

func (c *UtilizationCommand) Synopsis() string {
	return "Show license seat utilization"
}

func (c *UtilizationCommand) Help() string {
	return `Usage: snowassets report utilization [options]

  Reports used versus entitled seats per license, highest utilization
  first.

` + c.flags().Help()
}

func (c *UtilizationCommand) flags() *base.FlagSet {
	f := c.NewFlagSet("report utilization")
	f.StringVar(&c.flagProduct, "product", "", "Filter by product (substring match)")
	f.StringVar(&c.flagVendor, "vendor", "", "Filter by vendor (substring match)")
	f.IntVar(&c.flagLimit, "limit", 50, "Maximum records to scan")
	return f
}

func (c *UtilizationCommand) Run(args []string) int {
	f := c.flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client(f.ConfigPath)
	if err != nil {
		return c.Fail(err)
	}

	result, err := reports.LicenseUtilization(context.Background(), client, reports.UtilizationOptions{
		Product: c.flagProduct,
		Vendor:  c.flagVendor,
		Limit:   c.flagLimit,
	})
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(result)
}
