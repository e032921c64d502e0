package report

import (
	"context"
	"fmt"

	"github.com/opsforge/snowassets/internal/cmd/base"
	"github.com/opsforge/snowassets/pkg/reports"
)

type ComplianceCommand struct {
	*base.Command

	flagProduct string
	flagVendor  string
	flagLimit   int
}

func (c *ComplianceCommand) Synopsis() string {
	return "Check software license compliance"
}

func (c *ComplianceCommand) Help() string {
	return `Usage: snowassets report compliance [options]

  Compares allocated seats against licensed entitlements and flags
  over-allocated and under-utilised licenses.

` + c.flags().Help()
}

func (c *ComplianceCommand) flags() *base.FlagSet {
	f := c.NewFlagSet("report compliance")
	f.StringVar(&c.flagProduct, "product", "", "Filter by product (substring match)")
	f.StringVar(&c.flagVendor, "vendor", "", "Filter by vendor (substring match)")
	f.IntVar(&c.flagLimit, "limit", 100, "Maximum records to scan")
	return f
}

func (c *ComplianceCommand) Run(args []string) int {
	f := c.flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client(f.ConfigPath)
	if err != nil {
		return c.Fail(err)
	}

	result, err := reports.LicenseCompliance(context.Background(), client, reports.ComplianceOptions{
		Product: c.flagProduct,
		Vendor:  c.flagVendor,
		Limit:   c.flagLimit,
	})
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(result)
}
