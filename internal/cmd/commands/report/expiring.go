package report

import (
	"context"
	"fmt"

	"github.com/opsforge/snowassets/internal/cmd/base"
	"github.com/opsforge/snowassets/pkg/reports"
)

type ExpiringCommand struct {
	*base.Command

	flagDaysAhead      int
	flagVendor         string
	flagIncludeExpired bool
	flagLimit          int
}

func (c *ExpiringCommand) Synopsis() string {
	return "Find contracts expiring soon, bucketed by urgency"
}

func (c *ExpiringCommand) Help() string {
	return `Usage: snowassets report expiring [options]

  Lists contracts ending within the look-ahead window, soonest first,
  with an urgency bucket per contract and the total value at risk.

` + c.flags().Help()
}

func (c *ExpiringCommand) flags() *base.FlagSet {
	f := c.NewFlagSet("report expiring")
	f.IntVar(&c.flagDaysAhead, "days-ahead", 90, "Look-ahead window in days")
	f.StringVar(&c.flagVendor, "vendor", "", "Filter by vendor (substring match)")
	f.BoolVar(&c.flagIncludeExpired, "include-expired", false, "Also include contracts expired in the last 30 days")
	f.IntVar(&c.flagLimit, "limit", 50, "Maximum records to return")
	return f
}

func (c *ExpiringCommand) Run(args []string) int {
	f := c.flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client(f.ConfigPath)
	if err != nil {
		return c.Fail(err)
	}

	result, err := reports.ExpiringContracts(context.Background(), client, reports.ExpiringOptions{
		DaysAhead:      c.flagDaysAhead,
		Vendor:         c.flagVendor,
		IncludeExpired: c.flagIncludeExpired,
		Limit:          c.flagLimit,
	})
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(result)
}
