package licenses

import (
	"context"
	"fmt"

	"github.com/opsforge/snowassets/internal/cmd/base"
	"github.com/opsforge/snowassets/pkg/reports"
)

type Command struct {
	*base.Command

	flagVendor       string
	flagProduct      string
	flagExpiringSoon int
	flagLimit        int
}

func (c *Command) Synopsis() string {
	return "Search and filter software licenses"
}

func (c *Command) Help() string {
	return `Usage: snowassets licenses [options]

  Queries the alm_license table and prints the normalized records as JSON.

` + c.flags().Help()
}

func (c *Command) flags() *base.FlagSet {
	f := c.NewFlagSet("licenses")
	f.StringVar(&c.flagVendor, "vendor", "", "Filter by vendor (substring match)")
	f.StringVar(&c.flagProduct, "product", "", "Filter by product (substring match)")
	f.IntVar(&c.flagExpiringSoon, "expiring-soon", 0, "Only licenses expiring within this many days")
	f.IntVar(&c.flagLimit, "limit", 50, "Maximum records to return")
	return f
}

func (c *Command) Run(args []string) int {
	f := c.flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client(f.ConfigPath)
	if err != nil {
		return c.Fail(err)
	}

	result, err := reports.QueryLicenses(context.Background(), client, reports.LicenseOptions{
		Vendor:       c.flagVendor,
		Product:      c.flagProduct,
		ExpiringSoon: c.flagExpiringSoon,
		Limit:        c.flagLimit,
	})
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(result)
}
