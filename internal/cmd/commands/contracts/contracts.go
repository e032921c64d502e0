package contracts

import (
	"context"
	"fmt"

	"github.com/opsforge/snowassets/internal/cmd/base"
	"github.com/opsforge/snowassets/pkg/reports"
)

type Command struct {
	*base.Command

	flagAsset  string
	flagVendor string
	flagState  string
	flagLimit  int
}

func (c *Command) Synopsis() string {
	return "List contracts linked to an asset or vendor"
}

func (c *Command) Help() string {
	return `Usage: snowassets contracts [options]

  Queries the ast_contract table and prints the normalized records as JSON.

` + c.flags().Help()
}

func (c *Command) flags() *base.FlagSet {
	f := c.NewFlagSet("contracts")
	f.StringVar(&c.flagAsset, "asset", "", "Filter by linked asset sys_id")
	f.StringVar(&c.flagVendor, "vendor", "", "Filter by vendor (substring match)")
	f.StringVar(&c.flagState, "state", "", "Filter by contract state")
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

	result, err := reports.QueryContracts(context.Background(), client, reports.ContractOptions{
		AssetSysID: c.flagAsset,
		Vendor:     c.flagVendor,
		State:      c.flagState,
		Limit:      c.flagLimit,
	})
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(result)
}
