// Package asset holds the single-asset commands: full details and lifecycle
// stage.
package asset

import (
	"context"
	"fmt"

	"github.com/opsforge/snowassets/internal/cmd/base"
	"github.com/opsforge/snowassets/pkg/reports"
)

type DetailsCommand struct {
	*base.Command

	flagSysID    string
	flagAssetTag string
}

func (c *DetailsCommand) Synopsis() string {
	return "Show full details for a single asset"
}

func (c *DetailsCommand) Help() string {
	return `Usage: snowassets asset [options]

  Fetches one alm_asset record by sys_id or asset tag and prints the
  normalized record as JSON.

` + c.flags().Help()
}

func (c *DetailsCommand) flags() *base.FlagSet {
	f := c.NewFlagSet("asset")
	f.StringVar(&c.flagSysID, "sys-id", "", "Asset sys_id")
	f.StringVar(&c.flagAssetTag, "asset-tag", "", "Asset tag (used when sys_id is not given)")
	return f
}

func (c *DetailsCommand) Run(args []string) int {
	f := c.flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client(f.ConfigPath)
	if err != nil {
		return c.Fail(err)
	}

	result, err := reports.AssetDetails(context.Background(), client, reports.DetailsOptions{
		SysID:    c.flagSysID,
		AssetTag: c.flagAssetTag,
	})
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(result)
}
