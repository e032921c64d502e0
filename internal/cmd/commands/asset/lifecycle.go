package asset

import (
	"context"
	"fmt"

	"github.com/opsforge/snowassets/internal/cmd/base"
	"github.com/opsforge/snowassets/pkg/reports"
)

type LifecycleCommand struct {
	*base.Command

	flagSysID    string
	flagAssetTag string
}

func (c *LifecycleCommand) Synopsis() string {
	return "Show lifecycle stage and duration for an asset"
}

func (c *LifecycleCommand) Help() string {
	return `Usage: snowassets lifecycle [options]

  Resolves the lifecycle stage of an asset from its install status and
  reports how many days it has been in that stage.

` + c.flags().Help()
}

func (c *LifecycleCommand) flags() *base.FlagSet {
	f := c.NewFlagSet("lifecycle")
	f.StringVar(&c.flagSysID, "sys-id", "", "Asset sys_id")
	f.StringVar(&c.flagAssetTag, "asset-tag", "", "Asset tag (used when sys_id is not given)")
	return f
}

func (c *LifecycleCommand) Run(args []string) int {
	f := c.flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client(f.ConfigPath)
	if err != nil {
		return c.Fail(err)
	}

	result, err := reports.AssetLifecycle(context.Background(), client, reports.LifecycleOptions{
		SysID:    c.flagSysID,
		AssetTag: c.flagAssetTag,
	})
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(result)
}
