package report

import (
	"context"
	"fmt"

	"github.com/opsforge/snowassets/internal/cmd/base"
	"github.com/opsforge/snowassets/pkg/reports"
)

type UnderutilizedCommand struct {
	*base.Command

	flagDays  int
	flagLimit int
}

func (c *UnderutilizedCommand) Synopsis() string {
	return "Find in-use hardware with no recent activity"
}

func (c *UnderutilizedCommand) Help() string {
	return `Usage: snowassets report underutilized [options]

  Flags hardware marked in-use whose last update is older than the day
  threshold, plus the cost tied up in those assets.

` + c.flags().Help()
}

func (c *UnderutilizedCommand) flags() *base.FlagSet {
	f := c.NewFlagSet("report underutilized")
	f.IntVar(&c.flagDays, "days", 90, "Inactivity threshold in days")
	f.IntVar(&c.flagLimit, "limit", 50, "Maximum records to return")
	return f
}

func (c *UnderutilizedCommand) Run(args []string) int {
	f := c.flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client(f.ConfigPath)
	if err != nil {
		return c.Fail(err)
	}

	result, err := reports.UnderutilizedAssets(context.Background(), client, reports.UnderutilizedOptions{
		DaysThreshold: c.flagDays,
		Limit:         c.flagLimit,
	})
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(result)
}
