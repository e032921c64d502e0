package report

import (
	"context"
	"fmt"

	"github.com/opsforge/snowassets/internal/cmd/base"
	"github.com/opsforge/snowassets/pkg/reports"
)

type ReconcileCommand struct {
	*base.Command

	flagModelCategory string
	flagLimit         int
}

func (c *ReconcileCommand) Synopsis() string {
	return "Reconcile hardware assets against CMDB configuration items"
}

func (c *ReconcileCommand) Help() string {
	return `Usage: snowassets report reconcile [options]

  Joins alm_hardware records to cmdb_ci records through the ci reference
  and reports matched pairs and orphans on both sides.

` + c.flags().Help()
}

func (c *ReconcileCommand) flags() *base.FlagSet {
	f := c.NewFlagSet("report reconcile")
	f.StringVar(&c.flagModelCategory, "model-category", "", "Filter assets by model category")
	f.IntVar(&c.flagLimit, "limit", 200, "Maximum records to scan per table")
	return f
}

func (c *ReconcileCommand) Run(args []string) int {
	f := c.flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client(f.ConfigPath)
	if err != nil {
		return c.Fail(err)
	}

	result, err := reports.ReconcileAssets(context.Background(), client, reports.ReconcileOptions{
		ModelCategory: c.flagModelCategory,
		Limit:         c.flagLimit,
	})
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(result)
}
