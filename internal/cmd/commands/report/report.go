// Package report groups the derived-metric reporting subcommands.
package report

import (
	"github.com/mitchellh/cli"

	"github.com/opsforge/snowassets/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Run asset reporting operations"
}

func (c *Command) Help() string {
	return `Usage: snowassets report <subcommand> [options]

  This command groups the reporting operations: costs, compliance,
  utilization, depreciation, underutilized, reconcile, health, expiring.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
