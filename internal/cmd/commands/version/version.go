package version

import (
	"github.com/opsforge/snowassets/internal/cmd/base"
	"github.com/opsforge/snowassets/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the connector version"
}

func (c *Command) Help() string {
	return `Usage: snowassets version`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.Version)
	return 0
}
