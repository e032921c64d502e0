package hardware

import (
	"context"
	"fmt"

	"github.com/opsforge/snowassets/internal/cmd/base"
	"github.com/opsforge/snowassets/pkg/reports"
)

type Command struct {
	*base.Command

	flagStatus        string
	flagDepartment    string
	flagModel         string
	flagModelCategory string
	flagAssignedTo    string
	flagLocation      string
	flagLimit         int
}

func (c *Command) Synopsis() string {
	return "Search and filter hardware assets"
}

func (c *Command) Help() string {
	return `Usage: snowassets hardware [options]

  Queries the alm_hardware table and prints the normalized records as JSON.

` + c.flags().Help()
}

func (c *Command) flags() *base.FlagSet {
	f := c.NewFlagSet("hardware")
	f.StringVar(&c.flagStatus, "status", "", "Filter by install status (exact match)")
	f.StringVar(&c.flagDepartment, "department", "", "Filter by department (exact match)")
	f.StringVar(&c.flagModel, "model", "", "Filter by model (substring match)")
	f.StringVar(&c.flagModelCategory, "model-category", "", "Filter by model category (exact match)")
	f.StringVar(&c.flagAssignedTo, "assigned-to", "", "Filter by assignee (substring match)")
	f.StringVar(&c.flagLocation, "location", "", "Filter by location (substring match)")
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

	result, err := reports.QueryHardware(context.Background(), client, reports.HardwareOptions{
		Status:        c.flagStatus,
		Department:    c.flagDepartment,
		Model:         c.flagModel,
		ModelCategory: c.flagModelCategory,
		AssignedTo:    c.flagAssignedTo,
		Location:      c.flagLocation,
		Limit:         c.flagLimit,
	})
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(result)
}
