package ping

import (
	"context"
	"fmt"

	"github.com/opsforge/snowassets/internal/cmd/base"
	"github.com/opsforge/snowassets/internal/config"
	"github.com/opsforge/snowassets/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Verify connectivity to the ServiceNow instance"
}

func (c *Command) Help() string {
	return `Usage: snowassets ping [options]

  Fetches one record from a lightweight system table and reports the
  connection status and round-trip time. Exits 0 even when the instance
  is unreachable; the status field carries the outcome.

` + c.NewFlagSet("ping").Help()
}

// result extends the probe with server identity, mirroring what
// integrations expect from a health check.
type result struct {
	Server   string `json:"server"`
	Version  string `json:"version"`
	Instance string `json:"instance"`

	Status        string  `json:"status"`
	ResponseTimeS float64 `json:"response_time_s"`
	Error         string  `json:"error,omitempty"`
}

func (c *Command) Run(args []string) int {
	f := c.NewFlagSet("ping")
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := config.FromEnv(f.ConfigPath)
	if err != nil {
		return c.Fail(err)
	}

	client, err := c.Client(f.ConfigPath)
	if err != nil {
		return c.Fail(err)
	}

	probe := client.Ping(context.Background())
	return c.Output(result{
		Server:        "snowassets",
		Version:       version.Version,
		Instance:      cfg.Instance,
		Status:        probe.Status,
		ResponseTimeS: probe.ResponseTimeS,
		Error:         probe.Error,
	})
}
