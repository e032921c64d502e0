// Package base carries the state and helpers shared by every CLI command:
// the UI, the logger, config resolution, client construction, and JSON
// output.
package base

import (
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/opsforge/snowassets/internal/config"
	"github.com/opsforge/snowassets/pkg/reports"
	"github.com/opsforge/snowassets/pkg/snow"
)

// Command is embedded by every subcommand.
type Command struct {
	UI  cli.Ui
	Log hclog.Logger
}

// FlagSet wraps flag.FlagSet with help rendering and the flags every
// command shares.
type FlagSet struct {
	*flag.FlagSet

	// ConfigPath is the optional HCL config file, settable with -config.
	ConfigPath string
}

// NewFlagSet creates a named flag set with the shared -config flag
// registered.
func (c *Command) NewFlagSet(name string) *FlagSet {
	f := &FlagSet{FlagSet: flag.NewFlagSet(name, flag.ContinueOnError)}
	f.Usage = func() {}
	f.StringVar(&f.ConfigPath, "config", "", "Path to an HCL config file (environment overrides it)")
	return f
}

// Help renders the registered flags as an indented option list.
func (f *FlagSet) Help() string {
	var b strings.Builder
	b.WriteString("Options:\n")
	f.VisitAll(func(fl *flag.Flag) {
		fmt.Fprintf(&b, "  -%s\n      %s", fl.Name, fl.Usage)
		if fl.DefValue != "" && fl.DefValue != "0" && fl.DefValue != "false" {
			fmt.Fprintf(&b, " (default: %s)", fl.DefValue)
		}
		b.WriteString("\n")
	})
	return b.String()
}

// Client resolves configuration and builds the Table API client.
func (c *Command) Client(configPath string) (*snow.Client, error) {
	cfg, err := config.FromEnv(configPath)
	if err != nil {
		return nil, err
	}

	logLevel := hclog.LevelFromString(cfg.LogLevel)
	if logLevel == hclog.NoLevel {
		logLevel = hclog.Info
	}
	c.Log.SetLevel(logLevel)

	return snow.NewClient(snow.Config{
		BaseURL:    cfg.BaseURL(),
		Username:   cfg.Username,
		Password:   cfg.Password,
		Timeout:    cfg.Timeout(),
		MaxRetries: cfg.MaxRetries,
		Logger:     c.Log,
	})
}

// Output prints v as indented JSON and returns exit code 0.
func (c *Command) Output(v any) int {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		c.UI.Error(fmt.Sprintf("error encoding output: %v", err))
		return 1
	}
	c.UI.Output(string(data))
	return 0
}

// Fail prints the stable failure envelope for err and returns exit code 1.
func (c *Command) Fail(err error) int {
	data, jsonErr := json.MarshalIndent(reports.FailureFrom(err), "", "  ")
	if jsonErr != nil {
		c.UI.Error(err.Error())
		return 1
	}
	c.UI.Error(string(data))
	return 1
}
