package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/opsforge/snowassets/internal/cmd/base"
	"github.com/opsforge/snowassets/internal/cmd/commands/asset"
	"github.com/opsforge/snowassets/internal/cmd/commands/contracts"
	"github.com/opsforge/snowassets/internal/cmd/commands/hardware"
	"github.com/opsforge/snowassets/internal/cmd/commands/licenses"
	"github.com/opsforge/snowassets/internal/cmd/commands/ping"
	"github.com/opsforge/snowassets/internal/cmd/commands/report"
	versioncmd "github.com/opsforge/snowassets/internal/cmd/commands/version"
)

// Commands is the CLI command registry, populated by initCommands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	shared := &base.Command{UI: ui, Log: log}

	Commands = map[string]cli.CommandFactory{
		"ping": func() (cli.Command, error) {
			return &ping.Command{Command: shared}, nil
		},
		"hardware": func() (cli.Command, error) {
			return &hardware.Command{Command: shared}, nil
		},
		"licenses": func() (cli.Command, error) {
			return &licenses.Command{Command: shared}, nil
		},
		"contracts": func() (cli.Command, error) {
			return &contracts.Command{Command: shared}, nil
		},
		"asset": func() (cli.Command, error) {
			return &asset.DetailsCommand{Command: shared}, nil
		},
		"lifecycle": func() (cli.Command, error) {
			return &asset.LifecycleCommand{Command: shared}, nil
		},
		"report": func() (cli.Command, error) {
			return &report.Command{Command: shared}, nil
		},
		"report costs": func() (cli.Command, error) {
			return &report.CostsCommand{Command: shared}, nil
		},
		"report compliance": func() (cli.Command, error) {
			return &report.ComplianceCommand{Command: shared}, nil
		},
		"report utilization": func() (cli.Command, error) {
			return &report.UtilizationCommand{Command: shared}, nil
		},
		"report depreciation": func() (cli.Command, error) {
			return &report.DepreciationCommand{Command: shared}, nil
		},
		"report underutilized": func() (cli.Command, error) {
			return &report.UnderutilizedCommand{Command: shared}, nil
		},
		"report reconcile": func() (cli.Command, error) {
			return &report.ReconcileCommand{Command: shared}, nil
		},
		"report health": func() (cli.Command, error) {
			return &report.HealthCommand{Command: shared}, nil
		},
		"report expiring": func() (cli.Command, error) {
			return &report.ExpiringCommand{Command: shared}, nil
		},
		"version": func() (cli.Command, error) {
			return &versioncmd.Command{Command: shared}, nil
		},
	}
}
