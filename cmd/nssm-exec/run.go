// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"github.com/juju/clock"
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/guangie88/nssm-exec/config"
	"github.com/guangie88/nssm-exec/nssm"
	"github.com/guangie88/nssm-exec/service"
)

const defaultConfigPath = "config/nssm-exec.yml"

// configCommand is the base for subcommands driven by the service
// configuration document.
type configCommand struct {
	cmd.CommandBase
	configPath string
}

func (c *configCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.configPath, "c", defaultConfigPath, "Path to the YAML configuration document")
	f.StringVar(&c.configPath, "conf", defaultConfigPath, "")
}

func (c *configCommand) Init(args []string) error {
	return cmd.CheckEmpty(args)
}

// reconciler loads the configuration document and builds the nssm
// reconciler it describes.
func (c *configCommand) reconciler() (*service.Reconciler, *config.Config, error) {
	cfg, err := config.ReadConfig(c.configPath)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	stopInterval, stopAttempts := cfg.StopPoll()
	startInterval, startAttempts := cfg.StartPoll()
	r := service.NewReconciler(
		nssm.NewTool(cfg.NSSMPath),
		clock.WallClock,
		service.PollStrategy{Interval: stopInterval, Attempts: stopAttempts},
		service.PollStrategy{Interval: startInterval, Attempts: startAttempts},
	)
	return r, cfg, nil
}

// summarize reports the batch outcome. Per-service failures have
// already been logged individually and do not fail the process.
func summarize(ctx *cmd.Context, results []service.Result) {
	if failed := service.Failed(results); failed > 0 {
		ctx.Infof("completed, %d of %d services failed", failed, len(results))
	} else {
		ctx.Infof("completed, all %d services succeeded", len(results))
	}
}

type runCommand struct {
	configCommand
}

func newRunCommand() cmd.Command {
	return &runCommand{}
}

var runDoc = `
run removes any existing instance of each configured service, installs
it afresh, applies its settings and optionally starts it. Services are
handled one at a time; a failing service is reported and the remaining
ones still run.
`

func (c *runCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "run",
		Purpose: "install and start the configured services",
		Doc:     runDoc,
	}
}

func (c *runCommand) Run(ctx *cmd.Context) error {
	r, cfg, err := c.reconciler()
	if err != nil {
		return errors.Trace(err)
	}
	summarize(ctx, service.ReconcileAll(r, cfg))
	return nil
}
