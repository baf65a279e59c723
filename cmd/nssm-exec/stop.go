// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"

	"github.com/guangie88/nssm-exec/service"
)

type stopCommand struct {
	configCommand
}

func newStopCommand() cmd.Command {
	return &stopCommand{}
}

var stopDoc = `
stop stops every configured service that is installed and waits for
each to reach the stopped state. Nothing is removed or reconfigured;
services that are not installed are skipped.
`

func (c *stopCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "stop",
		Purpose: "stop the configured services",
		Doc:     stopDoc,
	}
}

func (c *stopCommand) Run(ctx *cmd.Context) error {
	r, cfg, err := c.reconciler()
	if err != nil {
		return errors.Trace(err)
	}
	summarize(ctx, service.StopAll(r, cfg))
	return nil
}
