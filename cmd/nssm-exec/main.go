// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// nssm-exec provisions Windows services through the nssm service
// manager executable, driven by a YAML configuration document.
package main

import (
	"fmt"
	"os"

	"github.com/juju/cmd/v3"
)

var nssmExecDoc = `
nssm-exec reads a YAML document describing Windows services and drives
the nssm service manager executable to match it: every declared service
is removed if already present, installed afresh, configured, and
optionally started.

https://nssm.cc/
`

// Main registers the subcommands and hands control to the cmd package.
// This function is not redundant with main, because it provides an
// entry point for testing with arbitrary command line arguments.
func Main(args []string) int {
	ctx, err := cmd.DefaultContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	return runMain(ctx, args)
}

func runMain(ctx *cmd.Context, args []string) int {
	super := cmd.NewSuperCommand(cmd.SuperCommandParams{
		Name:    "nssm-exec",
		Doc:     nssmExecDoc,
		Purpose: "provision Windows services through nssm",
		Log: &cmd.Log{
			DefaultConfig: os.Getenv("NSSM_EXEC_LOGGING_CONFIG"),
		},
	})
	super.Register(newRunCommand())
	super.Register(newStopCommand())
	return cmd.Main(super, ctx, args[1:])
}

func main() {
	os.Exit(Main(os.Args))
}
