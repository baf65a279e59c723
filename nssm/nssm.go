// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package nssm drives the nssm service manager executable through its
// command-line interface. It knows how to build the argument vector for
// each nssm operation, run it without an intervening shell, and read the
// status tokens nssm prints back.
package nssm

import (
	"github.com/juju/errors"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("nssmexec.nssm")

// Tool invokes a single nssm executable.
type Tool struct {
	commands Commands
}

// NewTool returns a Tool driving the nssm executable at path.
func NewTool(path string) *Tool {
	return &Tool{commands: Commands{Path: path}}
}

// Status reports the current lifecycle state of the named service.
// nssm rejects the query with a non-zero exit when the service is not
// installed; that surfaces here as an exit error.
func (t *Tool) Status(name string) (State, error) {
	stdout, err := runCommand(t.commands.Status(name)...)
	if err != nil {
		return "", errors.Trace(err)
	}
	state, err := ParseState(stdout)
	if err != nil {
		return "", errors.Trace(err)
	}
	return state, nil
}

// Stop asks the service manager to stop the named service. The stop is
// asynchronous; callers poll Status to see it land.
func (t *Tool) Stop(name string) error {
	_, err := runCommand(t.commands.Stop(name)...)
	return errors.Trace(err)
}

// Remove deletes the service registration without prompting.
func (t *Tool) Remove(name string) error {
	_, err := runCommand(t.commands.Remove(name)...)
	return errors.Trace(err)
}

// Install registers a new service running the given executable.
func (t *Tool) Install(name, path string) error {
	_, err := runCommand(t.commands.Install(name, path)...)
	return errors.Trace(err)
}

// Start asks the service manager to start the named service. Like Stop,
// the start is asynchronous.
func (t *Tool) Start(name string) error {
	_, err := runCommand(t.commands.Start(name)...)
	return errors.Trace(err)
}

// SetAppDirectory sets the startup directory of the named service.
func (t *Tool) SetAppDirectory(name, dir string) error {
	_, err := runCommand(t.commands.SetAppDirectory(name, dir)...)
	return errors.Trace(err)
}

// SetAppParameters sets the arguments passed to the service executable.
func (t *Tool) SetAppParameters(name, args string) error {
	argv, err := t.commands.SetAppParameters(name, args)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = runCommand(argv...)
	return errors.Trace(err)
}

// SetDescription sets the description shown for the named service.
func (t *Tool) SetDescription(name, desc string) error {
	_, err := runCommand(t.commands.SetDescription(name, desc)...)
	return errors.Trace(err)
}

// SetDependencies sets the services that must be running before the
// named service starts.
func (t *Tool) SetDependencies(name, deps string) error {
	argv, err := t.commands.SetDependencies(name, deps)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = runCommand(argv...)
	return errors.Trace(err)
}

// SetAccount sets the account the named service runs as. An empty
// password is passed through explicitly rather than omitted.
func (t *Tool) SetAccount(name, user, password string) error {
	_, err := runCommand(t.commands.SetAccount(name, user, password)...)
	return errors.Trace(err)
}
