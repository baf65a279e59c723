// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package nssm

import (
	"github.com/juju/errors"
	"github.com/kballard/go-shellquote"
)

// Commands builds the argument vectors understood by nssm. Every vector
// starts with the executable path so it can be handed straight to the
// process spawner; nothing here goes through a shell, so names and paths
// containing spaces or quotes stay single elements.
type Commands struct {
	// Path locates the nssm executable.
	Path string
}

func (c Commands) nssm(args ...string) []string {
	return append([]string{c.Path}, args...)
}

// Status returns the argv querying a service's status.
func (c Commands) Status(name string) []string {
	return c.nssm("status", name)
}

// Stop returns the argv stopping a service.
func (c Commands) Stop(name string) []string {
	return c.nssm("stop", name)
}

// Remove returns the argv removing a service without prompting.
func (c Commands) Remove(name string) []string {
	return c.nssm("remove", name, "confirm")
}

// Install returns the argv registering a service for the given
// executable.
func (c Commands) Install(name, path string) []string {
	return c.nssm("install", name, path)
}

// Start returns the argv starting a service.
func (c Commands) Start(name string) []string {
	return c.nssm("start", name)
}

// SetAppDirectory returns the argv setting a service's startup
// directory.
func (c Commands) SetAppDirectory(name, dir string) []string {
	return c.nssm("set", name, "AppDirectory", dir)
}

// SetDescription returns the argv setting a service's description.
func (c Commands) SetDescription(name, desc string) []string {
	return c.nssm("set", name, "Description", desc)
}

// SetAppParameters returns the argv setting the arguments passed to the
// service executable. The configured string is space delimited with
// double-quote grouping, so it is tokenized here and nssm joins the
// elements back into the parameter value itself.
func (c Commands) SetAppParameters(name, args string) ([]string, error) {
	fields, err := shellquote.Split(args)
	if err != nil {
		return nil, errors.Annotatef(err, "invalid arguments %q", args)
	}
	return append(c.nssm("set", name, "AppParameters"), fields...), nil
}

// SetDependencies returns the argv setting the services that must start
// before this one. The configured list is space delimited; each name
// becomes its own element.
func (c Commands) SetDependencies(name, deps string) ([]string, error) {
	fields, err := shellquote.Split(deps)
	if err != nil {
		return nil, errors.Annotatef(err, "invalid dependency list %q", deps)
	}
	return append(c.nssm("set", name, "DependOnService"), fields...), nil
}

// SetAccount returns the argv setting the account a service runs as.
// The password element is always present, empty or not, so nssm never
// prompts for one.
func (c Commands) SetAccount(name, user, password string) []string {
	return c.nssm("set", name, "ObjectName", user, password)
}
