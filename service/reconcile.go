// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package service reconciles each declared service against the state
// nssm reports for it: any pre-existing instance is stopped and
// removed, then the service is installed, configured and optionally
// started. Services are handled strictly one at a time, and one
// service's failure never aborts the others.
package service

import (
	"path/filepath"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/guangie88/nssm-exec/config"
	"github.com/guangie88/nssm-exec/nssm"
)

var logger = loggo.GetLogger("nssmexec.service")

// Controller is the slice of the nssm driver the reconciler needs.
type Controller interface {
	Status(name string) (nssm.State, error)
	Stop(name string) error
	Remove(name string) error
	Install(name, path string) error
	Start(name string) error
	SetAppDirectory(name, dir string) error
	SetAppParameters(name, args string) error
	SetDescription(name, desc string) error
	SetDependencies(name, deps string) error
	SetAccount(name, user, password string) error
}

// Reconciler drives services to their declared state through a
// Controller, waiting out the asynchronous stop and start transitions
// with bounded polls.
type Reconciler struct {
	tool      Controller
	clock     clock.Clock
	stopPoll  PollStrategy
	startPoll PollStrategy
}

// NewReconciler returns a Reconciler operating through tool. The clock
// paces the stop and start polls.
func NewReconciler(tool Controller, clk clock.Clock, stopPoll, startPoll PollStrategy) *Reconciler {
	return &Reconciler{
		tool:      tool,
		clock:     clk,
		stopPoll:  stopPoll,
		startPoll: startPoll,
	}
}

// Reconcile provisions one service: tear down whatever instance exists,
// install the declared one, apply its settings and the overrides merged
// from the document scope, and start it if asked to. The first fatal
// failure aborts this service's remaining steps.
func (r *Reconciler) Reconcile(svc config.Service, global *config.Overrides) error {
	state, present, err := r.currentState(svc.Name)
	if err != nil {
		return errors.Trace(err)
	}
	if present {
		logger.Debugf("service %q exists, removing", svc.Name)
		if err := r.ensureStopped(svc.Name, state); err != nil {
			return errors.Trace(err)
		}
		if err := r.tool.Remove(svc.Name); err != nil {
			return errors.Annotatef(err, "unable to remove service %q", svc.Name)
		}
	}

	if err := r.install(svc); err != nil {
		return errors.Trace(err)
	}

	effective := config.MergeOverrides(svc.Other, global)
	if effective.Deps != nil {
		if err := r.tool.SetDependencies(svc.Name, *effective.Deps); err != nil {
			return errors.Annotatef(err, "unable to set DependOnService for service %q", svc.Name)
		}
	}
	if effective.Account != nil {
		if err := r.tool.SetAccount(svc.Name, effective.Account.User, effective.Account.Password); err != nil {
			return errors.Annotatef(err, "unable to set the username and password for service %q", svc.Name)
		}
	}
	if effective.StartOnCreate != nil && *effective.StartOnCreate {
		if err := r.start(svc.Name); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// StopOnly stops a configured service without touching its
// registration. Absent services are skipped.
func (r *Reconciler) StopOnly(svc config.Service) error {
	state, present, err := r.currentState(svc.Name)
	if err != nil {
		return errors.Trace(err)
	}
	if !present {
		logger.Infof("service %q is not installed, nothing to stop", svc.Name)
		return nil
	}
	return errors.Trace(r.ensureStopped(svc.Name, state))
}

// currentState interprets a status query. Absent covers both an nssm
// exit failure (the service is unknown to it) and an unreadable status
// token; only a spawn failure is an error, since then no later command
// could succeed either.
func (r *Reconciler) currentState(name string) (nssm.State, bool, error) {
	state, err := r.tool.Status(name)
	if err == nil {
		return state, true, nil
	}
	if nssm.IsExitError(err) || errors.IsNotValid(err) {
		logger.Debugf("service %q has no readable status, assuming not installed: %v", name, err)
		return "", false, nil
	}
	return "", false, errors.Annotatef(err, "unable to query status of service %q", name)
}

// ensureStopped waits out a stop transition. The stop command itself is
// allowed to fail; nssm sometimes rejects a stop with "Unexpected
// status SERVICE_STOP_PENDING" while the service stops anyway, so the
// poll afterwards is what decides.
func (r *Reconciler) ensureStopped(name string, state nssm.State) error {
	if state == nssm.Stopped {
		return nil
	}
	if err := r.tool.Stop(name); err != nil {
		err = errors.Annotatef(err, "unable to stop service %q", name)
		logger.Warningf("stopping service %q returned an error, temporarily allowing this: %v", name, err)
	}
	return errors.Trace(waitForState(r.clock, r.tool, name, nssm.Stopped, r.stopPoll))
}

// install registers the service and applies its own settings, leaving
// the merged overrides to the caller.
func (r *Reconciler) install(svc config.Service) error {
	path, err := canonicalPath(svc.Path)
	if err != nil {
		return errors.Annotatef(err, "unable to canonicalize path %q for service %q", svc.Path, svc.Name)
	}
	if err := r.tool.Install(svc.Name, path); err != nil {
		return errors.Annotatef(err, "unable to install service %q", svc.Name)
	}
	if svc.StartupDir != "" {
		dir, err := canonicalPath(svc.StartupDir)
		if err != nil {
			return errors.Annotatef(err, "unable to canonicalize startup directory %q for service %q", svc.StartupDir, svc.Name)
		}
		if err := r.tool.SetAppDirectory(svc.Name, dir); err != nil {
			return errors.Annotatef(err, "unable to set startup directory for service %q", svc.Name)
		}
	}
	if svc.Args != "" {
		if err := r.tool.SetAppParameters(svc.Name, svc.Args); err != nil {
			return errors.Annotatef(err, "unable to set AppParameters for service %q", svc.Name)
		}
	}
	if svc.Description != "" {
		if err := r.tool.SetDescription(svc.Name, svc.Description); err != nil {
			return errors.Annotatef(err, "unable to set Description for service %q", svc.Name)
		}
	}
	return nil
}

// start waits out a start transition, with the same tolerance for the
// start command failing as ensureStopped has for stop.
func (r *Reconciler) start(name string) error {
	if err := r.tool.Start(name); err != nil {
		err = errors.Annotatef(err, "unable to start service %q", name)
		logger.Warningf("starting service %q returned an error, temporarily allowing this: %v", name, err)
	}
	return errors.Trace(waitForState(r.clock, r.tool, name, nssm.Running, r.startPoll))
}

// canonicalPath resolves path to an absolute, symlink-free form. nssm
// resolves relative paths against its own location rather than against
// this process's working directory, so only canonical paths are handed
// to it.
func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Trace(err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Trace(err)
	}
	return resolved, nil
}
