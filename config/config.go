// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package config defines the document describing which services to
// provision and how to drive the nssm executable while doing it.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultPollInterval = 500 * time.Millisecond
	defaultPollAttempts = 5
)

// Account holds the credentials a service runs under. The password may
// be empty for accounts without one; it is still handed to nssm as an
// explicit argument.
type Account struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// Overrides are the settings that exist at both document scope and
// service scope. Fields are pointers so the merge can tell "absent"
// from an explicit zero value.
type Overrides struct {
	// Deps lists the service names, space delimited, that must start
	// before this one.
	Deps *string `yaml:"deps"`

	// StartOnCreate starts the service right after provisioning it.
	StartOnCreate *bool `yaml:"start_on_create"`

	// Account runs the service under a specific account instead of the
	// system default.
	Account *Account `yaml:"account"`
}

// Service describes one service to provision. A loaded Service is
// never mutated.
type Service struct {
	// Name uniquely identifies the service.
	Name string `yaml:"name"`

	// Path is the service executable.
	Path string `yaml:"path"`

	// StartupDir is the directory the service starts in. Empty keeps
	// nssm's default, the executable's own directory.
	StartupDir string `yaml:"startup_dir"`

	// Args is the argument string for the executable, space delimited
	// with double-quote grouping.
	Args string `yaml:"args"`

	// Description is the display description of the service.
	Description string `yaml:"description"`

	// Other overrides the document-level settings for this service.
	Other *Overrides `yaml:"other"`
}

// Config is the root of the configuration document.
type Config struct {
	// NSSMPath locates the nssm executable.
	NSSMPath string `yaml:"nssm_path"`

	// Poll tuning for the stop and start waits. Pointers so an
	// explicit zero is honored rather than replaced by the default.
	PendingStopPollMS     *int `yaml:"pending_stop_poll_ms"`
	PendingStopPollCount  *int `yaml:"pending_stop_poll_count"`
	PendingStartPollMS    *int `yaml:"pending_start_poll_ms"`
	PendingStartPollCount *int `yaml:"pending_start_poll_count"`

	// Global holds the settings every service inherits unless it
	// overrides them.
	Global *Overrides `yaml:"global"`

	// Services to provision, in document order.
	Services []Service `yaml:"services"`
}

// ReadConfig loads, parses and validates the configuration document at
// path.
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "unable to read configuration file %q", path)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Annotatef(err, "unable to parse configuration file %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Annotatef(err, "invalid configuration file %q", path)
	}
	return &cfg, nil
}

// Validate ensures the document is complete enough to act on.
func (c *Config) Validate() error {
	if c.NSSMPath == "" {
		return errors.NotValidf("missing nssm_path")
	}
	for _, poll := range []struct {
		name  string
		value *int
	}{
		{"pending_stop_poll_ms", c.PendingStopPollMS},
		{"pending_start_poll_ms", c.PendingStartPollMS},
	} {
		if poll.value != nil && *poll.value < 1 {
			return errors.NotValidf("nonpositive %s", poll.name)
		}
	}
	// A zero count is allowed; it makes the corresponding wait fail
	// straight away.
	for _, poll := range []struct {
		name  string
		value *int
	}{
		{"pending_stop_poll_count", c.PendingStopPollCount},
		{"pending_start_poll_count", c.PendingStartPollCount},
	} {
		if poll.value != nil && *poll.value < 0 {
			return errors.NotValidf("negative %s", poll.name)
		}
	}
	if err := c.Global.validate("global settings"); err != nil {
		return errors.Trace(err)
	}
	names := set.NewStrings()
	for i, svc := range c.Services {
		if svc.Name == "" {
			return errors.NotValidf("missing name for service #%d", i+1)
		}
		if names.Contains(svc.Name) {
			return errors.NotValidf("duplicate service name %q", svc.Name)
		}
		names.Add(svc.Name)
		if svc.Path == "" {
			return errors.NotValidf("missing path for service %q", svc.Name)
		}
		if err := svc.Other.validate(fmt.Sprintf("service %q", svc.Name)); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func (o *Overrides) validate(scope string) error {
	if o == nil {
		return nil
	}
	if o.Account != nil && o.Account.User == "" {
		return errors.NotValidf("missing account user in %s", scope)
	}
	return nil
}

// StopPoll returns the interval and attempt count for waiting on a
// service to stop, defaults applied.
func (c *Config) StopPoll() (time.Duration, int) {
	return pollValues(c.PendingStopPollMS, c.PendingStopPollCount)
}

// StartPoll returns the interval and attempt count for waiting on a
// service to start, defaults applied.
func (c *Config) StartPoll() (time.Duration, int) {
	return pollValues(c.PendingStartPollMS, c.PendingStartPollCount)
}

func pollValues(ms, count *int) (time.Duration, int) {
	interval := defaultPollInterval
	if ms != nil {
		interval = time.Duration(*ms) * time.Millisecond
	}
	attempts := defaultPollAttempts
	if count != nil {
		attempts = *count
	}
	return interval, attempts
}
