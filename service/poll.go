// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package service

import (
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/retry"

	"github.com/guangie88/nssm-exec/nssm"
)

// PollStrategy bounds a wait for a service to reach a state: the sleep
// between consecutive status queries and the number of queries issued
// before giving up.
type PollStrategy struct {
	Interval time.Duration
	Attempts int
}

// waitForState queries the service's status until it reports target.
// Sleeps happen between consecutive queries only, never after the last.
// A query error counts as "target not reached" rather than propagating,
// so transient read failures just consume an attempt. Fewer than one
// attempt fails without querying at all.
func waitForState(clk clock.Clock, tool Controller, name string, target nssm.State, strategy PollStrategy) error {
	fail := func(err error) error {
		return errors.Annotatef(err, "unable to wait for service %q to reach %s state", name, target)
	}
	if strategy.Attempts < 1 {
		return fail(errors.New("no polling attempts configured"))
	}
	err := retry.Call(retry.CallArgs{
		Func: func() error {
			state, err := tool.Status(name)
			if err != nil {
				return errors.Trace(err)
			}
			if state != target {
				return errors.Errorf("service %q is %s", name, state)
			}
			return nil
		},
		NotifyFunc: func(err error, attempt int) {
			logger.Infof("service %q is still not %s, waiting", name, target)
		},
		Attempts: strategy.Attempts,
		Delay:    strategy.Interval,
		Clock:    clk,
	})
	if err == nil {
		return nil
	}
	if retry.IsAttemptsExceeded(err) {
		err = retry.LastError(err)
	}
	return fail(err)
}
