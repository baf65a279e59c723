// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package service_test

import (
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/guangie88/nssm-exec/config"
	"github.com/guangie88/nssm-exec/nssm"
	"github.com/guangie88/nssm-exec/service"
)

type driverSuite struct {
	testing.IsolationSuite

	stub *testing.Stub
	tool *stubController
	r    *service.Reconciler
}

var _ = gc.Suite(&driverSuite{})

func (s *driverSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.stub = &testing.Stub{}
	s.tool = &stubController{Stub: s.stub}
	poll := service.PollStrategy{Interval: time.Millisecond, Attempts: 3}
	s.r = service.NewReconciler(s.tool, clock.WallClock, poll, poll)
}

func (s *driverSuite) TestOneFailureDoesNotAbortBatch(c *gc.C) {
	barPath, _ := writeExecutable(c, "bar.exe")
	bazPath, bazCanon := writeExecutable(c, "baz.exe")
	cfg := &config.Config{Services: []config.Service{
		{Name: "Bar", Path: barPath},
		{Name: "Baz", Path: bazPath},
	}}

	// Bar never leaves stop-pending, so its stop wait times out; Baz
	// is absent and installs cleanly afterwards.
	s.tool.statuses = []nssm.State{
		nssm.Running, nssm.StopPending, nssm.StopPending, nssm.StopPending,
	}
	s.stub.SetErrors(nil, nil, nil, nil, nil, notInstalled("Baz"))

	results := service.ReconcileAll(s.r, cfg)
	c.Assert(results, gc.HasLen, 2)
	c.Check(results[0].Name, gc.Equals, "Bar")
	c.Check(results[0].Err, gc.ErrorMatches,
		`unable to wait for service "Bar" to reach stopped state: service "Bar" is stop-pending`)
	c.Check(results[1].Name, gc.Equals, "Baz")
	c.Check(results[1].Err, jc.ErrorIsNil)
	c.Check(service.Failed(results), gc.Equals, 1)

	s.stub.CheckCallNames(c,
		"Status", "Stop", "Status", "Status", "Status", // Bar, until the timeout
		"Status", "Install", // Baz
	)
	s.stub.CheckCall(c, 6, "Install", "Baz", bazCanon)

	log := c.GetTestLog()
	c.Check(log, jc.Contains, `creating service "Bar"`)
	c.Check(log, jc.Contains, `service "Bar" [FAILED]`)
	c.Check(log, jc.Contains, `creating service "Baz"`)
	c.Check(log, jc.Contains, `service "Baz" [OK]`)
}

func (s *driverSuite) TestReconcileAllKeepsDocumentOrder(c *gc.C) {
	path, _ := writeExecutable(c, "app.exe")
	cfg := &config.Config{Services: []config.Service{
		{Name: "One", Path: path},
		{Name: "Two", Path: path},
		{Name: "Three", Path: path},
	}}
	s.stub.SetErrors(notInstalled("One"), nil, notInstalled("Two"), nil, notInstalled("Three"))

	results := service.ReconcileAll(s.r, cfg)
	c.Assert(results, gc.HasLen, 3)
	c.Check(results[0].Name, gc.Equals, "One")
	c.Check(results[1].Name, gc.Equals, "Two")
	c.Check(results[2].Name, gc.Equals, "Three")
	c.Check(service.Failed(results), gc.Equals, 0)
}

func (s *driverSuite) TestStopAll(c *gc.C) {
	cfg := &config.Config{Services: []config.Service{
		{Name: "Foo", Path: `C:\app\foo.exe`},
		{Name: "Bar", Path: `C:\app\bar.exe`},
	}}
	s.tool.statuses = []nssm.State{nssm.Running, nssm.Stopped}
	s.stub.SetErrors(nil, nil, nil, notInstalled("Bar"))

	results := service.StopAll(s.r, cfg)
	c.Assert(results, gc.HasLen, 2)
	c.Check(results[0].Err, jc.ErrorIsNil)
	c.Check(results[1].Err, jc.ErrorIsNil)
	c.Check(service.Failed(results), gc.Equals, 0)

	s.stub.CheckCallNames(c, "Status", "Stop", "Status", "Status")

	log := c.GetTestLog()
	c.Check(log, jc.Contains, `stopping service "Foo"`)
	c.Check(log, jc.Contains, `service "Bar" is not installed, nothing to stop`)
	c.Check(log, jc.Contains, `service "Foo" [OK]`)
	c.Check(log, jc.Contains, `service "Bar" [OK]`)
}

func (s *driverSuite) TestFailed(c *gc.C) {
	c.Check(service.Failed(nil), gc.Equals, 0)
	c.Check(service.Failed([]service.Result{
		{Name: "a"},
		{Name: "b", Err: errors.New("boom")},
		{Name: "c", Err: errors.New("bang")},
	}), gc.Equals, 2)
}
