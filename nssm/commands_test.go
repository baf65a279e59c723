// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package nssm_test

import (
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/guangie88/nssm-exec/nssm"
)

type commandsSuite struct{}

var _ = gc.Suite(&commandsSuite{})

const toolPath = `C:\tools\nssm.exe`

func (*commandsSuite) TestFixedVectors(c *gc.C) {
	commands := nssm.Commands{Path: toolPath}
	for i, test := range []struct {
		about    string
		argv     []string
		expected []string
	}{{
		about:    "status",
		argv:     commands.Status("svc"),
		expected: []string{toolPath, "status", "svc"},
	}, {
		about:    "stop",
		argv:     commands.Stop("svc"),
		expected: []string{toolPath, "stop", "svc"},
	}, {
		about:    "remove never prompts",
		argv:     commands.Remove("svc"),
		expected: []string{toolPath, "remove", "svc", "confirm"},
	}, {
		about:    "install",
		argv:     commands.Install("svc", `C:\app\svc.exe`),
		expected: []string{toolPath, "install", "svc", `C:\app\svc.exe`},
	}, {
		about:    "start",
		argv:     commands.Start("svc"),
		expected: []string{toolPath, "start", "svc"},
	}, {
		about:    "startup directory",
		argv:     commands.SetAppDirectory("svc", `C:\app`),
		expected: []string{toolPath, "set", "svc", "AppDirectory", `C:\app`},
	}, {
		about:    "description",
		argv:     commands.SetDescription("svc", "does things"),
		expected: []string{toolPath, "set", "svc", "Description", "does things"},
	}, {
		about:    "account",
		argv:     commands.SetAccount("svc", `.\svcuser`, "hunter2"),
		expected: []string{toolPath, "set", "svc", "ObjectName", `.\svcuser`, "hunter2"},
	}} {
		c.Logf("test %d: %s", i, test.about)
		c.Check(test.argv, jc.DeepEquals, test.expected)
	}
}

func (*commandsSuite) TestSpacesStaySingleElements(c *gc.C) {
	commands := nssm.Commands{Path: toolPath}
	argv := commands.Install("Foo Service", `C:\Program Files\foo\foo.exe`)
	c.Check(argv, jc.DeepEquals, []string{
		toolPath, "install", "Foo Service", `C:\Program Files\foo\foo.exe`,
	})
}

func (*commandsSuite) TestSetAccountEmptyPassword(c *gc.C) {
	commands := nssm.Commands{Path: toolPath}
	argv := commands.SetAccount("svc", `.\svcuser`, "")
	c.Check(argv, jc.DeepEquals, []string{
		toolPath, "set", "svc", "ObjectName", `.\svcuser`, "",
	})
}

func (*commandsSuite) TestSetAppParameters(c *gc.C) {
	commands := nssm.Commands{Path: toolPath}
	for i, test := range []struct {
		about    string
		args     string
		expected []string
	}{{
		about:    "plain fields",
		args:     "-p 8080 -v",
		expected: []string{"-p", "8080", "-v"},
	}, {
		about:    "double quotes group a field",
		args:     `--config "C:\Program Files\foo\conf.yml" -v`,
		expected: []string{"--config", `C:\Program Files\foo\conf.yml`, "-v"},
	}, {
		about:    "empty string adds nothing",
		args:     "",
		expected: nil,
	}} {
		c.Logf("test %d: %s", i, test.about)
		argv, err := commands.SetAppParameters("svc", test.args)
		c.Assert(err, jc.ErrorIsNil)
		expected := []string{toolPath, "set", "svc", "AppParameters"}
		c.Check(argv, jc.DeepEquals, append(expected, test.expected...))
	}
}

func (*commandsSuite) TestSetAppParametersUnterminatedQuote(c *gc.C) {
	commands := nssm.Commands{Path: toolPath}
	_, err := commands.SetAppParameters("svc", `--flag "oops`)
	c.Check(err, gc.ErrorMatches, `invalid arguments .*: Unterminated double-quoted string`)
}

func (*commandsSuite) TestSetDependencies(c *gc.C) {
	commands := nssm.Commands{Path: toolPath}
	argv, err := commands.SetDependencies("svc", `postgres "Windows Audio"`)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(argv, jc.DeepEquals, []string{
		toolPath, "set", "svc", "DependOnService", "postgres", "Windows Audio",
	})
}

func (*commandsSuite) TestSetDependenciesUnterminatedQuote(c *gc.C) {
	commands := nssm.Commands{Path: toolPath}
	_, err := commands.SetDependencies("svc", `"oops`)
	c.Check(err, gc.ErrorMatches, `invalid dependency list .*: Unterminated double-quoted string`)
}
