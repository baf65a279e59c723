// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package nssm

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/kballard/go-shellquote"
)

// ExitError describes a command that ran but exited unsuccessfully.
// Code is -1 when the process died without an exit code.
type ExitError struct {
	Args   []string
	Code   int
	Stdout string
	Stderr string
}

// Error implements error.
func (e *ExitError) Error() string {
	code := "NIL"
	if e.Code >= 0 {
		code = strconv.Itoa(e.Code)
	}
	return fmt.Sprintf("%s { exit code: %s, stdout: %q, stderr: %q }",
		shellquote.Join(e.Args...), code, e.Stdout, e.Stderr)
}

// IsExitError reports whether err was caused by a command exiting
// unsuccessfully, as opposed to not running at all.
func IsExitError(err error) bool {
	_, ok := errors.Cause(err).(*ExitError)
	return ok
}

// runCommand spawns the argument vector directly, with no intervening
// shell, and returns the captured stdout. nssm writes UTF-16LE, which
// read narrowly is text interleaved with NUL bytes, so both streams are
// scrubbed and trimmed before use. A non-zero exit returns an
// *ExitError carrying both streams; a spawn failure returns the
// annotated cause.
var runCommand = func(args ...string) (string, error) {
	logger.Debugf("running %s", shellquote.Join(args...))

	var outBuf, errBuf bytes.Buffer
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	stdout := cleanOutput(outBuf.Bytes())
	stderr := cleanOutput(errBuf.Bytes())
	logger.Tracef("stdout: %q, stderr: %q", stdout, stderr)

	if err == nil {
		return stdout, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return "", &ExitError{
			Args:   args,
			Code:   exitErr.ExitCode(),
			Stdout: stdout,
			Stderr: stderr,
		}
	}
	return "", errors.Annotatef(err, "unable to run command %q", shellquote.Join(args...))
}

func cleanOutput(raw []byte) string {
	stripped := bytes.ReplaceAll(raw, []byte{0}, nil)
	return strings.TrimSpace(string(stripped))
}
