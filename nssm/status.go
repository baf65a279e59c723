// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package nssm

import (
	"strings"

	"github.com/juju/errors"
)

// State is the lifecycle state of a service as reported by nssm status.
type State string

const (
	Stopped         State = "stopped"
	StartPending    State = "start-pending"
	Running         State = "running"
	StopPending     State = "stop-pending"
	PausePending    State = "pause-pending"
	Paused          State = "paused"
	ContinuePending State = "continue-pending"
)

// stateByToken is the closed mapping from the tokens nssm prints to
// states. There is no fuzzy matching; anything else is an error.
var stateByToken = map[string]State{
	"SERVICE_STOPPED":          Stopped,
	"SERVICE_START_PENDING":    StartPending,
	"SERVICE_RUNNING":          Running,
	"SERVICE_STOP_PENDING":     StopPending,
	"SERVICE_PAUSE_PENDING":    PausePending,
	"SERVICE_PAUSED":           Paused,
	"SERVICE_CONTINUE_PENDING": ContinuePending,
}

// ParseState maps a trimmed status token to its State. An unrecognized
// token returns a NotValid error.
func ParseState(token string) (State, error) {
	state, ok := stateByToken[strings.TrimSpace(token)]
	if !ok {
		return "", errors.NotValidf("service status %q", token)
	}
	return state, nil
}
