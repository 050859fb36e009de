// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/reqcockpit/reqcockpit/lib/clock"
)

// Outcome is the complete observable result of one backend process:
// exit status plus the full stdout and stderr byte streams. There is
// no streaming and no partial result; the process has terminated by
// the time an Outcome exists.
type Outcome struct {
	// Command is the backend command that produced this outcome.
	Command string

	// ExitCode is the process exit status. -1 when the process was
	// terminated by a signal.
	ExitCode int

	// Stdout is the complete standard output stream.
	Stdout []byte

	// Stderr is the complete standard error stream.
	Stderr []byte

	// Duration is the wall-clock time from start to termination.
	Duration time.Duration
}

// waitDelay bounds how long Run waits for the output pipes once the
// context has killed the child. A grandchild that inherited the pipes
// and survived the kill must not stall the caller.
const waitDelay = 5 * time.Second

// Runner spawns backend processes. Every Run starts a fresh process:
// no pooling, no reuse, no state carried between invocations. A
// Runner is safe for concurrent use by multiple goroutines.
type Runner struct {
	python string
	script string
	clock  clock.Clock
	logger *slog.Logger
}

// NewRunner returns a Runner that executes "<python> <script>
// <command> <args...>". Both paths are used as given; resolution
// against PATH or the configuration happens in lib/config before the
// Runner is built.
func NewRunner(python, script string, logger *slog.Logger) *Runner {
	return &Runner{
		python: python,
		script: script,
		clock:  clock.Real(),
		logger: logger,
	}
}

// Run executes one backend invocation and waits for it to terminate.
//
// The child reads from the null device and its stdout/stderr are
// captured in full. A non-zero exit is a normal Outcome with a nil
// error; only environment faults are errors: an entry point that
// cannot be located or a process that could not be started is a
// [*SpawnError], and a context cancellation or deadline (which kills
// the child) is the wrapped context error.
//
// Run waits indefinitely under a background context. Callers bound
// the invocation by passing a context with a deadline.
func (r *Runner) Run(ctx context.Context, inv Invocation) (*Outcome, error) {
	// The entry point is located before anything is spawned. A
	// script the host cannot see is an installation fault, not a
	// backend failure.
	if _, err := os.Stat(r.script); err != nil {
		return nil, &SpawnError{Path: r.script, Err: err}
	}

	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, r.python, inv.Argv(r.script)...)
	command.Stdout = &stdout
	command.Stderr = &stderr
	command.WaitDelay = waitDelay

	start := r.clock.Now()
	runErr := command.Run()
	duration := r.clock.Now().Sub(start)

	outcome := &Outcome{
		Command:  inv.Command,
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: duration,
	}

	if runErr != nil {
		if ctx.Err() != nil {
			r.logger.Debug("backend invocation canceled",
				"command", inv.Command,
				"duration", duration,
			)
			return nil, fmt.Errorf("backend %s: %w", inv.Command, ctx.Err())
		}
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, &SpawnError{Path: r.python, Err: runErr}
		}
		outcome.ExitCode = exitErr.ExitCode()
	}

	r.logger.Debug("backend invocation complete",
		"command", inv.Command,
		"args", len(inv.Args),
		"exit_code", outcome.ExitCode,
		"duration", duration,
		"stdout_bytes", len(outcome.Stdout),
		"stderr_bytes", len(outcome.Stderr),
	)
	return outcome, nil
}
