// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import "fmt"

// EncodingError reports a command parameter that cannot cross the
// argv boundary. The parameter is named so the caller can say which
// input to fix; the value itself is not echoed back (it may be long
// or hostile).
type EncodingError struct {
	// Parameter is the human-readable name of the offending
	// parameter ("file path", "supplier name", ...).
	Parameter string

	// Reason says why the value cannot be transmitted.
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding %s: %s", e.Parameter, e.Reason)
}

// SpawnError reports a backend process that could not be located or
// started: the entry-point script does not exist, or the interpreter
// is missing or not executable. This is an environment fault,
// distinct from a backend that ran and exited non-zero (which is a
// normal [Outcome]).
type SpawnError struct {
	// Path is the file that blocked the start: the entry-point
	// script when it cannot be located, the interpreter otherwise.
	Path string

	// Err is the underlying exec error.
	Err error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("starting backend process %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// BackendError reports a backend invocation that ran but did not
// produce a usable result: a non-zero exit, or a count command whose
// stdout is not a well-formed count. The message carries the
// backend's own stderr diagnostic when one exists.
type BackendError struct {
	// Command is the backend command that failed.
	Command string

	// ExitCode is the backend's exit status. Zero when the process
	// exited cleanly but its stdout was malformed.
	ExitCode int

	// Message is the backend's trimmed stderr text, or a
	// description of the malformed output. Never empty.
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s failed (exit %d): %s", e.Command, e.ExitCode, e.Message)
}
