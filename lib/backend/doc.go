// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

// Package backend invokes the ReqCockpit data backend and interprets
// its results.
//
// The data backend is a separate executable reached only through its
// process entry point. Its whole protocol is: argv in, exit status
// plus UTF-8 text on stdout/stderr out. This package owns the three
// stages of that boundary:
//
//   - [Invocation] constructors turn typed command parameters into an
//     ordered argv. Every parameter crosses as its own argv entry;
//     nothing is ever interpolated into a shell or interpreter script
//     string, so hostile bytes in a file path or supplier name arrive
//     at the backend as literal data.
//   - [Runner] spawns one fresh backend process per call, waits for
//     it to terminate, and captures the complete stdout and stderr
//     streams as an [Outcome]. A missing entry point or a process
//     that fails to start is a [*SpawnError]; a non-zero exit is a
//     normal Outcome, not an error.
//   - [DecodeCount] and [DecodePayload] turn an Outcome into the
//     command's typed result or a [*BackendError] carrying the
//     backend's own diagnostic text.
//
// The Runner imposes no timeout of its own: it waits as long as the
// context allows. Callers that want a bound pass a context with a
// deadline; cancellation kills the backend process.
package backend
