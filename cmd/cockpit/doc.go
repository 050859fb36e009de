// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

// Cockpit is the ReqCockpit command-line interface. It drives the
// Python analysis backend the same way the desktop UI does, through
// the command dispatcher in lib/bridge: each command resolves the
// project store, builds a discrete argument vector, spawns the
// backend, and decodes its output.
//
// The import, data, and project commands invoke the backend directly
// and need no running daemon. The status command is the exception: it
// queries a running cockpit-bridge over its Unix socket.
//
// The CLI is a caller in its own right, so caller-side input
// validation lives here: project names, supplier names, iteration
// identifiers, and import files are checked before anything is
// spawned. The bridge itself passes arguments through unvalidated.
package main
