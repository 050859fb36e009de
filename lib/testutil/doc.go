// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for ReqCockpit packages.
//
// [SocketDir] allocates a short-pathed /tmp directory for Unix domain
// sockets, sidestepping sockaddr_un's 108-byte path limit on CI
// systems with deeply nested TMPDIRs.
//
// [WriteScript] writes an executable /bin/sh script into a directory.
// Tests that exercise backend process invocation use these scripts as
// stand-in backends: the script prints whatever stdout/stderr and exit
// status the test needs, without building or shipping a real backend.
//
// [RequireReceive] and [RequireClosed] wrap channel waits in a bounded
// select so individual tests never hang on a channel that will not
// deliver.
//
// Helpers fail the test with t.Fatalf instead of returning errors; a
// broken test setup has nothing useful to recover to.
//
// This package has no ReqCockpit-internal dependencies.
package testutil
