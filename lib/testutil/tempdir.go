// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"testing"
)

// SocketDir creates a short-pathed temporary directory for Unix
// domain sockets, removed when the test finishes.
//
// A socket path must fit in sockaddr_un's 108-byte sun_path field.
// t.TempDir() can blow past that on CI systems where TMPDIR points at
// a deeply nested directory, so this allocates directly under /tmp.
func SocketDir(t *testing.T) string {
	t.Helper()
	directory, err := os.MkdirTemp("/tmp", "cockpit-test-*")
	if err != nil {
		t.Fatalf("creating socket directory: %v", err)
	}
	t.Cleanup(func() {
		_ = os.RemoveAll(directory)
	})
	return directory
}
