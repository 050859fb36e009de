// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteScript writes an executable /bin/sh script named name into
// directory and returns its absolute path. The "#!/bin/sh" line is
// prepended; body is the script text that follows it.
//
// Tests use these scripts as stand-in backend entry points: the
// backend contract is argv in, stdout/stderr/exit status out, so a
// shell script that prints the right bytes exercises the invocation
// path exactly like a real backend would.
//
//	script := testutil.WriteScript(t, dir, "backend", `echo 42`)
func WriteScript(t *testing.T, directory, name, body string) string {
	t.Helper()
	path := filepath.Join(directory, name)
	content := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("writing script %s: %v", path, err)
	}
	return path
}
