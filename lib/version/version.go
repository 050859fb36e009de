// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build provenance for ReqCockpit binaries.
//
// The variables are stamped at build time via -ldflags:
//
//	go build -ldflags "-X github.com/reqcockpit/reqcockpit/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// An unstamped development build reports "unknown" provenance rather
// than guessing.
package version

import (
	"fmt"
	"runtime"
)

// Stamped via -ldflags at build time.
var (
	// Version is the semantic version, set manually for releases.
	Version = "0.1.0-dev"

	// GitCommit is the abbreviated commit the binary was built from.
	GitCommit = "unknown"

	// GitDirty is "true" when the build had uncommitted changes.
	GitDirty = "false"

	// BuildTime records when the binary was built, in UTC.
	BuildTime = "unknown"
)

// Info returns the one-line version string used by --version output
// and the daemon's status reply: "0.1.0-dev (abc1234, 2026-08-23)".
func Info() string {
	dirty := ""
	if GitDirty == "true" {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, GitCommit, dirty, BuildTime)
}

// Full returns the multi-line version report including the Go
// toolchain and platform, for the CLI's version subcommand.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
