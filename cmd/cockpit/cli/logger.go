// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger builds the slog logger CLI commands write to.
// Interactive runs (stderr on a terminal) get text output; piped or
// redirected runs get JSON lines in the same shape the bridge daemon
// emits, so one pipeline can ingest both.
//
// Logs go to stderr only. Stdout is reserved for command payloads,
// which scripts consume verbatim.
//
// Commands add their own context with With():
//
//	logger := cli.NewCommandLogger().With(
//	    "command", "import/spec",
//	    "project", projectID,
//	)
func NewCommandLogger() *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, options))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, options))
}
