// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"log/slog"
	"os"
)

// NewLogger creates the bridge daemon's logger: a JSON handler on
// stderr at the given level. The logger is also installed as the slog
// default, so bare slog.Info calls from any package land in the same
// stream.
//
// The level comes from the configuration's log.level field; see
// config.LogLevel.
func NewLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}
