// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/reqcockpit/reqcockpit/lib/backend"
	"github.com/reqcockpit/reqcockpit/lib/bridge"
	"github.com/reqcockpit/reqcockpit/lib/config"
	"github.com/reqcockpit/reqcockpit/lib/transcript"
)

// bridgeOptions holds the flags shared by every command that invokes
// the backend directly: which configuration to load, how long to wait
// for the backend, and whether to record a transcript.
type bridgeOptions struct {
	configPath  string
	timeout     time.Duration
	transcripts bool
}

// register adds the shared bridge flags to a command's flag set.
func (o *bridgeOptions) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&o.configPath, "config", "",
		"configuration file (default: $REQCOCKPIT_CONFIG, then built-in defaults)")
	flagSet.DurationVar(&o.timeout, "timeout", 0,
		"bound the backend invocation, e.g. 2m (0 waits indefinitely)")
	flagSet.BoolVar(&o.transcripts, "transcripts", false,
		"record an invocation transcript under the configured transcript directory")
}

// flags returns a Flags constructor for commands that take only the
// shared bridge flags.
func (o *bridgeOptions) flags(name string) func() *pflag.FlagSet {
	return func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
		o.register(flagSet)
		return flagSet
	}
}

// openBridge loads configuration and assembles the command dispatcher.
// The CLI drives the backend in-process: no daemon is involved, so the
// same configuration that steers cockpit-bridge steers these commands.
func (o *bridgeOptions) openBridge(logger *slog.Logger) (*bridge.Bridge, error) {
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.EnsurePaths(); err != nil {
		return nil, err
	}

	python, err := cfg.Interpreter()
	if err != nil {
		return nil, err
	}
	runner := backend.NewRunner(python, cfg.Paths.Backend, logger)

	// Transcripts are opt-in on the command line. One-shot CLI
	// invocations do not record unless asked, unlike the daemon.
	var recorder *transcript.Recorder
	if o.transcripts {
		if cfg.Transcripts.Dir == "" {
			return nil, fmt.Errorf("transcripts.dir is not configured")
		}
		if err := os.MkdirAll(cfg.Transcripts.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating transcript directory: %w", err)
		}
		recorder = transcript.NewRecorder(cfg.Transcripts.Dir)
	}

	return bridge.New(cfg.Paths.DataRoot, runner, recorder, logger), nil
}

// commandContext returns the invocation context: bounded by --timeout
// when one was given, otherwise open-ended.
func (o *bridgeOptions) commandContext() (context.Context, context.CancelFunc) {
	if o.timeout > 0 {
		return context.WithTimeout(context.Background(), o.timeout)
	}
	return context.WithCancel(context.Background())
}

// loadConfig loads the named configuration file, or falls back to
// $REQCOCKPIT_CONFIG and the built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// printPayload writes a backend payload to stdout exactly as the
// backend produced it. Payloads are serialized documents owned by the
// backend; reformatting them here would break the pass-through
// contract.
func printPayload(payload string) error {
	_, err := os.Stdout.WriteString(payload)
	return err
}
