// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/reqcockpit/reqcockpit/lib/backend"
	"github.com/reqcockpit/reqcockpit/lib/bridge"
	"github.com/reqcockpit/reqcockpit/lib/clock"
	"github.com/reqcockpit/reqcockpit/lib/config"
	"github.com/reqcockpit/reqcockpit/lib/service"
	"github.com/reqcockpit/reqcockpit/lib/transcript"
	"github.com/reqcockpit/reqcockpit/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  string
		socketPath  string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "configuration file (default: $REQCOCKPIT_CONFIG or built-in defaults)")
	flag.StringVar(&socketPath, "socket", "", "bridge socket path (default: <data-root>/bridge.sock)")
	flag.BoolVar(&showVersion, "version", false, "print version information and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("cockpit-bridge %s\n", version.Info())
		return nil
	}

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logger := service.NewLogger(level)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.EnsurePaths(); err != nil {
		return err
	}

	python, err := cfg.Interpreter()
	if err != nil {
		return err
	}

	invokeTimeout, err := cfg.InvokeTimeout()
	if err != nil {
		return err
	}

	runner := backend.NewRunner(python, cfg.Paths.Backend, logger)

	var recorder *transcript.Recorder
	if cfg.Transcripts.Enabled {
		recorder = transcript.NewRecorder(cfg.Transcripts.Dir)
	}

	if socketPath == "" {
		socketPath = filepath.Join(cfg.Paths.DataRoot, "bridge.sock")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clk := clock.Real()

	bridgeService := &BridgeService{
		bridge:        bridge.New(cfg.Paths.DataRoot, runner, recorder, logger),
		invokeTimeout: invokeTimeout,
		dataRoot:      cfg.Paths.DataRoot,
		backendEntry:  cfg.Paths.Backend,
		transcripts:   cfg.Transcripts.Enabled,
		clock:         clk,
		startedAt:     clk.Now(),
		logger:        logger,
	}

	socketServer := service.NewSocketServer(socketPath, logger)
	bridgeService.registerActions(socketServer)

	socketDone := make(chan error, 1)
	go func() {
		socketDone <- socketServer.Serve(ctx)
	}()

	logger.Info("cockpit bridge running",
		"socket", socketPath,
		"data_root", cfg.Paths.DataRoot,
		"backend", cfg.Paths.Backend,
		"python", python,
		"invoke_timeout", invokeTimeout.String(),
		"transcripts", cfg.Transcripts.Enabled,
	)

	// Block until SIGINT or SIGTERM.
	<-ctx.Done()
	logger.Info("shutting down")

	// Serve returns once in-flight handlers have drained.
	if err := <-socketDone; err != nil {
		logger.Error("socket server error", "error", err)
	}

	return nil
}

// BridgeService is the daemon state shared by all action handlers.
type BridgeService struct {
	bridge *bridge.Bridge

	// invokeTimeout bounds each backend invocation. Zero means no
	// bound: commands run until the backend exits.
	invokeTimeout time.Duration

	dataRoot     string
	backendEntry string
	transcripts  bool

	clock     clock.Clock
	startedAt time.Time

	logger *slog.Logger
}
