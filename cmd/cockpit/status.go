// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/reqcockpit/reqcockpit/cmd/cockpit/cli"
	"github.com/reqcockpit/reqcockpit/lib/service"
)

func statusCommand() *cli.Command {
	var (
		socketPath string
		configPath string
		timeout    time.Duration
	)
	return &cli.Command{
		Name:    "status",
		Summary: "Query a running cockpit-bridge daemon",
		Usage:   "cockpit status [flags]",
		Description: `Query a running cockpit-bridge daemon over its Unix socket.

This is the one command that talks to the daemon instead of invoking
the backend itself. Without --socket, the socket path is derived from
the configuration the daemon would use: <data-root>/bridge.sock.`,
		Examples: []cli.Example{
			{
				Description: "Check the daemon on the default socket",
				Command:     "cockpit status",
			},
			{
				Description: "Check a daemon on an explicit socket",
				Command:     "cockpit status --socket /tmp/bridge.sock",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("status", pflag.ContinueOnError)
			flagSet.StringVar(&socketPath, "socket", "", "bridge socket path (default: <data-root>/bridge.sock)")
			flagSet.StringVar(&configPath, "config", "", "configuration file used to derive the socket path")
			flagSet.DurationVar(&timeout, "timeout", 5*time.Second, "response wait bound")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("status takes no arguments")
			}

			if socketPath == "" {
				cfg, err := loadConfig(configPath)
				if err != nil {
					return err
				}
				socketPath = filepath.Join(cfg.Paths.DataRoot, "bridge.sock")
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			var status struct {
				Version       string  `cbor:"version"`
				UptimeSeconds float64 `cbor:"uptime_seconds"`
				DataRoot      string  `cbor:"data_root"`
				Backend       string  `cbor:"backend"`
				Transcripts   bool    `cbor:"transcripts"`
			}
			client := service.NewClient(socketPath)
			if err := client.Call(ctx, "status", nil, &status); err != nil {
				return fmt.Errorf("bridge daemon not reachable at %s: %w", socketPath, err)
			}

			uptime := time.Duration(status.UptimeSeconds * float64(time.Second)).Round(time.Second)

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "version:\t%s\n", status.Version)
			fmt.Fprintf(tw, "uptime:\t%s\n", uptime)
			fmt.Fprintf(tw, "data root:\t%s\n", status.DataRoot)
			fmt.Fprintf(tw, "backend:\t%s\n", status.Backend)
			fmt.Fprintf(tw, "transcripts:\t%v\n", status.Transcripts)
			return tw.Flush()
		},
	}
}
