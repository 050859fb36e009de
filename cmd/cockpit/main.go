// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/reqcockpit/reqcockpit/cmd/cockpit/cli"
	"github.com/reqcockpit/reqcockpit/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return rootCommand().Execute(os.Args[1:])
}

func rootCommand() *cli.Command {
	return &cli.Command{
		Name: "cockpit",
		Description: `ReqCockpit command-line tools.

Drive the requirement analysis backend from the shell: import master
specifications and supplier feedback, compute cockpit coverage data,
and manage projects. These commands spawn the backend directly, the
same way the desktop UI does; only status talks to a running
cockpit-bridge daemon.`,
		Subcommands: []*cli.Command{
			projectCommand(),
			importCommand(),
			dataCommand(),
			statusCommand(),
			versionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "List recently opened projects",
				Command:     "cockpit project list",
			},
			{
				Description: "Import a master specification into project 3",
				Command:     "cockpit import spec --project 3 master.reqif",
			},
			{
				Description: "Import supplier feedback for an iteration",
				Command:     `cockpit import feedback --project 3 --iteration I-002_beta --supplier "Acme Systems" feedback.reqif`,
			},
			{
				Description: "Compute cockpit data for iteration 2",
				Command:     "cockpit data --project 3 --iteration 2",
			},
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func(args []string) error {
			fmt.Printf("cockpit %s\n", version.Full())
			return nil
		},
	}
}
