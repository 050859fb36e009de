// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/reqcockpit/reqcockpit/cmd/cockpit/cli"
)

func projectCommand() *cli.Command {
	return &cli.Command{
		Name:    "project",
		Summary: "List and create requirement projects",
		Subcommands: []*cli.Command{
			projectListCommand(),
			projectCreateCommand(),
		},
	}
}

func projectListCommand() *cli.Command {
	options := &bridgeOptions{}
	return &cli.Command{
		Name:    "list",
		Summary: "List recently opened projects",
		Usage:   "cockpit project list [flags]",
		Flags:   options.flags("list"),
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("project list takes no arguments")
			}

			logger := cli.NewCommandLogger().With("command", "project/list")
			b, err := options.openBridge(logger)
			if err != nil {
				return err
			}

			ctx, cancel := options.commandContext()
			defer cancel()

			payload, err := b.ListRecentProjects(ctx)
			if err != nil {
				return err
			}
			return printPayload(payload)
		},
	}
}

func projectCreateCommand() *cli.Command {
	options := &bridgeOptions{}
	return &cli.Command{
		Name:    "create",
		Summary: "Create a project and register it",
		Usage:   "cockpit project create [flags] <name> <path>",
		Description: `Create a new requirement project.

The name labels the project in the cockpit; the path points at the
working directory the project tracks. The backend creates the project
store under the data root and registers the project as recently
opened. The reply is the backend's project description.`,
		Examples: []cli.Example{
			{
				Description: "Create a project for a gearbox ECU",
				Command:     `cockpit project create "Gearbox ECU" /work/gearbox`,
			},
		},
		Flags: options.flags("create"),
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("project create requires exactly two arguments: <name> <path>")
			}
			name, path := args[0], args[1]
			if err := validateProjectName(name); err != nil {
				return err
			}
			if path == "" {
				return fmt.Errorf("project path must not be empty")
			}

			logger := cli.NewCommandLogger().With("command", "project/create")
			b, err := options.openBridge(logger)
			if err != nil {
				return err
			}

			ctx, cancel := options.commandContext()
			defer cancel()

			payload, err := b.CreateProject(ctx, name, path)
			if err != nil {
				return err
			}
			return printPayload(payload)
		},
	}
}
