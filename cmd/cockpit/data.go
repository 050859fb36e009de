// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/reqcockpit/reqcockpit/cmd/cockpit/cli"
)

func dataCommand() *cli.Command {
	options := &bridgeOptions{}
	var (
		projectID   int
		iterationID int
	)
	return &cli.Command{
		Name:    "data",
		Summary: "Compute cockpit coverage data for an iteration",
		Usage:   "cockpit data --project <id> --iteration <n> [flags]",
		Description: `Fetch the aggregated cockpit payload for one iteration.

The iteration here is the store's numeric row identifier, not the
display identifier used by feedback import. The payload is printed to
stdout exactly as the backend produced it, so it can be piped into jq
or saved for the desktop UI.`,
		Examples: []cli.Example{
			{
				Description: "Coverage for iteration 2 of project 3",
				Command:     "cockpit data --project 3 --iteration 2",
			},
			{
				Description: "Pretty-print the payload",
				Command:     "cockpit data --project 3 --iteration 2 | jq .",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("data", pflag.ContinueOnError)
			flagSet.IntVar(&projectID, "project", 0, "project identifier (required)")
			flagSet.IntVar(&iterationID, "iteration", 0, "iteration row identifier (required)")
			options.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("data takes no arguments")
			}
			if projectID <= 0 {
				return fmt.Errorf("--project is required and must be positive")
			}
			if iterationID <= 0 {
				return fmt.Errorf("--iteration is required and must be positive")
			}

			logger := cli.NewCommandLogger().With(
				"command", "data",
				"project", projectID,
				"iteration", iterationID,
			)
			b, err := options.openBridge(logger)
			if err != nil {
				return err
			}

			ctx, cancel := options.commandContext()
			defer cancel()

			payload, err := b.CockpitData(ctx, projectID, iterationID)
			if err != nil {
				return err
			}
			return printPayload(payload)
		},
	}
}
