// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/reqcockpit/reqcockpit/cmd/cockpit/cli"
)

func importCommand() *cli.Command {
	return &cli.Command{
		Name:    "import",
		Summary: "Import ReqIF documents into a project",
		Subcommands: []*cli.Command{
			importSpecCommand(),
			importFeedbackCommand(),
		},
	}
}

func importSpecCommand() *cli.Command {
	options := &bridgeOptions{}
	var projectID int
	return &cli.Command{
		Name:    "spec",
		Summary: "Import a master specification",
		Usage:   "cockpit import spec --project <id> [flags] <file.reqif>",
		Description: `Import a master specification document into a project.

The file replaces the project's requirement baseline. On success the
command prints the number of imported requirements; zero means the
document contained no importable requirements, which is a successful
import of an empty document.`,
		Examples: []cli.Example{
			{
				Description: "Import the customer baseline into project 3",
				Command:     "cockpit import spec --project 3 master.reqif",
			},
			{
				Description: "Bound a large import to ten minutes",
				Command:     "cockpit import spec --project 3 --timeout 10m master.reqif",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("spec", pflag.ContinueOnError)
			flagSet.IntVar(&projectID, "project", 0, "project identifier (required)")
			options.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("import spec requires exactly one argument: <file.reqif>")
			}
			if projectID <= 0 {
				return fmt.Errorf("--project is required and must be positive")
			}
			filePath := args[0]
			if err := validateImportFile(filePath); err != nil {
				return err
			}

			logger := cli.NewCommandLogger().With(
				"command", "import/spec",
				"project", projectID,
			)
			b, err := options.openBridge(logger)
			if err != nil {
				return err
			}

			ctx, cancel := options.commandContext()
			defer cancel()

			count, err := b.ImportMasterSpec(ctx, projectID, filePath)
			if err != nil {
				return err
			}
			fmt.Println(count)
			return nil
		},
	}
}

func importFeedbackCommand() *cli.Command {
	options := &bridgeOptions{}
	var (
		projectID    int
		iterationID  string
		supplierName string
	)
	return &cli.Command{
		Name:    "feedback",
		Summary: "Import supplier feedback for an iteration",
		Usage:   "cockpit import feedback --project <id> --iteration <id> --supplier <name> [flags] <file.reqif>",
		Description: `Import a supplier feedback document for one iteration.

The iteration identifier is the display form, e.g. I-002_beta. On
success the command prints the number of imported feedback rows.`,
		Examples: []cli.Example{
			{
				Description: "Import Acme's feedback for iteration I-002_beta",
				Command:     `cockpit import feedback --project 3 --iteration I-002_beta --supplier "Acme Systems" feedback.reqif`,
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("feedback", pflag.ContinueOnError)
			flagSet.IntVar(&projectID, "project", 0, "project identifier (required)")
			flagSet.StringVar(&iterationID, "iteration", "", "iteration identifier, e.g. I-002_beta (required)")
			flagSet.StringVar(&supplierName, "supplier", "", "supplier name (required)")
			options.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("import feedback requires exactly one argument: <file.reqif>")
			}
			if projectID <= 0 {
				return fmt.Errorf("--project is required and must be positive")
			}
			if err := validateIterationID(iterationID); err != nil {
				return err
			}
			if err := validateSupplierName(supplierName); err != nil {
				return err
			}
			filePath := args[0]
			if err := validateImportFile(filePath); err != nil {
				return err
			}

			logger := cli.NewCommandLogger().With(
				"command", "import/feedback",
				"project", projectID,
				"iteration", iterationID,
			)
			b, err := options.openBridge(logger)
			if err != nil {
				return err
			}

			ctx, cancel := options.commandContext()
			defer cancel()

			count, err := b.ImportSupplierFeedback(ctx, projectID, iterationID, supplierName, filePath)
			if err != nil {
				return err
			}
			fmt.Println(count)
			return nil
		},
	}
}
