// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework under the cockpit binary.
//
// [Command] models one node of the command tree: a name, an optional
// [pflag.FlagSet] factory, nested [Command.Subcommands], and a Run
// function. main.go assembles the tree and hands os.Args to
// [Command.Execute], which routes subcommands, parses flags, and
// renders help with usage, flag, and example sections.
//
// Mistyped subcommands and flags get a "did you mean" suggestion:
// suggest.go scores every known name by Levenshtein distance and
// offers the nearest one within a small edit budget.
//
// [NewCommandLogger] supplies the stderr slog logger commands run
// with; stdout stays reserved for payload output.
package cli
