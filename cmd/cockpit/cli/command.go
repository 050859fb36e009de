// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is one node of the CLI tree: a group that dispatches to
// Subcommands, or a leaf with a Run function.
type Command struct {
	// Name is what the user types to select this command.
	Name string

	// Summary is the one-liner shown in the parent's command listing.
	Summary string

	// Description is the long-form text leading this command's help
	// output.
	Description string

	// Usage overrides the synthesized usage line, for commands whose
	// positional arguments deserve spelling out (e.g., "cockpit
	// import spec [flags] <file>").
	Usage string

	// Examples are rendered at the end of the help output.
	Examples []Example

	// Flags builds this command's flag set. Called fresh for each
	// parse and again for help rendering; nil means no flags.
	Flags func() *pflag.FlagSet

	// Subcommands are dispatched on the first positional argument.
	Subcommands []*Command

	// Run receives the positional arguments left after flag parsing.
	// Groups normally leave it nil; a group with a Run handles the
	// no-subcommand invocation itself.
	Run func(args []string) error

	// parent links back up the tree during dispatch; fullName walks
	// it to render the command path in help and error text.
	parent *Command
}

// Example pairs a literal command line with what it accomplishes.
type Example struct {
	// Description says what running the command achieves.
	Description string
	// Command is the line as the user would type it.
	Command string
}

// Execute runs the command tree against args: resolves subcommands,
// parses flags, and invokes the selected command's Run. Help requests
// (-h, --help, or a literal "help") print usage and return nil.
func (c *Command) Execute(args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(os.Stderr)
		return nil
	}

	if len(c.Subcommands) > 0 {
		if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
			return c.dispatch(args[0], args[1:])
		}
		// No subcommand named. A pure group has nothing to run, so
		// print help and explain; a group with its own Run falls
		// through to leaf handling.
		if c.Run == nil {
			c.PrintHelp(os.Stderr)
			if len(args) == 0 {
				return fmt.Errorf("subcommand required")
			}
			return fmt.Errorf("subcommand required (got flag %q)", args[0])
		}
	}

	return c.runLeaf(args)
}

// dispatch routes to the named subcommand, or reports it unknown with
// the nearest real name when one is plausibly what the user meant.
func (c *Command) dispatch(name string, rest []string) error {
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			sub.parent = c
			return sub.Execute(rest)
		}
	}

	if suggestion := suggestCommand(name, c.Subcommands); suggestion != "" {
		return fmt.Errorf("unknown command %q (did you mean %q?)\n\nRun '%s --help' for usage.",
			name, suggestion, c.fullName())
	}
	return fmt.Errorf("unknown command %q\n\nRun '%s --help' for usage.",
		name, c.fullName())
}

// runLeaf parses the command's flags and invokes Run with what
// remains.
func (c *Command) runLeaf(args []string) error {
	if c.Flags != nil {
		flagSet := c.Flags()
		// pflag's own error output and usage dump are suppressed;
		// flagError formats the failure with a suggestion instead.
		flagSet.SetOutput(io.Discard)
		if err := flagSet.Parse(args); err != nil {
			return c.flagError(err, args)
		}
		args = flagSet.Args()
	}

	if c.Run == nil {
		c.PrintHelp(os.Stderr)
		return fmt.Errorf("no action defined for %q", c.fullName())
	}
	return c.Run(args)
}

// flagError turns a pflag parse failure into the user-facing error:
// pflag's message, the nearest defined flag for an unknown one, and a
// pointer to --help.
func (c *Command) flagError(parseErr error, args []string) error {
	if strings.Contains(parseErr.Error(), "unknown flag") {
		// Suggest against a fresh flag set: the failed parse may have
		// consumed state on the one that produced the error.
		if suggestion := suggestFlag(args, c.Flags()); suggestion != "" {
			return fmt.Errorf("%s (did you mean %s?)\n\nRun '%s --help' for usage.",
				parseErr, suggestion, c.fullName())
		}
	}
	return fmt.Errorf("%s\n\nRun '%s --help' for usage.", parseErr, c.fullName())
}

// PrintHelp writes the command's structured help text to w:
// description, usage, subcommand listing, flags, examples, and a
// footer pointing at per-command help.
func (c *Command) PrintHelp(w io.Writer) {
	name := c.fullName()

	switch {
	case c.Description != "":
		fmt.Fprintf(w, "%s\n\n", c.Description)
	case c.Summary != "":
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}

	fmt.Fprintf(w, "Usage:\n  %s\n", c.usageLine(name))

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		tw.Flush()
	}

	if c.Flags != nil {
		var defaults strings.Builder
		flagSet := c.Flags()
		flagSet.SetOutput(&defaults)
		flagSet.PrintDefaults()
		if defaults.Len() > 0 {
			fmt.Fprintf(w, "\nFlags:\n%s", defaults.String())
		}
	}

	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for _, example := range c.Examples {
			if example.Description != "" {
				fmt.Fprintf(w, "  # %s\n", example.Description)
			}
			fmt.Fprintf(w, "  %s\n", example.Command)
			if example.Description != "" {
				fmt.Fprintln(w)
			}
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
}

// usageLine returns the usage text for help output: the explicit
// Usage when set, otherwise one synthesized from the command's shape.
func (c *Command) usageLine(name string) string {
	switch {
	case c.Usage != "":
		return c.Usage
	case len(c.Subcommands) > 0:
		return name + " <command> [flags]"
	default:
		return name + " [flags]"
	}
}

// fullName renders the command path from the root, e.g. "cockpit
// import spec".
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

// isHelpFlag reports whether arg is one of the help spellings.
func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
