// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// maxSuggestDistance bounds how far a suggestion may be from what the
// user typed. Three edits covers the usual slips (swapped, dropped,
// doubled characters) without proposing unrelated names.
const maxSuggestDistance = 3

// suggestCommand returns the subcommand name nearest to the unknown
// input, or "" when every name is too far away to be a plausible typo.
func suggestCommand(unknown string, commands []*Command) string {
	names := make([]string, 0, len(commands))
	for _, command := range commands {
		names = append(names, command.Name)
	}
	return nearest(unknown, names)
}

// suggestFlag inspects args for the flag pflag rejected and returns
// the nearest defined flag, dash-prefixed so the user can paste it.
// Flags that are actually defined are skipped: they are not what the
// parser choked on. Only the first unknown flag gets a suggestion.
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	defined := make(map[string]bool)
	var names []string
	flagSet.VisitAll(func(f *pflag.Flag) {
		defined[f.Name] = true
		names = append(names, f.Name)
	})

	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			name = name[:eq]
		}
		if defined[name] {
			continue
		}

		match := nearest(name, names)
		switch {
		case match == "":
			return ""
		case len(match) == 1:
			return "-" + match
		default:
			return "--" + match
		}
	}
	return ""
}

// nearest returns the candidate with the smallest edit distance to
// input, or "" when none is within [maxSuggestDistance]. Ties keep
// the earliest candidate.
func nearest(input string, candidates []string) string {
	best := ""
	bestDistance := maxSuggestDistance + 1
	for _, candidate := range candidates {
		if distance := levenshtein(input, candidate); distance < bestDistance {
			best, bestDistance = candidate, distance
		}
	}
	return best
}

// levenshtein returns the edit distance between a and b: the number
// of single-character insertions, deletions, and substitutions
// separating them.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 || len(b) == 0 {
		return len(a) + len(b)
	}

	// Two rolling rows over the shorter string keep the working set
	// small; command and flag names are short, but the input is
	// whatever the user typed.
	if len(b) < len(a) {
		a, b = b, a
	}
	previous := make([]int, len(a)+1)
	current := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}

	for j := 1; j <= len(b); j++ {
		current[0] = j
		for i := 1; i <= len(a); i++ {
			replace := previous[i-1]
			if a[i-1] != b[j-1] {
				replace++
			}
			current[i] = min(replace, previous[i]+1, current[i-1]+1)
		}
		previous, current = current, previous
	}
	return previous[len(a)]
}
