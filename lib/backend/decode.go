// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DecodeCount interprets a count-shaped outcome: stdout holds the
// number of records the command processed, as decimal text. The
// surrounding whitespace (trailing newline from the backend's print)
// is trimmed before parsing. Zero is a valid count: an import that
// matched nothing is a success, not an error.
//
// A non-zero exit, or a clean exit whose stdout does not parse as a
// non-negative integer, yields a [*BackendError].
func DecodeCount(outcome *Outcome) (int, error) {
	if outcome.ExitCode != 0 {
		return 0, failure(outcome)
	}

	text := strings.TrimSpace(string(outcome.Stdout))
	count, err := strconv.Atoi(text)
	if err != nil {
		return 0, &BackendError{
			Command:  outcome.Command,
			ExitCode: outcome.ExitCode,
			Message:  fmt.Sprintf("malformed count %q on stdout", text),
		}
	}
	if count < 0 {
		return 0, &BackendError{
			Command:  outcome.Command,
			ExitCode: outcome.ExitCode,
			Message:  fmt.Sprintf("negative count %d on stdout", count),
		}
	}
	return count, nil
}

// DecodePayload interprets a payload-shaped outcome: stdout is a
// serialized document the UI decodes, and the bridge passes it
// through verbatim, with no trimming and no structural validation.
// The bridge is a transport, not a validator, of payload contents.
//
// A non-zero exit yields a [*BackendError].
func DecodePayload(outcome *Outcome) (string, error) {
	if outcome.ExitCode != 0 {
		return "", failure(outcome)
	}
	return string(outcome.Stdout), nil
}

// failure builds the BackendError for a non-zero exit. The backend
// explains itself on stderr; that text, trimmed, is the message. A
// backend that died without a usable diagnostic (empty stderr, or
// bytes that are not valid UTF-8) gets the generic fallback.
func failure(outcome *Outcome) *BackendError {
	message := strings.TrimSpace(string(outcome.Stderr))
	if message == "" || !utf8.ValidString(message) {
		message = "unknown error"
	}
	return &BackendError{
		Command:  outcome.Command,
		ExitCode: outcome.ExitCode,
		Message:  message,
	}
}
