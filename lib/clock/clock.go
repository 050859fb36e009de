// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for testability.
//
// Production code accepts a Clock instead of calling time.Now
// directly, so tests can measure durations and timestamps
// deterministically. Real() provides the standard library behavior;
// Fake() provides a clock that moves only when Advance is called.
package clock

import "time"

// Clock abstracts the current-time source. Production code injects
// Real(); tests inject Fake() and advance it explicitly.
type Clock interface {
	// Now reports the clock's current time.
	Now() time.Time
}

// Real returns the wall clock.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
