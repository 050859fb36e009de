// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"testing"
	"time"
)

// RequireReceive reads one value from ch, failing the test if nothing
// arrives within timeout. The what string names the awaited event in
// the failure message, so tests never need their own time.After
// plumbing.
//
//	result := testutil.RequireReceive(t, ch, 5*time.Second, "worker result")
func RequireReceive[T any](t testing.TB, ch <-chan T, timeout time.Duration, what string) T {
	t.Helper()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatalf("%s: channel closed without a value", what)
		}
		return v
	case <-timer.C:
		t.Fatalf("%s: nothing received within %v", what, timeout)
	}
	panic("unreachable")
}

// RequireClosed waits for ch to close (or deliver a value), failing
// the test if it stays open past timeout. Readiness channels that
// signal by closing are the intended use.
func RequireClosed(t testing.TB, ch <-chan struct{}, timeout time.Duration, what string) {
	t.Helper()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-ch:
	case <-timer.C:
		t.Fatalf("%s: still open after %v", what, timeout)
	}
}
