// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/reqcockpit/reqcockpit/lib/testutil"
)

// shRunner returns a Runner whose "interpreter" is /bin/sh and whose
// entry point is a generated script. The backend contract is argv in,
// exit status and text out, so a shell script exercises the runner
// exactly like the real interpreter would.
func shRunner(t *testing.T, scriptBody string) *Runner {
	t.Helper()
	script := testutil.WriteScript(t, t.TempDir(), "backend", scriptBody)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRunner("/bin/sh", script, logger)
}

func TestRunCapturesStdout(t *testing.T) {
	runner := shRunner(t, `echo 42`)

	outcome, err := runner.Run(context.Background(), Invocation{Command: "probe"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", outcome.ExitCode)
	}
	if got := string(outcome.Stdout); got != "42\n" {
		t.Errorf("Stdout = %q, want %q", got, "42\n")
	}
	if outcome.Command != "probe" {
		t.Errorf("Command = %q, want %q", outcome.Command, "probe")
	}
}

func TestRunNonZeroExitIsAnOutcome(t *testing.T) {
	runner := shRunner(t, `echo 'Import failed: file not found' >&2; exit 1`)

	outcome, err := runner.Run(context.Background(), Invocation{Command: "probe"})
	if err != nil {
		t.Fatalf("Run returned an error for a non-zero exit: %v", err)
	}
	if outcome.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", outcome.ExitCode)
	}
	if got := string(outcome.Stderr); !strings.Contains(got, "file not found") {
		t.Errorf("Stderr = %q, want it to contain %q", got, "file not found")
	}
}

func TestRunMissingInterpreterIsSpawnError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	script := testutil.WriteScript(t, t.TempDir(), "backend", `echo unreachable`)
	missing := filepath.Join(t.TempDir(), "no-such-python")
	runner := NewRunner(missing, script, logger)

	_, err := runner.Run(context.Background(), Invocation{Command: "probe"})
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("error = %v (%T), want *SpawnError", err, err)
	}
	if spawnErr.Path != missing {
		t.Errorf("Path = %q, want %q", spawnErr.Path, missing)
	}
}

func TestRunMissingScriptIsSpawnError(t *testing.T) {
	// The entry point is located before anything is spawned, so the
	// interpreter never gets a chance to diagnose the missing file.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gone := filepath.Join(t.TempDir(), "gone.py")
	runner := NewRunner("/bin/sh", gone, logger)

	_, err := runner.Run(context.Background(), Invocation{Command: "probe"})
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("error = %v (%T), want *SpawnError", err, err)
	}
	if spawnErr.Path != gone {
		t.Errorf("Path = %q, want %q", spawnErr.Path, gone)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want it to wrap os.ErrNotExist", err)
	}
}

func TestRunDiscreteArgumentTransmission(t *testing.T) {
	// The script sees the command as $1 and the first argument as
	// $2. Printing "$#:$2" proves hostile bytes arrive as one
	// literal argv entry, never re-split or reinterpreted.
	runner := shRunner(t, `printf '%s:%s' "$#" "$2"`)

	hostile := `a b; "c" $(d)` + "\ne"
	outcome, err := runner.Run(context.Background(), Invocation{
		Command: "probe",
		Args:    []string{hostile},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := "2:" + hostile
	if got := string(outcome.Stdout); got != want {
		t.Errorf("Stdout = %q, want %q", got, want)
	}
}

func TestRunContextCancellationKillsProcess(t *testing.T) {
	runner := shRunner(t, `sleep 30`)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := runner.Run(ctx, Invocation{Command: "probe"})
	elapsed := time.Since(start)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want context.DeadlineExceeded", err)
	}
	if elapsed > 10*time.Second {
		t.Errorf("Run took %v after cancellation; the child was not killed", elapsed)
	}
}

func TestRunConcurrentInvocations(t *testing.T) {
	// One Runner, many goroutines: each invocation is its own
	// process with its own captured streams.
	runner := shRunner(t, `printf '%s' "$2"`)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			want := fmt.Sprintf("payload-%d", n)
			outcome, err := runner.Run(context.Background(), Invocation{
				Command: "probe",
				Args:    []string{want},
			})
			if err != nil {
				errs <- fmt.Errorf("run %d: %w", n, err)
				return
			}
			if got := string(outcome.Stdout); got != want {
				errs <- fmt.Errorf("run %d: stdout %q, want %q", n, got, want)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestRunMeasuresDuration(t *testing.T) {
	runner := shRunner(t, `sleep 0.05; echo done`)

	outcome, err := runner.Run(context.Background(), Invocation{Command: "probe"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome.Duration <= 0 {
		t.Errorf("Duration = %v, want > 0", outcome.Duration)
	}
}
