// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

// Package bridge dispatches ReqCockpit commands to the data backend.
//
// A [Bridge] is the complete command surface between a caller (the
// desktop UI, the CLI, the daemon's socket handlers) and the backend
// process. Each operation is a straight-line composition: resolve the
// project's store location, encode the discrete argument vector,
// spawn the backend, decode the outcome. Every operation returns
// either one typed result or one classified error, never both and
// never partial effects.
//
// The Bridge holds no state across commands and is safe for
// concurrent use. Concurrent operations on the same project are not
// ordered here; store-level mutual exclusion is the backend's
// concern.
//
// Failures classify into four kinds, all matchable with errors.As:
//
//   - [*project.AddressingError]: a store location or the data root
//     could not be resolved. No process was spawned.
//   - [*backend.EncodingError]: a parameter cannot cross the argv
//     boundary. No process was spawned.
//   - [*backend.SpawnError]: the backend process could not start.
//   - [*backend.BackendError]: the backend ran and reported failure,
//     or produced unusable output.
//
// Nothing is retried: the user decides whether to try again.
package bridge

import (
	"context"
	"log/slog"

	"github.com/reqcockpit/reqcockpit/lib/backend"
	"github.com/reqcockpit/reqcockpit/lib/filehash"
	"github.com/reqcockpit/reqcockpit/lib/project"
	"github.com/reqcockpit/reqcockpit/lib/transcript"
)

// Bridge dispatches commands to the data backend.
type Bridge struct {
	dataRoot string
	runner   *backend.Runner
	recorder *transcript.Recorder
	logger   *slog.Logger
}

// New returns a Bridge using the given runner. dataRoot pins the
// application data root; when empty, every operation resolves the
// per-user default (~/.reqcockpit) at call time, and an unresolvable
// home directory surfaces as a [*project.AddressingError] on that
// operation. recorder may be nil to disable invocation transcripts.
func New(dataRoot string, runner *backend.Runner, recorder *transcript.Recorder, logger *slog.Logger) *Bridge {
	return &Bridge{
		dataRoot: dataRoot,
		runner:   runner,
		recorder: recorder,
		logger:   logger,
	}
}

// ImportMasterSpec imports a master specification document into the
// project's store and returns the number of imported requirements.
// Zero is a valid result: a document that matched nothing imports
// successfully.
func (b *Bridge) ImportMasterSpec(ctx context.Context, projectID int, filePath string) (int, error) {
	root, err := b.root()
	if err != nil {
		return 0, err
	}
	inv, err := backend.ImportMasterSpecInvocation(project.StoreURL(root, projectID), projectID, filePath)
	if err != nil {
		return 0, err
	}
	outcome, err := b.invoke(ctx, inv, filePath)
	if err != nil {
		return 0, err
	}
	return backend.DecodeCount(outcome)
}

// ImportSupplierFeedback imports a supplier feedback document for
// one iteration and returns the number of imported feedback rows.
// The iteration identifier and supplier name are passed through to
// the backend untouched; the bridge neither validates nor
// enumerates them.
func (b *Bridge) ImportSupplierFeedback(ctx context.Context, projectID int, iterationID, supplierName, filePath string) (int, error) {
	root, err := b.root()
	if err != nil {
		return 0, err
	}
	inv, err := backend.ImportSupplierFeedbackInvocation(
		project.StoreURL(root, projectID), projectID, iterationID, supplierName, filePath)
	if err != nil {
		return 0, err
	}
	outcome, err := b.invoke(ctx, inv, filePath)
	if err != nil {
		return 0, err
	}
	return backend.DecodeCount(outcome)
}

// CockpitData fetches the aggregated cockpit payload for one
// iteration. The payload is the backend's serialized document,
// passed through verbatim; the bridge does not interpret it. The
// iteration here is the store's numeric row identifier (unlike
// feedback import, which carries the display identifier).
func (b *Bridge) CockpitData(ctx context.Context, projectID, iterationID int) (string, error) {
	root, err := b.root()
	if err != nil {
		return "", err
	}
	inv, err := backend.CockpitDataInvocation(project.StoreURL(root, projectID), projectID, iterationID)
	if err != nil {
		return "", err
	}
	outcome, err := b.invoke(ctx, inv, "")
	if err != nil {
		return "", err
	}
	return backend.DecodePayload(outcome)
}

// ListRecentProjects fetches the recently opened projects registry
// as a serialized payload, passed through verbatim.
func (b *Bridge) ListRecentProjects(ctx context.Context) (string, error) {
	root, err := b.root()
	if err != nil {
		return "", err
	}
	inv, err := backend.ListRecentProjectsInvocation(root)
	if err != nil {
		return "", err
	}
	outcome, err := b.invoke(ctx, inv, "")
	if err != nil {
		return "", err
	}
	return backend.DecodePayload(outcome)
}

// CreateProject creates a new project store and registers it. The
// reply is the backend's serialized project description, passed
// through verbatim.
func (b *Bridge) CreateProject(ctx context.Context, name, path string) (string, error) {
	root, err := b.root()
	if err != nil {
		return "", err
	}
	inv, err := backend.CreateProjectInvocation(root, name, path)
	if err != nil {
		return "", err
	}
	outcome, err := b.invoke(ctx, inv, "")
	if err != nil {
		return "", err
	}
	return backend.DecodePayload(outcome)
}

// root resolves the application data root for one operation.
func (b *Bridge) root() (string, error) {
	if b.dataRoot != "" {
		return b.dataRoot, nil
	}
	return project.DataRoot()
}

// invoke runs one backend invocation and records its transcript
// entry. importFile is the document handed to the backend for import
// commands, or empty; its digest pins the imported bytes in the
// transcript.
func (b *Bridge) invoke(ctx context.Context, inv backend.Invocation, importFile string) (*backend.Outcome, error) {
	outcome, err := b.runner.Run(ctx, inv)
	if err != nil {
		return nil, err
	}
	b.record(inv, outcome, importFile)
	return outcome, nil
}

// record appends a transcript entry for a completed invocation.
// Transcripts are diagnostics: every failure here is logged and
// swallowed so recording can never change a command outcome.
func (b *Bridge) record(inv backend.Invocation, outcome *backend.Outcome, importFile string) {
	if b.recorder == nil {
		return
	}

	entry := transcript.Entry{
		Command:     outcome.Command,
		Args:        inv.Args,
		ExitCode:    outcome.ExitCode,
		DurationMS:  outcome.Duration.Milliseconds(),
		StdoutBytes: len(outcome.Stdout),
		StderrBytes: len(outcome.Stderr),
		StderrTail:  transcript.Tail(outcome.Stderr),
	}
	if importFile != "" {
		digest, err := filehash.HashFile(importFile)
		if err != nil {
			b.logger.Warn("transcript file digest failed",
				"file", importFile,
				"error", err,
			)
		} else {
			entry.FileDigest = filehash.Format(digest)
		}
	}

	if err := b.recorder.Record(entry); err != nil {
		b.logger.Warn("transcript record failed",
			"command", outcome.Command,
			"error", err,
		)
	}
}
