// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/reqcockpit/reqcockpit/lib/codec"
	"github.com/reqcockpit/reqcockpit/lib/service"
	"github.com/reqcockpit/reqcockpit/lib/version"
)

// registerActions registers all socket API actions on the server. Five
// actions invoke the backend; "status" answers from daemon state alone.
func (bs *BridgeService) registerActions(server *service.SocketServer) {
	server.Handle("import-master-spec", bs.handleImportMasterSpec)
	server.Handle("import-supplier-feedback", bs.handleImportSupplierFeedback)
	server.Handle("cockpit-data", bs.handleCockpitData)
	server.Handle("list-recent-projects", bs.handleListRecentProjects)
	server.Handle("create-project", bs.handleCreateProject)
	server.Handle("status", bs.handleStatus)
}

// invokeContext derives the context for one backend invocation. With a
// configured timeout the invocation is killed when it expires; without
// one the parent context alone governs cancellation.
func (bs *BridgeService) invokeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if bs.invokeTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, bs.invokeTimeout)
}

// Request shapes. Each action decodes its specific fields from the
// CBOR request; the "action" field itself is consumed by the socket
// server framework and does not appear here.

// importMasterSpecRequest identifies the project and the ReqIF file to
// import into its store.
type importMasterSpecRequest struct {
	Project int    `cbor:"project"`
	File    string `cbor:"file"`
}

// importFeedbackRequest carries a supplier feedback import: which
// project and iteration the feedback belongs to, the supplier it came
// from, and the file to read.
type importFeedbackRequest struct {
	Project   int    `cbor:"project"`
	Iteration string `cbor:"iteration"`
	Supplier  string `cbor:"supplier"`
	File      string `cbor:"file"`
}

// cockpitDataRequest identifies the project and iteration row to
// compute coverage data for.
type cockpitDataRequest struct {
	Project   int `cbor:"project"`
	Iteration int `cbor:"iteration"`
}

// createProjectRequest carries the display name and filesystem path of
// the project to create.
type createProjectRequest struct {
	Name string `cbor:"name"`
	Path string `cbor:"path"`
}

// Response shapes.

// countResponse is the result of an import action: how many records
// the backend processed.
type countResponse struct {
	Count int `cbor:"count"`
}

// payloadResponse carries the backend's stdout verbatim. The payload
// is an opaque serialized string; the bridge never parses it.
type payloadResponse struct {
	Payload string `cbor:"payload"`
}

// statusResponse is the daemon's self-description for the "status"
// action.
type statusResponse struct {
	Version       string  `cbor:"version"`
	UptimeSeconds float64 `cbor:"uptime_seconds"`
	DataRoot      string  `cbor:"data_root"`
	Backend       string  `cbor:"backend"`
	Transcripts   bool    `cbor:"transcripts"`
}

// --- Handlers ---

func (bs *BridgeService) handleImportMasterSpec(ctx context.Context, raw []byte) (any, error) {
	var request importMasterSpecRequest
	if err := codec.Unmarshal(raw, &request); err != nil {
		return nil, fmt.Errorf("decoding request: %w", err)
	}

	ctx, cancel := bs.invokeContext(ctx)
	defer cancel()

	count, err := bs.bridge.ImportMasterSpec(ctx, request.Project, request.File)
	if err != nil {
		return nil, err
	}
	return countResponse{Count: count}, nil
}

func (bs *BridgeService) handleImportSupplierFeedback(ctx context.Context, raw []byte) (any, error) {
	var request importFeedbackRequest
	if err := codec.Unmarshal(raw, &request); err != nil {
		return nil, fmt.Errorf("decoding request: %w", err)
	}

	ctx, cancel := bs.invokeContext(ctx)
	defer cancel()

	count, err := bs.bridge.ImportSupplierFeedback(ctx, request.Project, request.Iteration, request.Supplier, request.File)
	if err != nil {
		return nil, err
	}
	return countResponse{Count: count}, nil
}

func (bs *BridgeService) handleCockpitData(ctx context.Context, raw []byte) (any, error) {
	var request cockpitDataRequest
	if err := codec.Unmarshal(raw, &request); err != nil {
		return nil, fmt.Errorf("decoding request: %w", err)
	}

	ctx, cancel := bs.invokeContext(ctx)
	defer cancel()

	payload, err := bs.bridge.CockpitData(ctx, request.Project, request.Iteration)
	if err != nil {
		return nil, err
	}
	return payloadResponse{Payload: payload}, nil
}

func (bs *BridgeService) handleListRecentProjects(ctx context.Context, raw []byte) (any, error) {
	ctx, cancel := bs.invokeContext(ctx)
	defer cancel()

	payload, err := bs.bridge.ListRecentProjects(ctx)
	if err != nil {
		return nil, err
	}
	return payloadResponse{Payload: payload}, nil
}

func (bs *BridgeService) handleCreateProject(ctx context.Context, raw []byte) (any, error) {
	var request createProjectRequest
	if err := codec.Unmarshal(raw, &request); err != nil {
		return nil, fmt.Errorf("decoding request: %w", err)
	}

	ctx, cancel := bs.invokeContext(ctx)
	defer cancel()

	payload, err := bs.bridge.CreateProject(ctx, request.Name, request.Path)
	if err != nil {
		return nil, err
	}
	return payloadResponse{Payload: payload}, nil
}

// handleStatus reports daemon liveness and configuration. It never
// touches the backend, so it works even when the Python side is
// broken.
func (bs *BridgeService) handleStatus(ctx context.Context, raw []byte) (any, error) {
	uptime := bs.clock.Now().Sub(bs.startedAt)
	return statusResponse{
		Version:       version.Info(),
		UptimeSeconds: uptime.Seconds(),
		DataRoot:      bs.dataRoot,
		Backend:       bs.backendEntry,
		Transcripts:   bs.transcripts,
	}, nil
}
