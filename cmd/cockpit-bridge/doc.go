// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

// Cockpit-bridge is the daemon between the ReqCockpit desktop UI and
// the Python analysis backend. It owns the command boundary: the UI
// never spawns the backend itself, it sends a request over the bridge
// socket and the bridge runs the backend process with a discrete
// argument vector, captures its output, and decodes the result.
//
// # Protocol
//
// Clients connect to the bridge's Unix socket (default
// <data-root>/bridge.sock) and send one CBOR request per connection.
// The "action" field determines the operation:
//
//   - import-master-spec: run a master specification import, returns
//     {count: N}
//   - import-supplier-feedback: run a supplier feedback import,
//     returns {count: N}
//   - cockpit-data: compute coverage data for an iteration, returns
//     {payload: "<verbatim backend JSON>"}
//   - list-recent-projects: returns {payload: ...}
//   - create-project: returns {payload: ...}
//   - status: liveness and self-description, no backend invocation
//
// Count responses carry the number decoded from the backend's stdout;
// payload responses carry the backend's stdout verbatim, as an opaque
// string the UI deserializes itself.
//
// # Configuration
//
// The bridge reads its YAML configuration from --config, or from
// REQCOCKPIT_CONFIG, or falls back to built-in defaults rooted at
// ~/.reqcockpit. Each backend invocation is optionally bounded by
// invoke.timeout; without it, commands run until the backend exits.
package main
