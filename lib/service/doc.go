// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

// Package service provides the Unix-socket protocol shared by the
// bridge daemon and its clients.
//
// The bridge daemon exposes its operations on a local Unix socket
// speaking a CBOR request-response protocol. Each connection carries
// exactly one exchange: the client writes a single CBOR map with an
// "action" field plus action-specific parameters, the server processes
// it and writes a single CBOR response envelope, then the connection
// closes. CBOR values are self-delimiting, so the protocol needs no
// framing layer.
//
// The package provides both sides of the socket:
//
//   - SocketServer: action registration and dispatch, per-connection
//     timeouts, and graceful shutdown that drains in-flight handlers.
//   - Client: connect, send one request, read one response. Used by
//     the cockpit CLI and by tests.
//   - NewLogger: the daemon's structured logger (JSON to stderr,
//     installed as the slog default).
//
// The socket lives in the user's application data root and is only
// reachable by local processes running as the same user; the protocol
// carries no authentication.
package service
