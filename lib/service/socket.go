// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/reqcockpit/reqcockpit/lib/codec"
)

// readTimeout is how long the server waits for the client to send its
// request. A well-behaved client writes the request immediately after
// connecting.
const readTimeout = 30 * time.Second

// writeTimeout is how long the server waits for the response write to
// complete.
const writeTimeout = 10 * time.Second

// maxRequestSize caps a single CBOR request. Requests carry command
// names, identifiers, and filesystem paths; 1 MB is far beyond any
// legitimate request.
const maxRequestSize = 1024 * 1024

// ActionFunc processes one socket request for a registered action. The
// raw parameter is the complete CBOR request, including the "action"
// field; handlers decode their action-specific parameters from it.
//
// Return a value to include in the success response, or an error for a
// failure response. A nil value produces a bare {ok: true} envelope; a
// non-nil value is marshaled as CBOR into the envelope's "data" field.
type ActionFunc func(ctx context.Context, raw []byte) (any, error)

// Response is the wire envelope for every socket reply. Handlers
// return a result value (or nil) and an error; the server wraps these
// into a Response before encoding.
type Response struct {
	OK    bool             `cbor:"ok"`
	Error string           `cbor:"error,omitempty"`
	Data  codec.RawMessage `cbor:"data,omitempty"`
}

// SocketServer serves the bridge protocol on a Unix socket. Each
// connection handles exactly one request-response cycle: the client
// writes a CBOR value, the server processes it and writes a CBOR
// response, then the connection closes.
//
// Actions are registered with Handle before calling Serve. Requests
// for unregistered actions receive a failure response.
type SocketServer struct {
	socketPath string
	actions    map[string]ActionFunc
	logger     *slog.Logger

	// inFlight tracks running handlers so Serve can drain them before
	// returning. A handler in the middle of a backend invocation still
	// gets to write its response during shutdown.
	inFlight sync.WaitGroup
}

// NewSocketServer creates a server for the socket at socketPath. Wire
// up the action table with Handle before calling Serve.
func NewSocketServer(socketPath string, logger *slog.Logger) *SocketServer {
	return &SocketServer{
		socketPath: socketPath,
		actions:    make(map[string]ActionFunc),
		logger:     logger,
	}
}

// Handle registers a handler for the given action name. Panics on a
// duplicate registration: the action table is wired once at startup,
// and a collision there is a programming error.
func (srv *SocketServer) Handle(action string, handler ActionFunc) {
	if _, exists := srv.actions[action]; exists {
		panic(fmt.Sprintf("service.SocketServer: duplicate handler for action %q", action))
	}
	srv.actions[action] = handler
}

// Serve accepts connections on the Unix socket and dispatches requests
// to registered action handlers. Blocks until ctx is cancelled, then
// stops accepting new connections and waits for active handlers to
// finish.
//
// The socket's parent directory is created if missing (the default
// socket lives inside the application data root, which may not exist
// on first run). A stale socket file left by a previous run is removed
// before listening, and the socket file is removed again on return.
func (srv *SocketServer) Serve(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(srv.socketPath), 0o755); err != nil {
		return fmt.Errorf("creating socket directory: %w", err)
	}
	if err := os.Remove(srv.socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale socket %s: %w", srv.socketPath, err)
	}

	listener, err := net.Listen("unix", srv.socketPath)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", srv.socketPath, err)
	}
	defer func() {
		listener.Close()
		os.Remove(srv.socketPath)
	}()

	// Closing the listener is what breaks Accept out of its block
	// once the context ends.
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	srv.logger.Info("bridge socket listening", "path", srv.socketPath)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			if errors.Is(err, net.ErrClosed) {
				break
			}
			srv.logger.Error("accept failed", "error", err)
			continue
		}

		srv.inFlight.Add(1)
		go func() {
			defer srv.inFlight.Done()
			srv.serveConn(ctx, conn)
		}()
	}

	srv.inFlight.Wait()
	return nil
}

// serveConn runs a single request through decode, dispatch, and
// response.
func (srv *SocketServer) serveConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(readTimeout))

	// Decode one CBOR value from the connection. The LimitReader
	// keeps a misbehaving client from exhausting memory.
	var raw codec.RawMessage
	if err := codec.NewDecoder(io.LimitReader(conn, maxRequestSize)).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			// Connection opened and abandoned without a request.
			return
		}
		srv.respondFailure(conn, fmt.Sprintf("invalid request: %v", err))
		return
	}

	// Only the action field matters for routing; handlers decode the
	// rest themselves.
	var header struct {
		Action string `cbor:"action"`
	}
	if err := codec.Unmarshal(raw, &header); err != nil {
		srv.respondFailure(conn, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if header.Action == "" {
		srv.respondFailure(conn, "missing required field: action")
		return
	}

	handler, exists := srv.actions[header.Action]
	if !exists {
		srv.respondFailure(conn, fmt.Sprintf("unknown action %q", header.Action))
		return
	}

	result, err := handler(ctx, []byte(raw))
	if err != nil {
		srv.logger.Debug("action failed",
			"action", header.Action,
			"error", err,
		)
		srv.respondFailure(conn, err.Error())
		return
	}

	srv.respondResult(conn, result)
}

// respondFailure sends the {ok: false, error: ...} envelope. A failed
// write only gets a debug log entry, since the connection is about to
// close either way.
func (srv *SocketServer) respondFailure(conn net.Conn, message string) {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := codec.NewEncoder(conn).Encode(Response{
		OK:    false,
		Error: message,
	}); err != nil {
		srv.logger.Debug("failed to write error response", "error", err)
	}
}

// respondResult sends a success response. A nil result produces
// {ok: true}; a non-nil result is marshaled as CBOR into the "data"
// field.
func (srv *SocketServer) respondResult(conn net.Conn, result any) {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))

	response := Response{OK: true}

	if result != nil {
		data, err := codec.Marshal(result)
		if err != nil {
			srv.respondFailure(conn, fmt.Sprintf("internal: marshaling response: %v", err))
			return
		}
		response.Data = data
	}

	if err := codec.NewEncoder(conn).Encode(response); err != nil {
		srv.logger.Debug("failed to write success response", "error", err)
	}
}
