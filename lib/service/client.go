// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/reqcockpit/reqcockpit/lib/codec"
)

// dialTimeout bounds the connect phase only; once connected, response
// waits are governed by the caller's context.
const dialTimeout = 5 * time.Second

// maxResponseSize caps a single CBOR response. Cockpit payloads carry
// the full requirement coverage data for a project iteration, which
// can reach tens of megabytes on large specifications.
const maxResponseSize = 64 * 1024 * 1024

// ServiceError carries an ok=false response back to the caller: the
// action that failed and the server's error text.
type ServiceError struct {
	Action  string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error on %q: %s", e.Action, e.Message)
}

// Client sends CBOR requests to a bridge socket. Each Call opens a new
// connection (matching the server's one-request-per-connection model),
// sends the request, reads the response, and closes the connection.
type Client struct {
	socketPath string
}

// NewClient creates a client for the bridge socket at socketPath. The
// constructor performs no I/O; connection failures surface from Call.
func NewClient(socketPath string) *Client {
	return &Client{socketPath: socketPath}
}

// Call sends a CBOR request to the bridge and decodes the response.
//
// The fields parameter may contain any action-specific request fields;
// the client adds "action" itself. Pass nil for actions that take no
// parameters. The caller must not include an "action" key in the
// fields map.
//
// When the server answers ok=true and result is non-nil, any response
// data is CBOR-decoded into result. When it answers ok=false, Call
// returns a *ServiceError with the server's message; transport and
// codec failures come back as plain wrapped errors instead.
func (c *Client) Call(ctx context.Context, action string, fields map[string]any, result any) error {
	request := buildRequest(action, fields)

	response, err := c.send(ctx, request)
	if err != nil {
		return fmt.Errorf("calling %q on %s: %w", action, c.socketPath, err)
	}

	if !response.OK {
		return &ServiceError{
			Action:  action,
			Message: response.Error,
		}
	}

	if result != nil && len(response.Data) > 0 {
		if err := codec.Unmarshal(response.Data, result); err != nil {
			return fmt.Errorf("decoding response data for %q: %w", action, err)
		}
	}

	return nil
}

// buildRequest constructs the CBOR request map: the caller's fields
// (if any) plus the "action" key.
func buildRequest(action string, fields map[string]any) map[string]any {
	request := make(map[string]any, len(fields)+1)
	for key, value := range fields {
		request[key] = value
	}
	request["action"] = action
	return request
}

// send performs one round trip on a fresh connection: dial, write the
// request, read the response.
func (c *Client) send(ctx context.Context, request any) (*Response, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connecting: %w", err)
	}
	defer conn.Close()

	if err := codec.NewEncoder(conn).Encode(request); err != nil {
		return nil, fmt.Errorf("writing request: %w", err)
	}

	// CBOR frames are self-delimiting, but half-closing the write side
	// still gives the server a clean EOF on its read.
	if unixConn, ok := conn.(*net.UnixConn); ok {
		unixConn.CloseWrite()
	}

	// The response wait is bounded by the caller's context deadline
	// when one is set. Without a deadline the wait is unbounded:
	// import actions run the backend to completion, which can take
	// minutes on large specification files.
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
	}
	var response Response
	if err := codec.NewDecoder(io.LimitReader(conn, maxResponseSize)).Decode(&response); err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return &response, nil
}
