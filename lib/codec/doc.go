// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides ReqCockpit's standard CBOR encoding configuration.
//
// ReqCockpit uses two serialization formats with a clear boundary:
//
//   - JSON for the backend boundary: the data backend prints JSON (or
//     a bare integer) on stdout, and the bridge carries that text as
//     an opaque payload. The bridge never re-encodes it.
//   - CBOR for internal protocols: the UI↔bridge socket protocol and
//     the on-disk invocation transcripts.
//
// Centralizing the encode and decode modes here keeps every package
// on one configuration. Encoding follows Core Deterministic Encoding
// (RFC 8949 §4.2), which sorts map keys and forbids indefinite-length
// items, so equal values always serialize to equal bytes.
//
// Buffer-oriented use:
//
//	data, err := codec.Marshal(request)
//	err = codec.Unmarshal(data, &request)
//
// Stream-oriented use (sockets, transcript files):
//
//	encoder := codec.NewEncoder(socket)
//	decoder := codec.NewDecoder(socket)
//
// Types that cross this boundary (socket protocol requests and
// responses, transcript entries) are only ever serialized as CBOR and
// carry `cbor` struct tags. Backend payloads never pass through this
// package: they stay opaque strings end to end.
package codec
