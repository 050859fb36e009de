// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode applies Core Deterministic Encoding (RFC 8949 §4.2): map
// keys sorted, integers in their smallest form, no indefinite-length
// items. Encoding the same logical value twice yields byte-identical
// output.
var encMode cbor.EncMode

// decMode accepts standard CBOR and ignores unknown struct fields, so
// older binaries tolerate requests from newer ones.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// The protocol never uses non-string map keys. When the
		// decoder's target is interface{}/any (e.g., map[string]any
		// values), it must pick a concrete Go map type. The CBOR
		// default is map[interface{}]interface{} (since CBOR allows
		// non-string keys), but that type is incompatible with
		// encoding/json and most Go code that expects map[string]any.
		// This setting only affects any-typed targets; struct field
		// decoding is unaffected.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v with the deterministic encoder.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR bytes into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Encoder streams CBOR values to a writer. Aliased here so the rest
// of the module imports lib/codec rather than fxamacker/cbor.
type Encoder = cbor.Encoder

// Decoder streams CBOR values from a reader. Aliased for the same
// reason as Encoder.
type Decoder = cbor.Decoder

// RawMessage holds an encoded CBOR value untouched, deferring its
// decode (or carrying a pre-encoded payload) across an envelope.
type RawMessage = cbor.RawMessage

// NewEncoder returns an encoder writing deterministic CBOR to w.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a decoder reading from r with the module's
// standard decode options.
func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}
