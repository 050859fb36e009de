// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"testing"
)

// sampleRequest mirrors the socket protocol types: cbor struct tags,
// snake_case field names.
type sampleRequest struct {
	Action    string `cbor:"action"`
	ProjectID int    `cbor:"project_id"`
	FilePath  string `cbor:"file_path,omitempty"`
}

// sampleEntry mirrors the transcript entry shape.
type sampleEntry struct {
	Command  string `cbor:"command"`
	ExitCode int    `cbor:"exit_code"`
}

func TestStructRoundtrip(t *testing.T) {
	sent := sampleRequest{
		Action:    "import-master-spec",
		ProjectID: 7,
		FilePath:  "/data/spec.reqif",
	}

	encoded, err := Marshal(sent)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(encoded) == 0 {
		t.Fatal("Marshal returned no bytes")
	}

	var received sampleRequest
	if err := Unmarshal(encoded, &received); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if received != sent {
		t.Errorf("decoded %+v from encoding of %+v", received, sent)
	}
}

func TestDeterministicMapEncoding(t *testing.T) {
	// Go randomizes map iteration, so repeated encodes only agree if
	// the encoder actually sorts keys.
	payload := map[string]any{
		"iteration": 4,
		"project":   12,
		"suppliers": []string{"Acme", "Borg"},
		"otd":       0.91,
	}

	first, err := Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for range 8 {
		again, err := Marshal(payload)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("encoding varies between calls:\n%x\n%x", first, again)
		}
	}
}

func TestStreamedEntries(t *testing.T) {
	entries := []sampleEntry{
		{Command: "import_master_spec", ExitCode: 0},
		{Command: "get_cockpit_data", ExitCode: 1},
		{Command: "create_project", ExitCode: 0},
	}

	var stream bytes.Buffer
	encoder := NewEncoder(&stream)
	for _, entry := range entries {
		if err := encoder.Encode(entry); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&stream)
	for i, sent := range entries {
		var received sampleEntry
		if err := decoder.Decode(&received); err != nil {
			t.Fatalf("Decode entry %d: %v", i, err)
		}
		if received != sent {
			t.Errorf("entry %d: decoded %+v, sent %+v", i, received, sent)
		}
	}
}

func TestAnyTargetDecodesStringKeyedMaps(t *testing.T) {
	encoded, err := Marshal(map[string]any{"count": 42})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded any
	if err := Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	m, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("any-typed target decoded to %T, want map[string]any", decoded)
	}
	if _, ok := m["count"]; !ok {
		t.Errorf("decoded map lost the count key: %v", m)
	}
}

func TestOmitemptyDropsEmptyFields(t *testing.T) {
	withPath := sampleRequest{Action: "a", ProjectID: 1, FilePath: "/x"}
	withoutPath := sampleRequest{Action: "a", ProjectID: 1}

	full, err := Marshal(withPath)
	if err != nil {
		t.Fatal(err)
	}
	trimmed, err := Marshal(withoutPath)
	if err != nil {
		t.Fatal(err)
	}

	if len(trimmed) >= len(full) {
		t.Errorf("empty file_path still encoded: %d bytes vs %d with the field set",
			len(trimmed), len(full))
	}
}

func TestRejectsMalformedInput(t *testing.T) {
	var request sampleRequest
	if err := Unmarshal([]byte{0xff, 0x00, 0xa1}, &request); err == nil {
		t.Error("malformed bytes decoded without error")
	}
}

func TestPayloadBytesSurviveIntact(t *testing.T) {
	// []byte fields must travel as CBOR byte strings (major type 2)
	// so the backend's pre-serialized JSON payloads arrive unchanged.
	type envelope struct {
		Payload []byte `cbor:"payload"`
	}

	sent := envelope{Payload: []byte(`[{"otd": 0.91}]`)}

	encoded, err := Marshal(sent)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var received envelope
	if err := Unmarshal(encoded, &received); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !bytes.Equal(received.Payload, sent.Payload) {
		t.Errorf("payload arrived as %q, sent %q", received.Payload, sent.Payload)
	}
}

func BenchmarkEncodeRequest(b *testing.B) {
	request := sampleRequest{
		Action:    "import-master-spec",
		ProjectID: 7,
		FilePath:  "/data/spec.reqif",
	}

	b.ReportAllocs()
	for b.Loop() {
		Marshal(request)
	}
}
