// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

// Package transcript records backend invocations for support
// diagnostics.
//
// Every completed invocation appends one [Entry] to a per-day file
// under the transcript directory, e.g. 2026-08-23.cbor.zst. Entries
// are CBOR, each compressed as its own zstd frame and appended to the
// day file; zstd frames and CBOR items are both self-delimiting, so
// the file needs no index and survives a crash mid-append with at
// most the last entry lost.
//
// Transcripts are diagnostics, never load-bearing: recording failures
// must not change command outcomes. The bridge logs and swallows any
// error this package returns.
package transcript

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/reqcockpit/reqcockpit/lib/clock"
	"github.com/reqcockpit/reqcockpit/lib/codec"
)

// StderrTailLimit bounds the stderr text kept per entry. Full stderr
// already reached the caller inside the command error; the transcript
// keeps a tail for correlating, not the whole stream.
const StderrTailLimit = 1024

// zstdEncoder is reused across calls to avoid repeated
// initialization overhead; EncodeAll is safe for concurrent use.
// Decoding uses a fresh streaming reader per call instead, because a
// streaming zstd.Decoder is stateful.
var zstdEncoder *zstd.Encoder

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("transcript: zstd encoder initialization failed: " + err.Error())
	}
}

// Entry is one recorded backend invocation. Purely internal, so cbor
// struct tags.
type Entry struct {
	// TimeUnixMS is the invocation completion time in Unix
	// milliseconds. Stamped by the Recorder when zero.
	TimeUnixMS int64 `cbor:"time_unix_ms"`

	// Command is the backend command name.
	Command string `cbor:"command"`

	// Args are the argv entries after the command name.
	Args []string `cbor:"args"`

	// ExitCode is the backend's exit status.
	ExitCode int `cbor:"exit_code"`

	// DurationMS is the invocation wall-clock duration in
	// milliseconds.
	DurationMS int64 `cbor:"duration_ms"`

	// StdoutBytes and StderrBytes are stream sizes; the streams
	// themselves are not retained.
	StdoutBytes int `cbor:"stdout_bytes"`
	StderrBytes int `cbor:"stderr_bytes"`

	// StderrTail is the last [StderrTailLimit] bytes of stderr, for
	// failure correlation.
	StderrTail string `cbor:"stderr_tail,omitempty"`

	// FileDigest is the hex BLAKE3 digest of the import file, for
	// import commands only. Pins down which bytes the backend saw
	// even after the file on disk changes.
	FileDigest string `cbor:"file_digest,omitempty"`
}

// Recorder appends entries to per-day transcript files under a
// directory. Safe for concurrent use; appends are serialized by an
// internal mutex.
type Recorder struct {
	dir   string
	clock clock.Clock

	mu sync.Mutex
}

// NewRecorder returns a Recorder writing under dir. The directory is
// created on first write, not here.
func NewRecorder(dir string) *Recorder {
	return &Recorder{dir: dir, clock: clock.Real()}
}

// FileName returns the day file name for the given instant, in UTC:
// "2026-08-23.cbor.zst".
func FileName(t time.Time) string {
	return t.UTC().Format("2006-01-02") + ".cbor.zst"
}

// Record appends one entry to the day file for the entry's
// timestamp. A zero TimeUnixMS is stamped with the current time
// first.
func (r *Recorder) Record(entry Entry) error {
	if entry.TimeUnixMS == 0 {
		entry.TimeUnixMS = r.clock.Now().UnixMilli()
	}

	encoded, err := codec.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding transcript entry: %w", err)
	}
	frame := zstdEncoder.EncodeAll(encoded, nil)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("creating transcript directory: %w", err)
	}

	path := filepath.Join(r.dir, FileName(time.UnixMilli(entry.TimeUnixMS)))
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening transcript file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(frame); err != nil {
		return fmt.Errorf("appending transcript entry: %w", err)
	}
	return nil
}

// ReadFile decodes every entry in a transcript file, in append
// order. The file is a sequence of zstd frames each holding one CBOR
// entry; the streaming reader consumes concatenated frames, then the
// CBOR decoder walks the concatenated items.
func ReadFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transcript file: %w", err)
	}
	defer file.Close()

	reader, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("opening zstd reader: %w", err)
	}
	defer reader.Close()

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("decompressing transcript file: %w", err)
	}

	var entries []Entry
	decoder := codec.NewDecoder(bytes.NewReader(decompressed))
	for {
		var entry Entry
		if err := decoder.Decode(&entry); err != nil {
			if err == io.EOF {
				return entries, nil
			}
			return nil, fmt.Errorf("decoding transcript entry %d: %w", len(entries), err)
		}
		entries = append(entries, entry)
	}
}

// Tail returns the last [StderrTailLimit] bytes of stderr as a
// string, for Entry.StderrTail.
func Tail(stderr []byte) string {
	if len(stderr) <= StderrTailLimit {
		return string(stderr)
	}
	return string(stderr[len(stderr)-StderrTailLimit:])
}
