// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

// Package filehash computes BLAKE3 digests of import files.
//
// The bridge records the digest of every file it hands to the data
// backend, so a transcript entry pins down exactly which bytes an
// import saw even after the file on disk changes. BLAKE3 is used for
// its streaming speed on large requirement exchange documents.
package filehash

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 digest.
type Digest [32]byte

// HashFile computes the BLAKE3 digest of the file at path. The file
// is streamed through the hash function in chunks (via io.Copy) to
// keep memory usage constant regardless of file size.
func HashFile(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}

	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// Format returns the hex-encoded string representation of a digest.
// This is the canonical format used in transcripts and log output.
func Format(digest Digest) string {
	return hex.EncodeToString(digest[:])
}

// Parse parses a hex-encoded digest string into a 32-byte Digest.
// Returns an error if the string is not a valid 64-character hex
// encoding of 32 bytes.
func Parse(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing file digest: %w", err)
	}
	if len(decoded) != 32 {
		return digest, fmt.Errorf("file digest is %d bytes, want 32", len(decoded))
	}
	copy(digest[:], decoded)
	return digest, nil
}
