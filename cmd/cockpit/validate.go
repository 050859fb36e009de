// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Caller-side input validation. These rules guard the command line the
// same way the desktop UI guards its forms; the bridge itself passes
// arguments through to the backend unvalidated.

const (
	maxProjectNameLength  = 255
	maxSupplierNameLength = 100
)

var (
	// Letters, digits, underscores, spaces, and hyphens. Names are
	// human-facing, so letters means Unicode letters.
	projectNamePattern = regexp.MustCompile(`^[\p{L}\p{N}_\s-]+$`)

	// Iteration identifiers look like I-002_beta: a three-digit
	// sequence number and a free-form slug.
	iterationIDPattern = regexp.MustCompile(`^I-\d{3}_[\w-]+$`)
)

func validateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("project name must not be blank")
	}
	if utf8.RuneCountInString(name) > maxProjectNameLength {
		return fmt.Errorf("project name exceeds %d characters", maxProjectNameLength)
	}
	if !projectNamePattern.MatchString(name) {
		return fmt.Errorf("project name may only contain letters, digits, spaces, hyphens, and underscores")
	}
	return nil
}

func validateSupplierName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("supplier name must not be blank")
	}
	if utf8.RuneCountInString(name) > maxSupplierNameLength {
		return fmt.Errorf("supplier name exceeds %d characters", maxSupplierNameLength)
	}
	return nil
}

func validateIterationID(id string) error {
	if !iterationIDPattern.MatchString(id) {
		return fmt.Errorf("iteration identifier %q must match I-NNN_name (for example I-002_beta)", id)
	}
	return nil
}

// validateImportFile checks that path names an existing regular file
// with a .reqif extension. The extension compare is case-insensitive,
// so exports named MASTER.REQIF pass.
func validateImportFile(path string) error {
	if path == "" {
		return fmt.Errorf("import file path must not be empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("import file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("import file %s is not a regular file", path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".reqif") {
		return fmt.Errorf("import file %s does not have a .reqif extension", path)
	}
	return nil
}
