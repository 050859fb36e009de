// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// dataRootDirName is the per-install application data directory,
	// created in the user's home directory.
	dataRootDirName = ".reqcockpit"

	// storeDirName is the subdirectory of the data root holding one
	// store file per project.
	storeDirName = "projects"

	// storeExtension is the file extension of project stores.
	storeExtension = ".sqlite"

	// recentProjectsFileName is the backend-owned registry of
	// recently opened projects, kept directly under the data root.
	recentProjectsFileName = "recent_projects.json"

	// storeURLScheme prefixes a store path to form the connection
	// string the data backend expects. The path that follows is
	// absolute, so the full URL carries four slashes.
	storeURLScheme = "sqlite:///"
)

// AddressingError reports a project location that could not be
// resolved. Addressing failures are fatal to the command: no process
// is spawned and nothing is retried.
type AddressingError struct {
	// Location describes what failed to resolve ("data root",
	// a store path, ...).
	Location string

	// Err is the underlying cause, when one exists.
	Err error
}

func (e *AddressingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolving %s: %v", e.Location, e.Err)
	}
	return fmt.Sprintf("resolving %s", e.Location)
}

func (e *AddressingError) Unwrap() error { return e.Err }

// StoreDir returns the directory holding all project stores:
// <dataRoot>/projects.
func StoreDir(dataRoot string) string {
	return filepath.Join(dataRoot, storeDirName)
}

// StorePath returns the filesystem path of the project's store file:
// <dataRoot>/projects/<id>.sqlite. Pure: no filesystem access, no
// existence check. The backend creates the store on first use.
func StorePath(dataRoot string, projectID int) string {
	return filepath.Join(StoreDir(dataRoot), strconv.Itoa(projectID)+storeExtension)
}

// StoreURL returns the project store location as the connection
// string the data backend expects: sqlite:///<StorePath>. Pure.
func StoreURL(dataRoot string, projectID int) string {
	return storeURLScheme + StorePath(dataRoot, projectID)
}

// ParseStoreURL extracts the store file path from a connection
// string, the inverse of [StoreURL]. Tooling that stands in for the
// backend uses this to locate the store file behind a URL it was
// handed.
func ParseStoreURL(url string) (string, error) {
	path, ok := strings.CutPrefix(url, storeURLScheme)
	if !ok || path == "" {
		return "", fmt.Errorf("malformed store URL %q: want %s<path>", url, storeURLScheme)
	}
	return path, nil
}

// RecentProjectsPath returns the path of the backend-owned recent
// projects registry: <dataRoot>/recent_projects.json.
func RecentProjectsPath(dataRoot string) string {
	return filepath.Join(dataRoot, recentProjectsFileName)
}

// DataRoot resolves the per-install application data root,
// ~/.reqcockpit. It never creates the directory. Returns an
// [*AddressingError] when the user's home directory cannot be
// determined (typically HOME unset in a stripped environment).
func DataRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", &AddressingError{Location: "application data root", Err: err}
	}
	return filepath.Join(home, dataRootDirName), nil
}
